package api

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"testing"

	tu "github.com/desertthunder/latke/internal/testing"
)

func TestHTTPTransport(t *testing.T) {
	t.Run("defaults to the production endpoint", func(t *testing.T) {
		transport := NewHTTPTransport("", nil)

		if transport.baseURL != DefaultBaseURL {
			t.Errorf("expected default base URL, got %s", transport.baseURL)
		}
		if transport.httpClient != http.DefaultClient {
			t.Error("expected http.DefaultClient")
		}
	})

	t.Run("returns status and body through a custom round tripper", func(t *testing.T) {
		resp := &http.Response{
			StatusCode: http.StatusOK,
			Body:       http.NoBody,
		}
		transport := NewHTTPTransport("http://example.invalid", &http.Client{
			Transport: tu.NewMockRoundTripper(resp, nil),
		})

		got, err := transport.Post(context.Background(), url.Values{"mode": {"pause"}})
		if err != nil {
			t.Fatalf("post failed: %v", err)
		}
		if got.StatusCode != http.StatusOK {
			t.Errorf("expected status 200, got %d", got.StatusCode)
		}
		if len(got.Body) != 0 {
			t.Errorf("expected empty body, got %q", got.Body)
		}
	})

	t.Run("surfaces round trip errors", func(t *testing.T) {
		transport := NewHTTPTransport("http://example.invalid", &http.Client{
			Transport: tu.NewMockRoundTripper(nil, context.DeadlineExceeded),
		})

		if _, err := transport.Post(context.Background(), url.Values{}); err == nil {
			t.Fatal("expected error from failing round tripper")
		}
	})

	t.Run("surfaces body read failures", func(t *testing.T) {
		resp := &http.Response{
			StatusCode: http.StatusOK,
			Body:       &tu.FCloser{},
		}
		transport := NewHTTPTransport("http://example.invalid", &http.Client{
			Transport: tu.NewMockRoundTripper(resp, nil),
		})

		_, err := transport.Post(context.Background(), url.Values{})
		if err == nil {
			t.Fatal("expected error reading body")
		}
		if !strings.Contains(err.Error(), "failed to read response") {
			t.Errorf("expected read error, got %v", err)
		}
	})
}
