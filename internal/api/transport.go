package api

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// DefaultBaseURL is the fixed JSON endpoint of the iBroadcast API.
const DefaultBaseURL = "https://api.ibroadcast.com/s/JSON"

// Transport sends a single form-encoded POST to the API endpoint and returns the raw result.
//
// Implementations stand in for the underlying HTTP client; tests substitute scripted doubles.
type Transport interface {
	Post(ctx context.Context, params url.Values) (*Response, error)
}

// Response is the raw outcome of one transport call.
type Response struct {
	StatusCode int
	Body       []byte
}

// HTTPTransport implements [Transport] over net/http.
type HTTPTransport struct {
	baseURL    string
	httpClient *http.Client
}

// NewHTTPTransport creates a transport posting to the given base URL.
// The URL defaults to [DefaultBaseURL] and the client to [http.DefaultClient].
func NewHTTPTransport(baseURL string, client *http.Client) *HTTPTransport {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if client == nil {
		client = http.DefaultClient
	}

	return &HTTPTransport{baseURL: baseURL, httpClient: client}
}

// Post sends the parameter set as an application/x-www-form-urlencoded body and reads the full response.
func (t *HTTPTransport) Post(ctx context.Context, params url.Values) (*Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.baseURL, strings.NewReader(params.Encode()))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := t.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	return &Response{StatusCode: resp.StatusCode, Body: body}, nil
}
