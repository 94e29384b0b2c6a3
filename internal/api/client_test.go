package api

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/desertthunder/latke/internal/shared"
)

// scriptStep is one canned transport outcome.
type scriptStep struct {
	resp *Response
	err  error
}

// scriptedTransport replays a fixed sequence of outcomes and records every
// parameter set it was sent. The last step repeats once the script runs out.
type scriptedTransport struct {
	steps []scriptStep
	calls []url.Values
}

func (s *scriptedTransport) Post(_ context.Context, params url.Values) (*Response, error) {
	cp := url.Values{}
	for k, v := range params {
		cp[k] = append([]string(nil), v...)
	}
	s.calls = append(s.calls, cp)

	i := len(s.calls) - 1
	if i >= len(s.steps) {
		i = len(s.steps) - 1
	}
	return s.steps[i].resp, s.steps[i].err
}

func okBody(body string) scriptStep {
	return scriptStep{resp: &Response{StatusCode: 200, Body: []byte(body)}}
}

func newTestClient(tr Transport) (*Client, *[]time.Duration) {
	c := NewClient(ClientOpts{Transport: tr, Logger: shared.NewLogger(io.Discard)})
	slept := &[]time.Duration{}
	c.sleep = func(_ context.Context, d time.Duration) error {
		*slept = append(*slept, d)
		return nil
	}
	return c, slept
}

func TestClientRetry(t *testing.T) {
	libraryOK := okBody(`{"status":"OK","library":{"tracks":[{"id":"t1","title":"Song"}],"playlists":[]}}`)

	t.Run("retries transport failures with linear backoff", func(t *testing.T) {
		tr := &scriptedTransport{steps: []scriptStep{
			{err: fmt.Errorf("connection refused")},
			{err: fmt.Errorf("connection refused")},
			libraryOK,
		}}
		c, slept := newTestClient(tr)
		c.Restore("T", time.Time{}, "user-1")

		lib, err := c.Library(context.Background())
		if err != nil {
			t.Fatalf("expected success on third attempt, got %v", err)
		}
		if len(lib.Tracks) != 1 || lib.Tracks[0].ID != "t1" {
			t.Errorf("unexpected library payload: %+v", lib)
		}
		if len(tr.calls) != 3 {
			t.Errorf("expected 3 transport calls, got %d", len(tr.calls))
		}

		want := []time.Duration{DefaultRetryDelay, 2 * DefaultRetryDelay}
		if len(*slept) != len(want) {
			t.Fatalf("expected %d backoff waits, got %v", len(want), *slept)
		}
		for i, d := range want {
			if (*slept)[i] != d {
				t.Errorf("backoff %d: expected %s, got %s", i, d, (*slept)[i])
			}
		}
	})

	t.Run("returns Network after exhausting retries", func(t *testing.T) {
		tr := &scriptedTransport{steps: []scriptStep{{err: fmt.Errorf("connection reset")}}}
		c, _ := newTestClient(tr)
		c.Restore("T", time.Time{}, "user-1")

		_, err := c.Library(context.Background())
		if !errors.Is(err, shared.ErrNetwork) {
			t.Errorf("expected ErrNetwork, got %v", err)
		}
		if len(tr.calls) != DefaultMaxRetries+1 {
			t.Errorf("expected %d transport calls, got %d", DefaultMaxRetries+1, len(tr.calls))
		}
	})

	t.Run("returns RateLimitExceeded after repeated 429s", func(t *testing.T) {
		tr := &scriptedTransport{steps: []scriptStep{{resp: &Response{StatusCode: 429, Body: []byte(`{}`)}}}}
		c, _ := newTestClient(tr)
		c.Restore("T", time.Time{}, "user-1")

		_, err := c.Library(context.Background())
		if !errors.Is(err, shared.ErrRateLimited) {
			t.Errorf("expected ErrRateLimited, got %v", err)
		}
		if len(tr.calls) != DefaultMaxRetries+1 {
			t.Errorf("expected %d transport calls, got %d", DefaultMaxRetries+1, len(tr.calls))
		}
	})

	t.Run("does not retry structured server errors", func(t *testing.T) {
		tr := &scriptedTransport{steps: []scriptStep{
			{resp: &Response{StatusCode: 500, Body: []byte(`{"status":"error","message":"boom"}`)}},
		}}
		c, slept := newTestClient(tr)
		c.Restore("T", time.Time{}, "user-1")

		_, err := c.Library(context.Background())
		if !errors.Is(err, shared.ErrAPIRequest) {
			t.Fatalf("expected ErrAPIRequest, got %v", err)
		}
		if got := err.Error(); !strings.Contains(got, "boom") {
			t.Errorf("expected server message in error, got %q", got)
		}
		if len(tr.calls) != 1 {
			t.Errorf("expected exactly 1 transport call, got %d", len(tr.calls))
		}
		if len(*slept) != 0 {
			t.Errorf("expected no backoff waits, got %v", *slept)
		}
	})

	t.Run("substitutes a generic message for unparseable error bodies", func(t *testing.T) {
		tr := &scriptedTransport{steps: []scriptStep{
			{resp: &Response{StatusCode: 502, Body: []byte("<html>bad gateway</html>")}},
		}}
		c, _ := newTestClient(tr)
		c.Restore("T", time.Time{}, "user-1")

		_, err := c.Library(context.Background())
		if !errors.Is(err, shared.ErrAPIRequest) {
			t.Fatalf("expected ErrAPIRequest, got %v", err)
		}
		if got := err.Error(); !strings.Contains(got, "Unknown error") {
			t.Errorf("expected generic message, got %q", got)
		}
	})

	t.Run("does not retry malformed success bodies", func(t *testing.T) {
		tr := &scriptedTransport{steps: []scriptStep{okBody("not json")}}
		c, _ := newTestClient(tr)
		c.Restore("T", time.Time{}, "user-1")

		_, err := c.Library(context.Background())
		if !errors.Is(err, shared.ErrInvalidResponse) {
			t.Errorf("expected ErrInvalidResponse, got %v", err)
		}
		if len(tr.calls) != 1 {
			t.Errorf("expected exactly 1 transport call, got %d", len(tr.calls))
		}
	})

	t.Run("stops waiting when the context is cancelled", func(t *testing.T) {
		tr := &scriptedTransport{steps: []scriptStep{{err: fmt.Errorf("connection refused")}}}
		c, _ := newTestClient(tr)
		c.Restore("T", time.Time{}, "user-1")
		c.sleep = sleepContext

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := c.Library(ctx)
		if !errors.Is(err, context.Canceled) {
			t.Errorf("expected context.Canceled, got %v", err)
		}
	})
}

func TestClientRefresh(t *testing.T) {
	libraryOK := okBody(`{"status":"OK","library":{"tracks":[],"playlists":[]}}`)

	t.Run("no refresh when expiry is far out", func(t *testing.T) {
		tr := &scriptedTransport{steps: []scriptStep{libraryOK}}
		c, _ := newTestClient(tr)
		c.Restore("T", time.Now().Add(time.Hour), "user-1")

		for i := 0; i < 3; i++ {
			if _, err := c.Library(context.Background()); err != nil {
				t.Fatalf("library call %d failed: %v", i+1, err)
			}
		}

		for i, call := range tr.calls {
			if call.Get("mode") != "getlibrary" {
				t.Errorf("call %d: expected getlibrary, got %s", i, call.Get("mode"))
			}
		}
	})

	t.Run("no refresh when expiry is unknown", func(t *testing.T) {
		tr := &scriptedTransport{steps: []scriptStep{libraryOK}}
		c, _ := newTestClient(tr)
		c.Restore("T", time.Time{}, "user-1")

		if _, err := c.Library(context.Background()); err != nil {
			t.Fatalf("library call failed: %v", err)
		}
		if len(tr.calls) != 1 || tr.calls[0].Get("mode") != "getlibrary" {
			t.Errorf("expected a single getlibrary call, got %v", tr.calls)
		}
	})

	t.Run("refreshes once before a near-expiry request", func(t *testing.T) {
		tr := &scriptedTransport{steps: []scriptStep{
			okBody(`{"authenticated":true,"result":true,"token":"T2","expires":3600}`),
			libraryOK,
		}}
		c, _ := newTestClient(tr)
		c.Restore("T", time.Now().Add(time.Minute), "user-1")

		if _, err := c.Library(context.Background()); err != nil {
			t.Fatalf("library call failed: %v", err)
		}

		if len(tr.calls) != 2 {
			t.Fatalf("expected refresh + library calls, got %d", len(tr.calls))
		}
		if tr.calls[0].Get("mode") != "refreshtoken" || tr.calls[0].Get("token") != "T" {
			t.Errorf("expected refreshtoken with stale token, got %v", tr.calls[0])
		}
		if tr.calls[1].Get("mode") != "getlibrary" || tr.calls[1].Get("token") != "T2" {
			t.Errorf("expected getlibrary with refreshed token, got %v", tr.calls[1])
		}

		// The refreshed expiry is used for subsequent checks
		if _, err := c.Library(context.Background()); err != nil {
			t.Fatalf("second library call failed: %v", err)
		}
		if last := tr.calls[len(tr.calls)-1]; last.Get("mode") != "getlibrary" {
			t.Errorf("expected no second refresh, got %s", last.Get("mode"))
		}
	})

	t.Run("refresh rejection clears the session", func(t *testing.T) {
		tr := &scriptedTransport{steps: []scriptStep{
			okBody(`{"authenticated":false,"result":false,"message":"token expired"}`),
		}}
		c, _ := newTestClient(tr)
		c.Restore("T", time.Now().Add(time.Minute), "user-1")

		_, err := c.Library(context.Background())
		if !errors.Is(err, shared.ErrAuthFailed) {
			t.Fatalf("expected ErrAuthFailed, got %v", err)
		}
		if c.session.Authenticated() {
			t.Error("session should be cleared after a rejected refresh")
		}
		if len(tr.calls) != 1 {
			t.Errorf("stale token should not be retried, got %d calls", len(tr.calls))
		}
	})
}

func TestClientGate(t *testing.T) {
	t.Run("local quota rejects before any network attempt", func(t *testing.T) {
		tr := &scriptedTransport{steps: []scriptStep{okBody(`{"status":"OK","library":{}}`)}}
		c, _ := newTestClient(tr)
		c.limiter = NewLimiter(1, time.Minute)
		c.Restore("T", time.Time{}, "user-1")

		if _, err := c.Library(context.Background()); err != nil {
			t.Fatalf("first call should pass the gate: %v", err)
		}

		_, err := c.Library(context.Background())
		if !errors.Is(err, shared.ErrRateLimited) {
			t.Errorf("expected ErrRateLimited, got %v", err)
		}
		if len(tr.calls) != 1 {
			t.Errorf("rejected call must not reach the transport, got %d calls", len(tr.calls))
		}
	})

	t.Run("token-requiring calls fail without a session", func(t *testing.T) {
		tr := &scriptedTransport{steps: []scriptStep{okBody(`{}`)}}
		c, _ := newTestClient(tr)

		_, err := c.Library(context.Background())
		if !errors.Is(err, shared.ErrNotLoggedIn) {
			t.Errorf("expected ErrNotLoggedIn, got %v", err)
		}
		if len(tr.calls) != 0 {
			t.Errorf("expected zero network calls, got %d", len(tr.calls))
		}
	})
}
