package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/latke/internal/shared"
)

// Engine defaults; overridable through [ClientOpts] and the [shared.APIConfig] section.
const (
	DefaultQuota            = 60
	DefaultWindow           = time.Minute
	DefaultMaxRetries       = 3
	DefaultRetryDelay       = time.Second
	DefaultRefreshThreshold = 5 * time.Minute
)

// Client executes iBroadcast API calls through the rate limiter, the token
// refresh check, and the bounded retry loop. One Client owns one logical
// session; it is safe for concurrent use.
type Client struct {
	transport        Transport
	limiter          *Limiter
	session          *Session
	logger           *log.Logger
	maxRetries       int
	retryDelay       time.Duration
	refreshThreshold time.Duration

	// refreshMu serializes token refreshes so two callers cannot overwrite each other's token.
	refreshMu sync.Mutex

	now   func() time.Time
	sleep func(ctx context.Context, d time.Duration) error
}

// ClientOpts contains configuration options for creating a [Client].
type ClientOpts struct {
	Transport        Transport
	Logger           *log.Logger
	Quota            int
	Window           time.Duration
	MaxRetries       int
	RetryDelay       time.Duration
	RefreshThreshold time.Duration
}

// NewClient creates a Client with the provided options, falling back to engine defaults.
func NewClient(opts ClientOpts) *Client {
	if opts.Transport == nil {
		opts.Transport = NewHTTPTransport("", nil)
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.MaxRetries <= 0 {
		opts.MaxRetries = DefaultMaxRetries
	}
	if opts.RetryDelay <= 0 {
		opts.RetryDelay = DefaultRetryDelay
	}
	if opts.RefreshThreshold <= 0 {
		opts.RefreshThreshold = DefaultRefreshThreshold
	}

	return &Client{
		transport:        opts.Transport,
		limiter:          NewLimiter(opts.Quota, opts.Window),
		session:          NewSession(),
		logger:           opts.Logger,
		maxRetries:       opts.MaxRetries,
		retryDelay:       opts.RetryDelay,
		refreshThreshold: opts.RefreshThreshold,
		now:              time.Now,
		sleep:            sleepContext,
	}
}

// Session returns the client's session state.
func (c *Client) Session() *Session {
	return c.session
}

// Restore seeds the session from persisted credentials, e.g. a cached account row.
func (c *Client) Restore(token string, expiry time.Time, userID string) {
	c.session.Replace(token, expiry, userID)
}

// execute runs one API call: rate limit admission, then the token refresh
// check (skipped for the bootstrap modes login and getdevicecode), then the
// retrying send.
func (c *Client) execute(ctx context.Context, params url.Values, out any) error {
	if err := c.limiter.Admit(); err != nil {
		return err
	}

	if mode := params.Get("mode"); mode != modeLogin && mode != modeGetDeviceCode {
		if err := c.ensureFresh(ctx); err != nil {
			return err
		}
	}

	return c.send(ctx, params, out)
}

// executeAuthed is execute for token-requiring endpoints: it fails with
// [shared.ErrNotLoggedIn] before any network attempt when the session is
// empty, and attaches the (possibly just refreshed) token to the request.
func (c *Client) executeAuthed(ctx context.Context, params url.Values, out any) error {
	if !c.session.Authenticated() {
		return fmt.Errorf("%w: %s requires a session token", shared.ErrNotLoggedIn, params.Get("mode"))
	}

	if err := c.limiter.Admit(); err != nil {
		return err
	}

	if err := c.ensureFresh(ctx); err != nil {
		return err
	}

	token, err := c.session.Token()
	if err != nil {
		return err
	}
	params.Set("token", token)

	return c.send(ctx, params, out)
}

// ensureFresh refreshes the token when it is inside the refresh threshold.
//
// A missing token or an unknown expiry is a no-op: without an expiry, refresh
// is never triggered preemptively and staleness is discovered downstream. On
// refresh failure the session is cleared and the stale token is not retried.
func (c *Client) ensureFresh(ctx context.Context) error {
	c.refreshMu.Lock()
	defer c.refreshMu.Unlock()

	token, expiry, _ := c.session.Snapshot()
	if token == "" || expiry.IsZero() {
		return nil
	}
	if c.now().Add(c.refreshThreshold).Before(expiry) {
		return nil
	}

	c.logger.Debug("token near expiry, refreshing", "expires", expiry)

	// The refresh is a real network call, so it passes the gate too.
	if err := c.limiter.Admit(); err != nil {
		return err
	}

	params := url.Values{}
	params.Set("mode", modeRefreshToken)
	params.Set("token", token)

	var resp AuthResponse
	if err := c.send(ctx, params, &resp); err != nil {
		c.session.Clear()
		return fmt.Errorf("%w: token refresh: %v", shared.ErrAuthFailed, err)
	}
	if !resp.OK() || resp.Token == "" {
		c.session.Clear()
		return fmt.Errorf("%w: token refresh: %s", shared.ErrAuthFailed, resp.ErrorMessage())
	}

	c.session.Replace(resp.Token, resp.Expiry(c.now()), resp.UserID())
	return nil
}

// send posts the request with bounded retry. Transport failures and HTTP 429
// are retried with linear backoff; every other outcome is final on the first
// attempt.
func (c *Client) send(ctx context.Context, params url.Values, out any) error {
	var lastErr error
	throttled := false

	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			delay := time.Duration(attempt) * c.retryDelay
			c.logger.Debug("retrying request", "mode", params.Get("mode"), "attempt", attempt, "delay", delay)
			if err := c.sleep(ctx, delay); err != nil {
				return err
			}
		}

		resp, err := c.transport.Post(ctx, params)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			lastErr = err
			throttled = false
			continue
		}

		if resp.StatusCode == http.StatusTooManyRequests {
			lastErr = fmt.Errorf("server returned status %d", resp.StatusCode)
			throttled = true
			continue
		}

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return apiError(resp)
		}

		if err := json.Unmarshal(resp.Body, out); err != nil {
			return fmt.Errorf("%w: %v", shared.ErrInvalidResponse, err)
		}

		return nil
	}

	if throttled {
		return fmt.Errorf("%w: server throttled %d attempts", shared.ErrRateLimited, c.maxRetries+1)
	}
	return fmt.Errorf("%w: %v", shared.ErrNetwork, lastErr)
}

// apiError parses a structured {status, message} error body, falling back to a
// generic message when the body is not parseable.
func apiError(resp *Response) error {
	var body errorResponse
	if err := json.Unmarshal(resp.Body, &body); err != nil || body.Message == "" {
		return fmt.Errorf("%w: Unknown error (status %d)", shared.ErrAPIRequest, resp.StatusCode)
	}
	return fmt.Errorf("%w: %s", shared.ErrAPIRequest, body.Message)
}

// sleepContext waits for the duration or until the context is cancelled.
func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
