package api

import (
	"context"
	"fmt"
	"net/url"

	"github.com/desertthunder/latke/internal/shared"
)

// Login authenticates with email and password (mode=login) and populates the session.
//
// The password is sent once and never logged or stored by the client. On a
// rejected login the session is left untouched and the server's message is
// wrapped in [shared.ErrAuthFailed].
func (c *Client) Login(ctx context.Context, email, password string) (*SessionInfo, error) {
	if email == "" || password == "" {
		return nil, fmt.Errorf("%w: email and password", shared.ErrMissingCredentials)
	}

	params := url.Values{}
	params.Set("mode", modeLogin)
	params.Set("email", email)
	params.Set("password", password)

	var resp AuthResponse
	if err := c.execute(ctx, params, &resp); err != nil {
		return nil, err
	}
	if !resp.OK() || resp.Token == "" {
		return nil, fmt.Errorf("%w: %s", shared.ErrAuthFailed, resp.ErrorMessage())
	}

	expiry := resp.Expiry(c.now())
	c.session.Replace(resp.Token, expiry, resp.UserID())
	c.logger.Info("login successful", "user", resp.UserID())

	return &SessionInfo{UserID: resp.UserID(), Expires: expiry}, nil
}

// DeviceCode is an ephemeral pairing code issued by the server. The server
// enforces its expiry; the client only relays it to the user.
type DeviceCode struct {
	Code      string
	ExpiresIn int // seconds
}

// RequestDeviceCode asks the server for a new pairing code (mode=getdevicecode).
// The session is not touched.
func (c *Client) RequestDeviceCode(ctx context.Context) (*DeviceCode, error) {
	params := url.Values{}
	params.Set("mode", modeGetDeviceCode)

	var resp deviceCodeResponse
	if err := c.execute(ctx, params, &resp); err != nil {
		return nil, err
	}
	if !resp.Result || resp.DeviceCode == "" {
		msg := resp.Message
		if msg == "" {
			msg = "Unknown error"
		}
		return nil, fmt.Errorf("%w: %s", shared.ErrAPIRequest, msg)
	}

	c.logger.Debug("device code issued", "expires_in", resp.ExpiresIn)
	return &DeviceCode{Code: resp.DeviceCode, ExpiresIn: resp.ExpiresIn}, nil
}

// PollDeviceCode checks whether the pairing code has been authorized (mode=polldevicecode).
//
// A nil SessionInfo with a nil error means the user has not confirmed yet;
// the caller decides the polling cadence and supplies the same code on every
// poll. On authorization the session is populated exactly as in [Client.Login].
func (c *Client) PollDeviceCode(ctx context.Context, code string) (*SessionInfo, error) {
	if code == "" {
		return nil, fmt.Errorf("%w: device code", shared.ErrMissingArgument)
	}

	params := url.Values{}
	params.Set("mode", modePollDeviceCode)
	params.Set("device_code", code)

	var resp AuthResponse
	if err := c.execute(ctx, params, &resp); err != nil {
		return nil, err
	}

	if !resp.Authenticated {
		return nil, nil
	}
	if !resp.Result || resp.Token == "" {
		return nil, fmt.Errorf("%w: %s", shared.ErrAuthFailed, resp.ErrorMessage())
	}

	expiry := resp.Expiry(c.now())
	c.session.Replace(resp.Token, expiry, resp.UserID())
	c.logger.Info("device pairing complete", "user", resp.UserID())

	return &SessionInfo{UserID: resp.UserID(), Expires: expiry}, nil
}

// Logout drops the in-memory session. The server-side token is left to expire on its own.
func (c *Client) Logout() {
	c.session.Clear()
}

// Info returns the current session info, or false when unauthenticated.
func (c *Client) Info() (*SessionInfo, bool) {
	token, expiry, userID := c.session.Snapshot()
	if token == "" {
		return nil, false
	}
	return &SessionInfo{UserID: userID, Expires: expiry}, true
}
