package api

import (
	"fmt"
	"time"

	"github.com/desertthunder/latke/internal/shared"
)

// Server operation selectors sent as the mode parameter.
const (
	modeLogin          = "login"
	modeGetDeviceCode  = "getdevicecode"
	modePollDeviceCode = "polldevicecode"
	modeRefreshToken   = "refreshtoken"
	modeGetLibrary     = "getlibrary"
	modeCreatePlaylist = "createplaylist"
	modeUpdatePlaylist = "updateplaylist"
	modeDeletePlaylist = "deleteplaylist"
	modeAppendPlaylist = "appendplaylist"
	modeSearch         = "search"
	modePlay           = "play"
	modePause          = "pause"
)

// AuthUser is the nested user object of authentication responses.
type AuthUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// AuthResponse is the canonical wire shape shared by login, token refresh, and
// device-code polling: boolean authenticated/result flags plus the token, a
// relative expiry in seconds, and a nested user object.
type AuthResponse struct {
	Authenticated bool      `json:"authenticated"`
	Result        bool      `json:"result"`
	Token         string    `json:"token"`
	ExpiresIn     int64     `json:"expires"`
	User          *AuthUser `json:"user"`
	Message       string    `json:"message"`
}

// OK reports whether the server accepted the credentials.
func (r *AuthResponse) OK() bool {
	return r.Authenticated && r.Result
}

// Expiry converts the relative expires field to an absolute time.
// Returns the zero time when the server did not report an expiry.
func (r *AuthResponse) Expiry(now time.Time) time.Time {
	if r.ExpiresIn <= 0 {
		return time.Time{}
	}
	return now.Add(time.Duration(r.ExpiresIn) * time.Second)
}

// UserID returns the nested user id, or empty when the server omitted the user object.
func (r *AuthResponse) UserID() string {
	if r.User == nil {
		return ""
	}
	return r.User.ID
}

// ErrorMessage returns the server message or a generic fallback.
func (r *AuthResponse) ErrorMessage() string {
	if r.Message == "" {
		return "Unknown error"
	}
	return r.Message
}

// deviceCodeResponse is the server reply to a getdevicecode request.
type deviceCodeResponse struct {
	Result     bool   `json:"result"`
	DeviceCode string `json:"device_code"`
	ExpiresIn  int    `json:"expires_in"`
	Message    string `json:"message"`
}

// errorResponse is the structured error body of non-2xx replies.
type errorResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// statusResponse is the common envelope of endpoint replies.
type statusResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// Err converts a non-OK payload status into an API error.
func (r *statusResponse) Err() error {
	if r.Status == "" || r.Status == "OK" {
		return nil
	}
	msg := r.Message
	if msg == "" {
		msg = "Unknown error"
	}
	return fmt.Errorf("%w: %s", shared.ErrAPIRequest, msg)
}

// SessionInfo describes the authenticated session surfaced to callers.
type SessionInfo struct {
	UserID  string
	Expires time.Time // zero when the server did not report an expiry
}

// Track is a single library track.
type Track struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Artist string `json:"artist"`
	Album  string `json:"album"`
	Length int    `json:"length"` // seconds
}

// Playlist is a library playlist with its member track ids.
type Playlist struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	TrackIDs    []string `json:"tracks"`
}

// Library is the full set of the user's tracks and playlists.
type Library struct {
	Tracks    []Track    `json:"tracks"`
	Playlists []Playlist `json:"playlists"`
}

// libraryResponse wraps a getlibrary reply.
type libraryResponse struct {
	statusResponse
	Library Library `json:"library"`
}

// playlistResponse wraps replies carrying a single playlist.
type playlistResponse struct {
	statusResponse
	Playlist Playlist `json:"playlist"`
}

// searchResponse wraps a search reply.
type searchResponse struct {
	statusResponse
	Tracks []Track `json:"tracks"`
}
