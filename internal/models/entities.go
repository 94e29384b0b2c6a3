package models

import (
	"fmt"
	"time"
)

// Account is the cached session state for one iBroadcast user.
type Account struct {
	record
	email       string
	userID      string
	token       string
	tokenExpiry *time.Time
}

// NewAccount creates an account for the given email with its session credentials.
// A nil expiry means the server did not report one.
func NewAccount(sequence int, email, userID, token string, tokenExpiry *time.Time) *Account {
	return &Account{record: newRecord(sequence), email: email, userID: userID, token: token, tokenExpiry: tokenExpiry}
}

func (a *Account) Email() string           { return a.email }
func (a *Account) UserID() string          { return a.userID }
func (a *Account) Token() string           { return a.token }
func (a *Account) TokenExpiry() *time.Time { return a.tokenExpiry }

// SetToken replaces the cached token and expiry, e.g. after a refresh.
func (a *Account) SetToken(token string, expiry *time.Time) {
	a.token = token
	a.tokenExpiry = expiry
	a.Touch()
}

func (a *Account) Validate() error {
	if a.email == "" {
		return fmt.Errorf("account email is required")
	}
	if a.token == "" {
		return fmt.Errorf("account token is required")
	}
	return nil
}

// Credential is a saved password entry keyed by service + email.
type Credential struct {
	record
	service  string
	email    string
	password string
}

// NewCredential creates a credential entry.
func NewCredential(service, email, password string) *Credential {
	return &Credential{record: newRecord(0), service: service, email: email, password: password}
}

func (c *Credential) Service() string  { return c.service }
func (c *Credential) Email() string    { return c.email }
func (c *Credential) Password() string { return c.password }

func (c *Credential) Validate() error {
	if c.service == "" || c.email == "" {
		return fmt.Errorf("credential service and email are required")
	}
	return nil
}

// CachedTrack is a library track persisted by the sync task.
type CachedTrack struct {
	record
	remoteID string
	title    string
	artist   string
	album    string
	length   int
}

// NewCachedTrack creates a cached track from its remote library fields.
func NewCachedTrack(sequence int, remoteID, title, artist, album string, length int) *CachedTrack {
	return &CachedTrack{record: newRecord(sequence), remoteID: remoteID, title: title, artist: artist, album: album, length: length}
}

func (t *CachedTrack) RemoteID() string { return t.remoteID }
func (t *CachedTrack) Title() string    { return t.title }
func (t *CachedTrack) Artist() string   { return t.artist }
func (t *CachedTrack) Album() string    { return t.album }
func (t *CachedTrack) Length() int      { return t.length }

func (t *CachedTrack) Validate() error {
	if t.remoteID == "" {
		return fmt.Errorf("track remote id is required")
	}
	if t.title == "" {
		return fmt.Errorf("track title is required")
	}
	return nil
}

// CachedPlaylist is a library playlist persisted by the sync task.
type CachedPlaylist struct {
	record
	remoteID    string
	name        string
	description string
	trackCount  int
}

// NewCachedPlaylist creates a cached playlist from its remote library fields.
func NewCachedPlaylist(sequence int, remoteID, name, description string, trackCount int) *CachedPlaylist {
	return &CachedPlaylist{record: newRecord(sequence), remoteID: remoteID, name: name, description: description, trackCount: trackCount}
}

func (p *CachedPlaylist) RemoteID() string    { return p.remoteID }
func (p *CachedPlaylist) Name() string        { return p.name }
func (p *CachedPlaylist) Description() string { return p.description }
func (p *CachedPlaylist) TrackCount() int     { return p.trackCount }

func (p *CachedPlaylist) Validate() error {
	if p.remoteID == "" {
		return fmt.Errorf("playlist remote id is required")
	}
	if p.name == "" {
		return fmt.Errorf("playlist name is required")
	}
	return nil
}
