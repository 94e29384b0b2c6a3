package api

import (
	"fmt"
	"sync"
	"time"

	"github.com/desertthunder/latke/internal/shared"
)

// Session holds the bearer token, its expiry, and the authenticated user id.
//
// An empty token means unauthenticated, and implies the expiry and user id are
// unset too. A token with a zero expiry is treated as valid until a request
// fails server-side. All mutation is a single critical section so a refresh
// either fully installs the new token/expiry pair or leaves the old one intact.
type Session struct {
	mu     sync.Mutex
	token  string
	expiry time.Time
	userID string
}

// NewSession creates an empty, unauthenticated session.
func NewSession() *Session {
	return &Session{}
}

// Authenticated reports whether a token is present.
func (s *Session) Authenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token != ""
}

// Token returns the current bearer token, or [shared.ErrNotLoggedIn] when absent.
func (s *Session) Token() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.token == "" {
		return "", fmt.Errorf("%w: no session token", shared.ErrNotLoggedIn)
	}
	return s.token, nil
}

// Snapshot returns the token, expiry, and user id as one consistent read.
func (s *Session) Snapshot() (token string, expiry time.Time, userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token, s.expiry, s.userID
}

// Replace atomically installs a new token, expiry, and user id.
// An empty user id keeps the previous one; refresh responses may omit the user object.
func (s *Session) Replace(token string, expiry time.Time, userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	s.expiry = expiry
	if userID != "" {
		s.userID = userID
	}
	if s.token == "" {
		s.expiry = time.Time{}
		s.userID = ""
	}
}

// Clear drops the token, expiry, and user id, returning the session to unauthenticated.
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	s.expiry = time.Time{}
	s.userID = ""
}
