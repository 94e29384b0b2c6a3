package api

import (
	"fmt"
	"sync"
	"time"

	"github.com/desertthunder/latke/internal/shared"
)

// Limiter is a sliding-window request-count gate. The window resets lazily on
// the first admission after it elapses; there is no background timer.
//
// This approximates a true sliding window (up to 2×quota requests can cross a
// window boundary), which is enough for a client-side guard against runaway
// request loops.
type Limiter struct {
	mu          sync.Mutex
	quota       int
	window      time.Duration
	windowStart time.Time
	count       int
	now         func() time.Time
}

// NewLimiter creates a limiter admitting quota requests per window.
// Non-positive arguments fall back to [DefaultQuota] and [DefaultWindow].
func NewLimiter(quota int, window time.Duration) *Limiter {
	if quota <= 0 {
		quota = DefaultQuota
	}
	if window <= 0 {
		window = DefaultWindow
	}

	return &Limiter{quota: quota, window: window, now: time.Now}
}

// Admit records one request against the current window.
// Returns [shared.ErrRateLimited] without incrementing once the quota is exhausted.
// The check and increment happen under one lock, so concurrent callers cannot overrun the quota.
func (l *Limiter) Admit() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if now.Sub(l.windowStart) > l.window {
		l.windowStart = now
		l.count = 0
	}

	if l.count >= l.quota {
		return fmt.Errorf("%w: %d requests since %s", shared.ErrRateLimited, l.count, l.windowStart.Format(time.TimeOnly))
	}

	l.count++
	return nil
}
