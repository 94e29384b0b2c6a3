package api

import (
	"errors"
	"testing"
	"time"

	"github.com/desertthunder/latke/internal/shared"
)

func TestLimiter(t *testing.T) {
	t.Run("NewLimiter", func(t *testing.T) {
		t.Run("applies defaults for non-positive arguments", func(t *testing.T) {
			l := NewLimiter(0, 0)
			if l.quota != DefaultQuota {
				t.Errorf("expected quota %d, got %d", DefaultQuota, l.quota)
			}
			if l.window != DefaultWindow {
				t.Errorf("expected window %s, got %s", DefaultWindow, l.window)
			}
		})
	})

	t.Run("Admit", func(t *testing.T) {
		t.Run("admits up to quota then rejects", func(t *testing.T) {
			now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
			l := NewLimiter(5, time.Minute)
			l.now = func() time.Time { return now }

			for i := 0; i < 5; i++ {
				if err := l.Admit(); err != nil {
					t.Fatalf("admission %d should succeed, got %v", i+1, err)
				}
			}

			err := l.Admit()
			if !errors.Is(err, shared.ErrRateLimited) {
				t.Errorf("expected ErrRateLimited, got %v", err)
			}

			// Rejection must not consume budget once the window resets
			if l.count != 5 {
				t.Errorf("expected count 5 after rejection, got %d", l.count)
			}
		})

		t.Run("resets lazily after the window elapses", func(t *testing.T) {
			now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
			l := NewLimiter(2, time.Minute)
			l.now = func() time.Time { return now }

			for i := 0; i < 2; i++ {
				if err := l.Admit(); err != nil {
					t.Fatalf("admission %d should succeed, got %v", i+1, err)
				}
			}
			if err := l.Admit(); !errors.Is(err, shared.ErrRateLimited) {
				t.Fatalf("expected ErrRateLimited at quota, got %v", err)
			}

			now = now.Add(time.Minute + time.Second)
			if err := l.Admit(); err != nil {
				t.Errorf("admission after window elapsed should succeed, got %v", err)
			}
			if l.count != 1 {
				t.Errorf("expected count 1 after reset, got %d", l.count)
			}
			if !l.windowStart.Equal(now) {
				t.Errorf("expected windowStart to move to %s, got %s", now, l.windowStart)
			}
		})

		t.Run("does not reset within the window", func(t *testing.T) {
			now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
			l := NewLimiter(1, time.Minute)
			l.now = func() time.Time { return now }

			if err := l.Admit(); err != nil {
				t.Fatalf("first admission should succeed, got %v", err)
			}

			now = now.Add(30 * time.Second)
			if err := l.Admit(); !errors.Is(err, shared.ErrRateLimited) {
				t.Errorf("expected ErrRateLimited mid-window, got %v", err)
			}
		})
	})
}
