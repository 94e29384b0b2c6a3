package api

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/desertthunder/latke/internal/shared"
)

func TestEndpoints(t *testing.T) {
	t.Run("all token-requiring endpoints fail when unauthenticated", func(t *testing.T) {
		tr := &scriptedTransport{steps: []scriptStep{okBody(`{}`)}}
		c, _ := newTestClient(tr)
		ctx := context.Background()

		calls := map[string]func() error{
			"Library":        func() error { _, err := c.Library(ctx); return err },
			"CreatePlaylist": func() error { _, err := c.CreatePlaylist(ctx, "Mix", ""); return err },
			"RenamePlaylist": func() error { return c.RenamePlaylist(ctx, "p1", "Mix 2") },
			"DeletePlaylist": func() error { return c.DeletePlaylist(ctx, "p1") },
			"AddTracks":      func() error { return c.AddTracks(ctx, "p1", []string{"t1"}) },
			"Search":         func() error { _, err := c.Search(ctx, "query"); return err },
			"Play":           func() error { return c.Play(ctx, "t1") },
			"Pause":          func() error { return c.Pause(ctx) },
		}

		for name, call := range calls {
			if err := call(); !errors.Is(err, shared.ErrNotLoggedIn) {
				t.Errorf("%s: expected ErrNotLoggedIn, got %v", name, err)
			}
		}
		if len(tr.calls) != 0 {
			t.Errorf("expected zero network calls, got %d", len(tr.calls))
		}
	})

	t.Run("CreatePlaylist", func(t *testing.T) {
		tr := &scriptedTransport{steps: []scriptStep{
			okBody(`{"status":"OK","playlist":{"id":"p9","name":"Mix","tracks":[]}}`),
		}}
		c, _ := newTestClient(tr)
		c.Restore("T", time.Time{}, "user-1")

		pl, err := c.CreatePlaylist(context.Background(), "Mix", "road trip songs")
		if err != nil {
			t.Fatalf("create playlist failed: %v", err)
		}
		if pl.ID != "p9" || pl.Name != "Mix" {
			t.Errorf("unexpected playlist: %+v", pl)
		}

		call := tr.calls[0]
		if call.Get("mode") != "createplaylist" || call.Get("name") != "Mix" || call.Get("token") != "T" {
			t.Errorf("unexpected request params: %v", call)
		}
	})

	t.Run("AddTracks joins ids into one parameter", func(t *testing.T) {
		tr := &scriptedTransport{steps: []scriptStep{okBody(`{"status":"OK"}`)}}
		c, _ := newTestClient(tr)
		c.Restore("T", time.Time{}, "user-1")

		if err := c.AddTracks(context.Background(), "p1", []string{"t1", "t2", "t3"}); err != nil {
			t.Fatalf("add tracks failed: %v", err)
		}
		if got := tr.calls[0].Get("tracks"); got != "t1,t2,t3" {
			t.Errorf("expected joined track ids, got %q", got)
		}
	})

	t.Run("Search parses the track list", func(t *testing.T) {
		tr := &scriptedTransport{steps: []scriptStep{
			okBody(`{"status":"OK","tracks":[{"id":"t1","title":"Song","artist":"Band","length":241}]}`),
		}}
		c, _ := newTestClient(tr)
		c.Restore("T", time.Time{}, "user-1")

		tracks, err := c.Search(context.Background(), "song")
		if err != nil {
			t.Fatalf("search failed: %v", err)
		}
		if len(tracks) != 1 || tracks[0].Artist != "Band" || tracks[0].Length != 241 {
			t.Errorf("unexpected search result: %+v", tracks)
		}
		if got := tr.calls[0].Get("query"); got != "song" {
			t.Errorf("expected query param, got %q", got)
		}
	})

	t.Run("payload-level errors surface as API errors", func(t *testing.T) {
		tr := &scriptedTransport{steps: []scriptStep{
			okBody(`{"status":"error","message":"playlist not found"}`),
		}}
		c, _ := newTestClient(tr)
		c.Restore("T", time.Time{}, "user-1")

		err := c.DeletePlaylist(context.Background(), "missing")
		if !errors.Is(err, shared.ErrAPIRequest) {
			t.Errorf("expected ErrAPIRequest, got %v", err)
		}
	})
}
