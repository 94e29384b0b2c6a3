package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/latke/internal/shared"
	"github.com/urfave/cli/v3"
)

// Search looks up tracks on the server by free-text query.
func (r *Runner) Search(ctx context.Context, cmd *cli.Command) error {
	query := cmd.StringArg("query")
	if query == "" {
		return fmt.Errorf("%w: search query", shared.ErrMissingArgument)
	}

	r.restoreSession()
	r.logger.Info("searching", "query", query)

	tracks, err := r.client.Search(ctx, query)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(tracks, cmd.Bool("pretty"))
	}

	if len(tracks) == 0 {
		return r.writePlain("No tracks found for %q\n", query)
	}

	r.writePlain("Found %d tracks:\n", len(tracks))
	for i, track := range tracks {
		r.writePlain("  %d. %s - %s", i+1, track.Artist, track.Title)
		if track.Album != "" {
			r.writePlain(" (%s)", track.Album)
		}
		r.writePlain("\n")
	}
	return nil
}

// Play starts server-side playback of a track.
func (r *Runner) Play(ctx context.Context, cmd *cli.Command) error {
	trackID := cmd.StringArg("track")
	if trackID == "" {
		return fmt.Errorf("%w: track id", shared.ErrMissingArgument)
	}

	r.restoreSession()

	if err := r.client.Play(ctx, trackID); err != nil {
		return err
	}
	return r.writePlain("▶ Playing track %s\n", trackID)
}

// Pause pauses server-side playback.
func (r *Runner) Pause(ctx context.Context, cmd *cli.Command) error {
	r.restoreSession()

	if err := r.client.Pause(ctx); err != nil {
		return err
	}
	return r.writePlain("⏸ Playback paused\n")
}
