package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/latke/internal/shared"
	"github.com/urfave/cli/v3"
)

// PlaylistCreate creates a new playlist on the server.
func (r *Runner) PlaylistCreate(ctx context.Context, cmd *cli.Command) error {
	name := cmd.StringArg("name")
	if name == "" {
		return fmt.Errorf("%w: playlist name", shared.ErrMissingArgument)
	}

	r.restoreSession()
	r.logger.Info("creating playlist", "name", name)

	playlist, err := r.client.CreatePlaylist(ctx, name, cmd.String("description"))
	if err != nil {
		return err
	}

	return r.writePlain("✓ Playlist created: %s (ID: %s)\n", playlist.Name, playlist.ID)
}

// PlaylistRename renames an existing playlist.
func (r *Runner) PlaylistRename(ctx context.Context, cmd *cli.Command) error {
	id := cmd.String("id")
	name := cmd.String("name")

	r.restoreSession()
	r.logger.Info("renaming playlist", "id", id, "name", name)

	if err := r.client.RenamePlaylist(ctx, id, name); err != nil {
		return err
	}

	return r.writePlain("✓ Playlist %s renamed to %s\n", id, name)
}

// PlaylistDelete removes a playlist from the server.
func (r *Runner) PlaylistDelete(ctx context.Context, cmd *cli.Command) error {
	id := cmd.String("id")

	r.restoreSession()
	r.logger.Info("deleting playlist", "id", id)

	if err := r.client.DeletePlaylist(ctx, id); err != nil {
		return err
	}

	return r.writePlain("✓ Playlist %s deleted\n", id)
}

// PlaylistAdd appends tracks to an existing playlist.
func (r *Runner) PlaylistAdd(ctx context.Context, cmd *cli.Command) error {
	id := cmd.String("id")
	trackIDs := cmd.StringSlice("track")

	r.restoreSession()
	r.logger.Info("adding tracks", "playlist", id, "count", len(trackIDs))

	if err := r.client.AddTracks(ctx, id, trackIDs); err != nil {
		return err
	}

	return r.writePlain("✓ Added %d tracks to playlist %s\n", len(trackIDs), id)
}
