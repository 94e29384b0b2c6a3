package main

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/latke/internal/formatter"
	"github.com/desertthunder/latke/internal/models"
	"github.com/desertthunder/latke/internal/repositories"
	"github.com/desertthunder/latke/internal/shared"
	"github.com/desertthunder/latke/internal/tasks"
	"github.com/desertthunder/latke/internal/ui"
	"github.com/urfave/cli/v3"
)

// cacheAdapter exposes the repositories as the read-only cache the browser consumes.
type cacheAdapter struct {
	tracks    *repositories.TrackRepository
	playlists *repositories.PlaylistRepository
}

func (c cacheAdapter) ListTracks() ([]*models.CachedTrack, error) {
	return c.tracks.List()
}

func (c cacheAdapter) ListPlaylists() ([]*models.CachedPlaylist, error) {
	return c.playlists.List()
}

// LibraryShow prints the locally cached library.
func (r *Runner) LibraryShow(ctx context.Context, cmd *cli.Command) error {
	db, err := r.database()
	if err != nil {
		return err
	}

	tracks, err := repositories.NewTrackRepository(db).List()
	if err != nil {
		return err
	}
	playlists, err := repositories.NewPlaylistRepository(db).List()
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		type trackRow struct {
			ID     string `json:"id"`
			Title  string `json:"title"`
			Artist string `json:"artist,omitempty"`
			Album  string `json:"album,omitempty"`
			Length int    `json:"length,omitempty"`
		}
		type playlistRow struct {
			ID          string `json:"id"`
			Name        string `json:"name"`
			Description string `json:"description,omitempty"`
			TrackCount  int    `json:"track_count"`
		}
		out := struct {
			Tracks    []trackRow    `json:"tracks"`
			Playlists []playlistRow `json:"playlists"`
		}{}
		for _, t := range tracks {
			out.Tracks = append(out.Tracks, trackRow{ID: t.RemoteID(), Title: t.Title(), Artist: t.Artist(), Album: t.Album(), Length: t.Length()})
		}
		for _, p := range playlists {
			out.Playlists = append(out.Playlists, playlistRow{ID: p.RemoteID(), Name: p.Name(), Description: p.Description(), TrackCount: p.TrackCount()})
		}
		return r.writeJSON(out, cmd.Bool("pretty"))
	}

	r.writePlainHeader("Cached Library")
	r.writePlain("Tracks: %d\n", len(tracks))
	r.writePlain("Playlists: %d\n", len(playlists))

	if len(playlists) > 0 {
		r.writePlainln("Playlists:")
		for i, p := range playlists {
			r.writePlain("  %d. %s (%d tracks)\n", i+1, p.Name(), p.TrackCount())
		}
	}
	if len(tracks) == 0 && len(playlists) == 0 {
		r.writePlainln("Cache is empty. Run 'latke sync' first.")
	}
	return nil
}

// LibraryFetch fetches the library from the server and prints it as JSON.
func (r *Runner) LibraryFetch(ctx context.Context, cmd *cli.Command) error {
	r.restoreSession()

	library, err := r.client.Library(ctx)
	if err != nil {
		return err
	}

	r.logger.Info("library fetched", "tracks", len(library.Tracks), "playlists", len(library.Playlists))
	return r.writeJSON(library, cmd.Bool("pretty"))
}

// LibraryBrowse launches the interactive library browser over the cache.
func (r *Runner) LibraryBrowse(ctx context.Context, cmd *cli.Command) error {
	db, err := r.database()
	if err != nil {
		return err
	}

	// Redirect logs to file to avoid interfering with TUI rendering
	fileLogger, err := shared.NewFileLogger("./tmp/latke-tui.log")
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	r.SetLogger(fileLogger)

	cache := cacheAdapter{
		tracks:    repositories.NewTrackRepository(db),
		playlists: repositories.NewPlaylistRepository(db),
	}

	model := ui.NewBrowseModel(cache)
	if _, err := tea.NewProgram(model, tea.WithAltScreen()).Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}
	return model.Err()
}

// LibraryExport writes the cached library to a file or stdout in the chosen format.
func (r *Runner) LibraryExport(ctx context.Context, cmd *cli.Command) error {
	db, err := r.database()
	if err != nil {
		return err
	}

	tracks, err := repositories.NewTrackRepository(db).List()
	if err != nil {
		return err
	}
	playlists, err := repositories.NewPlaylistRepository(db).List()
	if err != nil {
		return err
	}

	var data []byte
	switch format := cmd.String("format"); format {
	case "csv":
		data, err = formatter.ExportToCSV(tracks)
	case "markdown", "md":
		data, err = formatter.ExportToMarkdown(tracks, playlists)
	case "txt", "text":
		data, err = formatter.ExportToText(tracks, playlists)
	default:
		return fmt.Errorf("%w: unknown format %q (use csv, markdown, or txt)", shared.ErrInvalidArgument, format)
	}
	if err != nil {
		return err
	}

	if path := cmd.String("output"); path != "" {
		if err := os.WriteFile(path, data, 0644); err != nil {
			return fmt.Errorf("failed to write export: %w", err)
		}
		return r.writePlain("✓ Library exported to %s\n", path)
	}

	return r.writePlain("%s", data)
}

// Sync fetches the library and writes it into the local cache.
func (r *Runner) Sync(ctx context.Context, cmd *cli.Command) error {
	r.restoreSession()

	db, err := r.database()
	if err != nil {
		return err
	}

	engine := tasks.NewLibraryEngine(
		r.client,
		repositories.NewTrackRepository(db),
		repositories.NewPlaylistRepository(db),
	)

	r.writePlain("Syncing library...\n\n")

	// Create progress channel and goroutine to handle updates
	progressCh := make(chan tasks.ProgressUpdate, 50)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for update := range progressCh {
			switch update.Phase {
			case tasks.FetchLibrary:
				r.writePlain("📥 %s\n", update.Message)
			case tasks.CacheTracks, tasks.CachePlaylists:
				r.logger.Debug(update.Message)
			case tasks.SyncDone:
				r.writePlain("\n%s\n", update.Message)
			}
		}
	}()

	result, err := engine.Sync(ctx, progressCh, tasks.SyncOpts{NumWorkers: int(cmd.Int("workers"))})
	close(progressCh)
	<-done

	if err != nil {
		return err
	}

	r.writePlain("\n")
	r.writePlainHeader("Sync Complete")
	r.writePlain("Tracks: %d/%d cached\n", result.CachedTracks, result.TotalTracks)
	r.writePlain("Playlists: %d/%d cached\n", result.CachedPlaylists, result.TotalPlaylists)

	if len(result.Errors) > 0 {
		r.writePlain("\nFailed writes: %d\n", len(result.Errors))
		for _, syncErr := range result.Errors {
			r.writePlain("  - %s %s: %v\n", syncErr.Kind, syncErr.ID, syncErr.Err)
		}
	}
	return nil
}
