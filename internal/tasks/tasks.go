// package tasks implements library synchronization between the streaming API and the local cache.
//
// The core abstraction is SyncEngine, which orchestrates library fetches and cache writes.
// Operations emit progress updates via channels for non-blocking status reporting to CLI/UI layers.
package tasks

import (
	"context"
	"fmt"
	"sync"

	"github.com/desertthunder/latke/internal/api"
	"github.com/desertthunder/latke/internal/models"
	"golang.org/x/time/rate"
)

// SyncError records a single cache write that failed during a sync.
type SyncError struct {
	Kind string // "track" or "playlist"
	ID   string // Remote id of the failed item
	Err  error
}

// SyncResult contains all data from a full library sync.
type SyncResult struct {
	TotalTracks     int         // Tracks reported by the server
	CachedTracks    int         // Tracks written to the cache
	TotalPlaylists  int         // Playlists reported by the server
	CachedPlaylists int         // Playlists written to the cache
	Errors          []SyncError // Individual write failures
}

// SyncOpts contains configuration for library syncs.
type SyncOpts struct {
	NumWorkers int     // Concurrent cache writers (default: 4)
	WriteRate  float64 // Cache writes per second (default: 50)
}

// LibraryFetcher is the single API capability the engine needs.
//
// api.Client satisfies it; tests substitute fakes.
type LibraryFetcher interface {
	Library(ctx context.Context) (*api.Library, error)
}

// TrackCache persists tracks fetched during a sync.
type TrackCache interface {
	Upsert(track *models.CachedTrack) error
}

// PlaylistCache persists playlists fetched during a sync.
type PlaylistCache interface {
	Upsert(playlist *models.CachedPlaylist) error
}

// SyncEngine defines operations for syncing the remote library into the local cache.
type SyncEngine interface {
	// Sync fetches the library and writes every track and playlist to the cache.
	Sync(ctx context.Context, progress chan<- ProgressUpdate, opts SyncOpts) (*SyncResult, error)
}

// LibraryEngine implements SyncEngine on top of the API client and the cache repositories.
type LibraryEngine struct {
	fetcher   LibraryFetcher
	tracks    TrackCache
	playlists PlaylistCache
}

// NewLibraryEngine creates a new LibraryEngine with the provided dependencies.
func NewLibraryEngine(fetcher LibraryFetcher, tracks TrackCache, playlists PlaylistCache) *LibraryEngine {
	return &LibraryEngine{
		fetcher:   fetcher,
		tracks:    tracks,
		playlists: playlists,
	}
}

// cacheJob is a single pending cache write.
type cacheJob struct {
	track    *api.Track
	playlist *api.Playlist
}

// cacheResult reports the outcome of one cache write.
type cacheResult struct {
	kind string
	id   string
	name string
	err  error
}

// sendProgress sends a progress update through the channel without blocking.
// Uses select with default to ensure progress reporting never blocks execution.
func (e *LibraryEngine) sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
		// Sent successfully
	default:
		// Channel full or closed, skip this update
	}
}

// Sync fetches the full library and fans the cache writes out to a worker pool.
//
// Job dispatch is paced with a rate limiter so a large library does not
// saturate the cache database in one burst. Individual write failures are
// collected in the result rather than aborting the sync.
func (e *LibraryEngine) Sync(ctx context.Context, progress chan<- ProgressUpdate, opts SyncOpts) (*SyncResult, error) {
	if e.fetcher == nil {
		return nil, fmt.Errorf("sync engine: fetcher not configured")
	}
	if e.tracks == nil || e.playlists == nil {
		return nil, fmt.Errorf("sync engine: cache not configured")
	}

	if opts.NumWorkers <= 0 {
		opts.NumWorkers = 4
	}
	if opts.NumWorkers > 10 {
		opts.NumWorkers = 10
	}
	if opts.WriteRate <= 0 {
		opts.WriteRate = 50.0
	}

	e.sendProgress(progress, fetchLibraryUpdate())

	library, err := e.fetcher.Library(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch library: %w", err)
	}

	result := &SyncResult{
		TotalTracks:    len(library.Tracks),
		TotalPlaylists: len(library.Playlists),
	}

	totalJobs := len(library.Tracks) + len(library.Playlists)
	if totalJobs == 0 {
		e.sendProgress(progress, syncDoneUpdate(0, 0))
		return result, nil
	}

	limiter := rate.NewLimiter(rate.Limit(opts.WriteRate), 1)

	jobs := make(chan cacheJob, totalJobs)
	results := make(chan cacheResult, totalJobs)

	var wg sync.WaitGroup
	for i := 0; i < opts.NumWorkers; i++ {
		wg.Add(1)
		go e.cacheWorker(ctx, &wg, jobs, results)
	}

	go func() {
		defer close(jobs)
		for i := range library.Tracks {
			if err := limiter.Wait(ctx); err != nil {
				return
			}
			jobs <- cacheJob{track: &library.Tracks[i]}
		}
		for i := range library.Playlists {
			if err := limiter.Wait(ctx); err != nil {
				return
			}
			jobs <- cacheJob{playlist: &library.Playlists[i]}
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	trackStep, playlistStep := 0, 0
	for res := range results {
		switch res.kind {
		case "track":
			trackStep++
			if res.err != nil {
				result.Errors = append(result.Errors, SyncError{Kind: res.kind, ID: res.id, Err: res.err})
				e.sendProgress(progress, cacheFailedUpdate(CacheTracks, trackStep, result.TotalTracks, res.name, res.err))
				continue
			}
			result.CachedTracks++
			e.sendProgress(progress, cacheTrackUpdate(trackStep, result.TotalTracks, res.name))
		case "playlist":
			playlistStep++
			if res.err != nil {
				result.Errors = append(result.Errors, SyncError{Kind: res.kind, ID: res.id, Err: res.err})
				e.sendProgress(progress, cacheFailedUpdate(CachePlaylists, playlistStep, result.TotalPlaylists, res.name, res.err))
				continue
			}
			result.CachedPlaylists++
			e.sendProgress(progress, cachePlaylistUpdate(playlistStep, result.TotalPlaylists, res.name))
		}
	}

	if err := ctx.Err(); err != nil {
		return result, err
	}

	e.sendProgress(progress, syncDoneUpdate(result.CachedTracks, result.CachedPlaylists))
	return result, nil
}

// cacheWorker is a worker goroutine that writes library items from the jobs channel.
func (e *LibraryEngine) cacheWorker(
	ctx context.Context,
	wg *sync.WaitGroup,
	jobs <-chan cacheJob,
	results chan<- cacheResult,
) {
	defer wg.Done()

	for job := range jobs {
		select {
		case <-ctx.Done():
			return
		default:
		}

		if job.track != nil {
			t := job.track
			err := e.tracks.Upsert(models.NewCachedTrack(0, t.ID, t.Title, t.Artist, t.Album, t.Length))
			results <- cacheResult{kind: "track", id: t.ID, name: t.Title, err: err}
			continue
		}

		p := job.playlist
		err := e.playlists.Upsert(models.NewCachedPlaylist(0, p.ID, p.Name, p.Description, len(p.TrackIDs)))
		results <- cacheResult{kind: "playlist", id: p.ID, name: p.Name, err: err}
	}
}
