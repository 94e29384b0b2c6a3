package tasks

import "fmt"

// ProgressUpdate represents a progress event during a long-running operation.
//
// Used to send real-time updates to the CLI or UI layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Current step number within phase
	Total   int    // Total steps in this phase
	Message string // Human-readable message for display
}

// Operation phase enumeration
type Phase int

const (
	FetchLibrary Phase = iota
	CacheTracks
	CachePlaylists
	SyncDone
)

func (p Phase) String() string {
	switch p {
	case FetchLibrary:
		return "fetch_library"
	case CacheTracks:
		return "cache_tracks"
	case CachePlaylists:
		return "cache_playlists"
	case SyncDone:
		return "sync_done"
	default:
		return ""
	}
}

func fetchLibraryUpdate() ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchLibrary,
		Step:    1,
		Total:   1,
		Message: "Fetching library...",
	}
}

func cacheTrackUpdate(step, total int, title string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   CacheTracks,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] Caching track: %s", step, total, title),
	}
}

func cachePlaylistUpdate(step, total int, name string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   CachePlaylists,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] Caching playlist: %s", step, total, name),
	}
}

func cacheFailedUpdate(phase Phase, step, total int, name string, err error) ProgressUpdate {
	return ProgressUpdate{
		Phase:   phase,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✗ %s: %v", step, total, name, err),
	}
}

func syncDoneUpdate(tracks, playlists int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   SyncDone,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Synced %d tracks and %d playlists", tracks, playlists),
	}
}
