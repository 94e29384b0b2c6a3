// Package tasks orchestrates library synchronization with real-time progress reporting.
//
// # Core Operation
//
// The [SyncEngine] interface defines the sync operation:
//
//   - [SyncEngine.Sync] : Full library sync into the local cache
//     Fetches the library in one request, then fans track and playlist
//     writes out to a worker pool. A rate limiter paces job dispatch so
//     large libraries do not saturate the cache database.
//
// # Progress Reporting
//
// All operations use non-blocking channels for progress updates.
//
// The [ProgressUpdate] struct contains phase, step counters, and messages for
// CLI or UI rendering. Updates use select with default to prevent blocking.
//
// # Implementation
//
// [LibraryEngine] implements [SyncEngine] with dependencies on:
//   - [LibraryFetcher] : the API client (api.Client)
//   - [TrackCache] and [PlaylistCache] : persistence (repositories.TrackRepository, repositories.PlaylistRepository)
package tasks
