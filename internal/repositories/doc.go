// Package repositories implements SQLite persistence for the local cache.
//
// Key implementations:
//   - [AccountRepository] : cached session state per email (user id, token, expiry)
//   - [CredentialRepository] : the save/retrieve/delete password capability used by the auth commands
//   - [PlaylistRepository] / [TrackRepository] : library snapshot written by the sync task
//
// Repositories with sequence columns use [NextSequence] for human-readable
// ordering independent of UUIDs, and soft-delete rows via deleted_at.
package repositories
