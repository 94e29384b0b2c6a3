// Package models defines the persistent entities of the local cache.
//
// [Account] is the cached session (user id, token, expiry) for an email,
// [Credential] a saved password entry, and [CachedTrack]/[CachedPlaylist]
// the library snapshot written by the sync task. All entities implement
// [Model] and are persisted through a [Repository].
package models
