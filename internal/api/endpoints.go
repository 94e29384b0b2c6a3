package api

import (
	"context"
	"net/url"
	"strings"
)

// Endpoint methods are thin, uniform wrappers: build the parameter set for one
// mode, delegate to the executor, surface its error verbatim. No endpoint does
// retry or token work of its own.

// Library fetches the user's full library (mode=getlibrary).
func (c *Client) Library(ctx context.Context) (*Library, error) {
	params := url.Values{}
	params.Set("mode", modeGetLibrary)

	var resp libraryResponse
	if err := c.executeAuthed(ctx, params, &resp); err != nil {
		return nil, err
	}
	if err := resp.Err(); err != nil {
		return nil, err
	}

	return &resp.Library, nil
}

// CreatePlaylist creates a new playlist (mode=createplaylist).
func (c *Client) CreatePlaylist(ctx context.Context, name, description string) (*Playlist, error) {
	params := url.Values{}
	params.Set("mode", modeCreatePlaylist)
	params.Set("name", name)
	params.Set("description", description)

	var resp playlistResponse
	if err := c.executeAuthed(ctx, params, &resp); err != nil {
		return nil, err
	}
	if err := resp.Err(); err != nil {
		return nil, err
	}

	return &resp.Playlist, nil
}

// RenamePlaylist changes a playlist's name (mode=updateplaylist).
func (c *Client) RenamePlaylist(ctx context.Context, playlistID, name string) error {
	params := url.Values{}
	params.Set("mode", modeUpdatePlaylist)
	params.Set("playlist", playlistID)
	params.Set("name", name)

	var resp statusResponse
	if err := c.executeAuthed(ctx, params, &resp); err != nil {
		return err
	}
	return resp.Err()
}

// DeletePlaylist removes a playlist (mode=deleteplaylist).
func (c *Client) DeletePlaylist(ctx context.Context, playlistID string) error {
	params := url.Values{}
	params.Set("mode", modeDeletePlaylist)
	params.Set("playlist", playlistID)

	var resp statusResponse
	if err := c.executeAuthed(ctx, params, &resp); err != nil {
		return err
	}
	return resp.Err()
}

// AddTracks appends tracks to a playlist (mode=appendplaylist).
func (c *Client) AddTracks(ctx context.Context, playlistID string, trackIDs []string) error {
	params := url.Values{}
	params.Set("mode", modeAppendPlaylist)
	params.Set("playlist", playlistID)
	params.Set("tracks", strings.Join(trackIDs, ","))

	var resp statusResponse
	if err := c.executeAuthed(ctx, params, &resp); err != nil {
		return err
	}
	return resp.Err()
}

// Search looks up tracks by free-text query (mode=search).
func (c *Client) Search(ctx context.Context, query string) ([]Track, error) {
	params := url.Values{}
	params.Set("mode", modeSearch)
	params.Set("query", query)

	var resp searchResponse
	if err := c.executeAuthed(ctx, params, &resp); err != nil {
		return nil, err
	}
	if err := resp.Err(); err != nil {
		return nil, err
	}

	return resp.Tracks, nil
}

// Play starts server-side playback of a track (mode=play).
func (c *Client) Play(ctx context.Context, trackID string) error {
	params := url.Values{}
	params.Set("mode", modePlay)
	params.Set("track", trackID)

	var resp statusResponse
	if err := c.executeAuthed(ctx, params, &resp); err != nil {
		return err
	}
	return resp.Err()
}

// Pause pauses server-side playback (mode=pause).
func (c *Client) Pause(ctx context.Context) error {
	params := url.Values{}
	params.Set("mode", modePause)

	var resp statusResponse
	if err := c.executeAuthed(ctx, params, &resp); err != nil {
		return err
	}
	return resp.Err()
}
