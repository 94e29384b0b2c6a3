package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/desertthunder/latke/internal/models"
	"github.com/desertthunder/latke/internal/shared"
)

// PlaylistRepository caches library playlists keyed by their remote id.
type PlaylistRepository struct {
	db *sql.DB
}

// NewPlaylistRepository creates a new [PlaylistRepository] with the given database connection
func NewPlaylistRepository(db *sql.DB) *PlaylistRepository {
	return &PlaylistRepository{db: db}
}

// Upsert inserts the playlist or refreshes the cached row for the same remote id.
func (r *PlaylistRepository) Upsert(playlist *models.CachedPlaylist) error {
	if err := playlist.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	existing, err := r.GetByRemoteID(playlist.RemoteID())
	if err == nil && existing != nil {
		query := `
			UPDATE playlists SET name = ?, description = ?, track_count = ?, updated_at = ?, deleted_at = NULL
			WHERE remote_id = ?
		`
		if _, err := r.db.Exec(query, playlist.Name(), playlist.Description(), playlist.TrackCount(), time.Now().UTC(), playlist.RemoteID()); err != nil {
			return fmt.Errorf("failed to update playlist: %w", err)
		}
		return nil
	}

	sequence, err := NextSequence(r.db, "playlists")
	if err != nil {
		return fmt.Errorf("failed to generate sequence: %w", err)
	}

	id := shared.GenerateID()
	playlist.SetID(id)

	query := `
		INSERT INTO playlists (id, sequence, remote_id, name, description, track_count, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err = r.db.Exec(query, id, sequence, playlist.RemoteID(), playlist.Name(), playlist.Description(), playlist.TrackCount(), playlist.CreatedAt(), playlist.UpdatedAt())
	if err != nil {
		return fmt.Errorf("failed to insert playlist: %w", err)
	}

	return nil
}

// GetByRemoteID retrieves a cached playlist by its remote id, excluding soft-deleted rows.
func (r *PlaylistRepository) GetByRemoteID(remoteID string) (*models.CachedPlaylist, error) {
	query := `
		SELECT id, sequence, remote_id, name, description, track_count, created_at, updated_at
		FROM playlists
		WHERE remote_id = ? AND deleted_at IS NULL
	`
	return scanPlaylist(r.db.QueryRow(query, remoteID))
}

// List retrieves all cached playlists ordered by sequence.
func (r *PlaylistRepository) List() ([]*models.CachedPlaylist, error) {
	query := `
		SELECT id, sequence, remote_id, name, description, track_count, created_at, updated_at
		FROM playlists
		WHERE deleted_at IS NULL
		ORDER BY sequence
	`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query playlists: %w", err)
	}
	defer rows.Close()

	var playlists []*models.CachedPlaylist
	for rows.Next() {
		playlist, err := scanPlaylist(rows)
		if err != nil {
			return nil, err
		}
		playlists = append(playlists, playlist)
	}

	return playlists, rows.Err()
}

// scanner abstracts sql.Row and sql.Rows for shared scan logic.
type scanner interface {
	Scan(dest ...any) error
}

func scanPlaylist(row scanner) (*models.CachedPlaylist, error) {
	var (
		id          string
		sequence    int
		remoteID    string
		name        string
		description sql.NullString
		trackCount  int
		createdAt   time.Time
		updatedAt   time.Time
	)

	err := row.Scan(&id, &sequence, &remoteID, &name, &description, &trackCount, &createdAt, &updatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("playlist not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan playlist: %w", err)
	}

	playlist := models.NewCachedPlaylist(sequence, remoteID, name, description.String, trackCount)
	playlist.SetID(id)
	playlist.SetCreatedAt(createdAt)
	playlist.SetUpdatedAt(updatedAt)

	return playlist, nil
}
