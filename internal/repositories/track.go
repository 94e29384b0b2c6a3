package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/desertthunder/latke/internal/models"
	"github.com/desertthunder/latke/internal/shared"
)

// TrackRepository caches library tracks keyed by their remote id.
type TrackRepository struct {
	db *sql.DB
}

// NewTrackRepository creates a new [TrackRepository] with the given database connection
func NewTrackRepository(db *sql.DB) *TrackRepository {
	return &TrackRepository{db: db}
}

// Upsert inserts the track or refreshes the cached row for the same remote id.
func (r *TrackRepository) Upsert(track *models.CachedTrack) error {
	if err := track.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	existing, err := r.GetByRemoteID(track.RemoteID())
	if err == nil && existing != nil {
		query := `
			UPDATE tracks SET title = ?, artist = ?, album = ?, length = ?, updated_at = ?, deleted_at = NULL
			WHERE remote_id = ?
		`
		if _, err := r.db.Exec(query, track.Title(), track.Artist(), track.Album(), track.Length(), time.Now().UTC(), track.RemoteID()); err != nil {
			return fmt.Errorf("failed to update track: %w", err)
		}
		return nil
	}

	sequence, err := NextSequence(r.db, "tracks")
	if err != nil {
		return fmt.Errorf("failed to generate sequence: %w", err)
	}

	id := shared.GenerateID()
	track.SetID(id)

	query := `
		INSERT INTO tracks (id, sequence, remote_id, title, artist, album, length, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err = r.db.Exec(query, id, sequence, track.RemoteID(), track.Title(), track.Artist(), track.Album(), track.Length(), track.CreatedAt(), track.UpdatedAt())
	if err != nil {
		return fmt.Errorf("failed to insert track: %w", err)
	}

	return nil
}

// GetByRemoteID retrieves a cached track by its remote id, excluding soft-deleted rows.
func (r *TrackRepository) GetByRemoteID(remoteID string) (*models.CachedTrack, error) {
	query := `
		SELECT id, sequence, remote_id, title, artist, album, length, created_at, updated_at
		FROM tracks
		WHERE remote_id = ? AND deleted_at IS NULL
	`
	return scanTrack(r.db.QueryRow(query, remoteID))
}

// List retrieves all cached tracks ordered by sequence.
func (r *TrackRepository) List() ([]*models.CachedTrack, error) {
	query := `
		SELECT id, sequence, remote_id, title, artist, album, length, created_at, updated_at
		FROM tracks
		WHERE deleted_at IS NULL
		ORDER BY sequence
	`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query tracks: %w", err)
	}
	defer rows.Close()

	var tracks []*models.CachedTrack
	for rows.Next() {
		track, err := scanTrack(rows)
		if err != nil {
			return nil, err
		}
		tracks = append(tracks, track)
	}

	return tracks, rows.Err()
}

// Count returns the number of cached tracks.
func (r *TrackRepository) Count() (int, error) {
	var count int
	if err := r.db.QueryRow("SELECT COUNT(*) FROM tracks WHERE deleted_at IS NULL").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count tracks: %w", err)
	}
	return count, nil
}

func scanTrack(row scanner) (*models.CachedTrack, error) {
	var (
		id        string
		sequence  int
		remoteID  string
		title     string
		artist    sql.NullString
		album     sql.NullString
		length    int
		createdAt time.Time
		updatedAt time.Time
	)

	err := row.Scan(&id, &sequence, &remoteID, &title, &artist, &album, &length, &createdAt, &updatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("track not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan track: %w", err)
	}

	track := models.NewCachedTrack(sequence, remoteID, title, artist.String, album.String, length)
	track.SetID(id)
	track.SetCreatedAt(createdAt)
	track.SetUpdatedAt(updatedAt)

	return track, nil
}
