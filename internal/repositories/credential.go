package repositories

import (
	"database/sql"
	"fmt"

	"github.com/desertthunder/latke/internal/models"
	"github.com/desertthunder/latke/internal/shared"
)

// CredentialStore is the save/retrieve/delete password capability consumed by the auth commands.
//
// The engine never touches it; callers decide whether to persist a password at all.
type CredentialStore interface {
	Save(service, email, password string) error
	Get(service, email string) (string, error)
	Delete(service, email string) error
}

// CredentialRepository implements [CredentialStore] on SQLite.
//
// Entries are plain rows keyed by service + email. The database file carries
// the user's own credentials on the user's own machine, mirroring what a
// desktop keychain entry would hold.
type CredentialRepository struct {
	db *sql.DB
}

// NewCredentialRepository creates a new [CredentialRepository] with the given database connection
func NewCredentialRepository(db *sql.DB) *CredentialRepository {
	return &CredentialRepository{db: db}
}

// Save inserts or replaces the password for service + email.
func (r *CredentialRepository) Save(service, email, password string) error {
	cred := models.NewCredential(service, email, password)
	if err := cred.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	query := `
		INSERT INTO credentials (id, service, email, password, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (service, email) DO UPDATE SET password = excluded.password, updated_at = excluded.updated_at
	`
	_, err := r.db.Exec(query, shared.GenerateID(), cred.Service(), cred.Email(), cred.Password(), cred.CreatedAt(), cred.UpdatedAt())
	if err != nil {
		return fmt.Errorf("failed to save credential: %w", err)
	}

	return nil
}

// Get retrieves the saved password for service + email.
func (r *CredentialRepository) Get(service, email string) (string, error) {
	var password string
	err := r.db.QueryRow("SELECT password FROM credentials WHERE service = ? AND email = ?", service, email).Scan(&password)
	if err == sql.ErrNoRows {
		return "", fmt.Errorf("%w: no saved password for %s", shared.ErrMissingCredentials, email)
	}
	if err != nil {
		return "", fmt.Errorf("failed to query credential: %w", err)
	}

	return password, nil
}

// Delete removes the saved password for service + email.
func (r *CredentialRepository) Delete(service, email string) error {
	result, err := r.db.Exec("DELETE FROM credentials WHERE service = ? AND email = ?", service, email)
	if err != nil {
		return fmt.Errorf("failed to delete credential: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: no saved password for %s", shared.ErrMissingCredentials, email)
	}

	return nil
}

var _ CredentialStore = (*CredentialRepository)(nil)
