package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/desertthunder/latke/internal/models"
	"github.com/desertthunder/latke/internal/shared"
)

// AccountRepository persists cached session state per email.
type AccountRepository struct {
	db *sql.DB
}

// NewAccountRepository creates a new [AccountRepository] with the given database connection
func NewAccountRepository(db *sql.DB) *AccountRepository {
	return &AccountRepository{db: db}
}

// Save inserts the account, or replaces the token/expiry/user id of an existing row for the same email.
func (r *AccountRepository) Save(account *models.Account) error {
	if err := account.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	existing, err := r.GetByEmail(account.Email())
	if err == nil && existing != nil {
		account.SetID(existing.ID())
		account.Touch()

		query := `
			UPDATE accounts SET user_id = ?, token = ?, token_expires_at = ?, updated_at = ?, deleted_at = NULL
			WHERE id = ?
		`
		if _, err := r.db.Exec(query, account.UserID(), account.Token(), expiryValue(account.TokenExpiry()), account.UpdatedAt(), account.ID()); err != nil {
			return fmt.Errorf("failed to update account: %w", err)
		}
		return nil
	}

	sequence, err := NextSequence(r.db, "accounts")
	if err != nil {
		return fmt.Errorf("failed to generate sequence: %w", err)
	}

	id := shared.GenerateID()
	account.SetID(id)

	query := `
		INSERT INTO accounts (id, sequence, email, user_id, token, token_expires_at, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err = r.db.Exec(query, id, sequence, account.Email(), account.UserID(), account.Token(), expiryValue(account.TokenExpiry()), account.CreatedAt(), account.UpdatedAt())
	if err != nil {
		return fmt.Errorf("failed to insert account: %w", err)
	}

	return nil
}

// GetByEmail retrieves an account by email, excluding soft-deleted rows.
func (r *AccountRepository) GetByEmail(email string) (*models.Account, error) {
	query := `
		SELECT id, sequence, email, user_id, token, token_expires_at, created_at, updated_at
		FROM accounts
		WHERE email = ? AND deleted_at IS NULL
	`

	var (
		id        string
		sequence  int
		gotEmail  string
		userID    string
		token     string
		expiresAt sql.NullTime
		createdAt time.Time
		updatedAt time.Time
	)

	err := r.db.QueryRow(query, email).Scan(&id, &sequence, &gotEmail, &userID, &token, &expiresAt, &createdAt, &updatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("account not found: %s", email)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query account: %w", err)
	}

	var expiry *time.Time
	if expiresAt.Valid {
		expiry = &expiresAt.Time
	}

	account := models.NewAccount(sequence, gotEmail, userID, token, expiry)
	account.SetID(id)
	account.SetCreatedAt(createdAt)
	account.SetUpdatedAt(updatedAt)

	return account, nil
}

// Delete soft-deletes the account row for the given email.
func (r *AccountRepository) Delete(email string) error {
	result, err := r.db.Exec("UPDATE accounts SET deleted_at = ? WHERE email = ? AND deleted_at IS NULL", time.Now().UTC(), email)
	if err != nil {
		return fmt.Errorf("failed to delete account: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("account not found: %s", email)
	}

	return nil
}

// expiryValue converts an optional expiry to its database representation.
func expiryValue(t *time.Time) any {
	if t == nil {
		return nil
	}
	return *t
}
