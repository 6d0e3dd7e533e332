package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// User represents a row in the users table, including the password hash.
// Callers expose types.User instead; the hash never leaves this package
// except through Login verification.
type User struct {
	ID             uuid.UUID
	Email          string
	PasswordHash   string
	Profile        []byte // JSONB, nil when never saved
	CachedTimeline []byte
	CachedTaxGuide []byte
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

const userColumns = `id, email, password_hash, profile, cached_timeline, cached_tax_guide, created_at, updated_at`

func scanUser(row pgx.Row) (*User, error) {
	var u User
	err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Profile,
		&u.CachedTimeline, &u.CachedTaxGuide, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

// CheckEmailExists reports whether an account with the email already exists.
func (db *DB) CheckEmailExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := db.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`, email,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check email existence: %w", err)
	}
	return exists, nil
}

// CreateUser inserts a new account and returns its ID.
func (db *DB) CreateUser(ctx context.Context, email, passwordHash string) (uuid.UUID, error) {
	var id uuid.UUID
	err := db.pool.QueryRow(ctx,
		`INSERT INTO users (email, password_hash) VALUES ($1, $2) RETURNING id`,
		email, passwordHash,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to create user: %w", err)
	}
	return id, nil
}

// GetUser retrieves a user by ID. Returns nil without error when not found.
func (db *DB) GetUser(ctx context.Context, id uuid.UUID) (*User, error) {
	u, err := scanUser(db.pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`, id))
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return u, nil
}

// GetUserByEmail retrieves a user by email. Returns nil without error when
// not found.
func (db *DB) GetUserByEmail(ctx context.Context, email string) (*User, error) {
	u, err := scanUser(db.pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = $1`, email))
	if err != nil {
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}
	return u, nil
}

// UpdatePassword replaces the stored password hash.
func (db *DB) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	_, err := db.pool.Exec(ctx,
		`UPDATE users SET password_hash = $1, updated_at = NOW() WHERE id = $2`,
		passwordHash, id,
	)
	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	return nil
}

// SaveProfile stores the immigration profile on the account as JSONB.
func (db *DB) SaveProfile(ctx context.Context, id uuid.UUID, profile any) error {
	data, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("failed to marshal profile: %w", err)
	}
	_, err = db.pool.Exec(ctx,
		`UPDATE users SET profile = $1, updated_at = NOW() WHERE id = $2`,
		data, id,
	)
	if err != nil {
		return fmt.Errorf("failed to save profile: %w", err)
	}
	return nil
}

// CacheTimeline stores the most recent timeline response on the account so
// the client can restore it without regenerating.
func (db *DB) CacheTimeline(ctx context.Context, id uuid.UUID, timeline json.RawMessage) error {
	_, err := db.pool.Exec(ctx,
		`UPDATE users SET cached_timeline = $1, updated_at = NOW() WHERE id = $2`,
		[]byte(timeline), id,
	)
	if err != nil {
		return fmt.Errorf("failed to cache timeline: %w", err)
	}
	return nil
}

// CacheTaxGuide stores the most recent tax guide on the account.
func (db *DB) CacheTaxGuide(ctx context.Context, id uuid.UUID, guide json.RawMessage) error {
	_, err := db.pool.Exec(ctx,
		`UPDATE users SET cached_tax_guide = $1, updated_at = NOW() WHERE id = $2`,
		[]byte(guide), id,
	)
	if err != nil {
		return fmt.Errorf("failed to cache tax guide: %w", err)
	}
	return nil
}
