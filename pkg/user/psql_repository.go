package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresRepository implements Repository using PostgreSQL.
//
// Expected schema (owned by the credential store, read-only here):
//
//	CREATE TABLE users (
//	    id            UUID PRIMARY KEY,
//	    name          TEXT UNIQUE NOT NULL,
//	    display_name  TEXT NOT NULL,
//	    password_hash TEXT NOT NULL,
//	    email         TEXT NOT NULL,
//	    is_admin      BOOLEAN NOT NULL DEFAULT FALSE,
//	    is_confirmed  BOOLEAN NOT NULL DEFAULT FALSE,
//	    is_disabled   BOOLEAN NOT NULL DEFAULT FALSE,
//	    erased_at     TIMESTAMPTZ
//	);
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new PostgreSQL user repository
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{
		pool: pool,
	}
}

// GetByName implements Repository.GetByName
func (r *PostgresRepository) GetByName(ctx context.Context, name string) (User, error) {
	query := `
		SELECT id, name, display_name, password_hash, email,
			is_admin, is_confirmed, is_disabled, erased_at
		FROM users
		WHERE name = $1
	`

	u := User{}
	var erasedAt sql.NullTime

	err := r.pool.QueryRow(ctx, query, name).Scan(
		&u.ID,
		&u.Name,
		&u.DisplayName,
		&u.PasswordHash,
		&u.Email,
		&u.IsAdmin,
		&u.IsConfirmed,
		&u.IsDisabled,
		&erasedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return User{}, ErrUserNotFound
		}
		return User{}, fmt.Errorf("failed to get user by name: %w", err)
	}

	if erasedAt.Valid {
		u.ErasedAt = &erasedAt.Time
	}
	return u, nil
}
