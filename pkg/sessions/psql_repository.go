package sessions

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresRepository implements the Repository interface using PostgreSQL.
//
// Expected schema:
//
//	CREATE TABLE sessions (
//	    id         UUID PRIMARY KEY DEFAULT gen_random_uuid(),
//	    user_id    TEXT NOT NULL,
//	    metadata   TEXT NOT NULL DEFAULT '',
//	    expires_at TIMESTAMPTZ NOT NULL,
//	    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
//	);
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new PostgreSQL session repository
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{
		pool: pool,
	}
}

// Create implements Repository.Create
func (r *PostgresRepository) Create(ctx context.Context, req CreateSessionRequest) (*Session, error) {
	query := `
		INSERT INTO sessions (user_id, metadata, expires_at)
		VALUES ($1, $2, $3)
		RETURNING id, user_id, metadata, expires_at, created_at
	`

	session := &Session{}
	err := r.pool.QueryRow(ctx, query,
		req.UserID,
		req.Metadata,
		req.ExpiresAt,
	).Scan(
		&session.ID,
		&session.UserID,
		&session.Metadata,
		&session.ExpiresAt,
		&session.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	return session, nil
}

// Get implements Repository.Get
func (r *PostgresRepository) Get(ctx context.Context, id uuid.UUID, userID string) (*Session, error) {
	query := `
		SELECT id, user_id, metadata, expires_at, created_at
		FROM sessions
		WHERE id = $1 AND user_id = $2
	`

	session := &Session{}
	err := r.pool.QueryRow(ctx, query, id, userID).Scan(
		&session.ID,
		&session.UserID,
		&session.Metadata,
		&session.ExpiresAt,
		&session.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	return session, nil
}

// Delete implements Repository.Delete
func (r *PostgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM sessions WHERE id = $1`

	_, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// DeleteByUserID implements Repository.DeleteByUserID
func (r *PostgresRepository) DeleteByUserID(ctx context.Context, userID string) error {
	query := `DELETE FROM sessions WHERE user_id = $1`

	_, err := r.pool.Exec(ctx, query, userID)
	if err != nil {
		return fmt.Errorf("failed to delete sessions for user: %w", err)
	}
	return nil
}

// DeleteExpired implements Repository.DeleteExpired
func (r *PostgresRepository) DeleteExpired(ctx context.Context) error {
	query := `DELETE FROM sessions WHERE expires_at <= NOW()`

	_, err := r.pool.Exec(ctx, query)
	if err != nil {
		return fmt.Errorf("failed to delete expired sessions: %w", err)
	}
	return nil
}
