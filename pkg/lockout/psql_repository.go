package lockout

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gatekit/authcore/pkg/devicecookie"
)

// PostgresRepository implements Repository using PostgreSQL.
//
// Expected schema:
//
//	CREATE TABLE user_lockout (
//	    key        TEXT PRIMARY KEY,
//	    expires_at TIMESTAMPTZ NOT NULL
//	);
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new PostgreSQL lockout repository
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{
		pool: pool,
	}
}

// Contains implements Repository.Contains
func (r *PostgresRepository) Contains(ctx context.Context, dc devicecookie.DeviceCookie) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM user_lockout
			WHERE key = $1 AND expires_at > NOW()
		)
	`

	var exists bool
	err := r.pool.QueryRow(ctx, query, makeKey(dc)).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check lockout record: %w", err)
	}
	return exists, nil
}

// Insert implements Repository.Insert
func (r *PostgresRepository) Insert(ctx context.Context, dc devicecookie.DeviceCookie, ttl time.Duration) error {
	query := `
		INSERT INTO user_lockout (key, expires_at)
		VALUES ($1, NOW() + $2)
		ON CONFLICT (key) DO UPDATE SET expires_at = EXCLUDED.expires_at
	`

	_, err := r.pool.Exec(ctx, query, makeKey(dc), ttl)
	if err != nil {
		return fmt.Errorf("failed to insert lockout record: %w", err)
	}
	return nil
}

// RemoveExpired implements Repository.RemoveExpired
func (r *PostgresRepository) RemoveExpired(ctx context.Context) error {
	query := `DELETE FROM user_lockout WHERE expires_at <= NOW()`

	_, err := r.pool.Exec(ctx, query)
	if err != nil {
		return fmt.Errorf("failed to remove expired lockout records: %w", err)
	}
	return nil
}
