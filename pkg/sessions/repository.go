package sessions

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// ErrSessionNotFound is returned when no session matches the given id and
// user id pair
var ErrSessionNotFound = errors.New("session not found")

// Repository defines the interface for session data access
type Repository interface {
	// Create a new session
	Create(ctx context.Context, req CreateSessionRequest) (*Session, error)

	// Get a session by id, scoped to the owning user.
	// A mismatched user id reads as not found.
	Get(ctx context.Context, id uuid.UUID, userID string) (*Session, error)

	// Delete a session by id
	Delete(ctx context.Context, id uuid.UUID) error

	// Delete all sessions for a user (bulk revocation)
	DeleteByUserID(ctx context.Context, userID string) error

	// Cleanup expired sessions (for maintenance)
	DeleteExpired(ctx context.Context) error
}
