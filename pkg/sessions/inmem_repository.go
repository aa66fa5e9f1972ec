package sessions

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// InMemRepository implements Repository with an in-memory map. Suitable for
// tests and single-instance deployments without a database.
type InMemRepository struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]Session
}

// NewInMemRepository creates an empty in-memory session repository
func NewInMemRepository() *InMemRepository {
	return &InMemRepository{
		sessions: make(map[uuid.UUID]Session),
	}
}

// Create implements Repository.Create
func (r *InMemRepository) Create(ctx context.Context, req CreateSessionRequest) (*Session, error) {
	session := Session{
		ID:        uuid.New(),
		UserID:    req.UserID,
		Metadata:  req.Metadata,
		ExpiresAt: req.ExpiresAt,
		CreatedAt: time.Now().UTC(),
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[session.ID] = session
	return &session, nil
}

// Get implements Repository.Get
func (r *InMemRepository) Get(ctx context.Context, id uuid.UUID, userID string) (*Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	session, ok := r.sessions[id]
	if !ok || session.UserID != userID {
		return nil, ErrSessionNotFound
	}
	return &session, nil
}

// Delete implements Repository.Delete
func (r *InMemRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, id)
	return nil
}

// DeleteByUserID implements Repository.DeleteByUserID
func (r *InMemRepository) DeleteByUserID(ctx context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, session := range r.sessions {
		if session.UserID == userID {
			delete(r.sessions, id)
		}
	}
	return nil
}

// DeleteExpired implements Repository.DeleteExpired
func (r *InMemRepository) DeleteExpired(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	for id, session := range r.sessions {
		if now.After(session.ExpiresAt) {
			delete(r.sessions, id)
		}
	}
	return nil
}
