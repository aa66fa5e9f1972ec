package sessions

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Service wraps the session repository with the configured session lifetime
type Service struct {
	repository Repository
	sessionTTL time.Duration
}

// NewService creates a session service
func NewService(repository Repository, sessionTTL time.Duration) *Service {
	return &Service{
		repository: repository,
		sessionTTL: sessionTTL,
	}
}

// Create opens a new session for the user with the configured TTL
func (s *Service) Create(ctx context.Context, userID, metadata string) (*Session, error) {
	return s.repository.Create(ctx, CreateSessionRequest{
		UserID:    userID,
		Metadata:  metadata,
		ExpiresAt: time.Now().UTC().Add(s.sessionTTL),
	})
}

// Get fetches a session scoped to its owning user
func (s *Service) Get(ctx context.Context, id uuid.UUID, userID string) (*Session, error) {
	return s.repository.Get(ctx, id, userID)
}

// Delete removes a session
func (s *Service) Delete(ctx context.Context, session *Session) error {
	return s.repository.Delete(ctx, session.ID)
}

// DeleteByUserID revokes every session the user holds
func (s *Service) DeleteByUserID(ctx context.Context, userID string) error {
	return s.repository.DeleteByUserID(ctx, userID)
}

// DeleteExpired prunes expired sessions
func (s *Service) DeleteExpired(ctx context.Context) error {
	return s.repository.DeleteExpired(ctx)
}

// TTL returns the configured session lifetime
func (s *Service) TTL() time.Duration {
	return s.sessionTTL
}
