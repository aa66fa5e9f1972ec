package sessions

import (
	"time"

	"github.com/google/uuid"
)

// Session represents an active authentication session
type Session struct {
	ID        uuid.UUID `json:"id"`
	UserID    string    `json:"user_id"`
	Metadata  string    `json:"metadata,omitempty"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateSessionRequest represents the request to create a new session
type CreateSessionRequest struct {
	UserID    string    `json:"user_id"`
	Metadata  string    `json:"metadata,omitempty"`
	ExpiresAt time.Time `json:"expires_at"`
}
