package csrf

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/gatekit/authcore/pkg/tokencodec"
)

// Purpose is the audience tag identifying CSRF tokens
const Purpose = "csrf-protection"

// ErrTokenInvalid is returned when a CSRF token is malformed, expired or
// carries the wrong purpose
var ErrTokenInvalid = errors.New("invalid CSRF token")

// Token is a parsed CSRF token
type Token struct {
	// UserID the token was issued for
	UserID string `json:"user_id"`

	// Nonce is a unique identifier for the token
	Nonce string `json:"nonce"`

	// ExpiresAt is the absolute expiry; expiry is the only termination,
	// there is no server-side revocation
	ExpiresAt time.Time `json:"expires_at"`
}

// Manager issues and validates short-lived user-bound anti-forgery tokens
type Manager struct {
	codec    *tokencodec.Codec
	tokenTTL time.Duration
}

// NewManager creates a CSRF token manager with the given secret and lifetime
func NewManager(secretKey string, tokenTTL time.Duration) *Manager {
	return &Manager{
		codec:    tokencodec.NewCodec(secretKey, Purpose),
		tokenTTL: tokenTTL,
	}
}

// Create signs a new CSRF token for the user using the configured lifetime
func (m *Manager) Create(userID string) (string, time.Time, error) {
	nonce := make([]byte, 32)
	if _, err := rand.Read(nonce); err != nil {
		return "", time.Time{}, fmt.Errorf("failed to generate CSRF token nonce: %w", err)
	}

	expiresAt := time.Now().UTC().Truncate(time.Second).Add(m.tokenTTL)
	tokenStr, err := m.codec.Sign(tokencodec.Claims{
		Subject:   userID,
		Nonce:     hex.EncodeToString(nonce),
		ExpiresAt: expiresAt,
	})
	if err != nil {
		return "", time.Time{}, err
	}
	return tokenStr, expiresAt, nil
}

// Parse verifies a CSRF token and returns its claims
func (m *Manager) Parse(tokenStr string) (Token, error) {
	claims, err := m.codec.Verify(tokenStr)
	if err != nil {
		return Token{}, ErrTokenInvalid
	}

	return Token{
		UserID:    claims.Subject,
		Nonce:     claims.Nonce,
		ExpiresAt: claims.ExpiresAt,
	}, nil
}
