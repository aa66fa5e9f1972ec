package devicecookie

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/gatekit/authcore/pkg/tokencodec"
)

// Purpose is the audience tag identifying device cookies
const Purpose = "brute-force-protection"

// UntrustedNonce is the sentinel nonce assigned to clients presenting no
// device cookie. All cookie-less attempts against a username share one
// counter bucket, so dropping the cookie never yields a fresh identity.
const UntrustedNonce = "untrusted"

// ErrInvalidDeviceCookie is returned when a presented device cookie is
// malformed or forged. Callers must reject the attempt outright rather than
// fall back to the untrusted identity.
var ErrInvalidDeviceCookie = errors.New("invalid device cookie")

// DeviceCookie identifies a client device for failed-login correlation.
// It is not an authentication credential.
type DeviceCookie struct {
	// Username the cookie was issued for
	Username string `json:"username"`

	// Nonce is a cryptographically random hex string, or UntrustedNonce
	Nonce string `json:"nonce"`
}

// Manager issues and validates device cookies
type Manager struct {
	codec *tokencodec.Codec
}

// NewManager creates a device cookie manager signing with the given secret
func NewManager(secretKey string) *Manager {
	return &Manager{
		codec: tokencodec.NewCodec(secretKey, Purpose),
	}
}

// Create signs a new device cookie with a fresh random nonce. Called only
// after a successful login; the returned token is handed to the client for
// its next login.
func (m *Manager) Create(username string) (string, error) {
	nonce := make([]byte, 32)
	if _, err := rand.Read(nonce); err != nil {
		return "", fmt.Errorf("failed to generate device cookie nonce: %w", err)
	}

	return m.codec.Sign(tokencodec.Claims{
		Subject: username,
		Nonce:   hex.EncodeToString(nonce),
	})
}

// Parse verifies a device cookie token and returns its claims
func (m *Manager) Parse(tokenStr string) (DeviceCookie, error) {
	claims, err := m.codec.Verify(tokenStr)
	if err != nil {
		return DeviceCookie{}, ErrInvalidDeviceCookie
	}

	return DeviceCookie{
		Username: claims.Subject,
		Nonce:    claims.Nonce,
	}, nil
}

// Ensure returns the device identity for a login attempt. An empty token
// yields the sentinel untrusted identity without touching the codec; a
// presented token is parsed and any failure is a hard rejection.
func (m *Manager) Ensure(username, tokenStr string) (DeviceCookie, error) {
	if tokenStr == "" {
		return DeviceCookie{
			Username: username,
			Nonce:    UntrustedNonce,
		}, nil
	}

	return m.Parse(tokenStr)
}

// IsTrusted reports whether the cookie carries a previously issued nonce
func (m *Manager) IsTrusted(dc DeviceCookie) bool {
	return dc.Nonce != UntrustedNonce
}
