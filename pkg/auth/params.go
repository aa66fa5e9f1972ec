package auth

import (
	"time"

	"github.com/gatekit/authcore/pkg/sessions"
	"github.com/gatekit/authcore/pkg/user"
)

// LoginParams carries one login attempt
type LoginParams struct {
	// Username as claimed by the client
	Username string

	// Password in plain text; verified against the stored hash, never logged
	Password string

	// SessionMetadata is an opaque client description stored with the session
	SessionMetadata string

	// DeviceCookie is the device identity token presented by the client,
	// empty when none was sent
	DeviceCookie string
}

// LoginResult is returned on successful login
type LoginResult struct {
	// Profile is the public view of the authenticated user
	Profile user.Profile

	// Session is the newly created session record
	Session *sessions.Session

	// DeviceCookie is a freshly issued device identity token. The nonce
	// rotates on every successful login.
	DeviceCookie string

	// CSRFToken is set when CSRF protection is enabled
	CSRFToken string

	// CSRFExpiresAt is the CSRF token expiry when one was issued
	CSRFExpiresAt time.Time
}
