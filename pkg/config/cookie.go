package config

import "time"

// CookieConfig contains cookie security flags and expirations shared by the
// API layer.
type CookieConfig struct {
	// Secure marks cookies as HTTPS-only
	Secure bool

	// HTTPOnly hides cookies from client-side scripts
	HTTPOnly bool

	// SessionTTL is the session cookie lifetime
	SessionTTL time.Duration
}

// DefaultCookieConfig returns a CookieConfig with sensible defaults
func DefaultCookieConfig() CookieConfig {
	return CookieConfig{
		Secure:     true,
		HTTPOnly:   true,
		SessionTTL: 24 * time.Hour,
	}
}

// NewCookieConfigFromEnv loads CookieConfig from standard environment variables.
//
// Environment variables:
//   - COOKIE_SECURE: HTTPS-only cookies (default: true)
//   - COOKIE_HTTP_ONLY: hide cookies from scripts (default: true)
//   - COOKIE_SESSION_TTL: session lifetime, ISO 8601 or Go format (default: "PT24H")
func NewCookieConfigFromEnv() CookieConfig {
	return CookieConfig{
		Secure:     GetEnvBool("COOKIE_SECURE", true),
		HTTPOnly:   GetEnvBool("COOKIE_HTTP_ONLY", true),
		SessionTTL: GetEnvDuration("COOKIE_SESSION_TTL", 24*time.Hour),
	}
}
