package config

import "time"

// CSRFConfig contains CSRF double-submit protection settings.
type CSRFConfig struct {
	// Enabled controls whether CSRF tokens are issued on login
	Enabled bool

	// SecretKey is the symmetric secret for signing CSRF tokens.
	// Must differ from the device cookie secret.
	SecretKey string

	// TokenTTL is the CSRF token validity period
	TokenTTL time.Duration
}

// DefaultCSRFConfig returns a CSRFConfig with sensible defaults
func DefaultCSRFConfig() CSRFConfig {
	return CSRFConfig{
		Enabled:  true,
		TokenTTL: time.Hour,
	}
}

// NewCSRFConfigFromEnv loads CSRFConfig from standard environment variables.
//
// Environment variables:
//   - CSRF_PROTECTION_ENABLED: issue CSRF tokens on login (default: true)
//   - CSRF_PROTECTION_SECRET_KEY: CSRF token signing secret (required)
//   - CSRF_PROTECTION_TOKEN_TTL: token validity, ISO 8601 or Go format (default: "PT1H")
func NewCSRFConfigFromEnv() CSRFConfig {
	return CSRFConfig{
		Enabled:   GetEnvBool("CSRF_PROTECTION_ENABLED", true),
		SecretKey: MustGetEnv("CSRF_PROTECTION_SECRET_KEY"),
		TokenTTL:  GetEnvDuration("CSRF_PROTECTION_TOKEN_TTL", time.Hour),
	}
}
