package config

import "time"

// BruteforceConfig contains brute-force protection settings.
// Fields have no env tags - populate manually or use NewBruteforceConfigFromEnv()
// for standard env var names.
type BruteforceConfig struct {
	// SecretKey is the symmetric secret for signing device cookies.
	// Must differ from the CSRF secret so tokens cannot be cross-used.
	SecretKey string

	// MaxFailedLogins is the number of failed attempts allowed per
	// (username, nonce) identity before lockout
	MaxFailedLogins int

	// LockoutPeriod is both the durable lockout TTL and the interval at
	// which the in-memory failed-login counter is reset
	LockoutPeriod time.Duration

	// CleanupInterval is how often expired durable lockout records are pruned
	CleanupInterval time.Duration
}

// DefaultBruteforceConfig returns a BruteforceConfig with sensible defaults
func DefaultBruteforceConfig() BruteforceConfig {
	return BruteforceConfig{
		MaxFailedLogins: 5,
		LockoutPeriod:   30 * time.Minute,
		CleanupInterval: 10 * time.Minute,
	}
}

// NewBruteforceConfigFromEnv loads BruteforceConfig from standard environment variables.
//
// Environment variables:
//   - BFP_SECRET_KEY: device cookie signing secret (required)
//   - BFP_MAX_FAILED_LOGINS: failed attempts allowed before lockout (default: 5)
//   - BFP_LOCKOUT_PERIOD: lockout TTL, ISO 8601 or Go format (default: "PT30M")
//   - BFP_CLEANUP_INTERVAL: lockout list cleanup interval (default: "PT10M")
func NewBruteforceConfigFromEnv() BruteforceConfig {
	return BruteforceConfig{
		SecretKey:       MustGetEnv("BFP_SECRET_KEY"),
		MaxFailedLogins: GetEnvInt("BFP_MAX_FAILED_LOGINS", 5),
		LockoutPeriod:   GetEnvDuration("BFP_LOCKOUT_PERIOD", 30*time.Minute),
		CleanupInterval: GetEnvDuration("BFP_CLEANUP_INTERVAL", 10*time.Minute),
	}
}
