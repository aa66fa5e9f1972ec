package lockout

import (
	"context"
	"fmt"
	"time"

	"github.com/gatekit/authcore/pkg/devicecookie"
)

// Repository is the durable lockout store. Records survive process restarts
// and are authoritative over the in-memory failed-login counter.
type Repository interface {
	// Contains reports whether a non-expired lockout record exists for the
	// device identity. Expired records read as absent.
	Contains(ctx context.Context, dc devicecookie.DeviceCookie) (bool, error)

	// Insert records a lockout for the identity with the given TTL.
	// Inserting an already locked identity refreshes its expiry, so a retry
	// after partial completion is safe.
	Insert(ctx context.Context, dc devicecookie.DeviceCookie, ttl time.Duration) error

	// RemoveExpired prunes expired lockout records. Idempotent and safe to
	// run concurrently with inserts.
	RemoveExpired(ctx context.Context) error
}

// makeKey builds the storage key for a device identity
func makeKey(dc devicecookie.DeviceCookie) string {
	return fmt.Sprintf("%s:%s", dc.Username, dc.Nonce)
}
