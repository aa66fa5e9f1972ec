package lockout

import (
	"context"
	"sync"
	"time"

	"github.com/gatekit/authcore/pkg/devicecookie"
)

// InMemRepository implements Repository with an in-memory map. Suitable for
// tests and single-instance deployments without a database.
type InMemRepository struct {
	mu      sync.RWMutex
	records map[string]time.Time
}

// NewInMemRepository creates an empty in-memory lockout repository
func NewInMemRepository() *InMemRepository {
	return &InMemRepository{
		records: make(map[string]time.Time),
	}
}

// Contains implements Repository.Contains
func (r *InMemRepository) Contains(ctx context.Context, dc devicecookie.DeviceCookie) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	expiresAt, ok := r.records[makeKey(dc)]
	if !ok {
		return false, nil
	}
	return time.Now().Before(expiresAt), nil
}

// Insert implements Repository.Insert
func (r *InMemRepository) Insert(ctx context.Context, dc devicecookie.DeviceCookie, ttl time.Duration) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.records[makeKey(dc)] = time.Now().Add(ttl)
	return nil
}

// RemoveExpired implements Repository.RemoveExpired
func (r *InMemRepository) RemoveExpired(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	for key, expiresAt := range r.records {
		if now.After(expiresAt) {
			delete(r.records, key)
		}
	}
	return nil
}

// Len returns the number of stored records, expired ones included
func (r *InMemRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.records)
}
