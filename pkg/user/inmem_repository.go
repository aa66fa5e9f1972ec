package user

import (
	"context"
	"sync"
)

// InMemRepository implements Repository with an in-memory map keyed by
// username. Suitable for tests and demos.
type InMemRepository struct {
	mu    sync.RWMutex
	users map[string]User
}

// NewInMemRepository creates an in-memory user repository
func NewInMemRepository() *InMemRepository {
	return &InMemRepository{
		users: make(map[string]User),
	}
}

// Add stores or replaces a user record
func (r *InMemRepository) Add(u User) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[u.Name] = u
}

// GetByName implements Repository.GetByName
func (r *InMemRepository) GetByName(ctx context.Context, name string) (User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[name]
	if !ok {
		return User{}, ErrUserNotFound
	}
	return u, nil
}
