package user

import (
	"context"
	"errors"
)

// ErrUserNotFound is returned when no account exists for the given name
var ErrUserNotFound = errors.New("user not found")

// Repository is the read-only credential store contract consumed by the
// authentication core
type Repository interface {
	// GetByName fetches the account for the claimed username.
	// Returns ErrUserNotFound when absent.
	GetByName(ctx context.Context, name string) (User, error)
}
