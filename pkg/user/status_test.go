package user

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gatekit/authcore/pkg/errors"
)

func TestCheckStatusActive(t *testing.T) {
	assert.NoError(t, CheckStatus(User{Name: "alice", IsConfirmed: true}))
}

func TestCheckStatusErased(t *testing.T) {
	erased := time.Now()
	err := CheckStatus(User{Name: "alice", IsConfirmed: true, ErasedAt: &erased})

	// Deleted accounts look like failed logins, never like deleted accounts
	assert.True(t, errors.IsCode(err, errors.ErrCodeLoginFailed))
}

func TestCheckStatusUnconfirmed(t *testing.T) {
	err := CheckStatus(User{Name: "alice"})
	assert.True(t, errors.IsCode(err, errors.ErrCodeAccountNotConfirmed))
}

func TestCheckStatusDisabled(t *testing.T) {
	err := CheckStatus(User{Name: "alice", IsConfirmed: true, IsDisabled: true})
	assert.True(t, errors.IsCode(err, errors.ErrCodeAccountDisabled))
}

func TestCheckStatusOrder(t *testing.T) {
	// Erasure wins over every other status flag
	erased := time.Now()
	err := CheckStatus(User{Name: "alice", IsDisabled: true, ErasedAt: &erased})
	assert.True(t, errors.IsCode(err, errors.ErrCodeLoginFailed))
}

func TestInMemRepository(t *testing.T) {
	repo := NewInMemRepository()
	repo.Add(User{ID: "u1", Name: "alice", IsConfirmed: true})

	u, err := repo.GetByName(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, "u1", u.ID)

	_, err = repo.GetByName(context.Background(), "nobody")
	assert.ErrorIs(t, err, ErrUserNotFound)
}
