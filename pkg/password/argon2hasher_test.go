package password

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndVerify(t *testing.T) {
	hasher := NewArgon2Hasher()

	encoded, err := hasher.Hash("correct horse battery staple")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(encoded, "$argon2id$v=19$"))

	ok, err := hasher.Verify("correct horse battery staple", encoded)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = hasher.Verify("wrong password", encoded)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestHashIsSalted(t *testing.T) {
	hasher := NewArgon2Hasher()

	first, err := hasher.Hash("same password")
	require.NoError(t, err)
	second, err := hasher.Hash("same password")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestVerifyRejectsMalformedHash(t *testing.T) {
	hasher := NewArgon2Hasher()

	_, err := hasher.Verify("password", "not-a-hash")
	assert.Error(t, err)

	_, err = hasher.Verify("password", "$bcrypt$v=19$m=1,t=1,p=1$abc$def")
	assert.Error(t, err)
}

func TestEmptyInputs(t *testing.T) {
	hasher := NewArgon2Hasher()

	_, err := hasher.Hash("")
	assert.Error(t, err)

	_, err = hasher.Verify("", "hash")
	assert.Error(t, err)

	_, err = hasher.Verify("password", "")
	assert.Error(t, err)
}
