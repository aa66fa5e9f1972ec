package tokencodec

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignAndVerify(t *testing.T) {
	codec := NewCodec("test-secret", "brute-force-protection")

	tokenStr, err := codec.Sign(Claims{
		Subject: "alice",
		Nonce:   "abc123",
	})
	require.NoError(t, err)
	require.NotEmpty(t, tokenStr)

	claims, err := codec.Verify(tokenStr)
	require.NoError(t, err)
	assert.Equal(t, "alice", claims.Subject)
	assert.Equal(t, "abc123", claims.Nonce)
	assert.Equal(t, "brute-force-protection", claims.Purpose)
	assert.True(t, claims.ExpiresAt.IsZero())
}

func TestVerifyWrongSecret(t *testing.T) {
	signer := NewCodec("secret-one", "brute-force-protection")
	verifier := NewCodec("secret-two", "brute-force-protection")

	tokenStr, err := signer.Sign(Claims{Subject: "alice", Nonce: "abc123"})
	require.NoError(t, err)

	_, err = verifier.Verify(tokenStr)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyWrongPurpose(t *testing.T) {
	deviceCodec := NewCodec("shared-secret", "brute-force-protection")
	csrfCodec := NewCodec("shared-secret", "csrf-protection")

	tokenStr, err := deviceCodec.Sign(Claims{Subject: "alice", Nonce: "abc123"})
	require.NoError(t, err)

	// Even with the same secret, a token of one class must not verify as
	// another
	_, err = csrfCodec.Verify(tokenStr)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyExpired(t *testing.T) {
	codec := NewCodec("test-secret", "csrf-protection")

	tokenStr, err := codec.Sign(Claims{
		Subject:   "user-1",
		Nonce:     "abc123",
		ExpiresAt: time.Now().Add(-time.Minute),
	})
	require.NoError(t, err)

	_, err = codec.Verify(tokenStr)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyGarbage(t *testing.T) {
	codec := NewCodec("test-secret", "brute-force-protection")

	_, err := codec.Verify("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestCookieSetter(t *testing.T) {
	setter := NewCookieSetter(true, true)

	w := httptest.NewRecorder()
	err := setter.SetCookie(w, "SESSION_ID", "session-value", time.Now().Add(time.Hour))
	require.NoError(t, err)

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "SESSION_ID", cookies[0].Name)
	assert.Equal(t, "session-value", cookies[0].Value)
	assert.True(t, cookies[0].HttpOnly)
	assert.True(t, cookies[0].Secure)

	w = httptest.NewRecorder()
	err = setter.ClearCookie(w, "SESSION_ID")
	require.NoError(t, err)

	cookies = w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, -1, cookies[0].MaxAge)
	assert.Empty(t, cookies[0].Value)
}
