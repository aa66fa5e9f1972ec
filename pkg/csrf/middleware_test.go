package csrf

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func csrfRequest(t *testing.T, method, path string, headerToken, cookieToken, userID string) *http.Request {
	t.Helper()
	r := httptest.NewRequest(method, path, nil)
	if headerToken != "" {
		r.Header.Set(HeaderName, headerToken)
	}
	if cookieToken != "" {
		r.AddCookie(&http.Cookie{Name: CookieName, Value: cookieToken})
	}
	if userID != "" {
		r.AddCookie(&http.Cookie{Name: UserIDCookieName, Value: userID})
	}
	return r
}

func runMiddleware(mw *Middleware, r *http.Request) (*httptest.ResponseRecorder, bool) {
	called := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusOK)
	})

	w := httptest.NewRecorder()
	mw.Handler(next).ServeHTTP(w, r)
	return w, called
}

func TestMiddlewareAllowsValidToken(t *testing.T) {
	mgr := NewManager("csrf-secret", time.Hour)
	mw := NewMiddleware(mgr)

	tokenStr, _, err := mgr.Create("user-1")
	require.NoError(t, err)

	w, called := runMiddleware(mw, csrfRequest(t, http.MethodPost, "/projects", tokenStr, tokenStr, "user-1"))
	assert.True(t, called)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestMiddlewareSkipsReads(t *testing.T) {
	mw := NewMiddleware(NewManager("csrf-secret", time.Hour))

	_, called := runMiddleware(mw, csrfRequest(t, http.MethodGet, "/projects", "", "", ""))
	assert.True(t, called)
}

func TestMiddlewareSkipsExemptPaths(t *testing.T) {
	mw := NewMiddleware(NewManager("csrf-secret", time.Hour), "/auth/login")

	_, called := runMiddleware(mw, csrfRequest(t, http.MethodPost, "/auth/login", "", "", ""))
	assert.True(t, called)
}

func TestMiddlewareRequiresUser(t *testing.T) {
	mw := NewMiddleware(NewManager("csrf-secret", time.Hour))

	w, called := runMiddleware(mw, csrfRequest(t, http.MethodPost, "/projects", "tok", "tok", ""))
	assert.False(t, called)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestMiddlewareMissingToken(t *testing.T) {
	mw := NewMiddleware(NewManager("csrf-secret", time.Hour))

	w, called := runMiddleware(mw, csrfRequest(t, http.MethodPost, "/projects", "", "", "user-1"))
	assert.False(t, called)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestMiddlewareHeaderCookieMismatch(t *testing.T) {
	mgr := NewManager("csrf-secret", time.Hour)
	mw := NewMiddleware(mgr)

	tokenStr, _, err := mgr.Create("user-1")
	require.NoError(t, err)

	w, called := runMiddleware(mw, csrfRequest(t, http.MethodPost, "/projects", tokenStr, "other-value", "user-1"))
	assert.False(t, called)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestMiddlewareUserMismatch(t *testing.T) {
	mgr := NewManager("csrf-secret", time.Hour)
	mw := NewMiddleware(mgr)

	tokenStr, _, err := mgr.Create("user-1")
	require.NoError(t, err)

	w, called := runMiddleware(mw, csrfRequest(t, http.MethodPost, "/projects", tokenStr, tokenStr, "user-2"))
	assert.False(t, called)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestMiddlewareForgedToken(t *testing.T) {
	mw := NewMiddleware(NewManager("csrf-secret", time.Hour))

	w, called := runMiddleware(mw, csrfRequest(t, http.MethodPost, "/projects", "forged", "forged", "user-1"))
	assert.False(t, called)
	assert.Equal(t, http.StatusForbidden, w.Code)
}
