package csrf

import (
	"net/http"

	"github.com/go-chi/render"

	"github.com/gatekit/authcore/pkg/errors"
)

// Default header and cookie names for the double-submit scheme
const (
	HeaderName       = "X-CSRF-TOKEN"
	CookieName       = "CSRF_TOKEN"
	UserIDCookieName = "USER_ID"
)

// Middleware enforces the double-submit pattern on state-changing requests:
// the client must echo the CSRF cookie value in the request header, and the
// token subject must match the authenticated user.
type Middleware struct {
	manager     *Manager
	exemptPaths map[string]bool
}

// NewMiddleware creates a CSRF middleware. Exempt paths (login, token
// refresh) skip the check entirely.
func NewMiddleware(manager *Manager, exemptPaths ...string) *Middleware {
	exempt := make(map[string]bool, len(exemptPaths))
	for _, p := range exemptPaths {
		exempt[p] = true
	}
	return &Middleware{
		manager:     manager,
		exemptPaths: exempt,
	}
}

// Handler wraps next with the CSRF check
func (m *Middleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		default:
			next.ServeHTTP(w, r)
			return
		}

		if m.exemptPaths[r.URL.Path] {
			next.ServeHTTP(w, r)
			return
		}

		userCookie, err := r.Cookie(UserIDCookieName)
		if err != nil {
			m.errorResponse(w, r, errors.ErrCodeAuthorizationRequired)
			return
		}

		headerToken := r.Header.Get(HeaderName)
		cookieToken := ""
		if c, err := r.Cookie(CookieName); err == nil {
			cookieToken = c.Value
		}

		if headerToken == "" || cookieToken == "" {
			m.errorResponse(w, r, errors.ErrCodeCSRFTokenMissing)
			return
		}

		if headerToken != cookieToken {
			m.errorResponse(w, r, errors.ErrCodeCSRFTokenMismatch)
			return
		}

		token, err := m.manager.Parse(headerToken)
		if err != nil {
			m.errorResponse(w, r, errors.ErrCodeCSRFTokenInvalid)
			return
		}

		if token.UserID != userCookie.Value {
			m.errorResponse(w, r, errors.ErrCodeCSRFTokenUserMismatch)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (m *Middleware) errorResponse(w http.ResponseWriter, r *http.Request, code errors.ErrorCode) {
	render.Status(r, errors.MapErrorCodeToHTTPStatus(code))
	render.JSON(w, r, map[string]string{"code": string(code)})
}
