package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/google/uuid"
	"golang.org/x/exp/slog"

	"github.com/gatekit/authcore/pkg/auth"
	"github.com/gatekit/authcore/pkg/csrf"
	"github.com/gatekit/authcore/pkg/errors"
	"github.com/gatekit/authcore/pkg/sessions"
	"github.com/gatekit/authcore/pkg/tokencodec"
)

// Device cookies outlive sessions; they identify the browser, not the login.
const deviceCookieLifetime = 365 * 24 * time.Hour

type Handle struct {
	loginService   *auth.LoginService
	sessionService *sessions.Service
	csrfManager    *csrf.Manager
	cookieSetter   tokencodec.CookieSetter
	csrfEnabled    bool
}

func NewHandle(
	loginService *auth.LoginService,
	sessionService *sessions.Service,
	csrfManager *csrf.Manager,
	cookieSetter tokencodec.CookieSetter,
	csrfEnabled bool,
) Handle {
	return Handle{
		loginService:   loginService,
		sessionService: sessionService,
		csrfManager:    csrfManager,
		cookieSetter:   cookieSetter,
		csrfEnabled:    csrfEnabled,
	}
}

// Routes mounts the authentication endpoints
func (h Handle) Routes(r chi.Router) {
	r.Post("/login", h.PostLogin)
	r.Post("/logout", h.PostLogout)
	r.Post("/csrf-token", h.PostCSRFToken)
}

// PostLogin authenticates a user
// (POST /login)
func (h Handle) PostLogin(w http.ResponseWriter, r *http.Request) {
	var data LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&data); err != nil {
		slog.Error("Failed to decode request body", "err", err)
		h.errorResponse(w, r, errors.New(errors.ErrCodeInvalidInput, "invalid request body"))
		return
	}
	if data.Username == "" || data.Password == "" {
		h.errorResponse(w, r, errors.New(errors.ErrCodeInvalidInput, "username and password are required"))
		return
	}

	deviceCookie := ""
	if c, err := r.Cookie(DeviceCookieName); err == nil {
		deviceCookie = c.Value
	}

	result, err := h.loginService.Login(r.Context(), auth.LoginParams{
		Username:        data.Username,
		Password:        data.Password,
		SessionMetadata: r.UserAgent(),
		DeviceCookie:    deviceCookie,
	})
	if err != nil {
		h.errorResponse(w, r, err)
		return
	}

	h.cookieSetter.SetCookie(w, SessionCookieName, result.Session.ID.String(), result.Session.ExpiresAt)
	h.cookieSetter.SetCookie(w, UserIDCookieName, result.Profile.UserID, result.Session.ExpiresAt)
	h.cookieSetter.SetCookie(w, DeviceCookieName, result.DeviceCookie, time.Now().UTC().Add(deviceCookieLifetime))

	if h.csrfEnabled {
		w.Header().Set(CSRFHeaderName, result.CSRFToken)
		h.cookieSetter.SetCookie(w, CSRFCookieName, result.CSRFToken, result.CSRFExpiresAt)
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, LoginResponse{
		UserID:      result.Profile.UserID,
		UserName:    result.Profile.UserName,
		DisplayName: result.Profile.DisplayName,
		IsAdmin:     result.Profile.IsAdmin,
	})
}

// PostLogout terminates the current session. The device cookie is left in
// place so the browser keeps its trusted identity.
// (POST /logout)
func (h Handle) PostLogout(w http.ResponseWriter, r *http.Request) {
	sessionCookie, err := r.Cookie(SessionCookieName)
	if err != nil {
		h.errorResponse(w, r, errors.New(errors.ErrCodeAuthorizationRequired, "authorization required"))
		return
	}
	userCookie, err := r.Cookie(UserIDCookieName)
	if err != nil {
		h.errorResponse(w, r, errors.New(errors.ErrCodeAuthorizationRequired, "authorization required"))
		return
	}

	if err := h.loginService.Logout(r.Context(), sessionCookie.Value, userCookie.Value); err != nil {
		h.errorResponse(w, r, err)
		return
	}

	h.cookieSetter.ClearCookie(w, SessionCookieName)
	h.cookieSetter.ClearCookie(w, UserIDCookieName)
	h.cookieSetter.ClearCookie(w, CSRFCookieName)

	render.Status(r, http.StatusOK)
	render.JSON(w, r, map[string]string{"status": "ok"})
}

// PostCSRFToken issues a fresh CSRF token for the authenticated user
// (POST /csrf-token)
func (h Handle) PostCSRFToken(w http.ResponseWriter, r *http.Request) {
	if !h.csrfEnabled {
		h.errorResponse(w, r, errors.New(errors.ErrCodeInvalidInput, "CSRF protection is disabled"))
		return
	}

	sessionCookie, err := r.Cookie(SessionCookieName)
	if err != nil {
		h.errorResponse(w, r, errors.New(errors.ErrCodeAuthorizationRequired, "authorization required"))
		return
	}
	userCookie, err := r.Cookie(UserIDCookieName)
	if err != nil {
		h.errorResponse(w, r, errors.New(errors.ErrCodeAuthorizationRequired, "authorization required"))
		return
	}

	sessionID, err := uuid.Parse(sessionCookie.Value)
	if err != nil {
		h.errorResponse(w, r, errors.New(errors.ErrCodeAuthorizationRequired, "authorization required"))
		return
	}
	if _, err := h.sessionService.Get(r.Context(), sessionID, userCookie.Value); err != nil {
		h.errorResponse(w, r, errors.New(errors.ErrCodeAuthorizationRequired, "authorization required"))
		return
	}

	token, expiresAt, err := h.csrfManager.Create(userCookie.Value)
	if err != nil {
		h.errorResponse(w, r, errors.Wrap(err, errors.ErrCodeInternal, "failed to issue CSRF token"))
		return
	}

	w.Header().Set(CSRFHeaderName, token)
	h.cookieSetter.SetCookie(w, CSRFCookieName, token, expiresAt)

	render.Status(r, http.StatusOK)
	render.JSON(w, r, CSRFTokenResponse{ExpiresAt: expiresAt})
}

func (h Handle) errorResponse(w http.ResponseWriter, r *http.Request, err error) {
	code := errors.GetCode(err)
	message := ""
	var appErr *errors.Error
	if e, ok := err.(*errors.Error); ok {
		appErr = e
	}
	if appErr != nil {
		message = appErr.Message
	}

	render.Status(r, errors.MapErrorCodeToHTTPStatus(code))
	render.JSON(w, r, ErrorResponse{
		Code:    string(code),
		Message: message,
	})
}
