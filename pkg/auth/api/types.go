package api

import "time"

// Cookie names set by the login endpoint
const (
	SessionCookieName = "SESSION_ID"
	UserIDCookieName  = "USER_ID"
	DeviceCookieName  = "DEVICE_COOKIE"
	CSRFCookieName    = "CSRF_TOKEN"
	CSRFHeaderName    = "X-CSRF-TOKEN"
)

// LoginRequest is the login request body
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse is returned on successful login. The session, user and
// device identifiers travel in cookies, not the body.
type LoginResponse struct {
	UserID      string `json:"user_id"`
	UserName    string `json:"user_name"`
	DisplayName string `json:"display_name,omitempty"`
	IsAdmin     bool   `json:"is_admin"`
}

// CSRFTokenResponse is returned by the token refresh endpoint
type CSRFTokenResponse struct {
	ExpiresAt time.Time `json:"expires_at"`
}

// ErrorResponse is the JSON error body
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message,omitempty"`
}
