package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorCode represents a unique error code
type ErrorCode string

// Error codes used across the authentication core
const (
	// Generic errors
	ErrCodeInternal     ErrorCode = "INTERNAL_ERROR"
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"

	// Authentication errors
	ErrCodeAuthorizationRequired ErrorCode = "AUTHORIZATION_REQUIRED"
	ErrCodeLoginFailed           ErrorCode = "LOGIN_FAILED"
	ErrCodeSessionNotFound       ErrorCode = "SESSION_NOT_FOUND"

	// Brute-force protection errors
	ErrCodeDeviceCookieInvalid ErrorCode = "DEVICE_COOKIE_INVALID"
	ErrCodeDeviceCookieLockout ErrorCode = "DEVICE_COOKIE_LOCKOUT"

	// Account status errors
	ErrCodeAccountDisabled     ErrorCode = "ACCOUNT_DISABLED"
	ErrCodeAccountNotConfirmed ErrorCode = "ACCOUNT_NOT_CONFIRMED"

	// CSRF errors
	ErrCodeCSRFTokenInvalid      ErrorCode = "CSRF_TOKEN_INVALID"
	ErrCodeCSRFTokenMissing      ErrorCode = "CSRF_TOKEN_MISSING"
	ErrCodeCSRFTokenMismatch     ErrorCode = "CSRF_TOKEN_MISMATCH"
	ErrCodeCSRFTokenUserMismatch ErrorCode = "CSRF_TOKEN_USER_MISMATCH"
)

// Error represents a structured error with code, message, and an optional
// wrapped cause
type Error struct {
	Code    ErrorCode
	Message string
	Err     error
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the wrapped error for errors.Is and errors.As
func (e *Error) Unwrap() error {
	return e.Err
}

// HTTPStatusCode returns the appropriate HTTP status code for this error
func (e *Error) HTTPStatusCode() int {
	return MapErrorCodeToHTTPStatus(e.Code)
}

// New creates a new Error with the given code and message
func New(code ErrorCode, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
	}
}

// Newf creates a new Error with formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap wraps an existing error with code and message
func Wrap(err error, code ErrorCode, message string) *Error {
	if err == nil {
		return nil
	}
	return &Error{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// IsCode checks if an error has a specific error code
func IsCode(err error, code ErrorCode) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// GetCode extracts the error code from an error
// Returns ErrCodeInternal if the error is not a structured Error
func GetCode(err error) ErrorCode {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ErrCodeInternal
}

// MapErrorCodeToHTTPStatus maps error codes to HTTP status codes
func MapErrorCodeToHTTPStatus(code ErrorCode) int {
	switch code {
	// 400 Bad Request
	case ErrCodeInvalidInput:
		return http.StatusBadRequest

	// 401 Unauthorized
	case ErrCodeAuthorizationRequired, ErrCodeLoginFailed, ErrCodeSessionNotFound:
		return http.StatusUnauthorized

	// 403 Forbidden
	case ErrCodeDeviceCookieInvalid, ErrCodeDeviceCookieLockout,
		ErrCodeAccountDisabled, ErrCodeAccountNotConfirmed,
		ErrCodeCSRFTokenInvalid, ErrCodeCSRFTokenMissing,
		ErrCodeCSRFTokenMismatch, ErrCodeCSRFTokenUserMismatch:
		return http.StatusForbidden

	// 500 Internal Server Error (default)
	case ErrCodeInternal:
		fallthrough
	default:
		return http.StatusInternalServerError
	}
}
