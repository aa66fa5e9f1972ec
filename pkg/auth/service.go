package auth

import (
	"context"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
	"golang.org/x/exp/slog"

	"github.com/gatekit/authcore/pkg/csrf"
	"github.com/gatekit/authcore/pkg/devicecookie"
	"github.com/gatekit/authcore/pkg/errors"
	"github.com/gatekit/authcore/pkg/lockout"
	"github.com/gatekit/authcore/pkg/logincounter"
	"github.com/gatekit/authcore/pkg/password"
	"github.com/gatekit/authcore/pkg/sessions"
	"github.com/gatekit/authcore/pkg/user"
)

// LoginService composes the brute-force protection machinery into the login
// protocol. It is the only stateful control flow of the authentication core.
type LoginService struct {
	deviceCookies *devicecookie.Manager
	csrfTokens    *csrf.Manager
	loginCounter  *logincounter.Counter
	lockouts      lockout.Repository
	users         user.Repository
	sessions      *sessions.Service
	hasher        password.Hasher

	csrfEnabled bool
	lockoutTTL  time.Duration
	delay       func(ctx context.Context)
}

// Option configures a LoginService
type Option func(*LoginService)

// WithDelay overrides the pre-verification timing normalization delay.
// Used by tests to avoid waiting.
func WithDelay(delay func(ctx context.Context)) Option {
	return func(s *LoginService) {
		s.delay = delay
	}
}

// NewLoginService creates a login service
func NewLoginService(
	deviceCookies *devicecookie.Manager,
	csrfTokens *csrf.Manager,
	loginCounter *logincounter.Counter,
	lockouts lockout.Repository,
	users user.Repository,
	sessionService *sessions.Service,
	hasher password.Hasher,
	csrfEnabled bool,
	lockoutTTL time.Duration,
	opts ...Option,
) *LoginService {
	s := &LoginService{
		deviceCookies: deviceCookies,
		csrfTokens:    csrfTokens,
		loginCounter:  loginCounter,
		lockouts:      lockouts,
		users:         users,
		sessions:      sessionService,
		hasher:        hasher,
		csrfEnabled:   csrfEnabled,
		lockoutTTL:    lockoutTTL,
		delay:         randomDelay,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// randomDelay sleeps a uniform random interval before any
// credential-dependent branching, reducing the reliability of response-time
// side channels for account enumeration. Applied unconditionally.
func randomDelay(ctx context.Context) {
	d := time.Duration(100+rand.Intn(900)) * time.Millisecond
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
	case <-timer.C:
	}
}

func counterKey(dc devicecookie.DeviceCookie) logincounter.Key {
	return logincounter.Key{Username: dc.Username, Nonce: dc.Nonce}
}

// Login runs the login protocol for one attempt. Every terminal failure is
// logged with the operation and identifying keys before returning; the raw
// password is never logged.
func (s *LoginService) Login(ctx context.Context, params LoginParams) (*LoginResult, error) {
	const operation = "Login"

	// Resolve the device identity first: a presented but invalid cookie is
	// a hard rejection, never a fallback to untrusted
	dc, err := s.deviceCookies.Ensure(params.Username, params.DeviceCookie)
	if err != nil {
		return nil, s.failLogin(operation, params.Username, "",
			errors.Wrap(err, errors.ErrCodeDeviceCookieInvalid, "invalid device cookie"))
	}

	// Common technique against timing attacks
	s.delay(ctx)

	// First lockout check: the in-memory counter caches attempts for both
	// existing and non-existing users to prevent account discovery
	if s.loginCounter.IsOverLimit(counterKey(dc)) {
		return nil, s.failLogin(operation, dc.Username, dc.Nonce,
			errors.New(errors.ErrCodeDeviceCookieLockout, "device cookie is locked out"))
	}

	u, err := s.users.GetByName(ctx, params.Username)
	if err != nil {
		if err == user.ErrUserNotFound {
			// Unknown usernames accrue failures too, so probing distinct
			// names from one client still converges on lockout
			s.loginCounter.RecordFailure(counterKey(dc))
			return nil, s.failLogin(operation, dc.Username, dc.Nonce,
				errors.New(errors.ErrCodeLoginFailed, "login failed"))
		}
		return nil, s.failLogin(operation, dc.Username, dc.Nonce,
			errors.Wrap(err, errors.ErrCodeInternal, "credential store unreachable"))
	}

	// Second lockout check: the durable store survives restarts and is
	// authoritative. A hit is a pre-existing lockout, not a new failure.
	locked, err := s.lockouts.Contains(ctx, dc)
	if err != nil {
		return nil, s.failLogin(operation, dc.Username, dc.Nonce,
			errors.Wrap(err, errors.ErrCodeInternal, "lockout store unreachable"))
	}
	if locked {
		return nil, s.failLogin(operation, dc.Username, dc.Nonce,
			errors.New(errors.ErrCodeDeviceCookieLockout, "device cookie is locked out"))
	}

	valid, err := s.hasher.Verify(params.Password, u.PasswordHash)
	if err != nil || !valid {
		s.loginCounter.RecordFailure(counterKey(dc))
		if s.loginCounter.IsOverLimit(counterKey(dc)) {
			if err := s.lockouts.Insert(ctx, dc, s.lockoutTTL); err != nil {
				slog.Error("Failed to write lockout record",
					"op", operation, "username", dc.Username, "nonce", dc.Nonce, "err", err)
			}
		}
		return nil, s.failLogin(operation, dc.Username, dc.Nonce,
			errors.New(errors.ErrCodeLoginFailed, "login failed"))
	}

	// Status issues are not credential-guessing signals: no counter mutation
	if err := user.CheckStatus(u); err != nil {
		return nil, s.failLogin(operation, dc.Username, dc.Nonce, err)
	}

	session, err := s.sessions.Create(ctx, u.ID, params.SessionMetadata)
	if err != nil {
		return nil, s.failLogin(operation, dc.Username, dc.Nonce,
			errors.Wrap(err, errors.ErrCodeInternal, "failed to create session"))
	}

	// Rotate the device identity on every successful login
	newDeviceCookie, err := s.deviceCookies.Create(u.Name)
	if err != nil {
		return nil, s.failLogin(operation, dc.Username, dc.Nonce,
			errors.Wrap(err, errors.ErrCodeInternal, "failed to issue device cookie"))
	}

	profile := user.Profile{}
	copier.Copy(&profile, &u)
	profile.UserID = u.ID
	profile.UserName = u.Name

	result := &LoginResult{
		Profile:      profile,
		Session:      session,
		DeviceCookie: newDeviceCookie,
	}

	if s.csrfEnabled {
		csrfToken, csrfExpiresAt, err := s.csrfTokens.Create(u.ID)
		if err != nil {
			return nil, s.failLogin(operation, dc.Username, dc.Nonce,
				errors.Wrap(err, errors.ErrCodeInternal, "failed to issue CSRF token"))
		}
		result.CSRFToken = csrfToken
		result.CSRFExpiresAt = csrfExpiresAt
	}

	slog.Debug("Login profile", "op", operation, "profile", profile)
	slog.Info("Login succeeded",
		"op", operation,
		"user_id", u.ID,
		"user_name", u.Name,
		"is_admin", u.IsAdmin,
	)

	return result, nil
}

// Logout terminates a session. The device cookie is deliberately left
// intact; it persists across sessions.
func (s *LoginService) Logout(ctx context.Context, sessionID, userID string) error {
	const operation = "Logout"

	id, err := uuid.Parse(sessionID)
	if err != nil {
		return s.failLogout(operation, sessionID, userID,
			errors.New(errors.ErrCodeSessionNotFound, "session not found"))
	}

	session, err := s.sessions.Get(ctx, id, userID)
	if err != nil {
		if err == sessions.ErrSessionNotFound {
			return s.failLogout(operation, sessionID, userID,
				errors.New(errors.ErrCodeSessionNotFound, "session not found"))
		}
		return s.failLogout(operation, sessionID, userID,
			errors.Wrap(err, errors.ErrCodeInternal, "session store unreachable"))
	}

	if err := s.sessions.Delete(ctx, session); err != nil {
		return s.failLogout(operation, sessionID, userID,
			errors.Wrap(err, errors.ErrCodeInternal, "failed to delete session"))
	}

	slog.Info("Logout succeeded", "op", operation, "session", sessionID, "user_id", userID)
	return nil
}

func (s *LoginService) failLogin(operation, username, nonce string, err error) error {
	slog.Warn("Login attempt rejected",
		"op", operation,
		"username", username,
		"nonce", nonce,
		"code", errors.GetCode(err),
	)
	return err
}

func (s *LoginService) failLogout(operation, sessionID, userID string, err error) error {
	slog.Warn("Logout rejected",
		"op", operation,
		"session", sessionID,
		"user_id", userID,
		"code", errors.GetCode(err),
	)
	return err
}
