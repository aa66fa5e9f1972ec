package tokencodec

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken is returned when a token fails signature, purpose, expiry
// or structural validation
var ErrInvalidToken = errors.New("invalid token")

// Claims is the claim set carried by gateway-issued tokens
type Claims struct {
	// Subject identifies the principal (username or user id)
	Subject string

	// Nonce is a unique identifier for the token
	Nonce string

	// Purpose identifies what the token is intended for; mapped to the JWT
	// audience so a token of one class never verifies as another
	Purpose string

	// ExpiresAt is the absolute expiry; zero means the token never expires
	ExpiresAt time.Time
}

// Codec signs and verifies compact, self-contained claims using a symmetric
// secret. One Codec instance serves one token class: its purpose tag is
// enforced as the JWT audience on both sign and verify.
type Codec struct {
	secret  []byte
	purpose string
}

// NewCodec creates a Codec for the given secret and purpose tag
func NewCodec(secret, purpose string) *Codec {
	return &Codec{
		secret:  []byte(secret),
		purpose: purpose,
	}
}

// Sign creates a signed token from the given claims. The codec adds no
// randomness of its own; the nonce is the only source of uniqueness.
func (c *Codec) Sign(claims Claims) (string, error) {
	registered := jwt.RegisteredClaims{
		Subject:  claims.Subject,
		ID:       claims.Nonce,
		Audience: jwt.ClaimStrings{c.purpose},
	}
	if !claims.ExpiresAt.IsZero() {
		registered.ExpiresAt = jwt.NewNumericDate(claims.ExpiresAt.UTC())
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, registered)
	ss, err := token.SignedString(c.secret)
	if err != nil {
		slog.Error("Failed to sign token claims", "purpose", c.purpose, "err", err)
		return "", err
	}
	return ss, nil
}

// Verify parses the token and validates signature, purpose and expiry.
// All failures surface as ErrInvalidToken.
func (c *Codec) Verify(tokenStr string) (Claims, error) {
	registered := jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, &registered,
		func(token *jwt.Token) (interface{}, error) {
			return c.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithAudience(c.purpose),
	)
	if err != nil {
		return Claims{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid {
		return Claims{}, ErrInvalidToken
	}

	// Structural validation: subject and nonce are always present in
	// gateway-issued tokens
	if registered.Subject == "" || registered.ID == "" {
		return Claims{}, ErrInvalidToken
	}

	claims := Claims{
		Subject: registered.Subject,
		Nonce:   registered.ID,
		Purpose: c.purpose,
	}
	if registered.ExpiresAt != nil {
		claims.ExpiresAt = registered.ExpiresAt.Time
	}
	return claims, nil
}
