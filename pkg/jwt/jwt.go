package jwt

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken = errors.New("invalid or expired token")
	ErrMissingToken = errors.New("missing authorization token")
)

// Claims is what the console reads from a backend-issued token. The backend signs it; the
// console never holds the key, so tokens are inspected, not verified.
type Claims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Name   string `json:"name"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// Inspect decodes tokenString without checking the signature.
func Inspect(tokenString string) (*Claims, error) {
	if tokenString == "" {
		return nil, ErrMissingToken
	}
	claims := &Claims{}
	if _, _, err := jwt.NewParser().ParseUnverified(tokenString, claims); err != nil {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// Expired reports whether the token's exp claim is at or before now. Tokens without exp never
// expire client-side; the backend still rejects them when it has to.
func (c *Claims) Expired(now time.Time) bool {
	if c.ExpiresAt == nil {
		return false
	}
	return !now.Before(c.ExpiresAt.Time)
}

// ValidateToken returns the claims of a token that is well-formed and not expired.
func ValidateToken(tokenString string, now time.Time) (*Claims, error) {
	claims, err := Inspect(tokenString)
	if err != nil {
		return nil, err
	}
	if claims.Expired(now) {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
