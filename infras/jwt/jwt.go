package jwt

//go:generate go run go.uber.org/mock/mockgen -source=./jwt.go -destination=./mocks/jwt_mock.go -package=mocks

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token has expired")
)

// Claims is the subset of the backend access token the console reads.
// The console never holds the signing secret, so claims are inspected, not verified.
type Claims struct {
	Role string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// Inspector reads access tokens issued by the PMS backend.
type Inspector interface {
	Inspect(token string) (*Claims, error)
	CheckExpiry(token string, now time.Time) (*Claims, error)
}

type inspector struct {
	parser *jwt.Parser
}

func New() Inspector {
	return &inspector{
		parser: jwt.NewParser(),
	}
}

// Inspect decodes the token claims without checking the signature.
func (i *inspector) Inspect(token string) (*Claims, error) {
	claims := &Claims{}

	if _, _, err := i.parser.ParseUnverified(token, claims); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	return claims, nil
}

// CheckExpiry returns ErrExpiredToken once exp has passed. Tokens without exp never expire here;
// the backend stays the judge of those.
func (i *inspector) CheckExpiry(token string, now time.Time) (*Claims, error) {
	claims, err := i.Inspect(token)
	if err != nil {
		return nil, err
	}

	if claims.ExpiresAt != nil && !now.Before(claims.ExpiresAt.Time) {
		return claims, ErrExpiredToken
	}

	return claims, nil
}

// Expiry returns the token expiry, or the zero time when it carries none.
func (c *Claims) Expiry() time.Time {
	if c == nil || c.ExpiresAt == nil {
		return time.Time{}
	}

	return c.ExpiresAt.Time
}

// ExtractTokenFromHeader extracts JWT token from Authorization header
func ExtractTokenFromHeader(authHeader string) (string, error) {
	if authHeader == "" {
		return "", errors.New("authorization header is required")
	}

	const prefix = "Bearer "
	if len(authHeader) < len(prefix) || authHeader[:len(prefix)] != prefix {
		return "", errors.New("authorization header must start with 'Bearer '")
	}

	return authHeader[len(prefix):], nil
}
