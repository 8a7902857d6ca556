// Package auth provides JWT token issuance/verification and password hashing
// for the request surface. Token contents are deliberately minimal: the
// subject is the actor's id and a single role claim tells user and courier
// namespaces apart.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Actor roles carried in the token. User and courier ids live in disjoint
// namespaces, so the role is part of the actor's identity, not an attribute.
const (
	RoleUser    = "user"
	RoleCourier = "courier"
)

var ErrInvalidToken = errors.New("invalid token")

// Claims is the JWT payload for authenticated actors.
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// IssueToken signs an HS256 access token for the given subject and role.
func IssueToken(secret, subject, role string, ttl time.Duration) (string, time.Time, error) {
	if secret == "" {
		return "", time.Time{}, errors.New("jwt secret is empty")
	}
	if subject == "" {
		return "", time.Time{}, errors.New("subject is empty")
	}
	if role != RoleUser && role != RoleCourier {
		return "", time.Time{}, fmt.Errorf("unknown role %q", role)
	}
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}

	now := time.Now()
	expiresAt := now.Add(ttl)

	claims := Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now.Add(-time.Minute)),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

// ParseToken verifies an HS256 token and returns its claims.
// Returns ErrInvalidToken for anything that fails signature, expiry,
// or algorithm checks.
func ParseToken(secret, token string) (*Claims, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil || !parsed.Valid {
		return nil, ErrInvalidToken
	}
	if claims.Role != RoleUser && claims.Role != RoleCourier {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
