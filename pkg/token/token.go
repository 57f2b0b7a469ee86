package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// ErrInvalidToken is returned for malformed, forged or expired tokens
var ErrInvalidToken = errors.New("invalid token")

// Claims are the access token claims. Subject carries the username.
type Claims struct {
	Roles []string `json:"roles"`
	jwt.RegisteredClaims
}

// Manager issues and verifies signed access tokens
type Manager struct {
	key         []byte
	ttl         time.Duration
	rememberTTL time.Duration
}

// NewManager creates a token manager. The remember-me TTL applies to
// logins that ask to stay signed in.
func NewManager(key []byte, ttl, rememberTTL time.Duration) *Manager {
	return &Manager{key: key, ttl: ttl, rememberTTL: rememberTTL}
}

// Issue creates a signed token for the given username and roles.
// Returns the token string and its expiry time.
func (m *Manager) Issue(username string, roles []string, remember bool) (string, time.Time, error) {
	ttl := m.ttl
	if remember {
		ttl = m.rememberTTL
	}

	now := time.Now()
	expiresAt := now.Add(ttl)
	claims := Claims{
		Roles: roles,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			Issuer:    "refdata",
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.key)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, expiresAt, nil
}

// Verify parses and validates a token string
func (m *Manager) Verify(tokenStr string) (*Claims, error) {
	claims := &Claims{}
	tok, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return m.key, nil
	})
	if err != nil || !tok.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
