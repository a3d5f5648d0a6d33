package identity

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/edhr/leave-engine/leave"
)

// =============================================================================
// SESSIONS - Signed JWT session tokens
// =============================================================================

var ErrInvalidToken = errors.New("invalid or expired session token")

// Claims is the session payload carried in the JWT.
type Claims struct {
	Name       string `json:"name"`
	Department string `json:"department"`
	Role       string `json:"role"`
	jwt.RegisteredClaims
}

// Sessions issues and verifies HS256-signed session tokens.
type Sessions struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewSessions(secret []byte, ttl time.Duration) *Sessions {
	return &Sessions{secret: secret, ttl: ttl, now: time.Now}
}

// Issue signs a session token for the given user.
func (s *Sessions) Issue(user leave.User) (string, error) {
	now := s.now()
	claims := Claims{
		Name:       user.Name,
		Department: user.Department,
		Role:       string(user.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}
	return signed, nil
}

// Verify parses and validates a token, returning the subject user id.
func (s *Sessions) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
