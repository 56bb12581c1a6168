package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	apperrors "github.com/schoolpilot/waitlist-api/pkg/errors"
)

const (
	// SessionCookieName is the cookie carrying the signed admin credential.
	SessionCookieName = "adminAuthToken"

	// SessionTTL is how long an issued credential stays valid. Sessions are
	// not persisted server-side; validity is signature plus expiry.
	SessionTTL = 7 * 24 * time.Hour

	AdminRole = "admin"
)

type SessionClaims struct {
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// Sessions issues and verifies signed admin session credentials.
type Sessions struct {
	secret   []byte
	timeFunc func() time.Time
}

func NewSessions(secret string) *Sessions {
	return &Sessions{
		secret:   []byte(secret),
		timeFunc: time.Now,
	}
}

// WithTimeFunc overrides the clock used for issuing and verifying tokens.
func (s *Sessions) WithTimeFunc(fn func() time.Time) *Sessions {
	if fn != nil {
		s.timeFunc = fn
	}
	return s
}

func (s *Sessions) Issue(username string) (string, error) {
	now := s.timeFunc()

	claims := SessionClaims{
		Username: username,
		Role:     AdminRole,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(SessionTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", apperrors.NewInternalServerError("unable to issue session credential", err)
	}

	return signed, nil
}

// Verify checks signature and expiry and returns the embedded claims.
func (s *Sessions) Verify(tokenString string) (*SessionClaims, error) {
	claims := &SessionClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, apperrors.NewUnauthorizedError("unexpected signing method", nil)
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(s.timeFunc), jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))

	if err != nil || !token.Valid {
		return nil, apperrors.NewUnauthorizedError("invalid or expired session", err)
	}

	if claims.Role != AdminRole {
		return nil, apperrors.NewUnauthorizedError("session lacks admin role", nil)
	}

	return claims, nil
}
