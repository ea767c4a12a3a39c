package helpers

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidSession is the single outcome for every token failure:
// bad signature, malformed payload, or expiry. Callers cannot tell
// the cases apart, so the token channel leaks nothing.
var ErrInvalidSession = errors.New("invalid session")

// SessionManager mints and decodes stateless signed session tokens.
// There is no server-side record of issued tokens; expiry is the only
// termination mechanism.
type SessionManager struct {
	Secret []byte
	TTL    time.Duration

	// Now is swappable for tests; defaults to time.Now.
	Now func() time.Time
}

func NewSessionManager(secret string, ttl time.Duration) *SessionManager {
	return &SessionManager{
		Secret: []byte(secret),
		TTL:    ttl,
		Now:    time.Now,
	}
}

// Mint builds a {sub, iat, exp} payload for the user and signs it
// with HS256. The returned expiry drives the cookie max-age.
func (m *SessionManager) Mint(userID string) (string, time.Time, error) {
	now := m.Now()
	exp := now.Add(m.TTL)
	claims := &jwt.RegisteredClaims{
		Subject:   userID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(exp),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := t.SignedString(m.Secret)
	return s, exp, err
}

// Decode verifies the signature and expiry and returns the user id.
// Every failure collapses to ErrInvalidSession.
func (m *SessionManager) Decode(tokenStr string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	tkn, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidSession
		}
		return m.Secret, nil
	}, jwt.WithTimeFunc(func() time.Time { return m.Now() }))
	if err != nil || !tkn.Valid || claims.Subject == "" {
		return "", ErrInvalidSession
	}
	return claims.Subject, nil
}
