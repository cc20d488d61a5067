package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/oklog/ulid/v2"
)

// ErrInvalidToken covers malformed, expired and revoked tokens.
var ErrInvalidToken = errors.New("invalid or expired token")

// Session is an authenticated admin session.
type Session struct {
	ID        string
	Username  string
	ExpiresAt time.Time
}

// Manager issues and verifies admin tokens. Each token is an HS256 JWT whose
// jti names a server-side session, so logout revokes it before expiry.
type Manager struct {
	secret   []byte
	ttl      time.Duration
	sessions SessionStore
}

func NewManager(secret string, ttl time.Duration, sessions SessionStore) (*Manager, error) {
	if secret == "" {
		return nil, errors.New("auth: empty signing secret")
	}
	if ttl <= 0 {
		return nil, errors.New("auth: session ttl must be positive")
	}
	if sessions == nil {
		return nil, errors.New("auth: nil session store")
	}
	return &Manager{secret: []byte(secret), ttl: ttl, sessions: sessions}, nil
}

// TTL is the lifetime of issued tokens.
func (m *Manager) TTL() time.Duration { return m.ttl }

// Issue opens a session for username and returns its signed token.
func (m *Manager) Issue(ctx context.Context, username string) (string, Session, error) {
	now := time.Now()
	sess := Session{
		ID:        ulid.Make().String(),
		Username:  username,
		ExpiresAt: now.Add(m.ttl),
	}
	claims := jwt.RegisteredClaims{
		ID:        sess.ID,
		Subject:   username,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(sess.ExpiresAt),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", Session{}, fmt.Errorf("sign token: %w", err)
	}
	if err := m.sessions.Save(ctx, sess.ID, username, m.ttl); err != nil {
		return "", Session{}, err
	}
	return token, sess, nil
}

// Verify checks the token signature and expiry, then that its session is
// still registered.
func (m *Manager) Verify(ctx context.Context, token string) (Session, error) {
	claims, err := m.parse(token)
	if err != nil {
		return Session{}, err
	}
	username, err := m.sessions.Get(ctx, claims.ID)
	if errors.Is(err, ErrSessionNotFound) {
		return Session{}, ErrInvalidToken
	}
	if err != nil {
		return Session{}, err
	}
	if username != claims.Subject {
		return Session{}, ErrInvalidToken
	}
	return Session{ID: claims.ID, Username: username, ExpiresAt: claims.ExpiresAt.Time}, nil
}

// Revoke deletes the token's session. Invalid tokens are ignored.
func (m *Manager) Revoke(ctx context.Context, token string) error {
	claims, err := m.parse(token)
	if err != nil {
		return nil
	}
	return m.sessions.Delete(ctx, claims.ID)
}

func (m *Manager) parse(token string) (*jwt.RegisteredClaims, error) {
	claims := &jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return m.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil || !parsed.Valid || claims.ID == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
