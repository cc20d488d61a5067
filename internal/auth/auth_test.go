package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager(t *testing.T) *Manager {
	t.Helper()
	m, err := NewManager("test-secret", time.Hour, NewMemorySessionStore())
	require.NoError(t, err)
	return m
}

func TestManagerIssueVerifyRevoke(t *testing.T) {
	ctx := context.Background()
	m := newTestManager(t)

	token, sess, err := m.Issue(ctx, "admin")
	require.NoError(t, err)
	assert.NotEmpty(t, sess.ID)

	got, err := m.Verify(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, "admin", got.Username)
	assert.Equal(t, sess.ID, got.ID)

	require.NoError(t, m.Revoke(ctx, token))
	_, err = m.Verify(ctx, token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestManagerRejectsForeignTokens(t *testing.T) {
	ctx := context.Background()
	m := newTestManager(t)

	_, err := m.Verify(ctx, "not-a-jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)

	other, err := NewManager("other-secret", time.Hour, NewMemorySessionStore())
	require.NoError(t, err)
	token, _, err := other.Issue(ctx, "admin")
	require.NoError(t, err)
	_, err = m.Verify(ctx, token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ID:        "01J0000000000000000000000",
		Subject:   "admin",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
	})
	signed, err := expired.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	_, err = m.Verify(ctx, signed)
	assert.ErrorIs(t, err, ErrInvalidToken)

	// Signed with the right key but no session behind it.
	orphan := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ID:        "01J0000000000000000000001",
		Subject:   "admin",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
	})
	signed, err = orphan.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	_, err = m.Verify(ctx, signed)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestNewManagerValidation(t *testing.T) {
	_, err := NewManager("", time.Hour, NewMemorySessionStore())
	assert.Error(t, err)
	_, err = NewManager("x", 0, NewMemorySessionStore())
	assert.Error(t, err)
	_, err = NewManager("x", time.Hour, nil)
	assert.Error(t, err)
}

func TestMemorySessionStoreExpiry(t *testing.T) {
	ctx := context.Background()
	s := NewMemorySessionStore()
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }

	require.NoError(t, s.Save(ctx, "a", "admin", time.Minute))
	user, err := s.Get(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, "admin", user)

	now = now.Add(time.Minute)
	_, err = s.Get(ctx, "a")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestRedisSessionStore(t *testing.T) {
	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("TEST_REDIS_ADDR not set")
	}
	ctx := context.Background()
	client := redis.NewClient(&redis.Options{Addr: addr})
	defer client.Close()
	s := NewRedisSessionStore(client)

	require.NoError(t, s.Save(ctx, "test-session", "admin", time.Minute))
	user, err := s.Get(ctx, "test-session")
	require.NoError(t, err)
	assert.Equal(t, "admin", user)

	require.NoError(t, s.Delete(ctx, "test-session"))
	_, err = s.Get(ctx, "test-session")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func setupProtected(m *Manager) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", AuthMiddleware(m), func(c *gin.Context) {
		c.String(http.StatusOK, AdminFromContext(c))
	})
	return r
}

func TestAuthMiddleware(t *testing.T) {
	m := newTestManager(t)
	r := setupProtected(m)
	token, _, err := m.Issue(context.Background(), "root")
	require.NoError(t, err)

	t.Run("no token", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/protected", nil))
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "NO_AUTH_TOKEN")
	})

	t.Run("bad token", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer garbage")
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "INVALID_TOKEN")
	})

	t.Run("bearer", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "root", w.Body.String())
	})

	t.Run("cookie", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.AddCookie(&http.Cookie{Name: CookieName, Value: token})
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
	})
}
