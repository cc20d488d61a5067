package auth

import (
	"errors"
	"net/http"
	"strings"

	"tombola/internal/response"

	"github.com/gin-gonic/gin"
	"github.com/google/logger"
)

const (
	// CookieName holds the admin token set by the login endpoint.
	CookieName = "auth_token"
	// ContextAdminKey is the gin context key of the authenticated admin username.
	ContextAdminKey = "admin"
)

// TokenFromRequest reads the admin token from the auth_token cookie, falling
// back to an Authorization: Bearer header.
func TokenFromRequest(c *gin.Context) string {
	if token, err := c.Cookie(CookieName); err == nil && token != "" {
		return token
	}
	header := c.GetHeader("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	}
	return ""
}

// AdminFromContext returns the username set by AuthMiddleware.
func AdminFromContext(c *gin.Context) string {
	return c.GetString(ContextAdminKey)
}

// AuthMiddleware rejects requests without a live admin session.
func AuthMiddleware(m *Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := TokenFromRequest(c)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.ErrorResponse{
				Code:    "NO_AUTH_TOKEN",
				Message: "Authentication required",
			})
			return
		}

		sess, err := m.Verify(c.Request.Context(), token)
		if err != nil {
			if !errors.Is(err, ErrInvalidToken) {
				logger.Errorf("Session lookup failed: %v", err)
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.ErrorResponse{
				Code:    "INVALID_TOKEN",
				Message: "Invalid or expired token",
			})
			return
		}

		c.Set(ContextAdminKey, sess.Username)
		c.Next()
	}
}
