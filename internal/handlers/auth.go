package handlers

import (
	"crypto/subtle"
	"errors"
	"net/http"

	"tombola/internal/auth"
	"tombola/internal/response"

	"github.com/gin-gonic/gin"
	"github.com/google/logger"
	"golang.org/x/crypto/bcrypt"
)

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// AuthHandler serves the admin login endpoints against a single configured
// account.
type AuthHandler struct {
	manager      *auth.Manager
	username     string
	passwordHash []byte
	cookieSecure bool
}

// NewAuthHandler hashes the admin password once so requests only run the
// bcrypt comparison.
func NewAuthHandler(m *auth.Manager, username, password string, cookieSecure bool) (*AuthHandler, error) {
	if username == "" || password == "" {
		return nil, errors.New("admin username and password are required")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	return &AuthHandler{manager: m, username: username, passwordHash: hash, cookieSecure: cookieSecure}, nil
}

// @Summary		Admin login
// @Description	Checks the admin credentials, opens a session and sets the auth_token cookie
// @Tags			auth
// @Accept			json
// @Produce		json
// @Param			credentials	body		LoginRequest			true	"Admin credentials"
// @Success		200			{object}	response.TokenResponse	"Logged in"
// @Failure		400			{object}	response.ErrorResponse	"VALIDATION_ERROR"
// @Failure		401			{object}	response.ErrorResponse	"INVALID_CREDENTIALS"
// @Failure		500			{object}	response.ErrorResponse	"INTERNAL_ERROR"
// @Router			/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{
			Code:    "VALIDATION_ERROR",
			Message: "Invalid request body",
			Details: err.Error(),
		})
		return
	}

	userOK := subtle.ConstantTimeCompare([]byte(req.Username), []byte(h.username)) == 1
	passErr := bcrypt.CompareHashAndPassword(h.passwordHash, []byte(req.Password))
	if !userOK || passErr != nil {
		logger.Warningf("Failed admin login for %q from %s", req.Username, c.ClientIP())
		c.JSON(http.StatusUnauthorized, response.ErrorResponse{
			Code:    "INVALID_CREDENTIALS",
			Message: "Invalid username or password",
		})
		return
	}

	token, sess, err := h.manager.Issue(c.Request.Context(), h.username)
	if err != nil {
		logger.Errorf("Issue admin session: %v", err)
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{
			Code:    "INTERNAL_ERROR",
			Message: "Could not open a session",
		})
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(auth.CookieName, token, int(h.manager.TTL().Seconds()), "/", "", h.cookieSecure, true)
	logger.Infof("Admin %s logged in", h.username)
	c.JSON(http.StatusOK, response.TokenResponse{AccessToken: token, ExpiresAt: sess.ExpiresAt})
}

// @Summary		Admin logout
// @Description	Revokes the current session and clears the auth_token cookie
// @Tags			auth
// @Produce		json
// @Success		200	{object}	response.SuccessResponse
// @Router			/auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	if token := auth.TokenFromRequest(c); token != "" {
		if err := h.manager.Revoke(c.Request.Context(), token); err != nil {
			logger.Errorf("Revoke admin session: %v", err)
		}
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(auth.CookieName, "", -1, "/", "", h.cookieSecure, true)
	c.JSON(http.StatusOK, response.SuccessResponse{Message: "Logged out"})
}

// @Summary		Admin session status
// @Tags			auth
// @Produce		json
// @Success		200	{object}	response.AuthStatus
// @Router			/auth/status [get]
func (h *AuthHandler) Status(c *gin.Context) {
	token := auth.TokenFromRequest(c)
	if token == "" {
		c.JSON(http.StatusOK, response.AuthStatus{})
		return
	}
	sess, err := h.manager.Verify(c.Request.Context(), token)
	if err != nil {
		c.JSON(http.StatusOK, response.AuthStatus{})
		return
	}
	c.JSON(http.StatusOK, response.AuthStatus{Authenticated: true, Username: sess.Username})
}

// RegisterRoutes mounts the auth endpoints on rg.
func (h *AuthHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/login", h.Login)
	rg.POST("/logout", h.Logout)
	rg.GET("/status", h.Status)
}
