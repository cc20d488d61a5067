package handlers

import (
	"context"
	"net/http"
	"time"

	"tombola/internal/response"

	"github.com/gin-gonic/gin"
	"github.com/google/logger"
)

// Health reports liveness. ping, when set, checks the storage backend.
//
//	@Summary	Health check
//	@Tags		system
//	@Produce	json
//	@Success	200	{object}	response.HealthResponse
//	@Failure	503	{object}	response.HealthResponse
//	@Router		/health [get]
func Health(storage string, ping func(ctx context.Context) error) gin.HandlerFunc {
	return func(c *gin.Context) {
		if ping != nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()
			if err := ping(ctx); err != nil {
				logger.Errorf("Health check: %v", err)
				c.JSON(http.StatusServiceUnavailable, response.HealthResponse{Status: "unavailable", Storage: storage})
				return
			}
		}
		c.JSON(http.StatusOK, response.HealthResponse{Status: "ok", Storage: storage})
	}
}
