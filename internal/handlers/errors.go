package handlers

import (
	"errors"
	"net/http"

	"tombola/internal/response"
	"tombola/internal/tombola"

	"github.com/gin-gonic/gin"
	"github.com/google/logger"
)

// writeError renders err as an ErrorResponse. Domain errors keep their code;
// anything else is logged and hidden behind INTERNAL_ERROR.
func writeError(c *gin.Context, err error) {
	var te *tombola.Error
	if !errors.As(err, &te) {
		logger.Errorf("%s %s: %v", c.Request.Method, c.FullPath(), err)
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{
			Code:    "INTERNAL_ERROR",
			Message: "Internal server error",
		})
		return
	}

	c.JSON(statusFor(te), response.ErrorResponse{Code: te.Code, Message: te.Message})
}

func statusFor(te *tombola.Error) int {
	switch {
	case errors.Is(te, tombola.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(te, tombola.ErrValidation),
		errors.Is(te, tombola.ErrConflict),
		errors.Is(te, tombola.ErrNoEligibleParticipants):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func bindError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, response.ErrorResponse{
		Code:    tombola.CodeValidation,
		Message: "Invalid request body",
		Details: err.Error(),
	})
}
