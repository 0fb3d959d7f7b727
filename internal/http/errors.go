package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"athletic-metrics/internal/service"
)

func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrUsernameTaken):
		return http.StatusConflict
	case errors.Is(err, service.ErrRateLimited):
		return http.StatusTooManyRequests
	case errors.Is(err, service.ErrUnauthenticated), errors.Is(err, service.ErrUnauthorized):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// respondError escribe {"errorMessage": ...}. Los errores internos se loguean
// y no exponen el detalle al cliente.
func respondError(c *gin.Context, logger *zap.Logger, action string, err error) {
	status := statusFor(err)
	msg := action + ": " + err.Error()
	if status == http.StatusInternalServerError {
		logger.Error(action,
			zap.String("path", c.Request.URL.Path),
			zap.Error(err),
		)
		msg = action + ": unexpected error"
	} else {
		logger.Warn(action, zap.Int("status", status), zap.Error(err))
	}
	c.JSON(status, gin.H{"errorMessage": msg})
}
