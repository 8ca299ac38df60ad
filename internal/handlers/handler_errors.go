package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/athlog/training_log_app/internal/apperrors"
	"github.com/athlog/training_log_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// respondServiceError translates a service error into an HTTP response.
// fallbackMsg is used for errors that carry no known condition.
func respondServiceError(c *gin.Context, err error, fallbackMsg string) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	switch {
	case errors.Is(err, apperrors.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrDuplicate):
		c.JSON(http.StatusBadRequest, gin.H{"error": "username is already taken"})
	case errors.Is(err, apperrors.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "resource not found"})
	case errors.Is(err, apperrors.ErrNoTokenOnFile):
		c.JSON(http.StatusBadRequest, gin.H{"error": "no Strava account connected"})
	case errors.Is(err, apperrors.ErrRefreshRejected):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Strava rejected the stored credentials, please reconnect"})
	case errors.Is(err, apperrors.ErrProviderUnreachable):
		c.JSON(http.StatusBadGateway, gin.H{"error": "Strava could not be reached"})
	default:
		logger.Error(fallbackMsg, slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallbackMsg})
	}
}
