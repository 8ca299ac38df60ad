package middleware

import (
	"net/http"

	portssvc "github.com/athlog/training_log_app/internal/core/ports/services"
	"github.com/gin-gonic/gin"
)

// RequireCoach gates a route to coach accounts. It must run after
// AuthMiddleware. The role flag is looked up fresh on every request so a
// role change takes effect on the user's very next request.
func RequireCoach(users portssvc.UserReaderSvc) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := GetLoggerFromCtx(c.Request.Context())

		userID, ok := GetUserIDFromContext(c)
		if !ok {
			logger.Error("User ID not found in context for coach check")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		user, err := users.GetUserByID(c.Request.Context(), userID)
		if err != nil || !user.Coach {
			logger.Warn("Coach-gated route refused", "user_id", userID)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "must have a coach's account"})
			return
		}

		c.Next()
	}
}
