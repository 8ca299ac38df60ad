package handlers

import (
	portssvc "github.com/athlog/training_log_app/internal/core/ports/services"
	"github.com/athlog/training_log_app/internal/middleware"
	"github.com/athlog/training_log_app/pkg/config"
	"github.com/gin-gonic/gin"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	// Add health check route
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	// Register public authentication routes
	registerAuthRoutes(r, cfg, services.User)

	// Setup API v1 routes with Auth Middleware, passing service interfaces
	setupAPIV1Routes(r, cfg, services)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	// Apply AuthMiddleware to the entire v1 group
	v1 := r.Group("/api/v1", middleware.AuthMiddleware(cfg.JWTSecret))

	registerSessionRoutes(v1, cfg, services.User)
	registerUserRoutes(v1, services.User, services.Workout)
	registerWorkoutRoutes(v1, services.Workout)
	registerStravaRoutes(v1, services.Strava, cfg.IsProduction)

	// Coach routes run a fresh role lookup on every request
	coach := v1.Group("", middleware.RequireCoach(services.User))
	registerCoachUserRoutes(coach, services.User, services.Workout)
	registerCoachWorkoutRoutes(coach, services.Workout)
}
