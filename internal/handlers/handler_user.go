package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/athlog/training_log_app/internal/core/ports/services"
	"github.com/athlog/training_log_app/internal/dto"
	"github.com/athlog/training_log_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// userHandler handles HTTP requests related to accounts and the dashboard.
type userHandler struct {
	userService    portssvc.UserSvcFacade
	workoutService portssvc.WorkoutReaderSvc
}

func newUserHandler(us portssvc.UserSvcFacade, ws portssvc.WorkoutReaderSvc) *userHandler {
	return &userHandler{
		userService:    us,
		workoutService: ws,
	}
}

// registerUserRoutes registers the self-service account routes.
func registerUserRoutes(rg *gin.RouterGroup, userService portssvc.UserSvcFacade, workoutService portssvc.WorkoutReaderSvc) {
	h := newUserHandler(userService, workoutService)

	rg.GET("/home", h.home)
	rg.PUT("/users/me", h.updateOwnAccount)
}

// registerCoachUserRoutes registers the coach-gated account routes.
func registerCoachUserRoutes(rg *gin.RouterGroup, userService portssvc.UserSvcFacade, workoutService portssvc.WorkoutReaderSvc) {
	h := newUserHandler(userService, workoutService)

	rg.GET("/athletes", h.listAthletes)
	rg.PUT("/athletes/:id", h.updateAthleteAccount)
	rg.DELETE("/athletes/:id", h.deleteAthlete)
	rg.DELETE("/users/me", h.deleteOwnAccount)
}

// home returns the logged-in user's dashboard: account details plus the
// running totals of completed and planned hours.
func (h *userHandler) home(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	user, err := h.userService.GetUserByID(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, err, "Failed to load dashboard")
		return
	}

	completed, planned, err := h.workoutService.HoursTotalsForUser(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, err, "Failed to total hours")
		return
	}

	c.JSON(http.StatusOK, dto.HomeResponse{
		User:                dto.ToUserResponse(user),
		Coach:               user.Coach,
		TotalCompletedHours: completed,
		TotalPlannedHours:   planned,
	})
}

func (h *userHandler) updateOwnAccount(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.UpdateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	updated, err := h.userService.UpdateAccount(c.Request.Context(), userID, req, userID)
	if err != nil {
		respondServiceError(c, err, "Failed to update account")
		return
	}

	c.JSON(http.StatusOK, dto.ToUserResponse(updated))
}

func (h *userHandler) listAthletes(c *gin.Context) {
	athletes, err := h.userService.ListAthletes(c.Request.Context())
	if err != nil {
		respondServiceError(c, err, "Failed to list athletes")
		return
	}

	c.JSON(http.StatusOK, dto.ToListAthletesResponse(athletes))
}

// updateAthleteAccount lets a coach update an athlete's account details.
func (h *userHandler) updateAthleteAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	athleteID := c.Param("id")

	coachUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.UpdateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	updated, err := h.userService.UpdateAccount(c.Request.Context(), athleteID, req, coachUserID)
	if err != nil {
		respondServiceError(c, err, "Failed to update athlete account")
		return
	}

	logger.Info("Athlete account updated",
		slog.String("athlete_id", athleteID),
		slog.String("coach_id", coachUserID),
	)
	c.JSON(http.StatusOK, dto.ToUserResponse(updated))
}

// deleteAthlete removes an athlete's account and every workout row that
// belongs to it, atomically.
func (h *userHandler) deleteAthlete(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	athleteID := c.Param("id")

	if err := h.userService.DeleteUser(c.Request.Context(), athleteID); err != nil {
		respondServiceError(c, err, "Failed to delete athlete")
		return
	}

	logger.Info("Athlete account deleted", slog.String("athlete_id", athleteID))
	c.Status(http.StatusNoContent)
}

func (h *userHandler) deleteOwnAccount(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.userService.DeleteUser(c.Request.Context(), userID); err != nil {
		respondServiceError(c, err, "Failed to delete account")
		return
	}

	c.Status(http.StatusNoContent)
}
