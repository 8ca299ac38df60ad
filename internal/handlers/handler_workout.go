package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/athlog/training_log_app/internal/core/ports/services"
	"github.com/athlog/training_log_app/internal/dto"
	"github.com/athlog/training_log_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// workoutHandler handles HTTP requests related to workouts.
type workoutHandler struct {
	workoutService portssvc.WorkoutSvcFacade
}

func newWorkoutHandler(ws portssvc.WorkoutSvcFacade) *workoutHandler {
	return &workoutHandler{workoutService: ws}
}

// registerWorkoutRoutes registers the self-service workout routes.
func registerWorkoutRoutes(rg *gin.RouterGroup, workoutService portssvc.WorkoutSvcFacade) {
	h := newWorkoutHandler(workoutService)

	workouts := rg.Group("/workouts")
	{
		workouts.POST("", h.createWorkout)
		workouts.GET("", h.listWorkouts)
		workouts.PUT("/:id", h.updateWorkout)
		workouts.DELETE("/:id", h.deleteWorkout)
	}
}

// registerCoachWorkoutRoutes registers the coach-gated workout routes.
func registerCoachWorkoutRoutes(rg *gin.RouterGroup, workoutService portssvc.WorkoutSvcFacade) {
	h := newWorkoutHandler(workoutService)

	rg.GET("/athletes/:id/workouts", h.listAthleteWorkouts)
	rg.DELETE("/athletes/:id/workouts/:workoutID", h.deleteAthleteWorkout)

	coach := rg.Group("/coach/workouts")
	{
		coach.POST("", h.bulkCreateWorkouts)
		coach.PUT("/:id", h.bulkUpdateWorkout)
	}
}

func (h *workoutHandler) createWorkout(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.CreateWorkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	workout, err := h.workoutService.CreateWorkout(c.Request.Context(), userID, req, userID)
	if err != nil {
		respondServiceError(c, err, "Failed to create workout")
		return
	}

	c.JSON(http.StatusCreated, dto.ToWorkoutResponse(workout))
}

func (h *workoutHandler) listWorkouts(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var params dto.ListWorkoutsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	workouts, err := h.workoutService.ListWorkoutsForUser(c.Request.Context(), userID, params)
	if err != nil {
		respondServiceError(c, err, "Failed to list workouts")
		return
	}

	c.JSON(http.StatusOK, dto.ToListWorkoutsResponse(workouts))
}

// updateWorkout replaces the mutable fields of one of the caller's own
// workouts. A workout id belonging to someone else comes back 404.
func (h *workoutHandler) updateWorkout(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	workoutID := c.Param("id")

	var req dto.UpdateWorkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	if err := h.workoutService.UpdateWorkout(c.Request.Context(), workoutID, req, userID, userID); err != nil {
		respondServiceError(c, err, "Failed to update workout")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "workout updated"})
}

func (h *workoutHandler) deleteWorkout(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	workoutID := c.Param("id")

	if err := h.workoutService.DeleteWorkout(c.Request.Context(), workoutID, userID); err != nil {
		respondServiceError(c, err, "Failed to delete workout")
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *workoutHandler) listAthleteWorkouts(c *gin.Context) {
	athleteID := c.Param("id")

	var params dto.ListWorkoutsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	workouts, err := h.workoutService.ListWorkoutsForUser(c.Request.Context(), athleteID, params)
	if err != nil {
		respondServiceError(c, err, "Failed to list athlete workouts")
		return
	}

	c.JSON(http.StatusOK, dto.ToListWorkoutsResponse(workouts))
}

// bulkCreateWorkouts writes the same workout once per athlete in one
// transaction, all-or-nothing.
func (h *workoutHandler) bulkCreateWorkouts(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	coachUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.BulkCreateWorkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	workouts, err := h.workoutService.CreateWorkoutForAthletes(c.Request.Context(), req.AthleteIDs, req.Workout, coachUserID)
	if err != nil {
		respondServiceError(c, err, "Failed to create workouts for athletes")
		return
	}

	logger.Info("Workouts created for athletes",
		slog.String("coach_id", coachUserID),
		slog.Int("count", len(workouts)),
	)
	c.JSON(http.StatusCreated, dto.ToListWorkoutsResponse(workouts))
}

func (h *workoutHandler) bulkUpdateWorkout(c *gin.Context) {
	coachUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	workoutID := c.Param("id")

	var req dto.BulkUpdateWorkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	if err := h.workoutService.UpdateWorkoutForAthletes(c.Request.Context(), workoutID, req.AthleteIDs, req.Workout, coachUserID); err != nil {
		respondServiceError(c, err, "Failed to update workout for athletes")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "workout updated"})
}

// deleteAthleteWorkout removes one workout scoped to the athlete in the
// path, so a stale or mismatched id pair comes back 404.
func (h *workoutHandler) deleteAthleteWorkout(c *gin.Context) {
	athleteID := c.Param("id")
	workoutID := c.Param("workoutID")

	if err := h.workoutService.DeleteWorkout(c.Request.Context(), workoutID, athleteID); err != nil {
		respondServiceError(c, err, "Failed to delete athlete workout")
		return
	}

	c.Status(http.StatusNoContent)
}
