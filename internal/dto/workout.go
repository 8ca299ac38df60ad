package dto

import (
	"time"

	"github.com/athlog/training_log_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// WorkoutDateLayout is the wire format for workout dates.
const WorkoutDateLayout = "2006-01-02"

// CreateWorkoutRequest defines the payload for logging a workout.
type CreateWorkoutRequest struct {
	Date           string           `json:"date" binding:"required"`
	Type           string           `json:"type"`
	Title          string           `json:"title"`
	Comments       string           `json:"comments"`
	CompletedHours decimal.Decimal  `json:"completedHours" binding:"required"`
	PlannedHours   *decimal.Decimal `json:"plannedHours"`
	DistanceKM     *decimal.Decimal `json:"distanceKM"`
}

// UpdateWorkoutRequest replaces the mutable fields of a workout.
// The entry form resubmits every field, so the shape matches create.
type UpdateWorkoutRequest struct {
	Date           string           `json:"date" binding:"required"`
	Type           string           `json:"type"`
	Title          string           `json:"title"`
	Comments       string           `json:"comments"`
	CompletedHours decimal.Decimal  `json:"completedHours" binding:"required"`
	PlannedHours   *decimal.Decimal `json:"plannedHours"`
	DistanceKM     *decimal.Decimal `json:"distanceKM"`
}

// BulkCreateWorkoutRequest creates the same workout for several athletes.
type BulkCreateWorkoutRequest struct {
	AthleteIDs []string             `json:"athleteIDs" binding:"required,min=1"`
	Workout    CreateWorkoutRequest `json:"workout" binding:"required"`
}

// BulkUpdateWorkoutRequest applies the same update once per athlete.
type BulkUpdateWorkoutRequest struct {
	AthleteIDs []string             `json:"athleteIDs" binding:"required,min=1"`
	Workout    UpdateWorkoutRequest `json:"workout" binding:"required"`
}

// ListWorkoutsParams defines query parameters for listing workouts.
type ListWorkoutsParams struct {
	Order string `form:"order,default=asc"`
	From  string `form:"from"`
	To    string `form:"to"`
}

// WorkoutResponse is the public representation of a workout.
type WorkoutResponse struct {
	WorkoutID          string           `json:"workoutID"`
	UserID             string           `json:"userID"`
	Date               string           `json:"date"`
	Type               string           `json:"type,omitempty"`
	Title              string           `json:"title,omitempty"`
	Comments           string           `json:"comments,omitempty"`
	CompletedHours     decimal.Decimal  `json:"completedHours"`
	PlannedHours       decimal.Decimal  `json:"plannedHours"`
	DistanceKM         *decimal.Decimal `json:"distanceKM,omitempty"`
	ExternalActivityID *int64           `json:"externalActivityID,omitempty"`
	CreatedAt          time.Time        `json:"createdAt"`
}

// ToWorkoutResponse converts a domain.Workout to its response DTO.
func ToWorkoutResponse(w *domain.Workout) WorkoutResponse {
	return WorkoutResponse{
		WorkoutID:          w.WorkoutID,
		UserID:             w.UserID,
		Date:               w.Date.Format(WorkoutDateLayout),
		Type:               w.Type,
		Title:              w.Title,
		Comments:           w.Comments,
		CompletedHours:     w.CompletedHours,
		PlannedHours:       w.PlannedHours,
		DistanceKM:         w.DistanceKM,
		ExternalActivityID: w.ExternalActivityID,
		CreatedAt:          w.CreatedAt,
	}
}

// ListWorkoutsResponse wraps a workout listing.
type ListWorkoutsResponse struct {
	Workouts []WorkoutResponse `json:"workouts"`
}

// ToListWorkoutsResponse converts a slice of domain.Workout to ListWorkoutsResponse.
func ToListWorkoutsResponse(ws []domain.Workout) ListWorkoutsResponse {
	out := make([]WorkoutResponse, len(ws))
	for i := range ws {
		out[i] = ToWorkoutResponse(&ws[i])
	}
	return ListWorkoutsResponse{Workouts: out}
}
