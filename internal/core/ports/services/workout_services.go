package services

import (
	"context"

	"github.com/athlog/training_log_app/internal/core/domain"
	"github.com/athlog/training_log_app/internal/dto"
	"github.com/shopspring/decimal"
)

// WorkoutReaderSvc defines read operations for workout data
type WorkoutReaderSvc interface {
	// ListWorkoutsForUser retrieves workouts owned by userID ordered by
	// date, with an optional date range.
	ListWorkoutsForUser(ctx context.Context, userID string, params dto.ListWorkoutsParams) ([]domain.Workout, error)

	// HoursTotalsForUser returns total completed and planned hours for the
	// home dashboard.
	HoursTotalsForUser(ctx context.Context, userID string) (completed, planned decimal.Decimal, err error)
}

// WorkoutWriterSvc defines write operations for workout data
type WorkoutWriterSvc interface {
	// CreateWorkout validates and persists a workout owned by ownerID.
	CreateWorkout(ctx context.Context, ownerID string, req dto.CreateWorkoutRequest, creatorUserID string) (*domain.Workout, error)

	// CreateWorkoutForAthletes persists the same workout once per athlete,
	// all-or-nothing.
	CreateWorkoutForAthletes(ctx context.Context, athleteIDs []string, req dto.CreateWorkoutRequest, creatorUserID string) ([]domain.Workout, error)

	// UpdateWorkout updates a workout scoped to scopeUserID.
	UpdateWorkout(ctx context.Context, workoutID string, req dto.UpdateWorkoutRequest, scopeUserID string, updaterUserID string) error

	// UpdateWorkoutForAthletes applies the same update once per athlete,
	// each scoped to that athlete, all-or-nothing.
	UpdateWorkoutForAthletes(ctx context.Context, workoutID string, athleteIDs []string, req dto.UpdateWorkoutRequest, updaterUserID string) error

	// DeleteWorkout deletes a workout scoped to scopeUserID.
	DeleteWorkout(ctx context.Context, workoutID string, scopeUserID string) error
}

// WorkoutSvcFacade combines all workout-related service interfaces
type WorkoutSvcFacade interface {
	WorkoutReaderSvc
	WorkoutWriterSvc
}
