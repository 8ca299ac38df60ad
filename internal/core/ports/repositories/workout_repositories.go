package repositories

import (
	"context"
	"time"

	"github.com/athlog/training_log_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// WorkoutReader defines read operations for workout data
type WorkoutReader interface {
	// FindWorkoutsByUser retrieves the workouts owned by userID, ordered by
	// date. Either bound of the date range may be nil.
	FindWorkoutsByUser(ctx context.Context, userID string, from, to *time.Time, ascending bool) ([]domain.Workout, error)

	// SumHoursByUser returns the total completed and planned hours over all
	// workouts owned by userID.
	SumHoursByUser(ctx context.Context, userID string) (completed, planned decimal.Decimal, err error)
}

// WorkoutWriter defines write operations for workout data
type WorkoutWriter interface {
	// SaveWorkout persists a single new workout.
	SaveWorkout(ctx context.Context, workout domain.Workout) error

	// SaveWorkouts persists a batch of workouts in one transaction,
	// all-or-nothing.
	SaveWorkouts(ctx context.Context, workouts []domain.Workout) error

	// SaveImportedWorkout inserts a provider-imported workout, ignoring the
	// insert when a row with the same external activity id already exists.
	// Reports whether a row was actually inserted.
	SaveImportedWorkout(ctx context.Context, workout domain.Workout) (bool, error)

	// UpdateWorkoutOwned updates a workout scoped to its owning user.
	// Returns apperrors.ErrNotFound when no row matches both ids.
	UpdateWorkoutOwned(ctx context.Context, workout domain.Workout) error

	// UpdateWorkoutForOwners applies the same update once per owner id,
	// each scoped by that owner, in one transaction.
	UpdateWorkoutForOwners(ctx context.Context, workout domain.Workout, ownerIDs []string) error

	// DeleteWorkoutOwned deletes a workout scoped to its owning user.
	// Returns apperrors.ErrNotFound when no row matches both ids.
	DeleteWorkoutOwned(ctx context.Context, workoutID string, ownerID string) error
}

// WorkoutRepositoryFacade combines all workout-related repository interfaces
type WorkoutRepositoryFacade interface {
	WorkoutReader
	WorkoutWriter
}
