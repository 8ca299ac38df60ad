package services

import (
	"context"
	"fmt"
	"time"

	"github.com/athlog/training_log_app/internal/apperrors"
	"github.com/athlog/training_log_app/internal/core/domain"
	portsrepo "github.com/athlog/training_log_app/internal/core/ports/repositories"
	portssvc "github.com/athlog/training_log_app/internal/core/ports/services"
	"github.com/athlog/training_log_app/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type WorkoutService struct {
	workoutRepo portsrepo.WorkoutRepositoryFacade
}

func NewWorkoutService(workoutRepo portsrepo.WorkoutRepositoryFacade) *WorkoutService {
	return &WorkoutService{workoutRepo: workoutRepo}
}

// Ensure WorkoutService implements portssvc.WorkoutSvcFacade
var _ portssvc.WorkoutSvcFacade = (*WorkoutService)(nil)

// validateWorkoutFields checks the shared create/update invariants and
// returns the parsed date and the effective planned hours.
func validateWorkoutFields(date string, workoutType, title, comments string, completedHours decimal.Decimal, plannedHours *decimal.Decimal) (time.Time, decimal.Decimal, error) {
	parsedDate, err := time.Parse(dto.WorkoutDateLayout, date)
	if err != nil {
		return time.Time{}, decimal.Zero, fmt.Errorf("must provide a valid date (%s): %w", dto.WorkoutDateLayout, apperrors.ErrValidation)
	}
	if !completedHours.IsPositive() {
		return time.Time{}, decimal.Zero, fmt.Errorf("completed hours must be a positive number: %w", apperrors.ErrValidation)
	}
	planned := decimal.Zero
	if plannedHours != nil {
		if plannedHours.IsNegative() {
			return time.Time{}, decimal.Zero, fmt.Errorf("planned hours must not be negative: %w", apperrors.ErrValidation)
		}
		planned = *plannedHours
	}
	if workoutType == "" && title == "" && comments == "" {
		return time.Time{}, decimal.Zero, fmt.Errorf("must provide more info (title, type, comments): %w", apperrors.ErrValidation)
	}
	return parsedDate, planned, nil
}

func (s *WorkoutService) buildWorkout(ownerID string, req dto.CreateWorkoutRequest, creatorUserID string) (*domain.Workout, error) {
	date, planned, err := validateWorkoutFields(req.Date, req.Type, req.Title, req.Comments, req.CompletedHours, req.PlannedHours)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	workout := domain.Workout{
		WorkoutID:      uuid.NewString(),
		UserID:         ownerID,
		Date:           date,
		Type:           req.Type,
		Title:          req.Title,
		Comments:       req.Comments,
		CompletedHours: req.CompletedHours,
		PlannedHours:   planned,
		DistanceKM:     req.DistanceKM,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}
	return &workout, nil
}

func (s *WorkoutService) CreateWorkout(ctx context.Context, ownerID string, req dto.CreateWorkoutRequest, creatorUserID string) (*domain.Workout, error) {
	workout, err := s.buildWorkout(ownerID, req, creatorUserID)
	if err != nil {
		return nil, err
	}
	if err := s.workoutRepo.SaveWorkout(ctx, *workout); err != nil {
		return nil, fmt.Errorf("failed to create workout: %w", err)
	}
	return workout, nil
}

// CreateWorkoutForAthletes persists the same workout once per athlete. The
// batch is written in one transaction, all-or-nothing.
func (s *WorkoutService) CreateWorkoutForAthletes(ctx context.Context, athleteIDs []string, req dto.CreateWorkoutRequest, creatorUserID string) ([]domain.Workout, error) {
	if len(athleteIDs) == 0 {
		return nil, fmt.Errorf("must provide an athlete(s): %w", apperrors.ErrValidation)
	}

	workouts := make([]domain.Workout, 0, len(athleteIDs))
	for _, athleteID := range athleteIDs {
		w, err := s.buildWorkout(athleteID, req, creatorUserID)
		if err != nil {
			return nil, err
		}
		workouts = append(workouts, *w)
	}

	if err := s.workoutRepo.SaveWorkouts(ctx, workouts); err != nil {
		return nil, fmt.Errorf("failed to create workouts for athletes: %w", err)
	}
	return workouts, nil
}

func (s *WorkoutService) ListWorkoutsForUser(ctx context.Context, userID string, params dto.ListWorkoutsParams) ([]domain.Workout, error) {
	ascending := true
	switch params.Order {
	case "", "asc":
	case "desc":
		ascending = false
	default:
		return nil, fmt.Errorf("order must be asc or desc: %w", apperrors.ErrValidation)
	}

	var from, to *time.Time
	if params.From != "" {
		t, err := time.Parse(dto.WorkoutDateLayout, params.From)
		if err != nil {
			return nil, fmt.Errorf("invalid from date: %w", apperrors.ErrValidation)
		}
		from = &t
	}
	if params.To != "" {
		t, err := time.Parse(dto.WorkoutDateLayout, params.To)
		if err != nil {
			return nil, fmt.Errorf("invalid to date: %w", apperrors.ErrValidation)
		}
		to = &t
	}

	workouts, err := s.workoutRepo.FindWorkoutsByUser(ctx, userID, from, to, ascending)
	if err != nil {
		return nil, fmt.Errorf("failed to list workouts: %w", err)
	}
	return workouts, nil
}

func (s *WorkoutService) HoursTotalsForUser(ctx context.Context, userID string) (decimal.Decimal, decimal.Decimal, error) {
	completed, planned, err := s.workoutRepo.SumHoursByUser(ctx, userID)
	if err != nil {
		return decimal.Zero, decimal.Zero, fmt.Errorf("failed to total hours: %w", err)
	}
	return completed, planned, nil
}

// UpdateWorkout replaces the mutable fields of a workout. The update is
// always scoped to scopeUserID so ids cannot be guessed across owners.
func (s *WorkoutService) UpdateWorkout(ctx context.Context, workoutID string, req dto.UpdateWorkoutRequest, scopeUserID string, updaterUserID string) error {
	date, planned, err := validateWorkoutFields(req.Date, req.Type, req.Title, req.Comments, req.CompletedHours, req.PlannedHours)
	if err != nil {
		return err
	}

	workout := domain.Workout{
		WorkoutID:      workoutID,
		UserID:         scopeUserID,
		Date:           date,
		Type:           req.Type,
		Title:          req.Title,
		Comments:       req.Comments,
		CompletedHours: req.CompletedHours,
		PlannedHours:   planned,
		DistanceKM:     req.DistanceKM,
		AuditFields: domain.AuditFields{
			LastUpdatedAt: time.Now(),
			LastUpdatedBy: updaterUserID,
		},
	}

	if err := s.workoutRepo.UpdateWorkoutOwned(ctx, workout); err != nil {
		return fmt.Errorf("failed to update workout: %w", err)
	}
	return nil
}

// UpdateWorkoutForAthletes applies the same update once per athlete, each
// scoped to that athlete, in one transaction.
func (s *WorkoutService) UpdateWorkoutForAthletes(ctx context.Context, workoutID string, athleteIDs []string, req dto.UpdateWorkoutRequest, updaterUserID string) error {
	if len(athleteIDs) == 0 {
		return fmt.Errorf("must provide an athlete(s): %w", apperrors.ErrValidation)
	}

	date, planned, err := validateWorkoutFields(req.Date, req.Type, req.Title, req.Comments, req.CompletedHours, req.PlannedHours)
	if err != nil {
		return err
	}

	workout := domain.Workout{
		WorkoutID:      workoutID,
		Date:           date,
		Type:           req.Type,
		Title:          req.Title,
		Comments:       req.Comments,
		CompletedHours: req.CompletedHours,
		PlannedHours:   planned,
		DistanceKM:     req.DistanceKM,
		AuditFields: domain.AuditFields{
			LastUpdatedAt: time.Now(),
			LastUpdatedBy: updaterUserID,
		},
	}

	if err := s.workoutRepo.UpdateWorkoutForOwners(ctx, workout, athleteIDs); err != nil {
		return fmt.Errorf("failed to update workout for athletes: %w", err)
	}
	return nil
}

func (s *WorkoutService) DeleteWorkout(ctx context.Context, workoutID string, scopeUserID string) error {
	if err := s.workoutRepo.DeleteWorkoutOwned(ctx, workoutID, scopeUserID); err != nil {
		return fmt.Errorf("failed to delete workout: %w", err)
	}
	return nil
}
