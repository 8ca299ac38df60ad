package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/athlog/training_log_app/internal/apperrors"
	"github.com/athlog/training_log_app/internal/core/domain"
	portsrepo "github.com/athlog/training_log_app/internal/core/ports/repositories"
	"github.com/athlog/training_log_app/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type PgxWorkoutRepository struct {
	db *pgxpool.Pool
}

func newPgxWorkoutRepository(db *pgxpool.Pool) portsrepo.WorkoutRepositoryFacade {
	return &PgxWorkoutRepository{db: db}
}

// Ensure PgxWorkoutRepository implements portsrepo.WorkoutRepositoryFacade
var _ portsrepo.WorkoutRepositoryFacade = (*PgxWorkoutRepository)(nil)

func toModelWorkout(d domain.Workout) models.Workout {
	return models.Workout{
		WorkoutID:          d.WorkoutID,
		UserID:             d.UserID,
		Date:               d.Date,
		Type:               d.Type,
		Title:              d.Title,
		Comments:           d.Comments,
		CompletedHours:     d.CompletedHours,
		PlannedHours:       d.PlannedHours,
		DistanceKM:         d.DistanceKM,
		ExternalActivityID: d.ExternalActivityID,
		AuditFields: models.AuditFields{
			CreatedAt:     d.CreatedAt,
			CreatedBy:     d.CreatedBy,
			LastUpdatedAt: d.LastUpdatedAt,
			LastUpdatedBy: d.LastUpdatedBy,
		},
	}
}

func toDomainWorkout(m models.Workout) domain.Workout {
	return domain.Workout{
		WorkoutID:          m.WorkoutID,
		UserID:             m.UserID,
		Date:               m.Date,
		Type:               m.Type,
		Title:              m.Title,
		Comments:           m.Comments,
		CompletedHours:     m.CompletedHours,
		PlannedHours:       m.PlannedHours,
		DistanceKM:         m.DistanceKM,
		ExternalActivityID: m.ExternalActivityID,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

const workoutColumns = `workout_id, user_id, workout_date, workout_type, title, comments, completed_hours, planned_hours, distance_km, external_activity_id, created_at, created_by, last_updated_at, last_updated_by`

const insertWorkoutQuery = `
    INSERT INTO workouts (` + workoutColumns + `)
    VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`

func workoutInsertArgs(m models.Workout) []any {
	return []any{
		m.WorkoutID,
		m.UserID,
		m.Date,
		m.Type,
		m.Title,
		m.Comments,
		m.CompletedHours,
		m.PlannedHours,
		m.DistanceKM,
		m.ExternalActivityID,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	}
}

func (r *PgxWorkoutRepository) SaveWorkout(ctx context.Context, workout domain.Workout) error {
	m := toModelWorkout(workout)
	_, err := r.db.Exec(ctx, insertWorkoutQuery+`;`, workoutInsertArgs(m)...)
	if err != nil {
		return fmt.Errorf("failed to save workout: %w", err)
	}
	return nil
}

// SaveWorkouts persists a batch inside one transaction, all-or-nothing.
func (r *PgxWorkoutRepository) SaveWorkouts(ctx context.Context, workouts []domain.Workout) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin bulk save transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, w := range workouts {
		m := toModelWorkout(w)
		if _, err := tx.Exec(ctx, insertWorkoutQuery+`;`, workoutInsertArgs(m)...); err != nil {
			return fmt.Errorf("failed to save workout for user %s: %w", w.UserID, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit bulk save transaction: %w", err)
	}
	return nil
}

// SaveImportedWorkout inserts an imported row unless its external activity id
// is already present, so re-syncing never duplicates rows.
func (r *PgxWorkoutRepository) SaveImportedWorkout(ctx context.Context, workout domain.Workout) (bool, error) {
	m := toModelWorkout(workout)
	cmdTag, err := r.db.Exec(ctx, insertWorkoutQuery+`
    ON CONFLICT (external_activity_id) DO NOTHING;`, workoutInsertArgs(m)...)
	if err != nil {
		return false, fmt.Errorf("failed to save imported workout: %w", err)
	}
	return cmdTag.RowsAffected() > 0, nil
}

func (r *PgxWorkoutRepository) FindWorkoutsByUser(ctx context.Context, userID string, from, to *time.Time, ascending bool) ([]domain.Workout, error) {
	query := `SELECT ` + workoutColumns + ` FROM workouts WHERE user_id = $1`
	args := []any{userID}
	if from != nil {
		args = append(args, *from)
		query += fmt.Sprintf(" AND workout_date >= $%d", len(args))
	}
	if to != nil {
		args = append(args, *to)
		query += fmt.Sprintf(" AND workout_date <= $%d", len(args))
	}
	if ascending {
		query += ` ORDER BY workout_date ASC;`
	} else {
		query += ` ORDER BY workout_date DESC;`
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query workouts: %w", err)
	}
	defer rows.Close()

	workouts := []domain.Workout{}
	for rows.Next() {
		var m models.Workout
		err := rows.Scan(
			&m.WorkoutID,
			&m.UserID,
			&m.Date,
			&m.Type,
			&m.Title,
			&m.Comments,
			&m.CompletedHours,
			&m.PlannedHours,
			&m.DistanceKM,
			&m.ExternalActivityID,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan workout row: %w", err)
		}
		workouts = append(workouts, toDomainWorkout(m))
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating workout rows: %w", rows.Err())
	}
	return workouts, nil
}

func (r *PgxWorkoutRepository) SumHoursByUser(ctx context.Context, userID string) (decimal.Decimal, decimal.Decimal, error) {
	query := `
        SELECT COALESCE(SUM(completed_hours), 0), COALESCE(SUM(planned_hours), 0)
        FROM workouts
        WHERE user_id = $1;
    `
	var completed, planned decimal.Decimal
	err := r.db.QueryRow(ctx, query, userID).Scan(&completed, &planned)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return decimal.Zero, decimal.Zero, fmt.Errorf("failed to sum hours for user %s: %w", userID, err)
	}
	return completed, planned, nil
}

const updateWorkoutOwnedQuery = `
    UPDATE workouts
    SET workout_date = $1, workout_type = $2, title = $3, comments = $4,
        completed_hours = $5, planned_hours = $6, distance_km = $7,
        last_updated_at = $8, last_updated_by = $9
    WHERE workout_id = $10 AND user_id = $11;
`

func workoutUpdateArgs(m models.Workout) []any {
	return []any{
		m.Date,
		m.Type,
		m.Title,
		m.Comments,
		m.CompletedHours,
		m.PlannedHours,
		m.DistanceKM,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
		m.WorkoutID,
		m.UserID,
	}
}

// UpdateWorkoutOwned filters by owner as well as id so a caller cannot reach
// another user's row by guessing an id.
func (r *PgxWorkoutRepository) UpdateWorkoutOwned(ctx context.Context, workout domain.Workout) error {
	m := toModelWorkout(workout)
	cmdTag, err := r.db.Exec(ctx, updateWorkoutOwnedQuery, workoutUpdateArgs(m)...)
	if err != nil {
		return fmt.Errorf("failed to update workout: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("workout not found for owner: %w", apperrors.ErrNotFound)
	}
	return nil
}

// UpdateWorkoutForOwners applies the same update once per owner, each scoped
// by that owner's id, in one transaction.
func (r *PgxWorkoutRepository) UpdateWorkoutForOwners(ctx context.Context, workout domain.Workout, ownerIDs []string) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin bulk update transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, ownerID := range ownerIDs {
		w := workout
		w.UserID = ownerID
		m := toModelWorkout(w)
		if _, err := tx.Exec(ctx, updateWorkoutOwnedQuery, workoutUpdateArgs(m)...); err != nil {
			return fmt.Errorf("failed to update workout for owner %s: %w", ownerID, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit bulk update transaction: %w", err)
	}
	return nil
}

func (r *PgxWorkoutRepository) DeleteWorkoutOwned(ctx context.Context, workoutID string, ownerID string) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM workouts WHERE workout_id = $1 AND user_id = $2;`, workoutID, ownerID)
	if err != nil {
		return fmt.Errorf("failed to delete workout: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("workout not found for owner: %w", apperrors.ErrNotFound)
	}
	return nil
}
