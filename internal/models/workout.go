package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Workout represents a workout row in the workouts table.
type Workout struct {
	WorkoutID          string           `db:"workout_id"`
	UserID             string           `db:"user_id"`
	Date               time.Time        `db:"workout_date"`
	Type               string           `db:"workout_type"`
	Title              string           `db:"title"`
	Comments           string           `db:"comments"`
	CompletedHours     decimal.Decimal  `db:"completed_hours"`
	PlannedHours       decimal.Decimal  `db:"planned_hours"`
	DistanceKM         *decimal.Decimal `db:"distance_km"`
	ExternalActivityID *int64           `db:"external_activity_id"`
	AuditFields
}
