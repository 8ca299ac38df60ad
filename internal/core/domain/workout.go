package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Workout is one logged training session belonging to exactly one user.
type Workout struct {
	WorkoutID      string           `json:"workoutID"`
	UserID         string           `json:"userID"`
	Date           time.Time        `json:"date"`
	Type           string           `json:"type,omitempty"`
	Title          string           `json:"title,omitempty"`
	Comments       string           `json:"comments,omitempty"`
	CompletedHours decimal.Decimal  `json:"completedHours"`
	PlannedHours   decimal.Decimal  `json:"plannedHours"`
	DistanceKM     *decimal.Decimal `json:"distanceKM,omitempty"`
	// ExternalActivityID is set on rows imported from the fitness provider
	// and is used to suppress duplicates on re-sync.
	ExternalActivityID *int64 `json:"externalActivityID,omitempty"`
	AuditFields
}
