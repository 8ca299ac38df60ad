package domain

import "github.com/shopspring/decimal"

// User represents an account in the training log. A user with Coach set
// may view and manage the workouts of every non-coach user (athlete).
type User struct {
	UserID         string          `json:"userID"`
	Username       string          `json:"username"`
	PasswordHash   string          `json:"-"`
	Coach          bool            `json:"coach"`
	PlannedHours   decimal.Decimal `json:"plannedHours"`
	GraduationYear int             `json:"graduationYear,omitempty"`
	AuditFields
}
