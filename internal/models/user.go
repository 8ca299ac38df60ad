package models

import "github.com/shopspring/decimal"

// User represents a user row in the users table.
type User struct {
	UserID         string          `db:"user_id"`
	Username       string          `db:"username"`
	PasswordHash   string          `db:"password_hash"`
	Coach          bool            `db:"coach"`
	PlannedHours   decimal.Decimal `db:"planned_hours"`
	GraduationYear int             `db:"graduation_year"`
	AuditFields
}
