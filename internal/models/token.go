package models

import "time"

// RefreshToken represents a row in the refresh_tokens table.
// At most one row exists per user (insert-or-replace keyed by user_id).
type RefreshToken struct {
	UserID       string    `db:"user_id"`
	RefreshToken string    `db:"refresh_token"`
	Scope        string    `db:"scope"`
	UpdatedAt    time.Time `db:"updated_at"`
}

// AccessToken represents a row in the access_tokens table.
// At most one row exists per user (insert-or-replace keyed by user_id).
type AccessToken struct {
	UserID      string    `db:"user_id"`
	AccessToken string    `db:"access_token"`
	ExpiresAt   int64     `db:"expires_at"`
	Scope       string    `db:"scope"`
	UpdatedAt   time.Time `db:"updated_at"`
}
