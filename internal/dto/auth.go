package dto

import "github.com/shopspring/decimal"

// RegisterRequest defines the payload for user registration.
type RegisterRequest struct {
	Username       string           `json:"username" binding:"required"`
	Password       string           `json:"password" binding:"required"`
	Confirmation   string           `json:"confirmation" binding:"required"`
	Coach          bool             `json:"coach"`
	PlannedHours   *decimal.Decimal `json:"plannedHours"`
	GraduationYear int              `json:"graduationYear"`
}

// LoginRequest defines the payload for user login.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse carries the bearer token issued on successful authentication.
type LoginResponse struct {
	Token string `json:"token"`
}

// RegisterResponse returns the created account plus a bearer token, so a
// fresh registration is immediately logged in.
type RegisterResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}
