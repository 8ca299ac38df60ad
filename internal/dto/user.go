package dto

import (
	"time"

	"github.com/athlog/training_log_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// UpdateAccountRequest defines the data allowed for updating an account.
// Pointers differentiate omitted fields from zero-value fields.
type UpdateAccountRequest struct {
	Username       *string          `json:"username"`
	Password       *string          `json:"password"`
	Confirmation   *string          `json:"confirmation"`
	PlannedHours   *decimal.Decimal `json:"plannedHours"`
	GraduationYear *int             `json:"graduationYear"`
}

// UserResponse is the public representation of a user.
type UserResponse struct {
	UserID         string          `json:"userID"`
	Username       string          `json:"username"`
	Coach          bool            `json:"coach"`
	PlannedHours   decimal.Decimal `json:"plannedHours"`
	GraduationYear int             `json:"graduationYear,omitempty"`
	CreatedAt      time.Time       `json:"createdAt"`
}

// ToUserResponse converts a domain.User to its response DTO.
func ToUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		UserID:         user.UserID,
		Username:       user.Username,
		Coach:          user.Coach,
		PlannedHours:   user.PlannedHours,
		GraduationYear: user.GraduationYear,
		CreatedAt:      user.CreatedAt,
	}
}

// ListAthletesResponse wraps the coach-facing athlete listing.
type ListAthletesResponse struct {
	Athletes []UserResponse `json:"athletes"`
}

// ToListAthletesResponse converts a slice of domain.User to ListAthletesResponse.
func ToListAthletesResponse(users []domain.User) ListAthletesResponse {
	out := make([]UserResponse, len(users))
	for i := range users {
		out[i] = ToUserResponse(&users[i])
	}
	return ListAthletesResponse{Athletes: out}
}

// HomeResponse is the dashboard payload for the logged-in user.
type HomeResponse struct {
	User                UserResponse    `json:"user"`
	Coach               bool            `json:"coach"`
	TotalCompletedHours decimal.Decimal `json:"totalCompletedHours"`
	TotalPlannedHours   decimal.Decimal `json:"totalPlannedHours"`
}
