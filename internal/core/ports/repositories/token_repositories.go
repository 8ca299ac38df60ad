package repositories

import (
	"context"

	"github.com/athlog/training_log_app/internal/core/domain"
)

// TokenRepositoryFacade persists the provider credential pair per user.
// Both token tables hold at most one row per user id.
type TokenRepositoryFacade interface {
	// FindTokenRecord retrieves the stored token pair for a user.
	// Returns apperrors.ErrNoTokenOnFile when the user never completed the
	// authorization exchange.
	FindTokenRecord(ctx context.Context, userID string) (*domain.TokenRecord, error)

	// UpsertTokenRecord replaces the stored token pair for a user in one
	// transaction (insert-or-replace keyed by user id).
	UpsertTokenRecord(ctx context.Context, record domain.TokenRecord) error
}
