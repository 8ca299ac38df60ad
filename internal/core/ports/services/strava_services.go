package services

import (
	"context"

	"github.com/athlog/training_log_app/internal/core/domain"
)

// TokenExchanger performs the provider's OAuth2 grants.
type TokenExchanger interface {
	// AuthCodeURL builds the provider authorization URL for the given
	// CSRF state string.
	AuthCodeURL(state string) string

	// ExchangeCode exchanges an authorization code for a token pair.
	ExchangeCode(ctx context.Context, code string) (*domain.TokenRecord, error)

	// RefreshGrant exchanges a refresh token for a new token pair. The
	// provider rotates the refresh token; the returned record carries the
	// replacement.
	RefreshGrant(ctx context.Context, refreshToken string) (*domain.TokenRecord, error)
}

// ActivityFetcher lists activities from the provider's resource API.
type ActivityFetcher interface {
	// FetchActivities retrieves the athlete's activities using the bearer
	// access token.
	FetchActivities(ctx context.Context, accessToken string) ([]domain.Activity, error)
}

// TokenVaultSvc manages the persisted provider credential pair per user.
type TokenVaultSvc interface {
	// StoreGrant persists a freshly granted token pair for the user.
	StoreGrant(ctx context.Context, userID string, grant domain.TokenRecord) error

	// GetValidAccessToken returns the stored access token unchanged when it
	// has not expired; otherwise it performs exactly one refresh attempt,
	// persists the rotated pair and returns the fresh token. Returns
	// apperrors.ErrNoTokenOnFile, apperrors.ErrRefreshRejected or
	// apperrors.ErrProviderUnreachable as distinguishable conditions.
	GetValidAccessToken(ctx context.Context, userID string) (string, error)
}

// StravaSvcFacade is the handler-facing surface of the provider integration.
type StravaSvcFacade interface {
	// AuthorizationURL generates a CSRF state and the provider authorize
	// redirect URL.
	AuthorizationURL(ctx context.Context) (url string, state string, err error)

	// CompleteAuthorization exchanges the callback code and stores the
	// granted token pair for the user.
	CompleteAuthorization(ctx context.Context, userID string, code string) error

	// SyncActivities imports the user's provider activities as workout rows,
	// suppressing duplicates by external activity id. Returns the number of
	// newly imported rows.
	SyncActivities(ctx context.Context, userID string) (int, error)
}
