package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/athlog/training_log_app/internal/core/domain"
	portsrepo "github.com/athlog/training_log_app/internal/core/ports/repositories"
	portssvc "github.com/athlog/training_log_app/internal/core/ports/services"
	"github.com/athlog/training_log_app/internal/middleware"
)

// tokenVaultService keeps the per-user provider credential pair current.
// Per user the vault is either Absent (no exchange completed yet) or Valid;
// an expired Valid pair is renewed in place with a single refresh grant.
type tokenVaultService struct {
	tokenRepo portsrepo.TokenRepositoryFacade
	exchanger portssvc.TokenExchanger
	now       func() time.Time
}

// TokenVaultOption configures optional token vault behaviour.
type TokenVaultOption func(*tokenVaultService)

// WithClock overrides the vault's time source.
func WithClock(now func() time.Time) TokenVaultOption {
	return func(s *tokenVaultService) {
		s.now = now
	}
}

// NewTokenVaultService creates a new token vault service.
func NewTokenVaultService(tokenRepo portsrepo.TokenRepositoryFacade, exchanger portssvc.TokenExchanger, opts ...TokenVaultOption) portssvc.TokenVaultSvc {
	s := &tokenVaultService{
		tokenRepo: tokenRepo,
		exchanger: exchanger,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *tokenVaultService) StoreGrant(ctx context.Context, userID string, grant domain.TokenRecord) error {
	grant.UserID = userID
	if err := s.tokenRepo.UpsertTokenRecord(ctx, grant); err != nil {
		return fmt.Errorf("failed to store token grant: %w", err)
	}
	return nil
}

// GetValidAccessToken returns the stored access token unchanged while it is
// still valid; once expired it performs exactly one refresh attempt. The old
// refresh token is invalidated by the provider on renewal, so the rotated
// pair is persisted before the fresh token is returned.
func (s *tokenVaultService) GetValidAccessToken(ctx context.Context, userID string) (string, error) {
	record, err := s.tokenRepo.FindTokenRecord(ctx, userID)
	if err != nil {
		return "", err
	}

	if s.now().Unix() < record.ExpiresAt {
		return record.AccessToken, nil
	}

	logger := middleware.GetLoggerFromCtx(ctx)
	logger.Info("Access token expired, refreshing", slog.String("user_id", userID))

	fresh, err := s.exchanger.RefreshGrant(ctx, record.RefreshToken)
	if err != nil {
		return "", err
	}

	fresh.UserID = userID
	if fresh.Scope == "" {
		fresh.Scope = record.Scope
	}
	if err := s.tokenRepo.UpsertTokenRecord(ctx, *fresh); err != nil {
		return "", fmt.Errorf("failed to persist refreshed token: %w", err)
	}

	return fresh.AccessToken, nil
}
