package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/athlog/training_log_app/internal/apperrors"
	"github.com/athlog/training_log_app/internal/core/domain"
	portsrepo "github.com/athlog/training_log_app/internal/core/ports/repositories"
	portssvc "github.com/athlog/training_log_app/internal/core/ports/services"
	"github.com/athlog/training_log_app/internal/middleware"
	"github.com/athlog/training_log_app/internal/utils"
	"github.com/athlog/training_log_app/pkg/config"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/oauth2"
)

// stravaEndpoint describes Strava's OAuth2 endpoints. AuthStyleInParams makes
// the oauth2 package send client_id and client_secret as form parameters,
// which is what Strava's token endpoint expects.
var stravaEndpoint = oauth2.Endpoint{
	AuthURL:   "https://www.strava.com/oauth/authorize",
	TokenURL:  "https://www.strava.com/api/v3/oauth/token",
	AuthStyle: oauth2.AuthStyleInParams,
}

const defaultActivitiesURL = "https://www.strava.com/api/v3/athlete/activities"

// stravaOAuthClient implements the provider grants and resource fetches.
type stravaOAuthClient struct {
	oauth2Config  *oauth2.Config
	httpTimeout   time.Duration
	activitiesURL string
}

// StravaClientOption configures optional strava client behaviour.
type StravaClientOption func(*stravaOAuthClient)

// WithProviderEndpoint overrides the OAuth2 endpoints (used by tests).
func WithProviderEndpoint(endpoint oauth2.Endpoint) StravaClientOption {
	return func(c *stravaOAuthClient) {
		c.oauth2Config.Endpoint = endpoint
	}
}

// WithActivitiesURL overrides the activities listing endpoint (used by tests).
func WithActivitiesURL(url string) StravaClientOption {
	return func(c *stravaOAuthClient) {
		c.activitiesURL = url
	}
}

// NewStravaOAuthClient creates the provider client from immutable config.
func NewStravaOAuthClient(cfg *config.Config, opts ...StravaClientOption) *stravaOAuthClient {
	c := &stravaOAuthClient{
		oauth2Config: &oauth2.Config{
			ClientID:     cfg.StravaClientID,
			ClientSecret: cfg.StravaClientSecret,
			RedirectURL:  cfg.StravaRedirectURL,
			Scopes:       []string{"read,activity:read_all"},
			Endpoint:     stravaEndpoint,
		},
		httpTimeout:   cfg.StravaHTTPTimeout,
		activitiesURL: defaultActivitiesURL,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Ensure stravaOAuthClient implements the provider-facing ports
var (
	_ portssvc.TokenExchanger  = (*stravaOAuthClient)(nil)
	_ portssvc.ActivityFetcher = (*stravaOAuthClient)(nil)
)

// withHTTPClient caps every provider call with an explicit timeout.
func (c *stravaOAuthClient) withHTTPClient(ctx context.Context) context.Context {
	return context.WithValue(ctx, oauth2.HTTPClient, &http.Client{Timeout: c.httpTimeout})
}

func (c *stravaOAuthClient) AuthCodeURL(state string) string {
	return c.oauth2Config.AuthCodeURL(state)
}

func tokenRecordFromOAuth2(tok *oauth2.Token) *domain.TokenRecord {
	scope, _ := tok.Extra("scope").(string)
	return &domain.TokenRecord{
		RefreshToken: tok.RefreshToken,
		AccessToken:  tok.AccessToken,
		ExpiresAt:    tok.Expiry.Unix(),
		Scope:        scope,
	}
}

func (c *stravaOAuthClient) ExchangeCode(ctx context.Context, code string) (*domain.TokenRecord, error) {
	tok, err := c.oauth2Config.Exchange(c.withHTTPClient(ctx), code)
	if err != nil {
		var retrieveErr *oauth2.RetrieveError
		if errors.As(err, &retrieveErr) {
			return nil, fmt.Errorf("provider rejected the authorization code: %w", apperrors.ErrValidation)
		}
		return nil, fmt.Errorf("token endpoint unreachable: %w", apperrors.ErrProviderUnreachable)
	}
	return tokenRecordFromOAuth2(tok), nil
}

// RefreshGrant performs one refresh-token grant. A provider rejection means
// the stored refresh token may be permanently invalid, so it is surfaced
// distinctly from a transport failure.
func (c *stravaOAuthClient) RefreshGrant(ctx context.Context, refreshToken string) (*domain.TokenRecord, error) {
	source := c.oauth2Config.TokenSource(c.withHTTPClient(ctx), &oauth2.Token{RefreshToken: refreshToken})
	tok, err := source.Token()
	if err != nil {
		var retrieveErr *oauth2.RetrieveError
		if errors.As(err, &retrieveErr) {
			return nil, fmt.Errorf("refresh grant refused (%s): %w", retrieveErr.Response.Status, apperrors.ErrRefreshRejected)
		}
		return nil, fmt.Errorf("token endpoint unreachable: %w", apperrors.ErrProviderUnreachable)
	}
	return tokenRecordFromOAuth2(tok), nil
}

// FetchActivities lists the athlete's activities with the bearer access token.
func (c *stravaOAuthClient) FetchActivities(ctx context.Context, accessToken string) ([]domain.Activity, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.activitiesURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build activities request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	client := &http.Client{Timeout: c.httpTimeout}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("activities endpoint unreachable: %w", apperrors.ErrProviderUnreachable)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("activities endpoint returned %s: %w", resp.Status, apperrors.ErrProviderUnreachable)
	}

	var activities []domain.Activity
	if err := json.NewDecoder(resp.Body).Decode(&activities); err != nil {
		return nil, fmt.Errorf("failed to decode activities response: %w", err)
	}
	return activities, nil
}

// stravaSyncService drives the user-facing OAuth flow and activity import.
type stravaSyncService struct {
	exchanger   portssvc.TokenExchanger
	vault       portssvc.TokenVaultSvc
	fetcher     portssvc.ActivityFetcher
	workoutRepo portsrepo.WorkoutRepositoryFacade
}

// NewStravaSyncService creates the handler-facing provider integration.
func NewStravaSyncService(
	exchanger portssvc.TokenExchanger,
	vault portssvc.TokenVaultSvc,
	fetcher portssvc.ActivityFetcher,
	workoutRepo portsrepo.WorkoutRepositoryFacade,
) portssvc.StravaSvcFacade {
	return &stravaSyncService{
		exchanger:   exchanger,
		vault:       vault,
		fetcher:     fetcher,
		workoutRepo: workoutRepo,
	}
}

func (s *stravaSyncService) AuthorizationURL(ctx context.Context) (string, string, error) {
	state, err := utils.GenerateSecureRandomString(16)
	if err != nil {
		return "", "", fmt.Errorf("failed to generate state string: %w", err)
	}
	return s.exchanger.AuthCodeURL(state), state, nil
}

func (s *stravaSyncService) CompleteAuthorization(ctx context.Context, userID string, code string) error {
	grant, err := s.exchanger.ExchangeCode(ctx, code)
	if err != nil {
		return err
	}
	if err := s.vault.StoreGrant(ctx, userID, *grant); err != nil {
		return err
	}
	return nil
}

const (
	secondsPerHour = 3600
	metersPerKM    = 1000
)

// SyncActivities imports provider activities as workout rows. Rows already
// imported (same external activity id) are skipped, so re-syncing is safe.
func (s *stravaSyncService) SyncActivities(ctx context.Context, userID string) (int, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	accessToken, err := s.vault.GetValidAccessToken(ctx, userID)
	if err != nil {
		return 0, err
	}

	activities, err := s.fetcher.FetchActivities(ctx, accessToken)
	if err != nil {
		return 0, err
	}

	now := time.Now()
	imported := 0
	for _, activity := range activities {
		if activity.ElapsedTime <= 0 {
			continue
		}
		externalID := activity.ID
		hours := decimal.NewFromInt(activity.ElapsedTime).Div(decimal.NewFromInt(secondsPerHour))
		km := decimal.NewFromFloat(activity.Distance).Div(decimal.NewFromInt(metersPerKM))

		workout := domain.Workout{
			WorkoutID:          uuid.NewString(),
			UserID:             userID,
			Date:               activity.StartDate,
			Type:               activity.SportType,
			Title:              activity.Name,
			CompletedHours:     hours,
			PlannedHours:       decimal.Zero,
			DistanceKM:         &km,
			ExternalActivityID: &externalID,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     userID,
				LastUpdatedAt: now,
				LastUpdatedBy: userID,
			},
		}

		inserted, err := s.workoutRepo.SaveImportedWorkout(ctx, workout)
		if err != nil {
			return imported, fmt.Errorf("failed to import activity %d: %w", activity.ID, err)
		}
		if inserted {
			imported++
		}
	}

	logger.Info("Activity sync completed",
		slog.String("user_id", userID),
		slog.Int("fetched", len(activities)),
		slog.Int("imported", imported),
	)
	return imported, nil
}
