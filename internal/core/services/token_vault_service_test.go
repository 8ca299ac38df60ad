package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/athlog/training_log_app/internal/apperrors"
	"github.com/athlog/training_log_app/internal/core/domain"
	portssvc "github.com/athlog/training_log_app/internal/core/ports/services"
	"github.com/athlog/training_log_app/internal/core/services"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock TokenRepository ---
type MockTokenRepository struct {
	mock.Mock
}

func (m *MockTokenRepository) FindTokenRecord(ctx context.Context, userID string) (*domain.TokenRecord, error) {
	args := m.Called(ctx, userID)
	var rec *domain.TokenRecord
	if args.Get(0) != nil {
		rec = args.Get(0).(*domain.TokenRecord)
	}
	return rec, args.Error(1)
}

func (m *MockTokenRepository) UpsertTokenRecord(ctx context.Context, record domain.TokenRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

// --- Mock TokenExchanger ---
type MockTokenExchanger struct {
	mock.Mock
}

func (m *MockTokenExchanger) AuthCodeURL(state string) string {
	args := m.Called(state)
	return args.String(0)
}

func (m *MockTokenExchanger) ExchangeCode(ctx context.Context, code string) (*domain.TokenRecord, error) {
	args := m.Called(ctx, code)
	var rec *domain.TokenRecord
	if args.Get(0) != nil {
		rec = args.Get(0).(*domain.TokenRecord)
	}
	return rec, args.Error(1)
}

func (m *MockTokenExchanger) RefreshGrant(ctx context.Context, refreshToken string) (*domain.TokenRecord, error) {
	args := m.Called(ctx, refreshToken)
	var rec *domain.TokenRecord
	if args.Get(0) != nil {
		rec = args.Get(0).(*domain.TokenRecord)
	}
	return rec, args.Error(1)
}

// --- Test Suite ---
type TokenVaultServiceTestSuite struct {
	suite.Suite
	mockTokenRepo *MockTokenRepository
	mockExchanger *MockTokenExchanger
	now           time.Time
	vault         portssvc.TokenVaultSvc
}

func (suite *TokenVaultServiceTestSuite) SetupTest() {
	suite.mockTokenRepo = new(MockTokenRepository)
	suite.mockExchanger = new(MockTokenExchanger)
	suite.now = time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	suite.vault = services.NewTokenVaultService(
		suite.mockTokenRepo,
		suite.mockExchanger,
		services.WithClock(func() time.Time { return suite.now }),
	)
}

func (suite *TokenVaultServiceTestSuite) TestGetValidAccessToken_FreshTokenNoNetwork() {
	ctx := context.Background()
	userID := uuid.NewString()
	record := &domain.TokenRecord{
		UserID:       userID,
		RefreshToken: "refresh-1",
		AccessToken:  "access-1",
		ExpiresAt:    suite.now.Add(time.Hour).Unix(),
	}
	suite.mockTokenRepo.On("FindTokenRecord", ctx, userID).Return(record, nil).Once()

	token, err := suite.vault.GetValidAccessToken(ctx, userID)

	suite.Require().NoError(err)
	suite.Equal("access-1", token)
	suite.mockExchanger.AssertNotCalled(suite.T(), "RefreshGrant", mock.Anything, mock.Anything)
	suite.mockTokenRepo.AssertNotCalled(suite.T(), "UpsertTokenRecord", mock.Anything, mock.Anything)
}

func (suite *TokenVaultServiceTestSuite) TestGetValidAccessToken_ExpiredSingleRefresh() {
	ctx := context.Background()
	userID := uuid.NewString()
	record := &domain.TokenRecord{
		UserID:       userID,
		RefreshToken: "refresh-old",
		AccessToken:  "access-old",
		ExpiresAt:    suite.now.Add(-time.Minute).Unix(),
		Scope:        "read,activity:read_all",
	}
	fresh := &domain.TokenRecord{
		RefreshToken: "refresh-new",
		AccessToken:  "access-new",
		ExpiresAt:    suite.now.Add(6 * time.Hour).Unix(),
	}

	suite.mockTokenRepo.On("FindTokenRecord", ctx, userID).Return(record, nil).Once()
	suite.mockExchanger.On("RefreshGrant", ctx, "refresh-old").Return(fresh, nil).Once()
	// The rotated refresh token must be persisted; the old scope survives
	// when the refresh response omits it.
	suite.mockTokenRepo.On("UpsertTokenRecord", ctx, mock.MatchedBy(func(rec domain.TokenRecord) bool {
		return rec.UserID == userID &&
			rec.RefreshToken == "refresh-new" &&
			rec.AccessToken == "access-new" &&
			rec.Scope == "read,activity:read_all"
	})).Return(nil).Once()

	token, err := suite.vault.GetValidAccessToken(ctx, userID)

	suite.Require().NoError(err)
	suite.Equal("access-new", token)
	suite.mockExchanger.AssertNumberOfCalls(suite.T(), "RefreshGrant", 1)
	suite.mockTokenRepo.AssertExpectations(suite.T())
}

func (suite *TokenVaultServiceTestSuite) TestGetValidAccessToken_NoTokenOnFile() {
	ctx := context.Background()
	userID := uuid.NewString()
	suite.mockTokenRepo.On("FindTokenRecord", ctx, userID).Return(nil, apperrors.ErrNoTokenOnFile).Once()

	token, err := suite.vault.GetValidAccessToken(ctx, userID)

	suite.Require().Error(err)
	suite.Empty(token)
	suite.ErrorIs(err, apperrors.ErrNoTokenOnFile)
	suite.mockExchanger.AssertNotCalled(suite.T(), "RefreshGrant", mock.Anything, mock.Anything)
}

func (suite *TokenVaultServiceTestSuite) TestGetValidAccessToken_RefreshRejectedNoRetry() {
	ctx := context.Background()
	userID := uuid.NewString()
	record := &domain.TokenRecord{
		UserID:       userID,
		RefreshToken: "refresh-stale",
		AccessToken:  "access-old",
		ExpiresAt:    suite.now.Add(-time.Hour).Unix(),
	}

	suite.mockTokenRepo.On("FindTokenRecord", ctx, userID).Return(record, nil).Once()
	suite.mockExchanger.On("RefreshGrant", ctx, "refresh-stale").Return(nil, apperrors.ErrRefreshRejected).Once()

	token, err := suite.vault.GetValidAccessToken(ctx, userID)

	suite.Require().Error(err)
	suite.Empty(token)
	suite.ErrorIs(err, apperrors.ErrRefreshRejected)
	suite.mockExchanger.AssertNumberOfCalls(suite.T(), "RefreshGrant", 1)
	suite.mockTokenRepo.AssertNotCalled(suite.T(), "UpsertTokenRecord", mock.Anything, mock.Anything)
}

func (suite *TokenVaultServiceTestSuite) TestStoreGrant_SetsUserID() {
	ctx := context.Background()
	userID := uuid.NewString()
	grant := domain.TokenRecord{
		RefreshToken: "refresh-1",
		AccessToken:  "access-1",
		ExpiresAt:    suite.now.Add(6 * time.Hour).Unix(),
		Scope:        "read",
	}

	suite.mockTokenRepo.On("UpsertTokenRecord", ctx, mock.MatchedBy(func(rec domain.TokenRecord) bool {
		return rec.UserID == userID && rec.RefreshToken == "refresh-1"
	})).Return(nil).Once()

	err := suite.vault.StoreGrant(ctx, userID, grant)

	suite.Require().NoError(err)
	suite.mockTokenRepo.AssertExpectations(suite.T())
}

func TestTokenVaultServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TokenVaultServiceTestSuite))
}
