package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/athlog/training_log_app/internal/apperrors"
	"github.com/athlog/training_log_app/internal/core/domain"
	portssvc "github.com/athlog/training_log_app/internal/core/ports/services"
	"github.com/athlog/training_log_app/internal/dto"
	"github.com/athlog/training_log_app/internal/handlers"
	"github.com/athlog/training_log_app/internal/utils"
	"github.com/athlog/training_log_app/pkg/config"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock UserSvcFacade ---
type MockUserSvc struct {
	mock.Mock
}

func (m *MockUserSvc) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockUserSvc) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	args := m.Called(ctx, username)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockUserSvc) ListAthletes(ctx context.Context) ([]domain.User, error) {
	args := m.Called(ctx)
	var users []domain.User
	if args.Get(0) != nil {
		users = args.Get(0).([]domain.User)
	}
	return users, args.Error(1)
}

func (m *MockUserSvc) RegisterUser(ctx context.Context, req dto.RegisterRequest) (*domain.User, error) {
	args := m.Called(ctx, req)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockUserSvc) UpdateAccount(ctx context.Context, targetUserID string, req dto.UpdateAccountRequest, requestingUserID string) (*domain.User, error) {
	args := m.Called(ctx, targetUserID, req, requestingUserID)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockUserSvc) DeleteUser(ctx context.Context, targetUserID string) error {
	args := m.Called(ctx, targetUserID)
	return args.Error(0)
}

func (m *MockUserSvc) AuthenticateUser(ctx context.Context, username, password string) (*domain.User, error) {
	args := m.Called(ctx, username, password)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

// --- Mock WorkoutSvcFacade ---
type MockWorkoutSvc struct {
	mock.Mock
}

func (m *MockWorkoutSvc) ListWorkoutsForUser(ctx context.Context, userID string, params dto.ListWorkoutsParams) ([]domain.Workout, error) {
	args := m.Called(ctx, userID, params)
	var workouts []domain.Workout
	if args.Get(0) != nil {
		workouts = args.Get(0).([]domain.Workout)
	}
	return workouts, args.Error(1)
}

func (m *MockWorkoutSvc) HoursTotalsForUser(ctx context.Context, userID string) (decimal.Decimal, decimal.Decimal, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(decimal.Decimal), args.Get(1).(decimal.Decimal), args.Error(2)
}

func (m *MockWorkoutSvc) CreateWorkout(ctx context.Context, ownerID string, req dto.CreateWorkoutRequest, creatorUserID string) (*domain.Workout, error) {
	args := m.Called(ctx, ownerID, req, creatorUserID)
	var workout *domain.Workout
	if args.Get(0) != nil {
		workout = args.Get(0).(*domain.Workout)
	}
	return workout, args.Error(1)
}

func (m *MockWorkoutSvc) CreateWorkoutForAthletes(ctx context.Context, athleteIDs []string, req dto.CreateWorkoutRequest, creatorUserID string) ([]domain.Workout, error) {
	args := m.Called(ctx, athleteIDs, req, creatorUserID)
	var workouts []domain.Workout
	if args.Get(0) != nil {
		workouts = args.Get(0).([]domain.Workout)
	}
	return workouts, args.Error(1)
}

func (m *MockWorkoutSvc) UpdateWorkout(ctx context.Context, workoutID string, req dto.UpdateWorkoutRequest, scopeUserID string, updaterUserID string) error {
	args := m.Called(ctx, workoutID, req, scopeUserID, updaterUserID)
	return args.Error(0)
}

func (m *MockWorkoutSvc) UpdateWorkoutForAthletes(ctx context.Context, workoutID string, athleteIDs []string, req dto.UpdateWorkoutRequest, updaterUserID string) error {
	args := m.Called(ctx, workoutID, athleteIDs, req, updaterUserID)
	return args.Error(0)
}

func (m *MockWorkoutSvc) DeleteWorkout(ctx context.Context, workoutID string, scopeUserID string) error {
	args := m.Called(ctx, workoutID, scopeUserID)
	return args.Error(0)
}

// --- Mock StravaSvcFacade ---
type MockStravaSvc struct {
	mock.Mock
}

func (m *MockStravaSvc) AuthorizationURL(ctx context.Context) (string, string, error) {
	args := m.Called(ctx)
	return args.String(0), args.String(1), args.Error(2)
}

func (m *MockStravaSvc) CompleteAuthorization(ctx context.Context, userID string, code string) error {
	args := m.Called(ctx, userID, code)
	return args.Error(0)
}

func (m *MockStravaSvc) SyncActivities(ctx context.Context, userID string) (int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Error(1)
}

// --- Test Suite ---
type HandlerTestSuite struct {
	suite.Suite
	cfg            *config.Config
	mockUserSvc    *MockUserSvc
	mockWorkoutSvc *MockWorkoutSvc
	mockStravaSvc  *MockStravaSvc
	router         *gin.Engine
}

func (suite *HandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)

	suite.cfg = &config.Config{
		JWTSecret:         "test-secret",
		JWTExpiryDuration: time.Hour,
		JWTIssuer:         "training-log-test",
	}
	suite.mockUserSvc = new(MockUserSvc)
	suite.mockWorkoutSvc = new(MockWorkoutSvc)
	suite.mockStravaSvc = new(MockStravaSvc)

	suite.router = gin.New()
	handlers.RegisterRoutes(suite.router, suite.cfg, &portssvc.ServiceContainer{
		User:    suite.mockUserSvc,
		Workout: suite.mockWorkoutSvc,
		Strava:  suite.mockStravaSvc,
	})
}

func (suite *HandlerTestSuite) bearerFor(userID string) string {
	token, err := utils.GenerateJWT(userID, suite.cfg.JWTSecret, suite.cfg.JWTExpiryDuration, suite.cfg.JWTIssuer)
	suite.Require().NoError(err)
	return "Bearer " + token
}

func (suite *HandlerTestSuite) doJSON(method, path, bearer string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		suite.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", bearer)
	}
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

// --- Auth ---

func (suite *HandlerTestSuite) TestLogin_BadCredentials403() {
	suite.mockUserSvc.On("AuthenticateUser", mock.Anything, "runner1", "wrong").
		Return(nil, apperrors.ErrForbidden).Once()

	w := suite.doJSON(http.MethodPost, "/api/v1/auth/login", "", dto.LoginRequest{Username: "runner1", Password: "wrong"})

	suite.Equal(http.StatusForbidden, w.Code)
}

func (suite *HandlerTestSuite) TestRegister_DuplicateUsername400() {
	suite.mockUserSvc.On("RegisterUser", mock.Anything, mock.AnythingOfType("dto.RegisterRequest")).
		Return(nil, apperrors.ErrDuplicate).Once()

	w := suite.doJSON(http.MethodPost, "/api/v1/auth/register", "", dto.RegisterRequest{
		Username: "runner1", Password: "pw", Confirmation: "pw",
	})

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Contains(w.Body.String(), "taken")
}

func (suite *HandlerTestSuite) TestProtectedRoute_NoToken401() {
	w := suite.doJSON(http.MethodGet, "/api/v1/home", "", nil)
	suite.Equal(http.StatusUnauthorized, w.Code)
}

// --- Coach gate ---

func (suite *HandlerTestSuite) TestListAthletes_NonCoach401() {
	userID := uuid.NewString()
	suite.mockUserSvc.On("GetUserByID", mock.Anything, userID).
		Return(&domain.User{UserID: userID, Coach: false}, nil).Once()

	w := suite.doJSON(http.MethodGet, "/api/v1/athletes", suite.bearerFor(userID), nil)

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.Contains(w.Body.String(), "must have a coach's account")
	suite.mockUserSvc.AssertNotCalled(suite.T(), "ListAthletes", mock.Anything)
}

func (suite *HandlerTestSuite) TestListAthletes_Coach200() {
	coachID := uuid.NewString()
	suite.mockUserSvc.On("GetUserByID", mock.Anything, coachID).
		Return(&domain.User{UserID: coachID, Coach: true}, nil).Once()
	suite.mockUserSvc.On("ListAthletes", mock.Anything).
		Return([]domain.User{{UserID: uuid.NewString(), Username: "athlete1"}}, nil).Once()

	w := suite.doJSON(http.MethodGet, "/api/v1/athletes", suite.bearerFor(coachID), nil)

	suite.Equal(http.StatusOK, w.Code)

	var resp dto.ListAthletesResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Len(resp.Athletes, 1)
}

// --- Workouts ---

func (suite *HandlerTestSuite) TestCreateWorkout_Created201() {
	userID := uuid.NewString()
	req := dto.CreateWorkoutRequest{
		Date:           "2026-03-14",
		Title:          "Morning run",
		CompletedHours: decimal.NewFromFloat(1.5),
	}
	created := &domain.Workout{
		WorkoutID:      uuid.NewString(),
		UserID:         userID,
		Date:           time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC),
		Title:          "Morning run",
		CompletedHours: decimal.NewFromFloat(1.5),
	}

	suite.mockWorkoutSvc.On("CreateWorkout", mock.Anything, userID, mock.AnythingOfType("dto.CreateWorkoutRequest"), userID).
		Return(created, nil).Once()

	w := suite.doJSON(http.MethodPost, "/api/v1/workouts", suite.bearerFor(userID), req)

	suite.Equal(http.StatusCreated, w.Code)

	var resp dto.WorkoutResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("2026-03-14", resp.Date)
	suite.mockWorkoutSvc.AssertExpectations(suite.T())
}

func (suite *HandlerTestSuite) TestCreateWorkout_ValidationError400() {
	userID := uuid.NewString()
	req := dto.CreateWorkoutRequest{
		Date:           "2026-03-14",
		Title:          "Morning run",
		CompletedHours: decimal.NewFromFloat(0.5),
	}

	suite.mockWorkoutSvc.On("CreateWorkout", mock.Anything, userID, mock.AnythingOfType("dto.CreateWorkoutRequest"), userID).
		Return(nil, apperrors.ErrValidation).Once()

	w := suite.doJSON(http.MethodPost, "/api/v1/workouts", suite.bearerFor(userID), req)

	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *HandlerTestSuite) TestUpdateWorkout_NotOwned404() {
	userID := uuid.NewString()
	workoutID := uuid.NewString()
	req := dto.UpdateWorkoutRequest{
		Date:           "2026-03-15",
		Title:          "Tempo",
		CompletedHours: decimal.NewFromInt(1),
	}

	suite.mockWorkoutSvc.On("UpdateWorkout", mock.Anything, workoutID, mock.AnythingOfType("dto.UpdateWorkoutRequest"), userID, userID).
		Return(apperrors.ErrNotFound).Once()

	w := suite.doJSON(http.MethodPut, "/api/v1/workouts/"+workoutID, suite.bearerFor(userID), req)

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *HandlerTestSuite) TestBulkCreateWorkouts_CoachOnly() {
	coachID := uuid.NewString()
	athleteIDs := []string{uuid.NewString(), uuid.NewString()}
	req := dto.BulkCreateWorkoutRequest{
		AthleteIDs: athleteIDs,
		Workout: dto.CreateWorkoutRequest{
			Date:           "2026-03-14",
			Title:          "Long run",
			CompletedHours: decimal.NewFromInt(2),
		},
	}

	suite.mockUserSvc.On("GetUserByID", mock.Anything, coachID).
		Return(&domain.User{UserID: coachID, Coach: true}, nil).Once()
	suite.mockWorkoutSvc.On("CreateWorkoutForAthletes", mock.Anything, athleteIDs, mock.AnythingOfType("dto.CreateWorkoutRequest"), coachID).
		Return([]domain.Workout{{WorkoutID: uuid.NewString()}, {WorkoutID: uuid.NewString()}}, nil).Once()

	w := suite.doJSON(http.MethodPost, "/api/v1/coach/workouts", suite.bearerFor(coachID), req)

	suite.Equal(http.StatusCreated, w.Code)
	suite.mockWorkoutSvc.AssertExpectations(suite.T())
}

// --- Strava ---

func (suite *HandlerTestSuite) TestStravaSync_NoTokenOnFile400() {
	userID := uuid.NewString()
	suite.mockStravaSvc.On("SyncActivities", mock.Anything, userID).
		Return(0, apperrors.ErrNoTokenOnFile).Once()

	w := suite.doJSON(http.MethodPost, "/api/v1/strava/sync", suite.bearerFor(userID), nil)

	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *HandlerTestSuite) TestStravaSync_ProviderUnreachable502() {
	userID := uuid.NewString()
	suite.mockStravaSvc.On("SyncActivities", mock.Anything, userID).
		Return(0, apperrors.ErrProviderUnreachable).Once()

	w := suite.doJSON(http.MethodPost, "/api/v1/strava/sync", suite.bearerFor(userID), nil)

	suite.Equal(http.StatusBadGateway, w.Code)
}

func (suite *HandlerTestSuite) TestStravaSync_ReportsImportedCount() {
	userID := uuid.NewString()
	suite.mockStravaSvc.On("SyncActivities", mock.Anything, userID).
		Return(4, nil).Once()

	w := suite.doJSON(http.MethodPost, "/api/v1/strava/sync", suite.bearerFor(userID), nil)

	suite.Equal(http.StatusOK, w.Code)

	var resp dto.SyncActivitiesResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(4, resp.Imported)
}

// --- Home dashboard ---

func (suite *HandlerTestSuite) TestHome_ReturnsTotals() {
	userID := uuid.NewString()
	suite.mockUserSvc.On("GetUserByID", mock.Anything, userID).
		Return(&domain.User{UserID: userID, Username: "runner1", PlannedHours: decimal.NewFromInt(8)}, nil).Once()
	suite.mockWorkoutSvc.On("HoursTotalsForUser", mock.Anything, userID).
		Return(decimal.NewFromFloat(12.5), decimal.NewFromInt(16), nil).Once()

	w := suite.doJSON(http.MethodGet, "/api/v1/home", suite.bearerFor(userID), nil)

	suite.Equal(http.StatusOK, w.Code)

	var resp dto.HomeResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.True(resp.TotalCompletedHours.Equal(decimal.NewFromFloat(12.5)))
	suite.True(resp.TotalPlannedHours.Equal(decimal.NewFromInt(16)))
	suite.Equal("runner1", resp.User.Username)
}

// --- Full scenario: register, log in, create a workout, list it back ---

func (suite *HandlerTestSuite) TestScenario_RegisterLoginCreateList() {
	userID := uuid.NewString()
	account := &domain.User{UserID: userID, Username: "runner1"}

	suite.mockUserSvc.On("RegisterUser", mock.Anything, mock.AnythingOfType("dto.RegisterRequest")).
		Return(account, nil).Once()

	w := suite.doJSON(http.MethodPost, "/api/v1/auth/register", "", dto.RegisterRequest{
		Username: "runner1", Password: "pw123456", Confirmation: "pw123456",
	})
	suite.Require().Equal(http.StatusCreated, w.Code)

	var registered dto.RegisterResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &registered))
	suite.NotEmpty(registered.Token)

	// Logging in again issues a fresh token for the same account
	suite.mockUserSvc.On("AuthenticateUser", mock.Anything, "runner1", "pw123456").
		Return(account, nil).Once()

	w = suite.doJSON(http.MethodPost, "/api/v1/auth/login", "", dto.LoginRequest{
		Username: "runner1", Password: "pw123456",
	})
	suite.Require().Equal(http.StatusOK, w.Code)

	var login dto.LoginResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &login))
	bearer := "Bearer " + login.Token

	created := &domain.Workout{
		WorkoutID:      uuid.NewString(),
		UserID:         userID,
		Date:           time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC),
		Title:          "Morning run",
		CompletedHours: decimal.NewFromFloat(1.5),
	}
	suite.mockWorkoutSvc.On("CreateWorkout", mock.Anything, userID, mock.AnythingOfType("dto.CreateWorkoutRequest"), userID).
		Return(created, nil).Once()

	w = suite.doJSON(http.MethodPost, "/api/v1/workouts", bearer, dto.CreateWorkoutRequest{
		Date:           "2026-03-14",
		Title:          "Morning run",
		CompletedHours: decimal.NewFromFloat(1.5),
	})
	suite.Require().Equal(http.StatusCreated, w.Code)

	suite.mockWorkoutSvc.On("ListWorkoutsForUser", mock.Anything, userID, mock.AnythingOfType("dto.ListWorkoutsParams")).
		Return([]domain.Workout{*created}, nil).Once()

	w = suite.doJSON(http.MethodGet, "/api/v1/workouts", bearer, nil)
	suite.Require().Equal(http.StatusOK, w.Code)

	var listed dto.ListWorkoutsResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &listed))
	suite.Require().Len(listed.Workouts, 1)
	suite.Equal(created.WorkoutID, listed.Workouts[0].WorkoutID)
}

func TestHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(HandlerTestSuite))
}
