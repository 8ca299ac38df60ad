package services

import (
	"context"
	"fmt"
	"time"

	"github.com/athlog/training_log_app/internal/apperrors"
	"github.com/athlog/training_log_app/internal/core/domain"
	portsrepo "github.com/athlog/training_log_app/internal/core/ports/repositories"
	portssvc "github.com/athlog/training_log_app/internal/core/ports/services"
	"github.com/athlog/training_log_app/internal/dto"
	"github.com/athlog/training_log_app/internal/utils"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type UserService struct {
	userRepo portsrepo.UserRepositoryFacade
}

func NewUserService(userRepo portsrepo.UserRepositoryFacade) *UserService {
	return &UserService{userRepo: userRepo}
}

// Ensure UserService implements portssvc.UserSvcFacade
var _ portssvc.UserSvcFacade = (*UserService)(nil)

func (s *UserService) RegisterUser(ctx context.Context, req dto.RegisterRequest) (*domain.User, error) {
	if req.Password != req.Confirmation {
		return nil, fmt.Errorf("passwords must match: %w", apperrors.ErrValidation)
	}

	passwordHash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	plannedHours := decimal.Zero
	if req.PlannedHours != nil {
		plannedHours = *req.PlannedHours
	}

	now := time.Now()
	newUserID := uuid.NewString()

	user := domain.User{
		UserID:         newUserID,
		Username:       req.Username,
		PasswordHash:   passwordHash,
		Coach:          req.Coach,
		PlannedHours:   plannedHours,
		GraduationYear: req.GraduationYear,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     newUserID, // self-registration
			LastUpdatedAt: now,
			LastUpdatedBy: newUserID,
		},
	}

	if err := s.userRepo.SaveUser(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to register user: %w", err)
	}

	return &user, nil
}

func (s *UserService) AuthenticateUser(ctx context.Context, username, password string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("invalid username and/or password: %w", apperrors.ErrForbidden)
	}
	if !utils.CheckPasswordHash(password, user.PasswordHash) {
		return nil, fmt.Errorf("invalid username and/or password: %w", apperrors.ErrForbidden)
	}
	return user, nil
}

func (s *UserService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user by ID: %w", err)
	}
	return user, nil
}

func (s *UserService) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("failed to get user by username: %w", err)
	}
	return user, nil
}

func (s *UserService) ListAthletes(ctx context.Context) ([]domain.User, error) {
	athletes, err := s.userRepo.FindAthletes(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list athletes: %w", err)
	}
	return athletes, nil
}

func (s *UserService) UpdateAccount(ctx context.Context, targetUserID string, req dto.UpdateAccountRequest, requestingUserID string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, targetUserID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user for update: %w", err)
	}

	if req.Username != nil {
		if *req.Username == "" {
			return nil, fmt.Errorf("must provide username: %w", apperrors.ErrValidation)
		}
		user.Username = *req.Username
	}
	if req.Password != nil {
		if req.Confirmation == nil || *req.Password != *req.Confirmation {
			return nil, fmt.Errorf("must provide matching password and confirmation: %w", apperrors.ErrValidation)
		}
		hash, err := utils.HashPassword(*req.Password)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		user.PasswordHash = hash
	}
	if req.PlannedHours != nil {
		user.PlannedHours = *req.PlannedHours
	}
	if req.GraduationYear != nil {
		user.GraduationYear = *req.GraduationYear
	}

	user.LastUpdatedAt = time.Now()
	user.LastUpdatedBy = requestingUserID

	if err := s.userRepo.UpdateUser(ctx, *user); err != nil {
		return nil, fmt.Errorf("failed to update account: %w", err)
	}
	return user, nil
}

func (s *UserService) DeleteUser(ctx context.Context, targetUserID string) error {
	if err := s.userRepo.DeleteUserWithWorkouts(ctx, targetUserID); err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	return nil
}
