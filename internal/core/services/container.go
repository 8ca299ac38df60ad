package services

import (
	portsrepo "github.com/athlog/training_log_app/internal/core/ports/repositories"
	portssvc "github.com/athlog/training_log_app/internal/core/ports/services"
	"github.com/athlog/training_log_app/pkg/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.User = NewUserService(repos.UserRepo)
	container.Workout = NewWorkoutService(repos.WorkoutRepo)

	// The strava client serves both the OAuth grants and the resource fetches
	stravaClient := NewStravaOAuthClient(cfg)
	container.TokenVault = NewTokenVaultService(repos.TokenRepo, stravaClient)
	container.Strava = NewStravaSyncService(stravaClient, container.TokenVault, stravaClient, repos.WorkoutRepo)

	return container
}
