package services

// ServiceContainer holds every service facade for injection into handlers.
type ServiceContainer struct {
	User       UserSvcFacade
	Workout    WorkoutSvcFacade
	TokenVault TokenVaultSvc
	Strava     StravaSvcFacade
}
