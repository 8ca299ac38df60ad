package repositories

// RepositoryProvider bundles every repository facade for injection into the
// service container.
type RepositoryProvider struct {
	UserRepo    UserRepositoryFacade
	WorkoutRepo WorkoutRepositoryFacade
	TokenRepo   TokenRepositoryFacade
}
