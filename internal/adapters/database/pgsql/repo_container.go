package pgsql

import (
	portsrepo "github.com/athlog/training_log_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryProvider builds every pgx-backed repository over the shared pool.
func NewRepositoryProvider(db *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		UserRepo:    newPgxUserRepository(db),
		WorkoutRepo: newPgxWorkoutRepository(db),
		TokenRepo:   newPgxTokenRepository(db),
	}
}
