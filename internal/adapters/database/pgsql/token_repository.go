package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/athlog/training_log_app/internal/apperrors"
	"github.com/athlog/training_log_app/internal/core/domain"
	portsrepo "github.com/athlog/training_log_app/internal/core/ports/repositories"
	"github.com/athlog/training_log_app/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxTokenRepository struct {
	db *pgxpool.Pool
}

func newPgxTokenRepository(db *pgxpool.Pool) portsrepo.TokenRepositoryFacade {
	return &PgxTokenRepository{db: db}
}

// Ensure PgxTokenRepository implements portsrepo.TokenRepositoryFacade
var _ portsrepo.TokenRepositoryFacade = (*PgxTokenRepository)(nil)

func (r *PgxTokenRepository) FindTokenRecord(ctx context.Context, userID string) (*domain.TokenRecord, error) {
	query := `
        SELECT rt.refresh_token, at.access_token, at.expires_at, at.scope
        FROM refresh_tokens rt
        JOIN access_tokens at ON at.user_id = rt.user_id
        WHERE rt.user_id = $1;
    `
	refreshRow := models.RefreshToken{UserID: userID}
	accessRow := models.AccessToken{UserID: userID}
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&refreshRow.RefreshToken,
		&accessRow.AccessToken,
		&accessRow.ExpiresAt,
		&accessRow.Scope,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNoTokenOnFile
		}
		return nil, fmt.Errorf("failed to find token record for user %s: %w", userID, err)
	}
	return &domain.TokenRecord{
		UserID:       userID,
		RefreshToken: refreshRow.RefreshToken,
		AccessToken:  accessRow.AccessToken,
		ExpiresAt:    accessRow.ExpiresAt,
		Scope:        accessRow.Scope,
	}, nil
}

// UpsertTokenRecord replaces both token rows for the user in one transaction.
// The stored refresh token MUST be overwritten on every refresh because the
// provider invalidates the old one.
func (r *PgxTokenRepository) UpsertTokenRecord(ctx context.Context, record domain.TokenRecord) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin token upsert transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	now := time.Now()
	refreshRow := models.RefreshToken{
		UserID:       record.UserID,
		RefreshToken: record.RefreshToken,
		Scope:        record.Scope,
		UpdatedAt:    now,
	}
	accessRow := models.AccessToken{
		UserID:      record.UserID,
		AccessToken: record.AccessToken,
		ExpiresAt:   record.ExpiresAt,
		Scope:       record.Scope,
		UpdatedAt:   now,
	}

	refreshQuery := `
        INSERT INTO refresh_tokens (user_id, refresh_token, scope, updated_at)
        VALUES ($1, $2, $3, $4)
        ON CONFLICT (user_id) DO UPDATE SET
            refresh_token = EXCLUDED.refresh_token,
            scope = EXCLUDED.scope,
            updated_at = EXCLUDED.updated_at;
    `
	if _, err := tx.Exec(ctx, refreshQuery, refreshRow.UserID, refreshRow.RefreshToken, refreshRow.Scope, refreshRow.UpdatedAt); err != nil {
		return fmt.Errorf("failed to upsert refresh token: %w", err)
	}

	accessQuery := `
        INSERT INTO access_tokens (user_id, access_token, expires_at, scope, updated_at)
        VALUES ($1, $2, $3, $4, $5)
        ON CONFLICT (user_id) DO UPDATE SET
            access_token = EXCLUDED.access_token,
            expires_at = EXCLUDED.expires_at,
            scope = EXCLUDED.scope,
            updated_at = EXCLUDED.updated_at;
    `
	if _, err := tx.Exec(ctx, accessQuery, accessRow.UserID, accessRow.AccessToken, accessRow.ExpiresAt, accessRow.Scope, accessRow.UpdatedAt); err != nil {
		return fmt.Errorf("failed to upsert access token: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit token upsert transaction: %w", err)
	}
	return nil
}
