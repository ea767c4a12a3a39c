package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/cardvault/internal/domain/entity"
	"github.com/oksasatya/cardvault/internal/domain/repository"
)

type LinkedIdentityRepository struct {
	pool *pgxpool.Pool
}

func NewLinkedIdentityRepository(pool *pgxpool.Pool) *LinkedIdentityRepository {
	return &LinkedIdentityRepository{pool: pool}
}

func (r *LinkedIdentityRepository) Create(ctx context.Context, li *entity.LinkedIdentity) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO linked_identities
			(user_id, provider, provider_account_id, access_token, refresh_token, token_type, scope, expires_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at
	`, li.UserID, li.Provider, li.ProviderAccountID, li.AccessToken, li.RefreshToken,
		li.TokenType, li.Scope, li.ExpiresAt)

	if err := row.Scan(&li.ID, &li.CreatedAt); err != nil {
		if isUniqueViolation(err, "linked_identities_provider_account_key") {
			return repository.ErrDuplicateIdentity
		}
		return err
	}
	return nil
}

func (r *LinkedIdentityRepository) GetByProviderAccount(ctx context.Context, provider, providerAccountID string) (*entity.LinkedIdentity, error) {
	li := &entity.LinkedIdentity{}
	row := r.pool.QueryRow(ctx, `
		SELECT id, user_id, provider, provider_account_id, access_token, refresh_token, token_type, scope, expires_at, created_at
		FROM linked_identities
		WHERE provider = $1 AND provider_account_id = $2
	`, provider, providerAccountID)

	if err := row.Scan(&li.ID, &li.UserID, &li.Provider, &li.ProviderAccountID,
		&li.AccessToken, &li.RefreshToken, &li.TokenType, &li.Scope,
		&li.ExpiresAt, &li.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return li, nil
}

var _ repository.LinkedIdentityRepository = (*LinkedIdentityRepository)(nil)
