package repository

import (
	"context"
	"errors"

	"github.com/oksasatya/cardvault/internal/domain/entity"
)

// Store errors. Conflict errors map from the database's uniqueness
// constraints, which are the source of truth for duplicate races.
var (
	ErrNotFound          = errors.New("not found")
	ErrDuplicateEmail    = errors.New("email already registered")
	ErrDuplicateIdentity = errors.New("provider identity already linked")
)

// UserRepository defines persistence for user accounts.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	Update(ctx context.Context, u *entity.User) error
}

// LinkedIdentityRepository defines persistence for external identity links.
type LinkedIdentityRepository interface {
	Create(ctx context.Context, li *entity.LinkedIdentity) error
	GetByProviderAccount(ctx context.Context, provider, providerAccountID string) (*entity.LinkedIdentity, error)
}

// CreditCardRepository defines persistence for user-owned card records.
// All lookups are scoped by owner so a foreign record is indistinguishable
// from a missing one.
type CreditCardRepository interface {
	Create(ctx context.Context, card *entity.CreditCard) error
	GetByIDForUser(ctx context.Context, id, userID string) (*entity.CreditCard, error)
	ListByUser(ctx context.Context, userID string) ([]*entity.CreditCard, error)
	Update(ctx context.Context, card *entity.CreditCard) error
	DeleteByIDForUser(ctx context.Context, id, userID string) error
}
