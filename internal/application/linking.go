package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/oksasatya/cardvault/internal/domain/entity"
	"github.com/oksasatya/cardvault/internal/domain/repository"
)

// ProviderAssertion is a provider-verified identity tuple plus the OAuth
// tokens granted during the exchange. Verification of the assertion itself
// is the provider integration's job; by the time it reaches here it is
// trusted.
type ProviderAssertion struct {
	Provider          string
	ProviderAccountID string
	Email             string
	Name              string
	Image             string

	AccessToken  string
	RefreshToken string
	TokenType    string
	Scope        string
	ExpiresAt    time.Time
}

// resolveLink decides which account a provider identity belongs to:
//
//  1. An existing link for (provider, provider_account_id) wins outright.
//  2. Otherwise an existing user with the asserted email gets a new link.
//  3. Otherwise a fresh passwordless user is created and linked.
//
// Uniqueness races are settled by the store's constraints: a duplicate
// insert means another request won, so converge by re-reading.
func (s *AuthService) resolveLink(ctx context.Context, a ProviderAssertion) (*entity.User, error) {
	li, err := s.Identities.GetByProviderAccount(ctx, a.Provider, a.ProviderAccountID)
	if err == nil {
		return s.Users.GetByID(ctx, li.UserID)
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("identity lookup: %w", err)
	}

	email := NormalizeEmail(a.Email)
	u, err := s.Users.GetByEmail(ctx, email)
	if errors.Is(err, repository.ErrNotFound) {
		u, err = s.createProviderUser(ctx, a, email)
	}
	if err != nil {
		return nil, err
	}

	if err := s.createLink(ctx, u.ID, a); err != nil {
		if errors.Is(err, repository.ErrDuplicateIdentity) {
			// Lost the linking race; the surviving row is authoritative.
			li, rerr := s.Identities.GetByProviderAccount(ctx, a.Provider, a.ProviderAccountID)
			if rerr != nil {
				return nil, fmt.Errorf("re-read after duplicate link: %w", rerr)
			}
			return s.Users.GetByID(ctx, li.UserID)
		}
		return nil, fmt.Errorf("create link: %w", err)
	}
	return u, nil
}

func (s *AuthService) createProviderUser(ctx context.Context, a ProviderAssertion, email string) (*entity.User, error) {
	u := &entity.User{
		Email:    email,
		Name:     a.Name,
		ImageURL: a.Image,
	}
	err := s.Users.Create(ctx, u)
	if errors.Is(err, repository.ErrDuplicateEmail) {
		// A concurrent registration for the same email won; link to it.
		return s.Users.GetByEmail(ctx, email)
	}
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return u, nil
}

func (s *AuthService) createLink(ctx context.Context, userID string, a ProviderAssertion) error {
	return s.Identities.Create(ctx, &entity.LinkedIdentity{
		UserID:            userID,
		Provider:          a.Provider,
		ProviderAccountID: a.ProviderAccountID,
		AccessToken:       a.AccessToken,
		RefreshToken:      a.RefreshToken,
		TokenType:         a.TokenType,
		Scope:             a.Scope,
		ExpiresAt:         a.ExpiresAt,
	})
}
