package application

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/cardvault/internal/domain/entity"
	"github.com/oksasatya/cardvault/internal/domain/repository"
	"github.com/oksasatya/cardvault/pkg/helpers"
)

var (
	// ErrInvalidCredentials covers unknown email, passwordless account,
	// and wrong password alike. The cases are deliberately
	// indistinguishable so the endpoint cannot be used to enumerate
	// registered emails.
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailTaken         = errors.New("email already registered")
	ErrLinkingFailed      = errors.New("identity linking failed")
)

// VerifiedIdentity is the result of a successful authentication attempt.
type VerifiedIdentity struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Image string `json:"image,omitempty"`
}

// AuthService verifies presented credentials against the stores and
// issues session tokens. One credential class resolves per attempt:
// either a local email/password pair or a provider assertion, never both.
type AuthService struct {
	Users      repository.UserRepository
	Identities repository.LinkedIdentityRepository
	Sessions   *helpers.SessionManager
	Logger     *logrus.Logger

	// Hooks fire in a fixed, explicit order: OnAuthenticate after a
	// credential verifies, OnIssueToken after a token is minted.
	// Both are optional.
	OnAuthenticate func(identity *VerifiedIdentity)
	OnIssueToken   func(userID string)
}

func NewAuthService(users repository.UserRepository, identities repository.LinkedIdentityRepository, sessions *helpers.SessionManager, logger *logrus.Logger) *AuthService {
	return &AuthService{
		Users:      users,
		Identities: identities,
		Sessions:   sessions,
		Logger:     logger,
	}
}

// NormalizeEmail lowercases and trims an address. Uniqueness is enforced
// on the normalized form.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates a password-credentialed account. Shape validation
// (email syntax, password length, confirmation equality) happens at the
// transport boundary before this is called.
func (s *AuthService) Register(ctx context.Context, name, email, password string) (*entity.User, error) {
	hash, err := helpers.HashPassword(password)
	if err != nil {
		return nil, err
	}
	u := &entity.User{
		Email:        NormalizeEmail(email),
		PasswordHash: hash,
		Name:         name,
	}
	if err := s.Users.Create(ctx, u); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	return u, nil
}

// Authenticate verifies a local email/password pair. An unknown email and
// an OAuth-only account both fall through to a bcrypt comparison against
// an empty digest, collapsing into the same outcome as a wrong password.
func (s *AuthService) Authenticate(ctx context.Context, email, password string) (*VerifiedIdentity, error) {
	u, err := s.Users.GetByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) && s.Logger != nil {
			s.Logger.WithError(err).Error("user lookup failed")
		}
		u = &entity.User{}
	}
	if !helpers.VerifyPassword(password, u.PasswordHash) {
		return nil, ErrInvalidCredentials
	}
	identity := &VerifiedIdentity{ID: u.ID, Email: u.Email, Name: u.Name, Image: u.ImageURL}
	if s.OnAuthenticate != nil {
		s.OnAuthenticate(identity)
	}
	return identity, nil
}

// AuthenticateProvider accepts an assertion already verified by the
// provider integration and resolves it to an account via the linking
// rules. Any persistence failure aborts the attempt with
// ErrLinkingFailed; a provider login never silently succeeds unlinked.
func (s *AuthService) AuthenticateProvider(ctx context.Context, a ProviderAssertion) (*VerifiedIdentity, error) {
	u, err := s.resolveLink(ctx, a)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithFields(logrus.Fields{
				"provider": a.Provider,
			}).Error("identity linking failed")
		}
		return nil, ErrLinkingFailed
	}
	identity := &VerifiedIdentity{ID: u.ID, Email: u.Email, Name: u.Name, Image: u.ImageURL}
	if s.OnAuthenticate != nil {
		s.OnAuthenticate(identity)
	}
	return identity, nil
}

// IssueSession mints a signed session token for a verified identity.
func (s *AuthService) IssueSession(identity *VerifiedIdentity) (string, time.Time, error) {
	token, exp, err := s.Sessions.Mint(identity.ID)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", identity.ID).Error("mint session token failed")
		}
		return "", time.Time{}, err
	}
	if s.OnIssueToken != nil {
		s.OnIssueToken(identity.ID)
	}
	return token, exp, nil
}

// Login composes Authenticate and IssueSession for the credential flow.
func (s *AuthService) Login(ctx context.Context, email, password string) (*VerifiedIdentity, string, time.Time, error) {
	identity, err := s.Authenticate(ctx, email, password)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	token, exp, err := s.IssueSession(identity)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	return identity, token, exp, nil
}
