package application

import (
	"context"
	"errors"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/cardvault/internal/domain/entity"
	"github.com/oksasatya/cardvault/internal/domain/repository"
)

// ErrCardNotFound covers both a missing card and a card owned by another
// user. Collapsing the two prevents probing for record existence.
var ErrCardNotFound = errors.New("card not found")

// CardService manages user-owned card records. Every operation is scoped
// to the owner taken from the verified session, never from the payload.
type CardService struct {
	Cards  repository.CreditCardRepository
	Logger *logrus.Logger
}

func NewCardService(cards repository.CreditCardRepository, logger *logrus.Logger) *CardService {
	return &CardService{Cards: cards, Logger: logger}
}

type CreateCardInput struct {
	Number     string
	CVV        string
	HolderName string
	ExpiryDate string
	TotalLimit int64
	DueDate    string
}

func (s *CardService) Create(ctx context.Context, userID string, in CreateCardInput) (*entity.CreditCard, error) {
	card := &entity.CreditCard{
		UserID:       userID,
		Number:       in.Number,
		CVV:          in.CVV,
		NumberMasked: MaskCardNumber(in.Number),
		HolderName:   in.HolderName,
		ExpiryDate:   in.ExpiryDate,
		TotalLimit:   in.TotalLimit,
		AvailLimit:   in.TotalLimit,
		DueDate:      in.DueDate,
	}
	if err := s.Cards.Create(ctx, card); err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", userID).Error("create card failed")
		}
		return nil, err
	}
	return card, nil
}

func (s *CardService) List(ctx context.Context, userID string) ([]*entity.CreditCard, error) {
	return s.Cards.ListByUser(ctx, userID)
}

func (s *CardService) Get(ctx context.Context, userID, id string) (*entity.CreditCard, error) {
	card, err := s.Cards.GetByIDForUser(ctx, id, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrCardNotFound
		}
		return nil, err
	}
	return card, nil
}

// UpdateCardInput carries a partial update. Nil/empty fields are left as-is.
type UpdateCardInput struct {
	IsBlocked  *bool
	HolderName string
	ExpiryDate string
}

func (s *CardService) Update(ctx context.Context, userID, id string, in UpdateCardInput) (*entity.CreditCard, error) {
	card, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if in.IsBlocked != nil {
		card.IsBlocked = *in.IsBlocked
	}
	if in.HolderName != "" {
		card.HolderName = in.HolderName
	}
	if in.ExpiryDate != "" {
		card.ExpiryDate = in.ExpiryDate
	}
	if err := s.Cards.Update(ctx, card); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrCardNotFound
		}
		return nil, err
	}
	return card, nil
}

func (s *CardService) Delete(ctx context.Context, userID, id string) error {
	err := s.Cards.DeleteByIDForUser(ctx, id, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrCardNotFound
	}
	return err
}

// MaskCardNumber keeps only the last four digits for display.
func MaskCardNumber(number string) string {
	var digits strings.Builder
	for _, r := range number {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	d := digits.String()
	if len(d) > 4 {
		d = d[len(d)-4:]
	}
	return "**** **** **** " + d
}
