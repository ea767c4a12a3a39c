package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/cardvault/internal/domain/entity"
	"github.com/oksasatya/cardvault/internal/domain/repository"
)

type CreditCardRepository struct {
	pool *pgxpool.Pool
}

func NewCreditCardRepository(pool *pgxpool.Pool) *CreditCardRepository {
	return &CreditCardRepository{pool: pool}
}

const cardColumns = `id, user_id, card_number, cvv, card_number_masked, holder_name, expiry_date,
	total_limit, available_limit, outstanding_amount, minimum_due, due_date, is_blocked,
	created_at, updated_at`

func (r *CreditCardRepository) Create(ctx context.Context, card *entity.CreditCard) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO credit_cards
			(user_id, card_number, cvv, card_number_masked, holder_name, expiry_date,
			 total_limit, available_limit, outstanding_amount, minimum_due, due_date, is_blocked)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id, created_at, updated_at
	`, card.UserID, card.Number, card.CVV, card.NumberMasked, card.HolderName, card.ExpiryDate,
		card.TotalLimit, card.AvailLimit, card.Outstanding, card.MinimumDue, card.DueDate, card.IsBlocked)

	return row.Scan(&card.ID, &card.CreatedAt, &card.UpdatedAt)
}

// GetByIDForUser scopes the lookup by owner. A card owned by someone else
// comes back as ErrNotFound, same as a missing row.
func (r *CreditCardRepository) GetByIDForUser(ctx context.Context, id, userID string) (*entity.CreditCard, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+cardColumns+`
		FROM credit_cards
		WHERE id = $1 AND user_id = $2
	`, id, userID)
	return scanCard(row)
}

func (r *CreditCardRepository) ListByUser(ctx context.Context, userID string) ([]*entity.CreditCard, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+cardColumns+`
		FROM credit_cards
		WHERE user_id = $1
		ORDER BY created_at
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	cards := make([]*entity.CreditCard, 0)
	for rows.Next() {
		card, err := scanCard(rows)
		if err != nil {
			return nil, err
		}
		cards = append(cards, card)
	}
	return cards, rows.Err()
}

func (r *CreditCardRepository) Update(ctx context.Context, card *entity.CreditCard) error {
	card.UpdatedAt = time.Now()

	res, err := r.pool.Exec(ctx, `
		UPDATE credit_cards
		SET holder_name = $1, expiry_date = $2, is_blocked = $3, updated_at = $4
		WHERE id = $5 AND user_id = $6
	`, card.HolderName, card.ExpiryDate, card.IsBlocked, card.UpdatedAt, card.ID, card.UserID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *CreditCardRepository) DeleteByIDForUser(ctx context.Context, id, userID string) error {
	res, err := r.pool.Exec(ctx, `
		DELETE FROM credit_cards
		WHERE id = $1 AND user_id = $2
	`, id, userID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func scanCard(row pgx.Row) (*entity.CreditCard, error) {
	card := &entity.CreditCard{}
	if err := row.Scan(&card.ID, &card.UserID, &card.Number, &card.CVV, &card.NumberMasked,
		&card.HolderName, &card.ExpiryDate, &card.TotalLimit, &card.AvailLimit,
		&card.Outstanding, &card.MinimumDue, &card.DueDate, &card.IsBlocked,
		&card.CreatedAt, &card.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return card, nil
}

var _ repository.CreditCardRepository = (*CreditCardRepository)(nil)
