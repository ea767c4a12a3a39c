package application

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/oksasatya/cardvault/internal/domain/entity"
	"github.com/oksasatya/cardvault/internal/domain/repository"
)

// In-memory stores backing the service tests. They enforce the same
// uniqueness rules the database constraints do.

type memUsers struct {
	mu    sync.Mutex
	users map[string]*entity.User
	seq   int
}

func newMemUsers() *memUsers {
	return &memUsers{users: make(map[string]*entity.User)}
}

func (m *memUsers) Create(_ context.Context, u *entity.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.users {
		if existing.Email == u.Email {
			return repository.ErrDuplicateEmail
		}
	}
	m.seq++
	u.ID = fmt.Sprintf("user-%d", m.seq)
	u.CreatedAt = time.Now()
	u.UpdatedAt = u.CreatedAt
	cp := *u
	m.users[u.ID] = &cp
	return nil
}

func (m *memUsers) GetByID(_ context.Context, id string) (*entity.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (m *memUsers) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *memUsers) Update(_ context.Context, u *entity.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[u.ID]; !ok {
		return repository.ErrNotFound
	}
	cp := *u
	m.users[u.ID] = &cp
	return nil
}

func (m *memUsers) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.users)
}

type memIdentities struct {
	mu    sync.Mutex
	links map[string]*entity.LinkedIdentity
	seq   int
}

func newMemIdentities() *memIdentities {
	return &memIdentities{links: make(map[string]*entity.LinkedIdentity)}
}

func identityKey(provider, providerAccountID string) string {
	return provider + "/" + providerAccountID
}

func (m *memIdentities) Create(_ context.Context, li *entity.LinkedIdentity) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := identityKey(li.Provider, li.ProviderAccountID)
	if _, ok := m.links[key]; ok {
		return repository.ErrDuplicateIdentity
	}
	m.seq++
	li.ID = fmt.Sprintf("link-%d", m.seq)
	li.CreatedAt = time.Now()
	cp := *li
	m.links[key] = &cp
	return nil
}

func (m *memIdentities) GetByProviderAccount(_ context.Context, provider, providerAccountID string) (*entity.LinkedIdentity, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	li, ok := m.links[identityKey(provider, providerAccountID)]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *li
	return &cp, nil
}

func (m *memIdentities) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.links)
}

type memCards struct {
	mu    sync.Mutex
	cards map[string]*entity.CreditCard
	seq   int
}

func newMemCards() *memCards {
	return &memCards{cards: make(map[string]*entity.CreditCard)}
}

func (m *memCards) Create(_ context.Context, card *entity.CreditCard) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	card.ID = fmt.Sprintf("card-%d", m.seq)
	card.CreatedAt = time.Now()
	card.UpdatedAt = card.CreatedAt
	cp := *card
	m.cards[card.ID] = &cp
	return nil
}

func (m *memCards) GetByIDForUser(_ context.Context, id, userID string) (*entity.CreditCard, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	card, ok := m.cards[id]
	if !ok || card.UserID != userID {
		return nil, repository.ErrNotFound
	}
	cp := *card
	return &cp, nil
}

func (m *memCards) ListByUser(_ context.Context, userID string) ([]*entity.CreditCard, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*entity.CreditCard, 0)
	for _, card := range m.cards {
		if card.UserID == userID {
			cp := *card
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *memCards) Update(_ context.Context, card *entity.CreditCard) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	existing, ok := m.cards[card.ID]
	if !ok || existing.UserID != card.UserID {
		return repository.ErrNotFound
	}
	cp := *card
	m.cards[card.ID] = &cp
	return nil
}

func (m *memCards) DeleteByIDForUser(_ context.Context, id, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	card, ok := m.cards[id]
	if !ok || card.UserID != userID {
		return repository.ErrNotFound
	}
	delete(m.cards, id)
	return nil
}

var (
	_ repository.UserRepository           = (*memUsers)(nil)
	_ repository.LinkedIdentityRepository = (*memIdentities)(nil)
	_ repository.CreditCardRepository     = (*memCards)(nil)
)
