package oauth

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrInvalidState means the state nonce is unknown, expired, or already
// used. Each nonce is single-use.
var ErrInvalidState = errors.New("invalid oauth state")

// StateStore keeps the per-attempt state nonce that ties an authorize
// redirect to its callback. Nonces live in Redis under a short TTL so an
// abandoned flow cleans itself up.
type StateStore struct {
	RDB *redis.Client
	TTL time.Duration
}

func NewStateStore(rdb *redis.Client, ttl time.Duration) *StateStore {
	return &StateStore{RDB: rdb, TTL: ttl}
}

func keyState(state string) string { return "oauth:state:" + state }

// Create issues a fresh random nonce bound to the provider.
func (s *StateStore) Create(ctx context.Context, provider string) (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	state := base64.RawURLEncoding.EncodeToString(b)
	if err := s.RDB.Set(ctx, keyState(state), provider, s.TTL).Err(); err != nil {
		return "", err
	}
	return state, nil
}

// Consume validates and burns a nonce, returning the provider it was
// issued for.
func (s *StateStore) Consume(ctx context.Context, state string) (string, error) {
	if state == "" {
		return "", ErrInvalidState
	}
	provider, err := s.RDB.GetDel(ctx, keyState(state)).Result()
	if errors.Is(err, redis.Nil) || provider == "" {
		return "", ErrInvalidState
	}
	if err != nil {
		return "", err
	}
	return provider, nil
}
