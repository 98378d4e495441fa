// Package oauthstate stores the single-use state values of the Google sign-in redirect.
package oauthstate

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"kanban_backend/internal/feature/auth/usecase"
)

// DefaultTTL bounds how long a user may sit on the consent screen.
const DefaultTTL = 10 * time.Minute

// StateRedis implements usecase.StateStore using Redis.
type StateRedis struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

var _ usecase.StateStore = (*StateRedis)(nil)

// NewStateRedis creates a new StateRedis instance.
// If ttl is 0, DefaultTTL is used. If prefix is empty, "oauthstate" is used.
func NewStateRedis(client *redis.Client, prefix string, ttl time.Duration) *StateRedis {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if prefix == "" {
		prefix = "oauthstate"
	}
	return &StateRedis{
		client: client,
		prefix: prefix,
		ttl:    ttl,
	}
}

// stateKey returns the Redis key for a state value.
func (s *StateRedis) stateKey(state string) string {
	return fmt.Sprintf("%s:%s", s.prefix, state)
}

// Issue creates a new random state and stores it with the configured TTL.
func (s *StateRedis) Issue(ctx context.Context) (string, error) {
	state := uuid.NewString()
	if err := s.client.Set(ctx, s.stateKey(state), "1", s.ttl).Err(); err != nil {
		return "", fmt.Errorf("failed to store oauth state: %w", err)
	}
	return state, nil
}

// Consume deletes state and fails with usecase.ErrInvalidState if it was unknown or expired.
func (s *StateRedis) Consume(ctx context.Context, state string) error {
	if state == "" {
		return usecase.ErrInvalidState
	}
	if _, err := s.client.GetDel(ctx, s.stateKey(state)).Result(); err != nil {
		if errors.Is(err, redis.Nil) {
			return usecase.ErrInvalidState
		}
		return fmt.Errorf("failed to consume oauth state: %w", err)
	}
	return nil
}
