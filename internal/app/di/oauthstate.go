package di

import (
	"github.com/redis/go-redis/v9"

	"kanban_backend/internal/feature/auth/usecase"
	"kanban_backend/internal/platform/oauthstate"
)

// NewStateStore creates a StateStore implementation.
// If Redis is available, it returns a Redis-backed implementation so any
// instance can complete a sign-in started on another. Otherwise, it falls
// back to process memory.
func NewStateStore(rdb *redis.Client) usecase.StateStore {
	if rdb != nil {
		return oauthstate.NewStateRedis(rdb, "oauthstate", oauthstate.DefaultTTL)
	}
	return oauthstate.NewStateMemory(oauthstate.DefaultTTL)
}
