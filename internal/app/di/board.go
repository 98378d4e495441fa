package di

import (
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	boardadapters "kanban_backend/internal/feature/board/adapters"
	"kanban_backend/internal/platform/cache"
)

// columnCacheTTL bounds staleness if an invalidation is lost.
const columnCacheTTL = 5 * time.Minute

// NewColumnRepository creates the column repository wrapped in the Redis list cache.
// With a nil client the cache is bypassed.
func NewColumnRepository(rdb *redis.Client, db *gorm.DB) *cache.CachingColumnRepository {
	return cache.NewCachingColumnRepository(rdb, columnCacheTTL, boardadapters.NewColumnRepository(db), "columns")
}
