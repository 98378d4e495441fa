// Package cache provides caching implementations for repository interfaces.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"kanban_backend/internal/feature/board/domain/entity"
	"kanban_backend/internal/feature/board/usecase"
)

// ColumnStore is the repository wrapped by CachingColumnRepository.
type ColumnStore interface {
	usecase.ColumnRepository
	DeleteAllByUser(ctx context.Context, userID uint) error
}

// versionTTL keeps a user's cache version well past the lifetime of any entry written under it.
const versionTTL = 24 * time.Hour

// CachingColumnRepository decorates a ColumnStore with a per-user Redis cache of List.
// Entries are stored under a per-user version that every successful mutation bumps,
// so a List that read the database before a concurrent write can only fill a
// version nobody reads any more.
type CachingColumnRepository struct {
	inner     ColumnStore
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
}

// Compile-time check to ensure CachingColumnRepository implements ColumnRepository.
var _ usecase.ColumnRepository = (*CachingColumnRepository)(nil)

// NewCachingColumnRepository decorates a ColumnStore with Redis caching.
// If ttl is 0, it defaults to 5 minutes. If namespace is empty, it uses "columns".
func NewCachingColumnRepository(rdb *redis.Client, ttl time.Duration, inner ColumnStore, namespace string) *CachingColumnRepository {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	if namespace == "" {
		namespace = "columns"
	}
	return &CachingColumnRepository{
		inner:     inner,
		rdb:       rdb,
		ttl:       ttl,
		namespace: namespace,
	}
}

// List returns the user's columns, checking the cache first.
func (c *CachingColumnRepository) List(ctx context.Context, userID uint) ([]entity.Column, error) {
	// Bypass cache if Redis is not configured
	if c.rdb == nil {
		return c.inner.List(ctx, userID)
	}

	ver, err := c.rdb.Get(ctx, c.versionKey(userID)).Int64()
	if err != nil && !errors.Is(err, redis.Nil) {
		slog.Warn("column cache version unavailable, reading database", "user_id", userID, "error", err)
		return c.inner.List(ctx, userID)
	}
	key := c.cacheKey(userID, ver)

	// 1) Check cache
	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		var out []entity.Column
		if err := json.Unmarshal(b, &out); err == nil {
			return out, nil
		}
		// Delete corrupted cache entry
		_ = c.rdb.Del(ctx, key).Err()
	}

	// 2) Fallback to database
	out, err := c.inner.List(ctx, userID)
	if err != nil {
		return nil, err
	}

	// 3) Store in cache (best effort)
	if b, err := json.Marshal(out); err == nil {
		_ = c.rdb.Set(ctx, key, b, c.ttl).Err()
	}
	return out, nil
}

func (c *CachingColumnRepository) FindByID(ctx context.Context, userID, id uint) (*entity.Column, error) {
	return c.inner.FindByID(ctx, userID, id)
}

func (c *CachingColumnRepository) NextPosition(ctx context.Context, userID uint) (int, error) {
	return c.inner.NextPosition(ctx, userID)
}

func (c *CachingColumnRepository) Create(ctx context.Context, col *entity.Column) error {
	if err := c.inner.Create(ctx, col); err != nil {
		return err
	}
	c.invalidate(ctx, col.UserID)
	return nil
}

func (c *CachingColumnRepository) Update(ctx context.Context, col *entity.Column) error {
	if err := c.inner.Update(ctx, col); err != nil {
		return err
	}
	c.invalidate(ctx, col.UserID)
	return nil
}

func (c *CachingColumnRepository) Delete(ctx context.Context, userID, id uint) error {
	if err := c.inner.Delete(ctx, userID, id); err != nil {
		return err
	}
	c.invalidate(ctx, userID)
	return nil
}

func (c *CachingColumnRepository) Reorder(ctx context.Context, userID uint, ids []uint) error {
	if err := c.inner.Reorder(ctx, userID, ids); err != nil {
		return err
	}
	c.invalidate(ctx, userID)
	return nil
}

// DeleteAllByUser removes the user's board and its cache entry.
func (c *CachingColumnRepository) DeleteAllByUser(ctx context.Context, userID uint) error {
	if err := c.inner.DeleteAllByUser(ctx, userID); err != nil {
		return err
	}
	c.invalidate(ctx, userID)
	return nil
}

// invalidate bumps the user's cache version so entries written under the old one are never read.
// Failures are logged; the stale entry expires with its TTL anyway.
func (c *CachingColumnRepository) invalidate(ctx context.Context, userID uint) {
	if c.rdb == nil {
		return
	}
	key := c.versionKey(userID)
	if err := c.rdb.Incr(ctx, key).Err(); err != nil {
		slog.Warn("failed to invalidate column cache", "user_id", userID, "error", err)
		return
	}
	if err := c.rdb.Expire(ctx, key, versionTTL).Err(); err != nil {
		slog.Warn("failed to set column cache version ttl", "user_id", userID, "error", err)
	}
}

// versionKey is the counter bumped by every mutation of a user's columns.
func (c *CachingColumnRepository) versionKey(userID uint) string {
	return fmt.Sprintf("%s:%d:ver", c.namespace, userID)
}

// cacheKey generates the cache key for a user's column list at a version.
func (c *CachingColumnRepository) cacheKey(userID uint, ver int64) string {
	return fmt.Sprintf("%s:%d:v%d", c.namespace, userID, ver)
}
