// Package cache keeps rendered month pages in Redis so repeated paging does
// not re-expand every stored event. Entries are invalidated wholesale on any
// event write; correctness never depends on a hit.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const pageKeyPrefix = "monthpage:"

type Cache struct {
	rdb    *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// New builds a month-page cache. A nil client disables caching entirely.
func New(rdb *redis.Client, ttl time.Duration, logger *zap.Logger) *Cache {
	return &Cache{rdb: rdb, ttl: ttl, logger: logger}
}

func pageKey(page int) string {
	return fmt.Sprintf("%s%d", pageKeyPrefix, page)
}

// GetPage loads a cached month page into out. The second return is false on
// miss, disabled cache, or any Redis/decode failure.
func (c *Cache) GetPage(ctx context.Context, page int, out any) bool {
	if c == nil || c.rdb == nil {
		return false
	}
	data, err := c.rdb.Get(ctx, pageKey(page)).Bytes()
	if err == redis.Nil {
		return false
	}
	if err != nil {
		c.logger.Warn("Month page cache read failed", zap.Int("page", page), zap.Error(err))
		return false
	}
	if err := json.Unmarshal(data, out); err != nil {
		c.logger.Warn("Month page cache entry corrupt", zap.Int("page", page), zap.Error(err))
		return false
	}
	return true
}

// SetPage stores a rendered month page. Failures are logged, never returned:
// the page was already rendered, the caller has nothing to recover.
func (c *Cache) SetPage(ctx context.Context, page int, value any) {
	if c == nil || c.rdb == nil {
		return
	}
	data, err := json.Marshal(value)
	if err != nil {
		c.logger.Warn("Month page cache encode failed", zap.Int("page", page), zap.Error(err))
		return
	}
	if err := c.rdb.Set(ctx, pageKey(page), data, c.ttl).Err(); err != nil {
		c.logger.Warn("Month page cache write failed", zap.Int("page", page), zap.Error(err))
	}
}

// InvalidateAll drops every cached month page. Called after event writes,
// since a recurring event can touch arbitrarily many pages.
func (c *Cache) InvalidateAll(ctx context.Context) {
	if c == nil || c.rdb == nil {
		return
	}
	var cursor uint64
	for {
		keys, next, err := c.rdb.Scan(ctx, cursor, pageKeyPrefix+"*", 100).Result()
		if err != nil {
			c.logger.Warn("Month page cache invalidation failed", zap.Error(err))
			return
		}
		if len(keys) > 0 {
			if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
				c.logger.Warn("Month page cache delete failed", zap.Error(err))
				return
			}
		}
		cursor = next
		if cursor == 0 {
			return
		}
	}
}
