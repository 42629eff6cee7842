package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"github.com/slaviors/simenu/models"
)

const (
	menuListCachePrefix = "menu:v:"
	cacheVersionKey     = "menu:version"

	// DefaultTTL bounds staleness for pollers between version bumps.
	DefaultTTL = 5 * time.Minute
)

// MenuCache caches the active menu list in Redis. Writes bump a version key
// instead of deleting entries, so stale lists age out under old versions
// without a scan-and-delete.
type MenuCache struct {
	redis *redis.Client
	ttl   time.Duration
}

// NewMenuCache creates a new MenuCache.
func NewMenuCache(rdb *redis.Client) *MenuCache {
	return &MenuCache{redis: rdb, ttl: DefaultTTL}
}

// GetActiveMenu retrieves the cached active menu list. The version observed
// on the way in is returned even on a miss: a later SetActiveMenuAsync must
// write under the version that was current before the caller read the
// database, so a list fetched before an Invalidate bump cannot be cached
// under the bumped version.
func (mc *MenuCache) GetActiveMenu(ctx context.Context) ([]models.MenuItemView, int64, bool) {
	version, err := mc.getVersion(ctx)
	if err != nil || version == 0 {
		return nil, 0, false
	}

	cached, err := mc.redis.Get(ctx, mc.listKey(version)).Result()
	if err != nil {
		return nil, version, false
	}

	var items []models.MenuItemView
	if err := json.Unmarshal([]byte(cached), &items); err != nil {
		zap.L().Warn("Failed to unmarshal cached menu list", zap.Error(err))
		return nil, version, false
	}
	return items, version, true
}

// SetActiveMenuAsync caches the active menu list under the given version
// without blocking the request. A zero version means the version was never
// observed and nothing is cached.
func (mc *MenuCache) SetActiveMenuAsync(version int64, items []models.MenuItemView) {
	if version == 0 {
		return
	}
	go func() {
		bgCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		jsonBytes, err := json.Marshal(items)
		if err != nil {
			zap.L().Warn("Failed to marshal menu list for cache", zap.Error(err))
			return
		}

		if err := mc.redis.Set(bgCtx, mc.listKey(version), jsonBytes, mc.ttl).Err(); err != nil {
			zap.L().Warn("Failed to cache menu list", zap.Error(err))
		}
	}()
}

// Invalidate bumps the cache version so all cached lists go stale at once.
func (mc *MenuCache) Invalidate(ctx context.Context) {
	if err := mc.redis.Incr(ctx, cacheVersionKey).Err(); err != nil {
		zap.L().Warn("Failed to bump menu cache version", zap.Error(err))
	}
}

func (mc *MenuCache) listKey(version int64) string {
	return fmt.Sprintf("%s%d:active", menuListCachePrefix, version)
}

func (mc *MenuCache) getVersion(ctx context.Context) (int64, error) {
	version, err := mc.redis.Get(ctx, cacheVersionKey).Int64()
	if err == redis.Nil {
		// First use: initialize so subsequent reads and writes share a version.
		if err := mc.redis.Set(ctx, cacheVersionKey, 1, 0).Err(); err != nil {
			return 0, err
		}
		return 1, nil
	}
	if err != nil {
		return 0, err
	}
	return version, nil
}
