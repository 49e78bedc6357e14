package cache

import (
	"context"
	"log/slog"
)

// SafeDelete deletes cache keys, logging instead of returning failures
func SafeDelete(ctx context.Context, helper *CacheHelper, keys ...string) {
	if err := helper.Delete(ctx, keys...); err != nil {
		slog.ErrorContext(ctx, "Failed to delete cache keys",
			"error", err,
			"keys", keys)
	}
}

// InvalidateBlockCache drops the cached settings of one block
func InvalidateBlockCache(ctx context.Context, cm *CacheManager, location string) {
	SafeDelete(ctx, cm.Block, BlockKey(location))
}

// BlockKey is the cache key of a block's settings
func BlockKey(location string) string {
	return "location:" + location
}
