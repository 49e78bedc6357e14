package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache errors
var (
	ErrCacheNotAvailable = errors.New("cache not available")
	ErrCacheNotFound     = errors.New("cache not found")
)

// CacheConfig defines cache configuration for one kind of data
type CacheConfig struct {
	TTL    time.Duration
	Prefix string
}

var (
	// Block settings change only on save_settings, which invalidates the key
	BlockCacheConfig = CacheConfig{
		TTL:    10 * time.Minute,
		Prefix: "block:",
	}

	UserCacheConfig = CacheConfig{
		TTL:    15 * time.Minute,
		Prefix: "user:",
	}
)

// CacheHelper provides prefixed JSON caching on top of redis.
// A nil client turns every write into a no-op and every read into ErrCacheNotAvailable.
type CacheHelper struct {
	client *redis.Client
	prefix string
}

func NewCacheHelper(client *redis.Client, prefix string) *CacheHelper {
	return &CacheHelper{
		client: client,
		prefix: prefix,
	}
}

// Key returns the full redis key for key
func (c *CacheHelper) Key(key string) string {
	return c.prefix + key
}

// Get retrieves and unmarshals data from cache
func (c *CacheHelper) Get(ctx context.Context, key string, dest interface{}) error {
	if c.client == nil {
		return ErrCacheNotAvailable
	}

	data, err := c.client.Get(ctx, c.Key(key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return ErrCacheNotFound
		}
		return fmt.Errorf("cache get error: %w", err)
	}

	if err := json.Unmarshal(data, dest); err != nil {
		return fmt.Errorf("cache unmarshal error: %w", err)
	}

	return nil
}

// Set marshals and stores data in cache
func (c *CacheHelper) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	if c.client == nil {
		return nil
	}

	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("cache marshal error: %w", err)
	}

	return c.client.Set(ctx, c.Key(key), data, ttl).Err()
}

// Delete removes keys from cache
func (c *CacheHelper) Delete(ctx context.Context, keys ...string) error {
	if c.client == nil || len(keys) == 0 {
		return nil
	}

	cacheKeys := make([]string, len(keys))
	for i, key := range keys {
		cacheKeys[i] = c.Key(key)
	}

	return c.client.Del(ctx, cacheKeys...).Err()
}

// CacheOrExecute implements the cache-aside pattern. Cache failures never fail
// the call: fetchFunc is the source of truth.
func (c *CacheHelper) CacheOrExecute(ctx context.Context, key string, dest interface{}, ttl time.Duration, fetchFunc func() (interface{}, error)) error {
	err := c.Get(ctx, key, dest)
	if err == nil {
		return nil
	}

	if !errors.Is(err, ErrCacheNotFound) && !errors.Is(err, ErrCacheNotAvailable) {
		slog.WarnContext(ctx, "Cache get error, proceeding to fetch", "error", err, "key", key)
	}

	value, err := fetchFunc()
	if err != nil {
		return err
	}

	if err := c.Set(ctx, key, value, ttl); err != nil {
		slog.ErrorContext(ctx, "Cache set error", "error", err, "key", key)
	}

	// Copy the fetched value into dest through the same encoding the cache uses
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal result error: %w", err)
	}

	return json.Unmarshal(data, dest)
}

// CacheManager groups the cache helpers used by the repositories
type CacheManager struct {
	client *redis.Client

	Block *CacheHelper
	User  *CacheHelper
}

// NewCacheManager creates cache manager with all cache helpers
func NewCacheManager(client *redis.Client) *CacheManager {
	return &CacheManager{
		client: client,
		Block:  NewCacheHelper(client, BlockCacheConfig.Prefix),
		User:   NewCacheHelper(client, UserCacheConfig.Prefix),
	}
}

// HealthCheck verifies cache connectivity
func (cm *CacheManager) HealthCheck(ctx context.Context) error {
	if cm.client == nil {
		return ErrCacheNotAvailable
	}

	if err := cm.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("cache health check failed: %w", err)
	}

	return nil
}
