// Package cache provides a Redis-backed caching layer as a mono plugin.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/go-monolith/mono/pkg/storage"
	goredis "github.com/redis/go-redis/v9"
)

// scanBatch is the COUNT hint passed to SCAN during invalidation.
const scanBatch = 100

// CacheService defines the caching operations used by consumers.
type CacheService interface {
	// Get retrieves a value and unmarshals it into dest.
	// Returns true if the key was found (cache hit), false otherwise.
	Get(ctx context.Context, key string, dest any) (bool, error)

	// Set stores a value with the default TTL.
	Set(ctx context.Context, key string, value any) error

	// SetWithTTL stores a value with a custom TTL.
	SetWithTTL(ctx context.Context, key string, value any, ttl time.Duration) error

	// Delete removes the given keys.
	Delete(ctx context.Context, keys ...string) error

	// InvalidatePrefix removes every key under prefix and reports how many were removed.
	// Only keys owned by this service are touched.
	InvalidatePrefix(ctx context.Context, prefix string) (int, error)

	// Close closes the underlying storage connection.
	Close() error
}

// cacheService implements CacheService on top of the mono Storage interface,
// using the raw Redis client only where Storage has no equivalent.
type cacheService struct {
	storage storage.Storage
	client  goredis.UniversalClient
	prefix  string
	ttl     time.Duration
}

// NewCacheService creates a CacheService. client is used for prefix invalidation.
func NewCacheService(s storage.Storage, client goredis.UniversalClient, prefix string, ttl time.Duration) CacheService {
	return &cacheService{
		storage: s,
		client:  client,
		prefix:  prefix,
		ttl:     ttl,
	}
}

// Get retrieves a value from the cache.
func (c *cacheService) Get(ctx context.Context, key string, dest any) (bool, error) {
	fullKey := c.prefix + key

	data, err := c.storage.GetWithContext(ctx, fullKey)
	if err != nil {
		return false, fmt.Errorf("cache get error: %w", err)
	}

	// nil or empty means key not found (cache miss)
	if len(data) == 0 {
		return false, nil
	}

	if err := json.Unmarshal(data, dest); err != nil {
		return false, fmt.Errorf("cache unmarshal error: %w", err)
	}

	return true, nil
}

// Set stores a value with the default TTL.
func (c *cacheService) Set(ctx context.Context, key string, value any) error {
	return c.SetWithTTL(ctx, key, value, c.ttl)
}

// SetWithTTL stores a value with a custom TTL.
func (c *cacheService) SetWithTTL(ctx context.Context, key string, value any, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("cache marshal error: %w", err)
	}

	if err := c.storage.SetWithContext(ctx, c.prefix+key, data, ttl); err != nil {
		return fmt.Errorf("cache set error: %w", err)
	}

	return nil
}

// Delete removes keys one by one.
func (c *cacheService) Delete(ctx context.Context, keys ...string) error {
	for _, key := range keys {
		if err := c.storage.DeleteWithContext(ctx, c.prefix+key); err != nil {
			return fmt.Errorf("cache delete error: %w", err)
		}
	}
	return nil
}

// InvalidatePrefix walks the keyspace with SCAN so Redis is never blocked by KEYS.
func (c *cacheService) InvalidatePrefix(ctx context.Context, prefix string) (int, error) {
	if c.client == nil {
		return 0, fmt.Errorf("cache invalidate error: no redis client")
	}

	pattern := c.prefix + prefix + "*"
	deleted := 0
	var cursor uint64
	for {
		keys, next, err := c.client.Scan(ctx, cursor, pattern, scanBatch).Result()
		if err != nil {
			return deleted, fmt.Errorf("cache scan error: %w", err)
		}

		if len(keys) > 0 {
			n, err := c.client.Del(ctx, keys...).Result()
			if err != nil {
				return deleted, fmt.Errorf("cache delete error: %w", err)
			}
			deleted += int(n)
		}

		cursor = next
		if cursor == 0 {
			break
		}
	}

	if deleted > 0 {
		log.Printf("[cache] Invalidated %d key(s) matching %s", deleted, pattern)
	}
	return deleted, nil
}

// Close closes the underlying storage.
func (c *cacheService) Close() error {
	return c.storage.Close()
}
