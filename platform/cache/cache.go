// Package cache provides a small Redis-backed cache used by read-heavy
// public endpoints. This is part of the platform layer and contains no
// business logic.
package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrMiss is returned when a key is absent or Redis is not configured.
var ErrMiss = errors.New("cache: miss")

// Cache is a thin wrapper around a Redis client. A nil *Cache is valid
// and behaves as an always-miss cache, so callers never branch on
// whether Redis is configured.
type Cache struct {
	client *redis.Client
}

// New connects to Redis using a redis:// URL. An empty URL returns a nil
// cache, which disables caching.
func New(redisURL string) (*Cache, error) {
	if redisURL == "" {
		return nil, nil
	}

	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}

	return &Cache{client: redis.NewClient(opts)}, nil
}

// Get fetches the raw value for key, or ErrMiss.
func (c *Cache) Get(ctx context.Context, key string) ([]byte, error) {
	if c == nil || c.client == nil {
		return nil, ErrMiss
	}

	value, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrMiss
	}
	if err != nil {
		return nil, err
	}
	return value, nil
}

// Set stores value under key with the given TTL. Failures are returned
// but callers are expected to treat them as non-fatal.
func (c *Cache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Set(ctx, key, value, ttl).Err()
}

// Close releases the underlying client.
func (c *Cache) Close() error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Close()
}
