// Package cache provides a small Redis-backed response cache for the hot read
// endpoints. The service runs fine without Redis; a nil *Cache disables
// caching everywhere.
package cache

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
)

type Cache struct {
	client *redis.Client
}

// New connects to Redis at addr. It returns nil (caching disabled) when addr
// is empty or the server cannot be reached; a cold cache must never keep the
// service from starting.
func New(addr string) *Cache {
	if addr == "" {
		return nil
	}

	client := redis.NewClient(&redis.Options{Addr: addr})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil
	}

	return &Cache{client: client}
}

// Get returns the cached body for key, or nil on miss or error.
func (c *Cache) Get(ctx context.Context, key string) []byte {
	if c == nil {
		return nil
	}

	body, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		return nil
	}
	return body
}

// Set stores body under key for ttl. Errors are ignored; the cache is an
// optimization, not a dependency.
func (c *Cache) Set(ctx context.Context, key string, body []byte, ttl time.Duration) {
	if c == nil {
		return
	}
	c.client.Set(ctx, key, body, ttl)
}
