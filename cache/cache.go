// Package cache is a small read-through JSON cache over Redis. A nil *Cache
// is valid and does nothing, so the server runs fine without REDIS_ADDR set.
package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	KeyProductList = "cache:products:all"

	TTLProductList = 60 * time.Second
)

type Cache struct {
	rdb *redis.Client
}

// New connects to Redis at addr. Returns nil (a no-op cache) when addr is empty.
func New(addr string) *Cache {
	if addr == "" {
		return nil
	}
	rdb := redis.NewClient(&redis.Options{Addr: addr})
	return &Cache{rdb: rdb}
}

// GetJSON unmarshals the cached value at key into dest. Returns false on miss
// or any Redis error; callers fall back to the database.
func (c *Cache) GetJSON(ctx context.Context, key string, dest interface{}) bool {
	if c == nil {
		return false
	}
	raw, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		return false
	}
	return json.Unmarshal(raw, dest) == nil
}

// SetJSON stores value at key with the given TTL. Errors are ignored; the
// cache is best-effort.
func (c *Cache) SetJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) {
	if c == nil {
		return
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return
	}
	c.rdb.Set(ctx, key, raw, ttl)
}

// Invalidate drops the given keys. Called after catalog mutations.
func (c *Cache) Invalidate(ctx context.Context, keys ...string) {
	if c == nil {
		return
	}
	c.rdb.Del(ctx, keys...)
}
