// Package cache is a thin get-or-set layer over Redis used for hot reads
// (user lookups during authorization, product listings). It is optional at
// runtime: a nil Cache always falls through to the fetch function, so the
// API works without a Redis instance.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

type Cache struct {
	client *redis.Client
}

// New connects to Redis at addr. An empty addr returns a nil Cache, which
// disables caching entirely.
func New(addr, password string) *Cache {
	if addr == "" {
		return nil
	}
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
	})
	return &Cache{client: client}
}

// Ping verifies the connection. Nil caches report healthy.
func (c *Cache) Ping(ctx context.Context) error {
	if c == nil {
		return nil
	}
	return c.client.Ping(ctx).Err()
}

// GetOrSet returns the cached value under key, or runs fetch and caches its
// result for ttl. Cache errors other than a miss degrade to a direct fetch.
func GetOrSet[T any](ctx context.Context, c *Cache, key string, ttl time.Duration, fetch func() (T, error)) (T, error) {
	var zero T

	if c == nil {
		return fetch()
	}

	data, err := c.client.Get(ctx, key).Bytes()
	if err == nil {
		var cached T
		if err := json.Unmarshal(data, &cached); err == nil {
			return cached, nil
		}
	} else if !errors.Is(err, redis.Nil) {
		return fetch()
	}

	fresh, err := fetch()
	if err != nil {
		return zero, err
	}

	if encoded, err := json.Marshal(fresh); err == nil {
		c.client.Set(ctx, key, encoded, ttl)
	}

	return fresh, nil
}

// Delete removes a single key.
func (c *Cache) Delete(ctx context.Context, key string) error {
	if c == nil {
		return nil
	}
	return c.client.Del(ctx, key).Err()
}

// DeletePattern removes every key matching pattern (e.g. "product-*").
func (c *Cache) DeletePattern(ctx context.Context, pattern string) error {
	if c == nil {
		return nil
	}
	keys, err := c.client.Keys(ctx, pattern).Result()
	if err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}
	return c.client.Del(ctx, keys...).Err()
}
