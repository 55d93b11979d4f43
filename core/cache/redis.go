package cache

import (
	"context"
	"time"

	"tempus/core/logger"

	"github.com/redis/go-redis/v9"
)

// Cache is a thin read-through cache over Redis. A nil *Cache is valid and
// behaves as a permanent miss, so callers never need to branch on whether
// caching is enabled.
type Cache struct {
	client *redis.Client
}

func New(addr, password string, db int) (*Cache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	logger.Info("Redis cache initialized", "addr", addr, "db", db)
	return &Cache{client: client}, nil
}

// Get returns the raw value for key, or ("", false) on miss or error.
func (c *Cache) Get(ctx context.Context, key string) (string, bool) {
	if c == nil {
		return "", false
	}
	val, err := c.client.Get(ctx, key).Result()
	if err != nil {
		if err != redis.Nil {
			logger.Warn("Cache:Get", "key", key, "error", err)
		}
		return "", false
	}
	return val, true
}

// Set stores value under key with the given TTL. Errors are logged, not
// surfaced; the cache is best-effort.
func (c *Cache) Set(ctx context.Context, key, value string, ttl time.Duration) {
	if c == nil {
		return
	}
	if err := c.client.Set(ctx, key, value, ttl).Err(); err != nil {
		logger.Warn("Cache:Set", "key", key, "error", err)
	}
}

// DeleteByPrefix removes every key matching prefix*.
func (c *Cache) DeleteByPrefix(ctx context.Context, prefix string) {
	if c == nil {
		return
	}
	iter := c.client.Scan(ctx, 0, prefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			logger.Warn("Cache:DeleteByPrefix", "key", iter.Val(), "error", err)
		}
	}
	if err := iter.Err(); err != nil {
		logger.Warn("Cache:DeleteByPrefix:Scan", "prefix", prefix, "error", err)
	}
}

func (c *Cache) Close() error {
	if c == nil {
		return nil
	}
	return c.client.Close()
}
