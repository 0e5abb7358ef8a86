package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/rakapradana/member-gateway/internal/domain/port/core"
)

// RedisCache implements the cache port over a shared Redis instance so
// multiple gateway replicas see the same entries and invalidations.
type RedisCache struct {
	client *redis.Client
	logger core.Logger
}

// NewRedisCache connects to Redis and verifies the connection
func NewRedisCache(addr, password string, db int, logger core.Logger) (core.Cache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, err
	}

	logger.Info("Connected to Redis", map[string]any{
		"addr": addr,
		"db":   db,
	})
	return &RedisCache{client: client, logger: logger}, nil
}

// Get returns the value for key when present
func (c *RedisCache) Get(ctx context.Context, key string) (string, bool) {
	val, err := c.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return "", false
	}
	if err != nil {
		c.logger.Warn("Redis get failed", map[string]any{
			"key":   key,
			"error": err.Error(),
		})
		return "", false
	}
	return val, true
}

// Set stores the value under key with the given ttl
func (c *RedisCache) Set(ctx context.Context, key, value string, ttl time.Duration) {
	if ttl <= 0 {
		c.Delete(ctx, key)
		return
	}
	if err := c.client.Set(ctx, key, value, ttl).Err(); err != nil {
		c.logger.Warn("Redis set failed", map[string]any{
			"key":   key,
			"error": err.Error(),
		})
	}
}

// Delete removes the entry for key, if any
func (c *RedisCache) Delete(ctx context.Context, key string) {
	if err := c.client.Del(ctx, key).Err(); err != nil {
		c.logger.Warn("Redis delete failed", map[string]any{
			"key":   key,
			"error": err.Error(),
		})
	}
}

// Clear drops every entry in the selected database
func (c *RedisCache) Clear(ctx context.Context) {
	if err := c.client.FlushDB(ctx).Err(); err != nil {
		c.logger.Warn("Redis flush failed", map[string]any{
			"error": err.Error(),
		})
	}
}

// Close releases the underlying connection pool
func (c *RedisCache) Close() error {
	return c.client.Close()
}
