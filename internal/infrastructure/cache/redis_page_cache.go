package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/aurelia/backend/internal/infrastructure/storefront"
)

// RedisPageCache implements PageCache using Redis. Suitable for
// distributed deployments where multiple instances should share
// cached storefront pages.
type RedisPageCache struct {
	client    *redis.Client
	keyPrefix string
}

// RedisConfig holds Redis connection configuration.
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// NewRedisPageCache creates a new Redis-based page cache and verifies
// the connection with a short ping.
func NewRedisPageCache(cfg RedisConfig) (*RedisPageCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisPageCache{
		client:    client,
		keyPrefix: "storefront:page:",
	}, nil
}

// NewRedisPageCacheWithClient creates a cache with an existing Redis client.
// Useful for testing or when sharing a client across components.
func NewRedisPageCacheWithClient(client *redis.Client, keyPrefix string) *RedisPageCache {
	if keyPrefix == "" {
		keyPrefix = "storefront:page:"
	}
	return &RedisPageCache{
		client:    client,
		keyPrefix: keyPrefix,
	}
}

// Get returns the cached page for key. Expiry is handled by Redis TTL.
func (c *RedisPageCache) Get(ctx context.Context, key string) (*storefront.ProductPage, bool, error) {
	data, err := c.client.Get(ctx, c.keyPrefix+key).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read cached page: %w", err)
	}

	var page storefront.ProductPage
	if err := json.Unmarshal(data, &page); err != nil {
		return nil, false, fmt.Errorf("failed to decode cached page: %w", err)
	}

	return &page, true, nil
}

// Set stores the page under key with the given TTL.
func (c *RedisPageCache) Set(ctx context.Context, key string, page *storefront.ProductPage, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}

	data, err := json.Marshal(page)
	if err != nil {
		return fmt.Errorf("failed to encode page for caching: %w", err)
	}

	if err := c.client.Set(ctx, c.keyPrefix+key, data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache page: %w", err)
	}

	return nil
}

// Close closes the Redis client.
func (c *RedisPageCache) Close() error {
	return c.client.Close()
}
