package cache

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/aurelia/backend/internal/infrastructure/config"
)

// PageCacheFactory creates page caches based on configuration.
type PageCacheFactory struct {
	redisConfig           config.RedisConfig
	logger                *zap.Logger
	allowInMemoryFallback bool
}

// PageCacheFactoryOption is a functional option for configuring the factory.
type PageCacheFactoryOption func(*PageCacheFactory)

// WithLogger sets the logger for the factory.
func WithLogger(logger *zap.Logger) PageCacheFactoryOption {
	return func(f *PageCacheFactory) {
		f.logger = logger
	}
}

// WithInMemoryFallback controls whether to fall back to an in-memory
// cache when Redis is unavailable. Default is true.
func WithInMemoryFallback(allow bool) PageCacheFactoryOption {
	return func(f *PageCacheFactory) {
		f.allowInMemoryFallback = allow
	}
}

// NewPageCacheFactory creates a new factory.
func NewPageCacheFactory(cfg config.RedisConfig, opts ...PageCacheFactoryOption) *PageCacheFactory {
	f := &PageCacheFactory{
		redisConfig:           cfg,
		logger:                zap.NewNop(),
		allowInMemoryFallback: true,
	}

	for _, opt := range opts {
		opt(f)
	}

	return f
}

// CreateRedisCache creates a Redis-backed page cache.
func (f *PageCacheFactory) CreateRedisCache() (PageCache, error) {
	cache, err := NewRedisPageCache(RedisConfig{
		Host:     f.redisConfig.Host,
		Port:     f.redisConfig.Port,
		Password: f.redisConfig.Password,
		DB:       f.redisConfig.DB,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Redis page cache: %w", err)
	}

	return cache, nil
}

// CreateInMemoryCache creates an in-memory page cache.
// WARNING: in-memory caches do not share state across process
// instances; each instance warms its own pages.
func (f *PageCacheFactory) CreateInMemoryCache() PageCache {
	return NewInMemoryPageCache(WithInMemoryLogger(f.logger))
}

// CreateCache creates a page cache based on whether Redis is enabled
// and reachable. When Redis is disabled or unreachable and fallback is
// allowed, it returns an in-memory cache instead.
func (f *PageCacheFactory) CreateCache() (PageCache, error) {
	if !f.redisConfig.Enabled {
		f.logger.Info("Redis disabled, using in-memory page cache")
		return f.CreateInMemoryCache(), nil
	}

	cache, err := f.CreateRedisCache()
	if err == nil {
		f.logger.Info("Using Redis page cache",
			zap.String("host", f.redisConfig.Host),
			zap.Int("port", f.redisConfig.Port))
		return cache, nil
	}

	if !f.allowInMemoryFallback {
		return nil, fmt.Errorf("redis page cache unavailable and fallback disabled: %w", err)
	}

	f.logger.Warn("Redis unavailable, falling back to in-memory page cache",
		zap.Error(err))
	return f.CreateInMemoryCache(), nil
}
