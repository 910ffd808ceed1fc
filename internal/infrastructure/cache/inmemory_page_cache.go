package cache

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/aurelia/backend/internal/infrastructure/storefront"
)

const defaultCleanupInterval = 30 * time.Second

// InMemoryPageCache implements PageCache using process-local storage.
// Suitable for single-instance deployments and tests. State is not
// shared across instances, so each instance warms its own pages.
type InMemoryPageCache struct {
	pages   sync.Map // map[string]*pageEntry
	logger  *zap.Logger
	stopCh  chan struct{}
	stopped int32

	hits   int64
	misses int64
}

type pageEntry struct {
	page      *storefront.ProductPage
	expiresAt time.Time
}

func (e *pageEntry) isExpired() bool {
	return time.Now().After(e.expiresAt)
}

// InMemoryPageCacheOption is a functional option for configuring the cache.
type InMemoryPageCacheOption func(*InMemoryPageCache)

// WithInMemoryLogger sets the logger for the cache.
func WithInMemoryLogger(logger *zap.Logger) InMemoryPageCacheOption {
	return func(c *InMemoryPageCache) {
		c.logger = logger
	}
}

// NewInMemoryPageCache creates a new in-memory page cache and starts a
// background goroutine that evicts expired entries.
func NewInMemoryPageCache(opts ...InMemoryPageCacheOption) *InMemoryPageCache {
	c := &InMemoryPageCache{
		logger: zap.NewNop(),
		stopCh: make(chan struct{}),
	}

	for _, opt := range opts {
		opt(c)
	}

	go c.cleanupLoop()

	return c
}

// Get returns the cached page for key if present and not expired.
func (c *InMemoryPageCache) Get(_ context.Context, key string) (*storefront.ProductPage, bool, error) {
	v, ok := c.pages.Load(key)
	if !ok {
		atomic.AddInt64(&c.misses, 1)
		return nil, false, nil
	}

	entry := v.(*pageEntry)
	if entry.isExpired() {
		c.pages.Delete(key)
		atomic.AddInt64(&c.misses, 1)
		return nil, false, nil
	}

	atomic.AddInt64(&c.hits, 1)
	return entry.page, true, nil
}

// Set stores the page under key for the given TTL. A non-positive TTL
// is treated as a no-op so callers can disable caching via config.
func (c *InMemoryPageCache) Set(_ context.Context, key string, page *storefront.ProductPage, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	c.pages.Store(key, &pageEntry{
		page:      page,
		expiresAt: time.Now().Add(ttl),
	})
	return nil
}

// Stats returns hit and miss counters for monitoring.
func (c *InMemoryPageCache) Stats() (hits, misses int64) {
	return atomic.LoadInt64(&c.hits), atomic.LoadInt64(&c.misses)
}

// Close stops the cleanup goroutine. Safe to call more than once.
func (c *InMemoryPageCache) Close() error {
	if atomic.CompareAndSwapInt32(&c.stopped, 0, 1) {
		close(c.stopCh)
	}
	return nil
}

func (c *InMemoryPageCache) cleanupLoop() {
	ticker := time.NewTicker(defaultCleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-c.stopCh:
			return
		case <-ticker.C:
			c.evictExpired()
		}
	}
}

func (c *InMemoryPageCache) evictExpired() {
	var evicted int
	c.pages.Range(func(key, value any) bool {
		if value.(*pageEntry).isExpired() {
			c.pages.Delete(key)
			evicted++
		}
		return true
	})

	if evicted > 0 {
		c.logger.Debug("Evicted expired cached pages", zap.Int("count", evicted))
	}
}
