// Package cache provides short-lived caching for remote storefront
// product pages. Only remote pages are cached: local catalog reads go
// straight to the database, so edits there are visible immediately.
package cache

import (
	"context"
	"time"

	"github.com/aurelia/backend/internal/infrastructure/storefront"
)

// PageCache stores remote product pages under a request-shaped key with
// a TTL. A stale page simply expires; there is no explicit invalidation.
type PageCache interface {
	// Get returns the cached page for key, or found=false when the key
	// is absent or expired.
	Get(ctx context.Context, key string) (page *storefront.ProductPage, found bool, err error)

	// Set stores the page under key for the given TTL.
	Set(ctx context.Context, key string, page *storefront.ProductPage, ttl time.Duration) error

	// Close releases any resources held by the cache.
	Close() error
}
