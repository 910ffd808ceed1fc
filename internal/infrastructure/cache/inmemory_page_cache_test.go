package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aurelia/backend/internal/infrastructure/storefront"
)

func samplePage() *storefront.ProductPage {
	return &storefront.ProductPage{
		Items: []storefront.Product{
			{ID: "gid://platform/Product/1", Handle: "gold-hoop-earrings", Title: "Gold Hoop Earrings"},
		},
	}
}

func TestInMemoryPageCache_SetAndGet(t *testing.T) {
	c := NewInMemoryPageCache()
	defer c.Close()

	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "products:best-selling:60", samplePage(), time.Minute))

	page, found, err := c.Get(ctx, "products:best-selling:60")
	require.NoError(t, err)
	require.True(t, found)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "gold-hoop-earrings", page.Items[0].Handle)
}

func TestInMemoryPageCache_MissOnUnknownKey(t *testing.T) {
	c := NewInMemoryPageCache()
	defer c.Close()

	_, found, err := c.Get(context.Background(), "no-such-key")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestInMemoryPageCache_ExpiredEntryIsAMiss(t *testing.T) {
	c := NewInMemoryPageCache()
	defer c.Close()

	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k", samplePage(), 10*time.Millisecond))
	time.Sleep(30 * time.Millisecond)

	_, found, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestInMemoryPageCache_NonPositiveTTLIsNoop(t *testing.T) {
	c := NewInMemoryPageCache()
	defer c.Close()

	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k", samplePage(), 0))

	_, found, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestInMemoryPageCache_Stats(t *testing.T) {
	c := NewInMemoryPageCache()
	defer c.Close()

	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k", samplePage(), time.Minute))
	_, _, _ = c.Get(ctx, "k")
	_, _, _ = c.Get(ctx, "other")

	hits, misses := c.Stats()
	assert.Equal(t, int64(1), hits)
	assert.Equal(t, int64(1), misses)
}

func TestInMemoryPageCache_CloseTwice(t *testing.T) {
	c := NewInMemoryPageCache()
	require.NoError(t, c.Close())
	require.NoError(t, c.Close())
}
