package shopfront

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/aurelia/backend/internal/infrastructure/storefront"
)

func TestSort_FeaturedPartitionWithNewestTiebreak(t *testing.T) {
	t1 := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	t2 := t1.Add(24 * time.Hour)
	t3 := t1.Add(48 * time.Hour)

	items := []UnifiedProduct{
		unified("Old Plain", 100, withCreated(t1)),
		unified("New Featured", 100, withFeatured(true), withCreated(t2)),
		unified("New Plain", 100, withCreated(t3)),
		unified("Old Featured", 100, withFeatured(true), withCreated(t1)),
	}

	Sort(items, SortFeatured)
	assert.Equal(t,
		[]string{"New Featured", "Old Featured", "New Plain", "Old Plain"},
		titles(items))
}

func TestSort_FeaturedIsDeterministic(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	items := []UnifiedProduct{
		unified("A", 100, withCreated(now)),
		unified("B", 100, withCreated(now)),
		unified("C", 100, withFeatured(true), withCreated(now)),
	}

	Sort(items, SortFeatured)
	first := titles(items)
	Sort(items, SortFeatured)

	assert.Equal(t, first, titles(items))
	// Equal featured flag and timestamp preserve input order.
	assert.Equal(t, []string{"C", "A", "B"}, first)
}

func TestSort_Newest(t *testing.T) {
	t1 := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	items := []UnifiedProduct{
		unified("Oldest", 100, withCreated(t1)),
		unified("Newest", 100, withCreated(t1.Add(2*time.Hour))),
		unified("Middle", 100, withCreated(t1.Add(time.Hour))),
	}

	Sort(items, SortNewest)
	assert.Equal(t, []string{"Newest", "Middle", "Oldest"}, titles(items))
}

func TestSort_PriceBothDirections(t *testing.T) {
	items := []UnifiedProduct{
		unified("Mid", 500),
		unified("Low", 100),
		unified("High", 900),
	}

	Sort(items, SortPriceAsc)
	assert.Equal(t, []string{"Low", "Mid", "High"}, titles(items))

	Sort(items, SortPriceDesc)
	assert.Equal(t, []string{"High", "Mid", "Low"}, titles(items))
}

func TestSort_TitleLocaleAware(t *testing.T) {
	items := []UnifiedProduct{
		unified("Émeraude Ring", 100),
		unified("amber Pendant", 100),
		unified("Zircon Band", 100),
	}

	Sort(items, SortTitleAsc)
	assert.Equal(t, []string{"amber Pendant", "Émeraude Ring", "Zircon Band"}, titles(items))

	Sort(items, SortTitleDesc)
	assert.Equal(t, []string{"Zircon Band", "Émeraude Ring", "amber Pendant"}, titles(items))
}

func TestSort_BestSellingKeepsLocalOrder(t *testing.T) {
	items := []UnifiedProduct{
		unified("Second Best", 100),
		unified("Best", 900),
	}

	Sort(items, SortBestSelling)
	assert.Equal(t, []string{"Second Best", "Best"}, titles(items))
}

func TestParseSortOption(t *testing.T) {
	assert.Equal(t, SortNewest, ParseSortOption("newest"))
	assert.Equal(t, SortBestSelling, ParseSortOption("best-selling"))
	assert.Equal(t, SortFeatured, ParseSortOption(""))
	assert.Equal(t, SortFeatured, ParseSortOption("garbage"))
}

func TestSortOption_RemoteHint(t *testing.T) {
	tests := []struct {
		option SortOption
		want   storefront.SortHint
	}{
		{SortFeatured, storefront.SortHintDefault},
		{SortBestSelling, storefront.SortHintBestSelling},
		{SortNewest, storefront.SortHintNewest},
		{SortPriceAsc, storefront.SortHintPriceAsc},
		{SortPriceDesc, storefront.SortHintPriceDesc},
		{SortTitleAsc, storefront.SortHintTitleAsc},
		{SortTitleDesc, storefront.SortHintTitleDesc},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.option.RemoteHint(), string(tt.option))
	}
}
