package shopfront

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aurelia/backend/internal/domain/catalog"
	"github.com/aurelia/backend/internal/infrastructure/storefront"
)

func localProduct(t *testing.T, slug string, price int64, featured bool, created time.Time) catalog.Product {
	t.Helper()
	p, err := catalog.NewProduct(slug, slug, catalog.CategoryRings, decimal.NewFromInt(price))
	require.NoError(t, err)
	p.Stock = 3
	p.IsFeatured = featured
	p.CreatedAt = created
	p.ClearDomainEvents()
	return *p
}

func remoteProduct(title, amount, currency string, available bool, created time.Time) storefront.Product {
	return storefront.Product{
		ID:               "gid://platform/Product/" + title,
		Handle:           title,
		Title:            title,
		AvailableForSale: available,
		CreatedAt:        created,
		MinPrice:         storefront.MoneyV2{Amount: amount, CurrencyCode: currency},
	}
}

func TestUnify_LocalThenRemoteOrder(t *testing.T) {
	now := time.Now()
	local := []catalog.Product{
		localProduct(t, "gold-ring", 5000, false, now),
	}
	remote := []storefront.Product{
		remoteProduct("silver-pendant", "2000", "INR", true, now),
	}

	unified := Unify(local, remote)
	require.Len(t, unified, 2)
	assert.Equal(t, SourceLocal, unified[0].Source)
	assert.Equal(t, SourceRemote, unified[1].Source)
}

func TestUnify_Idempotent(t *testing.T) {
	now := time.Now()
	local := []catalog.Product{
		localProduct(t, "gold-ring", 5000, true, now),
		localProduct(t, "silver-band", 1500, false, now.Add(-time.Hour)),
	}
	remote := []storefront.Product{
		remoteProduct("opal-pendant", "120.50", "USD", true, now),
	}

	first := Unify(local, remote)
	second := Unify(local, remote)

	assert.Equal(t, first, second)
	// Inputs are untouched.
	assert.Equal(t, "gold-ring", local[0].Slug)
	assert.Equal(t, "opal-pendant", remote[0].Handle)
}

func TestFromLocal_Projection(t *testing.T) {
	now := time.Now()
	p := localProduct(t, "emerald-ring", 12000, true, now)
	p.Material = "Gold"
	p.SubCategory = "Cocktail Rings"

	u := FromLocal(&p)
	assert.Equal(t, p.ID.String(), u.ID)
	assert.True(t, u.Price.Equal(decimal.NewFromInt(12000)))
	assert.Equal(t, "INR", u.Currency)
	assert.Equal(t, "Rings", u.Category)
	assert.Equal(t, "Cocktail Rings", u.CategoryHint)
	assert.Equal(t, "Gold", u.Material)
	assert.True(t, u.Available)
	assert.True(t, u.Featured)
	assert.Equal(t, SourceLocal, u.Source)
}

func TestFromLocal_CategoryFilterIgnoresSubCategory(t *testing.T) {
	now := time.Now()
	ring := localProduct(t, "solitaire-ring", 18000, false, now)
	ring.SubCategory = "Engagement"
	necklace := localProduct(t, "chain-necklace", 6000, false, now)
	necklace.Category = catalog.CategoryNecklaces

	items := Unify([]catalog.Product{ring, necklace}, nil)

	// A sub-category never hides a product from its own category view.
	matched := Filter(items, Query{Category: "Rings"})
	require.Len(t, matched, 1)
	assert.Equal(t, "solitaire-ring", matched[0].Title)
}

func TestFromLocal_OutOfStockUnavailable(t *testing.T) {
	p := localProduct(t, "sold-out-ring", 900, false, time.Now())
	p.Stock = 0

	assert.False(t, FromLocal(&p).Available)
}

func TestFromRemote_ConvertsNonINRPrices(t *testing.T) {
	// 10 USD at the fixed 84 INR/USD rate.
	p := remoteProduct("jade-bangle", "10", "USD", true, time.Now())

	u := FromRemote(&p)
	assert.True(t, u.Price.Equal(decimal.NewFromInt(840)), u.Price.String())
	assert.Equal(t, "INR", u.Currency)
}

func TestFromRemote_INRPassesThrough(t *testing.T) {
	p := remoteProduct("jade-bangle", "2499.00", "INR", true, time.Now())

	u := FromRemote(&p)
	assert.True(t, u.Price.Equal(decimal.NewFromFloat(2499)))
}

func TestFromRemote_UnparseablePriceBecomesZero(t *testing.T) {
	p := remoteProduct("broken-listing", "not-a-number", "USD", true, time.Now())

	u := FromRemote(&p)
	assert.True(t, u.Price.IsZero())
}

func TestFromRemote_VariantAvailabilityCounts(t *testing.T) {
	p := remoteProduct("ruby-studs", "900", "INR", false, time.Now())
	p.Variants = []storefront.Variant{
		{ID: "v1", AvailableForSale: false},
		{ID: "v2", AvailableForSale: true},
	}

	assert.True(t, FromRemote(&p).Available)
}

func TestFromRemote_CategoryHintFromText(t *testing.T) {
	tests := []struct {
		title string
		tags  []string
		want  string
	}{
		{"Celestine Ring", nil, "Rings"},
		{"Aurora Drop", []string{"earrings", "gold"}, "Earrings"},
		{"Mystery Piece", nil, ""},
	}

	for _, tt := range tests {
		p := remoteProduct(tt.title, "100", "INR", true, time.Now())
		p.Tags = tt.tags
		u := FromRemote(&p)
		assert.Equal(t, tt.want, u.CategoryHint, tt.title)
		assert.Equal(t, u.CategoryHint, u.Category, tt.title)
	}
}
