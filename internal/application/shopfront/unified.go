// Package shopfront merges the local catalog with the remote platform
// listing into one browsable product stream. Everything here operates
// on in-memory snapshots: fetch once, then filter, sort and slice
// without further I/O.
package shopfront

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/aurelia/backend/internal/domain/catalog"
	"github.com/aurelia/backend/internal/domain/shared/valueobject"
	"github.com/aurelia/backend/internal/infrastructure/storefront"
)

// Source identifies where a unified product came from.
type Source string

const (
	SourceLocal  Source = "local"
	SourceRemote Source = "remote"
)

// UnifiedProduct is the common shape both catalog products and remote
// listings are projected into. Prices are display prices in INR; remote
// amounts in other currencies go through the approximate conversion
// table and must never be treated as settlement values.
type UnifiedProduct struct {
	ID           string          `json:"id"`
	Title        string          `json:"title"`
	Price        decimal.Decimal `json:"price"`
	Currency     string          `json:"currency"`
	Image        string          `json:"image,omitempty"`
	Category     string          `json:"category,omitempty"`
	CategoryHint string          `json:"category_hint,omitempty"`
	Material     string          `json:"material,omitempty"`
	Available    bool            `json:"available"`
	Featured     bool            `json:"featured"`
	CreatedAt    time.Time       `json:"created_at"`
	Source       Source          `json:"source"`

	searchText string
}

// SearchText returns the lower-cased haystack for keyword filtering.
func (u *UnifiedProduct) SearchText() string {
	return u.searchText
}

// FromLocal projects a catalog product into the unified shape. Category
// carries the catalog category for filtering; CategoryHint prefers the
// more specific sub-category for display.
func FromLocal(p *catalog.Product) UnifiedProduct {
	hint := string(p.Category)
	if p.SubCategory != "" {
		hint = p.SubCategory
	}

	return UnifiedProduct{
		ID:           p.ID.String(),
		Title:        p.Name,
		Price:        p.Price,
		Currency:     string(valueobject.CurrencyINR),
		Image:        p.PrimaryImage(),
		Category:     string(p.Category),
		CategoryHint: hint,
		Material:     p.Material,
		Available:    p.IsAvailable(),
		Featured:     p.IsFeatured,
		CreatedAt:    p.CreatedAt,
		Source:       SourceLocal,
		searchText:   p.SearchText(),
	}
}

// FromRemote projects a remote listing into the unified shape. A price
// that cannot be parsed or converted yields a zero price rather than an
// error: one bad listing must not sink the page.
func FromRemote(p *storefront.Product) UnifiedProduct {
	price := decimal.Zero
	if m, err := valueobject.NewMoneyFromString(p.MinPrice.Amount, valueobject.Currency(p.MinPrice.CurrencyCode)); err == nil {
		if display, err := valueobject.ApproximateConvert(m, valueobject.CurrencyINR); err == nil {
			price = display.Amount()
		}
	}

	hint := remoteCategoryHint(p)

	return UnifiedProduct{
		ID:           p.ID,
		Title:        p.Title,
		Price:        price,
		Currency:     string(valueobject.CurrencyINR),
		Image:        p.PrimaryImage(),
		Category:     hint,
		CategoryHint: hint,
		Available:    p.IsAvailable(),
		CreatedAt:    p.CreatedAt,
		Source:       SourceRemote,
		searchText:   p.SearchText(),
	}
}

// Unify concatenates the two sources, local first. It is pure: inputs
// are never mutated and the same inputs always give the same output,
// regardless of which source resolved first.
func Unify(local []catalog.Product, remote []storefront.Product) []UnifiedProduct {
	unified := make([]UnifiedProduct, 0, len(local)+len(remote))
	for i := range local {
		unified = append(unified, FromLocal(&local[i]))
	}
	for i := range remote {
		unified = append(unified, FromRemote(&remote[i]))
	}
	return unified
}

// remoteCategoryHint guesses a category from the listing's text. Remote
// products carry no structured category, so this is best-effort only.
func remoteCategoryHint(p *storefront.Product) string {
	haystack := strings.ToLower(p.Title + " " + p.Handle + " " + strings.Join(p.Tags, " "))

	for _, category := range catalog.AllCategories() {
		name := strings.ToLower(string(category))
		singular := strings.TrimSuffix(name, "s")
		if strings.Contains(haystack, singular) {
			return string(category)
		}
	}
	return ""
}
