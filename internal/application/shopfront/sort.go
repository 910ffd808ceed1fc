package shopfront

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/aurelia/backend/internal/infrastructure/storefront"
)

// SortOption selects the comparator for a unified list.
type SortOption string

const (
	SortFeatured  SortOption = "featured"
	SortNewest    SortOption = "newest"
	SortPriceAsc  SortOption = "price-asc"
	SortPriceDesc SortOption = "price-desc"
	SortTitleAsc  SortOption = "title-asc"
	SortTitleDesc SortOption = "title-desc"

	// SortBestSelling has no local meaning: sales rank lives on the
	// remote platform. Locally it leaves the list untouched; the remote
	// fetch passes it through as a platform sort hint.
	SortBestSelling SortOption = "best-selling"
)

// ParseSortOption maps a client-supplied string to a sort option.
// Unknown values fall back to the featured default.
func ParseSortOption(s string) SortOption {
	switch SortOption(s) {
	case SortFeatured, SortNewest, SortPriceAsc, SortPriceDesc,
		SortTitleAsc, SortTitleDesc, SortBestSelling:
		return SortOption(s)
	default:
		return SortFeatured
	}
}

// RemoteHint translates a sort option into the platform's sort hint so
// the remote page arrives roughly pre-ordered.
func (s SortOption) RemoteHint() storefront.SortHint {
	switch s {
	case SortBestSelling:
		return storefront.SortHintBestSelling
	case SortNewest:
		return storefront.SortHintNewest
	case SortPriceAsc:
		return storefront.SortHintPriceAsc
	case SortPriceDesc:
		return storefront.SortHintPriceDesc
	case SortTitleAsc:
		return storefront.SortHintTitleAsc
	case SortTitleDesc:
		return storefront.SortHintTitleDesc
	default:
		return storefront.SortHintDefault
	}
}

// Sort orders items in place. All comparators are stable so repeated
// sorts of the same list give identical output.
func Sort(items []UnifiedProduct, option SortOption) {
	switch option {
	case SortNewest:
		sort.SliceStable(items, func(i, j int) bool {
			return items[i].CreatedAt.After(items[j].CreatedAt)
		})
	case SortPriceAsc:
		sort.SliceStable(items, func(i, j int) bool {
			return items[i].Price.LessThan(items[j].Price)
		})
	case SortPriceDesc:
		sort.SliceStable(items, func(i, j int) bool {
			return items[i].Price.GreaterThan(items[j].Price)
		})
	case SortTitleAsc:
		sortByTitle(items, false)
	case SortTitleDesc:
		sortByTitle(items, true)
	case SortBestSelling:
		// Remote-delegated; no local reordering.
	default:
		// Featured: featured items first, newest first within each
		// partition.
		sort.SliceStable(items, func(i, j int) bool {
			if items[i].Featured != items[j].Featured {
				return items[i].Featured
			}
			return items[i].CreatedAt.After(items[j].CreatedAt)
		})
	}
}

// sortByTitle is locale-aware so accented product names collate the
// way a shopper expects rather than by code point.
func sortByTitle(items []UnifiedProduct, desc bool) {
	c := collate.New(language.English, collate.IgnoreCase)
	sort.SliceStable(items, func(i, j int) bool {
		cmp := c.CompareString(items[i].Title, items[j].Title)
		if desc {
			return cmp > 0
		}
		return cmp < 0
	})
}
