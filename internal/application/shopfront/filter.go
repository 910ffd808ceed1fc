package shopfront

import (
	"strings"

	"github.com/shopspring/decimal"
)

// AllSentinel disables the category and material filters when used as
// their value. An empty string behaves the same way.
const AllSentinel = "All"

// PriceBucket is one range in the fixed price ladder. Buckets are
// half-open: an item passes when min <= price < max. A nil Max means
// the bucket is unbounded above. The zero value admits every
// non-negative price, which makes the zero Query filter nothing.
type PriceBucket struct {
	ID    string
	Label string
	Min   decimal.Decimal
	Max   *decimal.Decimal
}

// Admits reports whether the price falls inside the bucket.
func (b PriceBucket) Admits(price decimal.Decimal) bool {
	if price.LessThan(b.Min) {
		return false
	}
	if b.Max != nil && price.GreaterThanOrEqual(*b.Max) {
		return false
	}
	return true
}

// IsAll reports whether the bucket imposes no constraint.
func (b PriceBucket) IsAll() bool {
	return b.Min.IsZero() && b.Max == nil
}

func bucket(id, label string, min int64, max *int64) PriceBucket {
	b := PriceBucket{ID: id, Label: label, Min: decimal.NewFromInt(min)}
	if max != nil {
		m := decimal.NewFromInt(*max)
		b.Max = &m
	}
	return b
}

func intPtr(v int64) *int64 { return &v }

// DefaultLadder returns the fixed price ladder shown in the shop
// filter, in display order. The first entry is the unconstrained
// "All Prices" bucket.
func DefaultLadder() []PriceBucket {
	return []PriceBucket{
		bucket("all", "All Prices", 0, nil),
		bucket("under-1000", "Under ₹1,000", 0, intPtr(1000)),
		bucket("1000-5000", "₹1,000 – ₹5,000", 1000, intPtr(5000)),
		bucket("5000-20000", "₹5,000 – ₹20,000", 5000, intPtr(20000)),
		bucket("20000-50000", "₹20,000 – ₹50,000", 20000, intPtr(50000)),
		bucket("above-50000", "Above ₹50,000", 50000, nil),
	}
}

// BucketByID resolves a bucket ID from the default ladder. Unknown or
// malformed IDs resolve to the unconstrained bucket: bad filter input
// means no filter, never an error.
func BucketByID(id string) PriceBucket {
	for _, b := range DefaultLadder() {
		if b.ID == id {
			return b
		}
	}
	return PriceBucket{}
}

// Query is the full set of client-selected predicates. The zero value
// filters nothing, so "clear filters" is just a fresh Query.
type Query struct {
	Keyword     string
	InStockOnly bool
	Bucket      PriceBucket
	Category    string
	Material    string
	Sort        SortOption
	Source      Source // empty means both sources
	Limit       int    // 0 means no limit
}

// Active reports whether any narrowing filter is set. The UI uses this
// to distinguish "no products at all" from "no products match".
func (q Query) Active() bool {
	return strings.TrimSpace(q.Keyword) != "" ||
		q.InStockOnly ||
		!q.Bucket.IsAll() ||
		filterValueSet(q.Category) ||
		filterValueSet(q.Material) ||
		q.Source != ""
}

func filterValueSet(v string) bool {
	return v != "" && !strings.EqualFold(v, AllSentinel)
}

// Matches applies every active predicate, AND-combined.
func (q Query) Matches(p *UnifiedProduct) bool {
	if keyword := strings.ToLower(strings.TrimSpace(q.Keyword)); keyword != "" {
		if !strings.Contains(p.SearchText(), keyword) {
			return false
		}
	}
	if q.InStockOnly && !p.Available {
		return false
	}
	if !q.Bucket.Admits(p.Price) {
		return false
	}
	if filterValueSet(q.Category) && !strings.EqualFold(p.Category, q.Category) {
		return false
	}
	if filterValueSet(q.Material) && !strings.EqualFold(p.Material, q.Material) {
		return false
	}
	if q.Source != "" && p.Source != q.Source {
		return false
	}
	return true
}

// Filter returns the products matching q, preserving input order. The
// input slice is never mutated.
func Filter(items []UnifiedProduct, q Query) []UnifiedProduct {
	result := make([]UnifiedProduct, 0, len(items))
	for i := range items {
		if q.Matches(&items[i]) {
			result = append(result, items[i])
		}
	}
	return result
}

// Apply runs the full pipeline: filter, sort, then limit. The limit
// slices the sorted result, so a limit of 1 over items sorted
// price-desc returns the single most expensive match.
func Apply(items []UnifiedProduct, q Query) []UnifiedProduct {
	result := Filter(items, q)
	Sort(result, q.Sort)
	if q.Limit > 0 && len(result) > q.Limit {
		result = result[:q.Limit]
	}
	return result
}
