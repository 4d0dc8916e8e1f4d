// Package query derives the filtered view of the catalog: search, category
// filter, stable sort and pagination. Everything here is pure.
package query

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"storefront/internal/domain"
)

// PageSize is the fixed number of products per listing page.
const PageSize = 12

type SortKey string

const (
	SortNone      SortKey = ""
	SortTitle     SortKey = "title"
	SortPriceAsc  SortKey = "price-asc"
	SortPriceDesc SortKey = "price-desc"
	SortRating    SortKey = "rating"
)

var ErrUnknownSort = errors.New("unknown sort key")

func ParseSort(s string) (SortKey, error) {
	switch k := SortKey(strings.TrimSpace(s)); k {
	case SortNone, SortTitle, SortPriceAsc, SortPriceDesc, SortRating:
		return k, nil
	default:
		return SortNone, fmt.Errorf("%w: %q", ErrUnknownSort, s)
	}
}

// Query is the user-controlled part of the listing state.
type Query struct {
	Search   string  `json:"search"`
	Category string  `json:"category"`
	Sort     SortKey `json:"sort"`
}

// Apply filters by search text, then by category, then sorts. The input slice
// is never modified.
func Apply(products []domain.Product, q Query) []domain.Product {
	out := make([]domain.Product, 0, len(products))

	needle := strings.ToLower(q.Search)
	for _, p := range products {
		if needle != "" && !matchesSearch(p, needle) {
			continue
		}
		if q.Category != "" && p.Category != q.Category {
			continue
		}
		out = append(out, p)
	}

	sortProducts(out, q.Sort)
	return out
}

func matchesSearch(p domain.Product, needle string) bool {
	return strings.Contains(strings.ToLower(p.Title), needle) ||
		strings.Contains(strings.ToLower(p.Description), needle)
}

func sortProducts(products []domain.Product, key SortKey) {
	switch key {
	case SortTitle:
		// Collators keep internal buffers, so each sort gets its own.
		col := collate.New(language.Und)
		slices.SortStableFunc(products, func(a, b domain.Product) int {
			return col.CompareString(a.Title, b.Title)
		})
	case SortPriceAsc:
		slices.SortStableFunc(products, func(a, b domain.Product) int {
			return compareFloat(a.Price, b.Price)
		})
	case SortPriceDesc:
		slices.SortStableFunc(products, func(a, b domain.Product) int {
			return compareFloat(b.Price, a.Price)
		})
	case SortRating:
		slices.SortStableFunc(products, func(a, b domain.Product) int {
			return compareFloat(b.Rating, a.Rating)
		})
	}
}

func compareFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
