package query

import "storefront/internal/domain"

// Page is one slice of a filtered view.
type Page struct {
	Number     int              `json:"number"`
	Size       int              `json:"size"`
	Total      int              `json:"total"`
	TotalPages int              `json:"totalPages"`
	Items      []domain.Product `json:"items"`
}

func PageCount(total, size int) int {
	if size <= 0 || total <= 0 {
		return 0
	}
	return (total + size - 1) / size
}

// ValidPage reports whether n addresses an existing page.
func ValidPage(n, totalPages int) bool {
	return n >= 1 && n <= totalPages
}

// Paginate returns the items at offsets [(n-1)*size, n*size), clamped to the
// available length. It does not validate n; callers use ValidPage for that.
func Paginate(items []domain.Product, n, size int) Page {
	page := Page{
		Number:     n,
		Size:       size,
		Total:      len(items),
		TotalPages: PageCount(len(items), size),
		Items:      []domain.Product{},
	}
	if size <= 0 || n < 1 {
		return page
	}

	start := (n - 1) * size
	if start >= len(items) {
		return page
	}
	end := min(start+size, len(items))
	page.Items = append(page.Items, items[start:end]...)
	return page
}
