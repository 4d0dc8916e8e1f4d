package view

import "storefront/internal/domain"

type CartLine struct {
	ID        int    `json:"id"`
	Title     string `json:"title"`
	Thumbnail string `json:"thumbnail"`
	Price     string `json:"price"`
	Quantity  int    `json:"quantity"`
	LineTotal string `json:"lineTotal"`
}

type Cart struct {
	Empty     bool       `json:"empty"`
	Lines     []CartLine `json:"lines"`
	ItemCount int        `json:"itemCount"`
	Total     string     `json:"total"`
}

func CartView(items []domain.CartItem, totals domain.Totals) Cart {
	lines := make([]CartLine, 0, len(items))
	for _, it := range items {
		lines = append(lines, CartLine{
			ID:        it.ID,
			Title:     it.Title,
			Thumbnail: it.Thumbnail,
			Price:     Price(it.Price),
			Quantity:  it.Quantity,
			LineTotal: Cents(it.LineCents()),
		})
	}
	return Cart{
		Empty:     len(items) == 0,
		Lines:     lines,
		ItemCount: totals.ItemCount,
		Total:     Cents(totals.TotalCents),
	}
}
