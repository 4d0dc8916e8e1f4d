package domain

import "math"

// CartItem is a snapshot of a product taken when it was first added to the
// cart. Later catalog changes do not touch it.
type CartItem struct {
	ID        int     `json:"id"`
	Title     string  `json:"title"`
	Price     float64 `json:"price"`
	Thumbnail string  `json:"thumbnail"`
	Quantity  int     `json:"quantity"`
}

// MaxQuantity caps the quantity of a single cart line.
const MaxQuantity = 9999

// LineCents is the line total in cents.
func (i CartItem) LineCents() int64 {
	return PriceCents(i.Price) * int64(min(i.Quantity, MaxQuantity))
}

// AddQuantity returns q+delta without wrapping. Results above MaxQuantity
// are clamped to it; a result that would underflow is reported as zero.
func AddQuantity(q, delta int) int {
	switch {
	case delta > 0 && q > MaxQuantity-delta:
		return MaxQuantity
	case delta < 0 && q < math.MinInt-delta:
		return 0
	}
	return min(q+delta, MaxQuantity)
}

type Totals struct {
	ItemCount  int   `json:"itemCount"`
	TotalCents int64 `json:"totalCents"`
}

func (t Totals) TotalPrice() float64 {
	return float64(t.TotalCents) / 100
}

func ComputeTotals(items []CartItem) Totals {
	var t Totals
	for _, it := range items {
		t.ItemCount += it.Quantity
		t.TotalCents += it.LineCents()
	}
	return t
}

// PriceCents converts a decimal price to whole cents.
func PriceCents(price float64) int64 {
	return int64(math.Round(price * 100))
}

// Receipt describes a completed local checkout.
type Receipt struct {
	ItemCount  int   `json:"itemCount"`
	TotalCents int64 `json:"totalCents"`
}
