package domain

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAddQuantity(t *testing.T) {
	cases := []struct {
		name     string
		q, delta int
		want     int
	}{
		{"increment", 1, 1, 2},
		{"decrement to zero", 2, -2, 0},
		{"below zero", 2, -5, -3},
		{"clamped at max", MaxQuantity - 1, 5, MaxQuantity},
		{"huge positive delta", 1, math.MaxInt, MaxQuantity},
		{"huge negative delta", 1, math.MinInt, 1 + math.MinInt},
		{"negative q huge negative delta", -5, math.MinInt, 0},
		{"over max shrinks into range", MaxQuantity + 10, -1, MaxQuantity},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, AddQuantity(tc.q, tc.delta))
		})
	}
}

func TestLineCents_QuantityCapped(t *testing.T) {
	item := CartItem{Price: 19.99, Quantity: math.MaxInt}
	assert.Equal(t, int64(1999*MaxQuantity), item.LineCents())
	assert.Positive(t, item.LineCents())
}

func TestComputeTotals(t *testing.T) {
	totals := ComputeTotals([]CartItem{
		{ID: 1, Price: 7.5, Quantity: 2},
		{ID: 2, Price: 0.1, Quantity: 3},
	})
	assert.Equal(t, 5, totals.ItemCount)
	assert.Equal(t, int64(1530), totals.TotalCents)
	assert.InDelta(t, 15.30, totals.TotalPrice(), 1e-9)
}
