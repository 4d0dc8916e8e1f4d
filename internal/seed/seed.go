package seed

import (
	"context"
	"fmt"

	"storefront/internal/domain"
)

// DemoCart mirrors the first products of the public demo catalog.
var DemoCart = []domain.CartItem{
	{
		ID:        1,
		Title:     "Essence Mascara Lash Princess",
		Price:     9.99,
		Thumbnail: "https://cdn.dummyjson.com/products/images/beauty/Essence%20Mascara%20Lash%20Princess/thumbnail.png",
		Quantity:  2,
	},
	{
		ID:        2,
		Title:     "Eyeshadow Palette with Mirror",
		Price:     19.99,
		Thumbnail: "https://cdn.dummyjson.com/products/images/beauty/Eyeshadow%20Palette%20with%20Mirror/thumbnail.png",
		Quantity:  1,
	},
}

type cartRepo interface {
	Load(ctx context.Context) []domain.CartItem
	Save(ctx context.Context, items []domain.CartItem) error
}

// Apply stores DemoCart for manual testing. A non-empty stored cart is left
// alone unless force is set, so reruns are idempotent. It reports whether
// anything was written.
func Apply(ctx context.Context, repo cartRepo, force bool) (bool, error) {
	if !force && len(repo.Load(ctx)) > 0 {
		return false, nil
	}
	if err := repo.Save(ctx, DemoCart); err != nil {
		return false, fmt.Errorf("save demo cart: %w", err)
	}
	return true, nil
}
