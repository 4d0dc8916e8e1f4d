package cart

import (
	"context"
	"slices"
	"sync"

	"storefront/internal/domain"
	"storefront/internal/metrics"
)

type Service struct {
	mu      sync.Mutex
	repo    cartRepo
	catalog productLookup
	metrics *metrics.Metrics
	items   []domain.CartItem
}

type cartRepo interface {
	Load(ctx context.Context) []domain.CartItem
	Save(ctx context.Context, items []domain.CartItem) error
}

type productLookup interface {
	Find(id int) (domain.Product, bool)
}

// New restores the persisted cart through repo. Products are resolved
// against catalog when added.
func New(ctx context.Context, repo cartRepo, catalog productLookup, m *metrics.Metrics) *Service {
	s := &Service{
		repo:    repo,
		catalog: catalog,
		metrics: m,
		items:   repo.Load(ctx),
	}
	if s.items == nil {
		s.items = []domain.CartItem{}
	}
	return s
}

// Add puts one unit of the product in the cart. A product already in the
// cart keeps the title, price and thumbnail captured on its first add.
func (s *Service) Add(ctx context.Context, productID int) (domain.CartItem, error) {
	product, ok := s.catalog.Find(productID)
	if !ok {
		return domain.CartItem{}, domain.ErrNotFound
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next := slices.Clone(s.items)
	i := indexOf(next, productID)
	if i >= 0 {
		next[i].Quantity = domain.AddQuantity(next[i].Quantity, 1)
	} else {
		i = len(next)
		next = append(next, domain.CartItem{
			ID:        product.ID,
			Title:     product.Title,
			Price:     product.Price,
			Thumbnail: product.Thumbnail,
			Quantity:  1,
		})
	}
	if err := s.commit(ctx, "add", next); err != nil {
		return domain.CartItem{}, err
	}
	return next[i], nil
}

// UpdateQuantity adds delta to the item's quantity. A result of zero or
// less removes the item; a result above domain.MaxQuantity is clamped.
func (s *Service) UpdateQuantity(ctx context.Context, productID, delta int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := indexOf(s.items, productID)
	if i < 0 {
		return domain.ErrNotFound
	}
	next := slices.Clone(s.items)
	if q := domain.AddQuantity(next[i].Quantity, delta); q > 0 {
		next[i].Quantity = q
		return s.commit(ctx, "update", next)
	}
	return s.commit(ctx, "remove", slices.Delete(next, i, i+1))
}

func (s *Service) Remove(ctx context.Context, productID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := indexOf(s.items, productID)
	if i < 0 {
		return domain.ErrNotFound
	}
	next := slices.Delete(slices.Clone(s.items), i, i+1)
	return s.commit(ctx, "remove", next)
}

// Checkout clears a non-empty cart and reports what was in it.
func (s *Service) Checkout(ctx context.Context) (domain.Receipt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.items) == 0 {
		return domain.Receipt{}, domain.ErrEmptyCart
	}
	totals := domain.ComputeTotals(s.items)
	if err := s.commit(ctx, "checkout", []domain.CartItem{}); err != nil {
		return domain.Receipt{}, err
	}
	return domain.Receipt{ItemCount: totals.ItemCount, TotalCents: totals.TotalCents}, nil
}

// Items returns the cart lines in insertion order.
func (s *Service) Items() []domain.CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.items)
}

func (s *Service) Totals() domain.Totals {
	s.mu.Lock()
	defer s.mu.Unlock()
	return domain.ComputeTotals(s.items)
}

// commit persists next and only then makes it the current cart.
// Callers hold s.mu.
func (s *Service) commit(ctx context.Context, op string, next []domain.CartItem) error {
	if err := s.repo.Save(ctx, next); err != nil {
		return err
	}
	s.items = next
	s.metrics.CartMutated(op, domain.ComputeTotals(next).ItemCount)
	return nil
}

func indexOf(items []domain.CartItem, productID int) int {
	return slices.IndexFunc(items, func(it domain.CartItem) bool { return it.ID == productID })
}
