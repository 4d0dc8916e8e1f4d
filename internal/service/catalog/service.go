package catalog

import (
	"context"
	"slices"
	"sync"

	"github.com/rs/zerolog"

	"storefront/internal/domain"
)

// DefaultLimit is how many products LoadProducts asks the remote catalog for.
const DefaultLimit = 1000

// Source is the remote side of the catalog. *catalog.Client satisfies it.
type Source interface {
	Categories(ctx context.Context) ([]domain.Category, error)
	Products(ctx context.Context, limit int) ([]domain.Product, error)
	Product(ctx context.Context, id int) (*domain.Product, error)
}

// Service holds the session's product and category snapshot. Loads replace
// the snapshot wholesale; a failed load leaves it untouched.
type Service struct {
	src             Source
	limit           int
	detailFromCache bool
	logger          zerolog.Logger

	mu         sync.RWMutex
	products   []domain.Product
	categories []domain.Category
	byID       map[int]int
}

type Option func(*Service)

func WithLimit(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.limit = n
		}
	}
}

// WithDetailFromCache makes ProductDetail answer from the loaded snapshot
// when the product is in it, falling back to a fetch otherwise.
func WithDetailFromCache(on bool) Option {
	return func(s *Service) { s.detailFromCache = on }
}

func WithLogger(l zerolog.Logger) Option {
	return func(s *Service) { s.logger = l }
}

func New(src Source, opts ...Option) *Service {
	s := &Service{
		src:        src,
		limit:      DefaultLimit,
		logger:     zerolog.Nop(),
		products:   []domain.Product{},
		categories: []domain.Category{},
		byID:       map[int]int{},
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

func (s *Service) LoadCategories(ctx context.Context) error {
	cats, err := s.src.Categories(ctx)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.categories = cats
	s.mu.Unlock()
	s.logger.Info().Int("count", len(cats)).Msg("categories loaded")
	return nil
}

func (s *Service) LoadProducts(ctx context.Context) error {
	products, err := s.src.Products(ctx, s.limit)
	if err != nil {
		return err
	}
	index := make(map[int]int, len(products))
	for i, p := range products {
		if _, dup := index[p.ID]; !dup {
			index[p.ID] = i
		}
	}
	s.mu.Lock()
	s.products = products
	s.byID = index
	s.mu.Unlock()
	s.logger.Info().Int("count", len(products)).Msg("products loaded")
	return nil
}

// ProductDetail returns a single product, fetched from the remote catalog
// unless detail-from-cache is enabled and the product is already loaded.
func (s *Service) ProductDetail(ctx context.Context, id int) (domain.Product, error) {
	if s.detailFromCache {
		if p, ok := s.Find(id); ok {
			return p, nil
		}
	}
	p, err := s.src.Product(ctx, id)
	if err != nil {
		return domain.Product{}, err
	}
	return *p, nil
}

// Find looks a product up in the loaded snapshot.
func (s *Service) Find(id int) (domain.Product, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i, ok := s.byID[id]
	if !ok {
		return domain.Product{}, false
	}
	return s.products[i], true
}

// Products returns the loaded products in catalog order. The slice is a copy.
func (s *Service) Products() []domain.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.products)
}

func (s *Service) Categories() []domain.Category {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.categories)
}

// Featured returns the first n products in catalog order.
func (s *Service) Featured(n int) []domain.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n = max(0, min(n, len(s.products)))
	return slices.Clone(s.products[:n])
}
