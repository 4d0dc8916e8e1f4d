package catalog

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/internal/domain"
)

type stubSource struct {
	mu          sync.Mutex
	categories  []domain.Category
	products    []domain.Product
	detail      map[int]domain.Product
	catErr      error
	productsErr error
	lastLimit   int
	detailCalls int
}

func (s *stubSource) Categories(context.Context) ([]domain.Category, error) {
	if s.catErr != nil {
		return nil, s.catErr
	}
	return s.categories, nil
}

func (s *stubSource) Products(_ context.Context, limit int) ([]domain.Product, error) {
	s.lastLimit = limit
	if s.productsErr != nil {
		return nil, s.productsErr
	}
	return s.products, nil
}

func (s *stubSource) Product(_ context.Context, id int) (*domain.Product, error) {
	s.mu.Lock()
	s.detailCalls++
	s.mu.Unlock()
	p, ok := s.detail[id]
	if !ok {
		return nil, &domain.FetchError{Resource: "product", Err: domain.ErrNotFound}
	}
	return &p, nil
}

func fixtureProducts(n int) []domain.Product {
	out := make([]domain.Product, n)
	for i := range out {
		out[i] = domain.Product{ID: i + 1, Title: "Product", Price: float64(i + 1)}
	}
	return out
}

func TestService_StartsEmpty(t *testing.T) {
	svc := New(&stubSource{})
	assert.NotNil(t, svc.Products())
	assert.Empty(t, svc.Products())
	assert.Empty(t, svc.Categories())
	assert.Empty(t, svc.Featured(8))
}

func TestService_LoadReplacesSnapshot(t *testing.T) {
	src := &stubSource{
		categories: []domain.Category{{Slug: "beauty", Name: "Beauty"}},
		products:   fixtureProducts(3),
	}
	svc := New(src, WithLimit(50))

	require.NoError(t, svc.LoadCategories(context.Background()))
	require.NoError(t, svc.LoadProducts(context.Background()))

	assert.Equal(t, 50, src.lastLimit)
	assert.Equal(t, src.categories, svc.Categories())
	assert.Len(t, svc.Products(), 3)

	p, ok := svc.Find(2)
	require.True(t, ok)
	assert.Equal(t, 2.0, p.Price)

	_, ok = svc.Find(99)
	assert.False(t, ok)
}

func TestService_FailedLoadKeepsPriorState(t *testing.T) {
	src := &stubSource{products: fixtureProducts(2), categories: []domain.Category{{Slug: "a", Name: "a"}}}
	svc := New(src)
	require.NoError(t, svc.LoadProducts(context.Background()))
	require.NoError(t, svc.LoadCategories(context.Background()))

	fetchErr := &domain.FetchError{Resource: "products", Err: errors.New("boom")}
	src.productsErr = fetchErr
	src.catErr = fetchErr

	err := svc.LoadProducts(context.Background())
	assert.True(t, domain.IsFetchError(err))
	assert.Error(t, svc.LoadCategories(context.Background()))

	assert.Len(t, svc.Products(), 2)
	assert.Len(t, svc.Categories(), 1)
}

func TestService_ProductsIsACopy(t *testing.T) {
	svc := New(&stubSource{products: fixtureProducts(2)})
	require.NoError(t, svc.LoadProducts(context.Background()))

	got := svc.Products()
	got[0].Title = "changed"

	p, _ := svc.Find(1)
	assert.Equal(t, "Product", p.Title)
}

func TestService_Featured(t *testing.T) {
	svc := New(&stubSource{products: fixtureProducts(10)})
	require.NoError(t, svc.LoadProducts(context.Background()))

	featured := svc.Featured(8)
	require.Len(t, featured, 8)
	assert.Equal(t, 1, featured[0].ID)
	assert.Equal(t, 8, featured[7].ID)
	assert.Len(t, svc.Featured(20), 10)
	assert.Empty(t, svc.Featured(-1))
}

func TestService_ProductDetailRefetchesByDefault(t *testing.T) {
	src := &stubSource{
		products: fixtureProducts(1),
		detail:   map[int]domain.Product{1: {ID: 1, Title: "Fresh", Price: 42}},
	}
	svc := New(src)
	require.NoError(t, svc.LoadProducts(context.Background()))

	p, err := svc.ProductDetail(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "Fresh", p.Title)
	assert.Equal(t, 1, src.detailCalls)

	_, err = svc.ProductDetail(context.Background(), 7)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.True(t, domain.IsFetchError(err))
}

func TestService_ProductDetailFromCache(t *testing.T) {
	src := &stubSource{
		products: fixtureProducts(1),
		detail:   map[int]domain.Product{5: {ID: 5, Title: "Remote"}},
	}
	svc := New(src, WithDetailFromCache(true))
	require.NoError(t, svc.LoadProducts(context.Background()))

	p, err := svc.ProductDetail(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "Product", p.Title)
	assert.Zero(t, src.detailCalls)

	p, err = svc.ProductDetail(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, "Remote", p.Title)
	assert.Equal(t, 1, src.detailCalls)
}
