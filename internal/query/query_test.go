package query

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/internal/domain"
)

func titles(ps []domain.Product) []string {
	out := make([]string, len(ps))
	for i, p := range ps {
		out[i] = p.Title
	}
	return out
}

func sampleCatalog() []domain.Product {
	return []domain.Product{
		{ID: 1, Title: "Red Lipstick", Description: "Matte finish", Price: 12.5, Rating: 4.1, Category: "beauty"},
		{ID: 2, Title: "Desk Lamp", Description: "LED lamp with a red shade", Price: 30, Rating: 4.8, Category: "home-decoration"},
		{ID: 3, Title: "apple", Description: "Fresh fruit", Price: 1, Rating: 4.1, Category: "groceries"},
		{ID: 4, Title: "Banana", Description: "Yellow fruit", Price: 1, Rating: 3.2, Category: "groceries"},
		{ID: 5, Title: "Éclair", Description: "Pastry", Price: 3, Rating: 4.9, Category: "groceries"},
	}
}

func TestApply_PriceSortScenario(t *testing.T) {
	products := []domain.Product{
		{ID: 1, Price: 10, Title: "A"},
		{ID: 2, Price: 5, Title: "B"},
	}

	assert.Equal(t, []string{"B", "A"}, titles(Apply(products, Query{Sort: SortPriceAsc})))
	assert.Equal(t, []string{"A", "B"}, titles(Apply(products, Query{Sort: SortPriceDesc})))
}

func TestApply_SearchMatchesTitleOrDescription(t *testing.T) {
	got := Apply(sampleCatalog(), Query{Search: "RED"})
	assert.Equal(t, []string{"Red Lipstick", "Desk Lamp"}, titles(got))

	assert.Len(t, Apply(sampleCatalog(), Query{}), 5)
}

func TestApply_CategoryAfterSearch(t *testing.T) {
	got := Apply(sampleCatalog(), Query{Search: "fruit", Category: "groceries"})
	assert.Equal(t, []string{"apple", "Banana"}, titles(got))

	assert.Empty(t, Apply(sampleCatalog(), Query{Search: "fruit", Category: "beauty"}))
}

func TestApply_NoneKeepsCatalogOrder(t *testing.T) {
	got := Apply(sampleCatalog(), Query{Sort: SortNone})
	assert.Equal(t, titles(sampleCatalog()), titles(got))
}

func TestApply_StableSorts(t *testing.T) {
	// apple and Banana share price 1; Red Lipstick and apple share rating 4.1.
	byPrice := Apply(sampleCatalog(), Query{Sort: SortPriceAsc})
	assert.Equal(t, []string{"apple", "Banana", "Éclair", "Red Lipstick", "Desk Lamp"}, titles(byPrice))

	byRating := Apply(sampleCatalog(), Query{Sort: SortRating})
	assert.Equal(t, []string{"Éclair", "Desk Lamp", "Red Lipstick", "apple", "Banana"}, titles(byRating))
}

func TestApply_TitleIsLocaleAware(t *testing.T) {
	got := Apply(sampleCatalog(), Query{Sort: SortTitle})
	assert.Equal(t, []string{"apple", "Banana", "Desk Lamp", "Éclair", "Red Lipstick"}, titles(got))
}

func TestApply_DeterministicAndPure(t *testing.T) {
	in := sampleCatalog()
	q := Query{Search: "e", Sort: SortRating}

	first := Apply(in, q)
	second := Apply(in, q)

	assert.Equal(t, first, second)
	assert.Equal(t, sampleCatalog(), in)
}

func TestParseSort(t *testing.T) {
	for _, s := range []string{"", "title", "price-asc", "price-desc", "rating"} {
		k, err := ParseSort(s)
		require.NoError(t, err)
		assert.Equal(t, SortKey(s), k)
	}

	_, err := ParseSort("popularity")
	assert.ErrorIs(t, err, ErrUnknownSort)
}

func TestPaginate(t *testing.T) {
	items := make([]domain.Product, 25)
	for i := range items {
		items[i] = domain.Product{ID: i + 1, Title: fmt.Sprintf("P%d", i+1)}
	}

	assert.Equal(t, 3, PageCount(len(items), PageSize))

	first := Paginate(items, 1, PageSize)
	assert.Len(t, first.Items, 12)
	assert.Equal(t, 1, first.Items[0].ID)
	assert.Equal(t, 3, first.TotalPages)

	last := Paginate(items, 3, PageSize)
	require.Len(t, last.Items, 1)
	assert.Equal(t, 25, last.Items[0].ID)

	assert.False(t, ValidPage(4, first.TotalPages))
	assert.False(t, ValidPage(0, first.TotalPages))
	assert.True(t, ValidPage(3, first.TotalPages))
	assert.Empty(t, Paginate(items, 4, PageSize).Items)
}

func TestPageCount_Edges(t *testing.T) {
	assert.Equal(t, 0, PageCount(0, PageSize))
	assert.Equal(t, 1, PageCount(12, PageSize))
	assert.Equal(t, 2, PageCount(13, PageSize))
	assert.Equal(t, 0, PageCount(5, 0))
}
