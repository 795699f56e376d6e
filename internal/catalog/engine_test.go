package catalog

import (
	"testing"

	"github.com/carlosh1016/cloth-inc-storefront/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixture() []domain.Product {
	return []domain.Product{
		{
			ID: 1, Name: "Red Shirt", Description: "Cotton shirt", Price: 20,
			Stock:    domain.NewStock([6]int{0, 2, 1, 0, 0, 0}),
			Category: &domain.Category{Name: "Shirts"},
			Shop:     &domain.Shop{Name: "Alpha"},
		},
		{
			ID: 2, Name: "Blue Jeans", Description: "Denim", Price: 50, Discount: 10,
			Stock:    domain.NewStock([6]int{0, 0, 0, 3, 0, 0}),
			Category: &domain.Category{Name: "Pants"},
			Shop:     &domain.Shop{Name: "Beta"},
		},
		{
			ID: 3, Name: "Green Hoodie", Description: "Warm", Price: 35,
			Stock:    domain.NewStock([6]int{0, 0, 0, 0, 0, 0}),
			Category: &domain.Category{Name: "Hoodies"},
			Shop:     &domain.Shop{Name: "Alpha"},
		},
		{
			ID: 4, Name: "Old Cap", Description: "Legacy stock", Price: 5, Discount: 50,
			Stock:    domain.NewLegacyStock(4),
			Category: &domain.Category{Name: "Accessories"},
			Shop:     &domain.Shop{Name: "Beta"},
		},
	}
}

func ids(products []domain.Product) []int64 {
	out := make([]int64, len(products))
	for i, p := range products {
		out[i] = p.ID
	}
	return out
}

func TestFilterAndSort_EmptySpecKeepsEverything(t *testing.T) {
	products := fixture()

	got := FilterAndSort(products, domain.FilterSpec{})

	// Default sort is name ascending; nothing is dropped
	assert.Equal(t, []int64{2, 3, 4, 1}, ids(got))
}

func TestFilterAndSort_FreeTextQuery(t *testing.T) {
	got := FilterAndSort(fixture(), domain.FilterSpec{SearchQuery: "shirt"})

	require.Len(t, got, 1)
	assert.Equal(t, "Red Shirt", got[0].Name)

	// Matches descriptions, categories and shop names too, case-folded
	assert.Len(t, FilterAndSort(fixture(), domain.FilterSpec{SearchQuery: "DENIM"}), 1)
	assert.Len(t, FilterAndSort(fixture(), domain.FilterSpec{SearchQuery: "alpha"}), 2)
	assert.Len(t, FilterAndSort(fixture(), domain.FilterSpec{SearchQuery: "hoodies"}), 1)
	assert.Empty(t, FilterAndSort(fixture(), domain.FilterSpec{SearchQuery: "no such thing"}))
}

func TestFilterAndSort_CategoryAndBrand(t *testing.T) {
	got := FilterAndSort(fixture(), domain.FilterSpec{Categories: []string{"Shirts", "Pants"}})
	assert.Equal(t, []int64{2, 1}, ids(got))

	got = FilterAndSort(fixture(), domain.FilterSpec{Brands: []string{"Beta"}})
	assert.Equal(t, []int64{2, 4}, ids(got))

	// Conjunctive: both predicates must hold
	got = FilterAndSort(fixture(), domain.FilterSpec{Categories: []string{"Pants"}, Brands: []string{"Alpha"}})
	assert.Empty(t, got)
}

func TestFilterAndSort_SizesRequirePositiveStock(t *testing.T) {
	got := FilterAndSort(fixture(), domain.FilterSpec{Sizes: []domain.Size{domain.SizeS}})
	assert.Equal(t, []int64{1}, ids(got))

	// Legacy stock has no per-size counts, so size filters exclude it
	got = FilterAndSort(fixture(), domain.FilterSpec{Sizes: []domain.Size{domain.SizeXXL}})
	assert.Empty(t, got)
}

func TestFilterAndSort_PriceBounds(t *testing.T) {
	min, max := 10.0, 40.0

	got := FilterAndSort(fixture(), domain.FilterSpec{MinPrice: &min})
	assert.Equal(t, []int64{2, 3, 1}, ids(got))

	got = FilterAndSort(fixture(), domain.FilterSpec{MinPrice: &min, MaxPrice: &max})
	assert.Equal(t, []int64{3, 1}, ids(got))
}

func TestFilterAndSort_StockOnlyAndDiscountOnly(t *testing.T) {
	got := FilterAndSort(fixture(), domain.FilterSpec{StockOnly: true})
	// Hoodie has zero total; legacy cap counts through its scalar total
	assert.Equal(t, []int64{2, 4, 1}, ids(got))

	got = FilterAndSort(fixture(), domain.FilterSpec{DiscountOnly: true})
	assert.Equal(t, []int64{2, 4}, ids(got))
}

func TestFilterAndSort_SortOrders(t *testing.T) {
	got := FilterAndSort(fixture(), domain.FilterSpec{SortBy: domain.SortByPrice})
	assert.Equal(t, []int64{4, 1, 3, 2}, ids(got))

	got = FilterAndSort(fixture(), domain.FilterSpec{SortBy: domain.SortByPrice, SortOrder: domain.SortDesc})
	assert.Equal(t, []int64{2, 3, 1, 4}, ids(got))

	// Missing discount sorts as zero
	got = FilterAndSort(fixture(), domain.FilterSpec{SortBy: domain.SortByDiscount, SortOrder: domain.SortDesc})
	assert.Equal(t, []int64{4, 2, 1, 3}, ids(got))
}

func TestFilterAndSort_StableOnEqualKeys(t *testing.T) {
	products := []domain.Product{
		{ID: 1, Name: "B", Price: 5},
		{ID: 2, Name: "A", Price: 5},
	}

	got := FilterAndSort(products, domain.FilterSpec{SortBy: domain.SortByPrice})

	// Equal prices keep their pre-sort relative order
	assert.Equal(t, []int64{1, 2}, ids(got))
}

func TestFilterAndSort_Idempotent(t *testing.T) {
	spec := domain.FilterSpec{SearchQuery: "e", SortBy: domain.SortByPrice, SortOrder: domain.SortDesc}

	once := FilterAndSort(fixture(), spec)
	twice := FilterAndSort(once, spec)

	assert.Equal(t, once, twice)
}

func TestFilterAndSort_DoesNotMutateInput(t *testing.T) {
	products := fixture()
	FilterAndSort(products, domain.FilterSpec{SortBy: domain.SortByPrice, SortOrder: domain.SortDesc})

	assert.Equal(t, []int64{1, 2, 3, 4}, ids(products))
}
