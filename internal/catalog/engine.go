// Package catalog serves product browsing and search. Filtering and
// sorting are pure functions over the product list; fetching and
// caching of the list live in the service.
package catalog

import (
	"sort"
	"strings"

	"github.com/carlosh1016/cloth-inc-storefront/internal/domain"
)

// FilterAndSort applies the spec's predicates conjunctively, then
// stable-sorts the survivors. Absent filter fields constrain nothing.
// The input slice is never mutated.
func FilterAndSort(products []domain.Product, spec domain.FilterSpec) []domain.Product {
	var filtered []domain.Product
	if spec.IsZero() {
		filtered = append([]domain.Product(nil), products...)
	} else {
		filtered = make([]domain.Product, 0, len(products))
		for _, p := range products {
			if matches(&p, spec) {
				filtered = append(filtered, p)
			}
		}
	}
	sortProducts(filtered, spec.SortBy, spec.SortOrder)
	return filtered
}

func matches(p *domain.Product, spec domain.FilterSpec) bool {
	if len(spec.Categories) > 0 && !containsFold(spec.Categories, p.CategoryName()) {
		return false
	}
	if len(spec.Brands) > 0 && !containsFold(spec.Brands, p.ShopName()) {
		return false
	}
	if len(spec.Sizes) > 0 && !hasAnySizeInStock(p, spec.Sizes) {
		return false
	}
	if spec.MinPrice != nil && p.Price < *spec.MinPrice {
		return false
	}
	if spec.MaxPrice != nil && p.Price > *spec.MaxPrice {
		return false
	}
	if spec.StockOnly && p.Stock.Total() <= 0 {
		return false
	}
	if spec.DiscountOnly && p.Discount <= 0 {
		return false
	}
	if q := strings.ToLower(strings.TrimSpace(spec.SearchQuery)); q != "" {
		if !strings.Contains(strings.ToLower(p.Name), q) &&
			!strings.Contains(strings.ToLower(p.Description), q) &&
			!strings.Contains(strings.ToLower(p.CategoryName()), q) &&
			!strings.Contains(strings.ToLower(p.ShopName()), q) {
			return false
		}
	}
	return true
}

func containsFold(set []string, v string) bool {
	for _, s := range set {
		if strings.EqualFold(s, v) {
			return true
		}
	}
	return false
}

func hasAnySizeInStock(p *domain.Product, sizes []domain.Size) bool {
	for _, s := range sizes {
		if p.Stock.ForSize(s) > 0 {
			return true
		}
	}
	return false
}

// sortProducts orders in place. The sort is stable so products with
// equal keys keep their post-filter relative order.
func sortProducts(products []domain.Product, by domain.SortField, order domain.SortOrder) {
	less := func(a, b *domain.Product) bool {
		switch by {
		case domain.SortByPrice:
			return a.Price < b.Price
		case domain.SortByDiscount:
			return a.Discount < b.Discount
		default: // name
			return strings.ToLower(a.Name) < strings.ToLower(b.Name)
		}
	}

	sort.SliceStable(products, func(i, j int) bool {
		if order == domain.SortDesc {
			return less(&products[j], &products[i])
		}
		return less(&products[i], &products[j])
	})
}
