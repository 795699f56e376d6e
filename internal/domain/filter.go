package domain

// SortField names a product attribute results can be ordered by.
type SortField string

const (
	SortByName     SortField = "name"
	SortByPrice    SortField = "price"
	SortByDiscount SortField = "discount"
)

type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// FilterSpec describes one catalog search. Zero values mean "no
// constraint": empty sets match everything, absent price bounds are
// ignored. Predicates combine with AND.
type FilterSpec struct {
	Categories   []string
	Brands       []string // shop names
	Sizes        []Size
	MinPrice     *float64
	MaxPrice     *float64
	StockOnly    bool
	DiscountOnly bool
	SearchQuery  string
	SortBy       SortField
	SortOrder    SortOrder
}

// IsZero reports whether the spec constrains nothing beyond ordering.
func (f FilterSpec) IsZero() bool {
	return len(f.Categories) == 0 && len(f.Brands) == 0 && len(f.Sizes) == 0 &&
		f.MinPrice == nil && f.MaxPrice == nil &&
		!f.StockOnly && !f.DiscountOnly && f.SearchQuery == ""
}
