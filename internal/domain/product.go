package domain

import (
	"encoding/json"
	"fmt"
)

// Product is a catalog entry as served by the upstream backend. It is
// read-only from this service's point of view; mutations go through the
// seller dashboard and are re-fetched.
type Product struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       float64   `json:"price"` // pre-discount unit price
	Discount    float64   `json:"discount,omitempty"`
	Stock       Stock     `json:"stock"`
	Category    *Category `json:"category,omitempty"`
	Shop        *Shop     `json:"shop,omitempty"`
	Images      []string  `json:"images,omitempty"` // base64 payloads, possibly data-URI prefixed
}

type Category struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type Shop struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Address  string `json:"address,omitempty"`
	City     string `json:"city,omitempty"`
	Province string `json:"province,omitempty"`
}

// FinalPrice is the unit price after applying the discount percentage.
func (p *Product) FinalPrice() float64 {
	if p.Discount > 0 {
		return p.Price * (1 - p.Discount/100)
	}
	return p.Price
}

func (p *Product) CategoryName() string {
	if p.Category == nil {
		return ""
	}
	return p.Category.Name
}

func (p *Product) ShopName() string {
	if p.Shop == nil {
		return ""
	}
	return p.Shop.Name
}

// Stock is per-size inventory, normalized at the decoding boundary.
// Historic backend payloads carry a single number instead of the
// six-element XS..XXL array; those decode to a legacy value whose total
// is the scalar and whose per-size counts are unknown. Downstream code
// never branches on the wire shape.
type Stock struct {
	sizes  [SizeCount]int
	total  int
	legacy bool
}

// NewStock builds sized stock from XS..XXL counts.
func NewStock(counts [SizeCount]int) Stock {
	total := 0
	for _, c := range counts {
		total += c
	}
	return Stock{sizes: counts, total: total}
}

// NewLegacyStock builds stock from a historic scalar count. Per-size
// counts are unknown and report zero.
func NewLegacyStock(total int) Stock {
	return Stock{total: total, legacy: true}
}

// Total is the aggregate unit count across all sizes.
func (s Stock) Total() int {
	return s.total
}

// Legacy reports whether the value came from a scalar payload, i.e.
// per-size counts are unknown.
func (s Stock) Legacy() bool {
	return s.legacy
}

// ForSize returns the remaining units of the given size. Unknown sizes
// and legacy stock report zero.
func (s Stock) ForSize(size Size) int {
	idx := size.Index()
	if s.legacy || idx < 0 {
		return 0
	}
	return s.sizes[idx]
}

// AvailableSizes lists the sizes with at least one unit in stock.
func (s Stock) AvailableSizes() []Size {
	if s.legacy {
		return nil
	}
	var out []Size
	for i, c := range s.sizes {
		if c > 0 {
			out = append(out, Sizes[i])
		}
	}
	return out
}

// Decrement returns a copy with n units removed from the given size
// (or from the legacy total), floored at zero.
func (s Stock) Decrement(size Size, n int) Stock {
	if s.legacy {
		s.total -= n
		if s.total < 0 {
			s.total = 0
		}
		return s
	}
	idx := size.Index()
	if idx < 0 {
		return s
	}
	s.sizes[idx] -= n
	if s.sizes[idx] < 0 {
		s.sizes[idx] = 0
	}
	s.total = 0
	for _, c := range s.sizes {
		s.total += c
	}
	return s
}

func (s *Stock) UnmarshalJSON(data []byte) error {
	var counts []int
	if err := json.Unmarshal(data, &counts); err == nil {
		if len(counts) != SizeCount {
			return fmt.Errorf("stock array must have %d entries, got %d", SizeCount, len(counts))
		}
		var fixed [SizeCount]int
		copy(fixed[:], counts)
		*s = NewStock(fixed)
		return nil
	}

	var scalar int
	if err := json.Unmarshal(data, &scalar); err != nil {
		return fmt.Errorf("stock must be a number or an array of %d numbers", SizeCount)
	}
	*s = NewLegacyStock(scalar)
	return nil
}

func (s Stock) MarshalJSON() ([]byte, error) {
	if s.legacy {
		return json.Marshal(s.total)
	}
	return json.Marshal(s.sizes[:])
}
