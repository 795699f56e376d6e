package domain

// Size is one of the fixed clothing sizes. The order matters: stock
// arrays coming from the backend are indexed XS..XXL.
type Size string

const (
	SizeXS  Size = "XS"
	SizeS   Size = "S"
	SizeM   Size = "M"
	SizeL   Size = "L"
	SizeXL  Size = "XL"
	SizeXXL Size = "XXL"
)

// Sizes lists every size in stock-array order.
var Sizes = [6]Size{SizeXS, SizeS, SizeM, SizeL, SizeXL, SizeXXL}

// SizeCount is the length of a per-size stock array.
const SizeCount = len(Sizes)

// Index returns the stock-array index of the size, or -1 if the size
// is unknown.
func (s Size) Index() int {
	for i, v := range Sizes {
		if v == s {
			return i
		}
	}
	return -1
}

func (s Size) Valid() bool {
	return s.Index() >= 0
}
