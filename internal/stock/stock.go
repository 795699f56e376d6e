// Package stock reconciles per-size product inventory against cart
// contents. It only informs client-side clamping; real stock
// decrements happen through the checkout write path.
package stock

import (
	"errors"
	"fmt"

	"github.com/carlosh1016/cloth-inc-storefront/internal/domain"
)

var (
	ErrInvalidSize       = errors.New("unknown size")
	ErrInsufficientStock = errors.New("insufficient stock")
)

// Purchasable returns how many units of the product can be bought for
// the given size. Sized stock answers per-size; legacy scalar stock has
// no per-size breakdown, so the aggregate total applies. Items without
// a size also fall back to the total.
func Purchasable(p *domain.Product, size domain.Size) int {
	if size == "" || p.Stock.Legacy() {
		return p.Stock.Total()
	}
	return p.Stock.ForSize(size)
}

// InCart returns how many units of the product+size the cart already
// holds, across all variants.
func InCart(cart *domain.Cart, productID int64, size domain.Size) int {
	held := 0
	for _, it := range cart.Items {
		if it.ProductID == productID && it.Size == size {
			held += it.Qty
		}
	}
	return held
}

// Remaining is the purchasable quantity minus what the cart holds,
// floored at zero.
func Remaining(p *domain.Product, cart *domain.Cart, size domain.Size) int {
	left := Purchasable(p, size) - InCart(cart, p.ID, size)
	if left < 0 {
		return 0
	}
	return left
}

// CheckAdd rejects a request to add qty units of the given size on top
// of what the cart already holds. Exceeding availability is an explicit
// error, never a silent clamp.
func CheckAdd(p *domain.Product, cart *domain.Cart, size domain.Size, qty int) error {
	if size != "" && !size.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidSize, size)
	}
	if qty > Remaining(p, cart, size) {
		return fmt.Errorf("%w: %q has %d unit(s) left", ErrInsufficientStock, p.Name, Remaining(p, cart, size))
	}
	return nil
}
