package repository

import (
	"context"
	"errors"

	"github.com/carlosh1016/cloth-inc-storefront/internal/domain"
)

var ErrCartNotFound = errors.New("cart not found")

// CartRepository persists one cart document per user. Line-item merge
// and clamping happen in the domain cart before the document is written
// back, so the store only needs whole-cart reads and writes.
type CartRepository interface {
	GetCart(ctx context.Context, userID int64) (*domain.Cart, error)
	UpsertCart(ctx context.Context, cart *domain.Cart) error
	DeleteCart(ctx context.Context, userID int64) error
}
