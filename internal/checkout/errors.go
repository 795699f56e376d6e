package checkout

import "errors"

var (
	ErrEmptyCart           = errors.New("cart is empty, nothing to checkout")
	ErrMissingUser         = errors.New("missing user id")
	ErrMissingShop         = errors.New("cart item has no shop assigned")
	ErrInvalidPayMethod    = errors.New("invalid payment method")
	ErrInvalidShipping     = errors.New("invalid shipping details")
	ErrInvalidCard         = errors.New("invalid card details")
	ErrCardExpired         = errors.New("card is expired or expiry is malformed")
	ErrCashMultiShop       = errors.New("cash payment requires a single-shop cart")
	ErrInsufficientStock   = errors.New("insufficient stock for cart item")
	ErrOrderSubmission     = errors.New("order submission failed")
	IllegalTransitionError = errors.New("illegal transition of checkout status")
)
