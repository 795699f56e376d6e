package domain

// PayMethod is the payment method chosen at checkout.
type PayMethod string

const (
	PayCreditCard PayMethod = "CREDIT_CARD"
	PayDebitCard  PayMethod = "DEBIT_CARD"
	PayCash       PayMethod = "CASH"
)

func (p PayMethod) Valid() bool {
	return p == PayCreditCard || p == PayDebitCard || p == PayCash
}

// IsCard reports whether the method requires card details.
func (p PayMethod) IsCard() bool {
	return p == PayCreditCard || p == PayDebitCard
}

// OrderRequest is the upstream order-creation payload, one per shop.
// Field names follow the backend contract, including its spelling of
// emitedDate (YYYY-MM-DD).
type OrderRequest struct {
	Amount     float64   `json:"amount"`
	EmitedDate string    `json:"emitedDate"`
	State      bool      `json:"state"`
	PayMethod  PayMethod `json:"payMethod"`
	UserID     int64     `json:"userId"`
	ShopID     int64     `json:"shopId"`
}

// Order is the backend's representation of a created order.
type Order struct {
	ID         int64     `json:"id"`
	Amount     float64   `json:"amount"`
	EmitedDate string    `json:"emitedDate"`
	State      bool      `json:"state"`
	PayMethod  PayMethod `json:"payMethod"`
	UserID     int64     `json:"userId"`
	ShopID     int64     `json:"shopId"`
}

// ShippingInfo is the delivery address collected at checkout. The
// phone, when present, must be exactly 13 digits.
type ShippingInfo struct {
	FullName string `json:"fullName" validate:"required"`
	Address  string `json:"address" validate:"required"`
	City     string `json:"city" validate:"required"`
	Province string `json:"province" validate:"required"`
	Zip      string `json:"zip" validate:"required"`
	Phone    string `json:"phone,omitempty" validate:"omitempty,len=13,numeric"`
}

// CardInfo is the card collected for CREDIT_CARD / DEBIT_CARD payments.
// Expiry is MM/YY and must not be in the past.
type CardInfo struct {
	Holder string `json:"holder" validate:"required"`
	Number string `json:"number" validate:"required,len=16,numeric"`
	Exp    string `json:"exp" validate:"required"`
	CVV    string `json:"cvv" validate:"required,len=3,numeric"`
}
