// Package checkout turns a multi-shop cart into one upstream order per
// shop, then decrements stock per line item. Order creation for every
// shop must settle before any decrement is issued; within a phase the
// calls race freely.
package checkout

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"sync"
	"time"

	"github.com/carlosh1016/cloth-inc-storefront/internal/domain"
	"github.com/carlosh1016/cloth-inc-storefront/internal/stock"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// Carts is the slice of the cart service the aggregator needs.
type Carts interface {
	Get(ctx context.Context, userID int64) (*domain.Cart, error)
	Clear(ctx context.Context, userID int64) error
}

// Backend is the slice of the upstream client the aggregator needs.
type Backend interface {
	GetProduct(ctx context.Context, id int64) (*domain.Product, error)
	CreateOrder(ctx context.Context, req domain.OrderRequest) (*domain.Order, error)
	UpdateProduct(ctx context.Context, p *domain.Product) (*domain.Product, error)
}

// Invalidator is notified after stock writes so cached catalog views
// refresh.
type Invalidator interface {
	Invalidate()
}

// Request is one "place order" submission.
type Request struct {
	UserID    int64
	PayMethod domain.PayMethod
	Shipping  domain.ShippingInfo
	Card      *domain.CardInfo // required for card payments
}

// ShopOutcome records the order-creation result for one shop group.
type ShopOutcome struct {
	ShopID  int64   `json:"shopId"`
	Amount  float64 `json:"amount"`
	OrderID int64   `json:"orderId,omitempty"`
	Error   string  `json:"error,omitempty"`
}

// DecrementOutcome records the stock-update result for one line item.
type DecrementOutcome struct {
	ProductID int64       `json:"productId"`
	Size      domain.Size `json:"size,omitempty"`
	Qty       int         `json:"qty"`
	Error     string      `json:"error,omitempty"`
}

// Result is the per-step outcome of one checkout flow. Outcomes are
// kept even on failure so a caller can see which shops were actually
// charged.
type Result struct {
	CheckoutID string             `json:"checkoutId"`
	Status     Status             `json:"status"`
	Total      float64            `json:"total"`
	Orders     []ShopOutcome      `json:"orders,omitempty"`
	Decrements []DecrementOutcome `json:"decrements,omitempty"`
}

type Aggregator struct {
	carts    Carts
	backend  Backend
	catalog  Invalidator
	validate *validator.Validate
}

func NewAggregator(carts Carts, backend Backend, catalog Invalidator) *Aggregator {
	return &Aggregator{
		carts:    carts,
		backend:  backend,
		catalog:  catalog,
		validate: validator.New(),
	}
}

// PlaceOrder runs the full checkout flow. On any failure the cart is
// left intact so the user can retry; on success the cart is cleared.
func (a *Aggregator) PlaceOrder(ctx context.Context, req Request) (*Result, error) {
	result := &Result{
		CheckoutID: uuid.New().String(),
		Status:     StatusInitiated,
	}

	cart, err := a.validateRequest(ctx, result, req)
	if err != nil {
		return a.fail(result, err)
	}
	result.Total = cart.Subtotal()

	if err := a.submitOrders(ctx, result, cart, req); err != nil {
		return a.fail(result, err)
	}

	a.decrementStock(ctx, result, cart)

	if err := a.transition(result, StatusCompleted); err != nil {
		return a.fail(result, err)
	}
	if err := a.carts.Clear(ctx, req.UserID); err != nil {
		// Orders exist, stock is updated. The stale cart is logged
		// rather than failing a purchase that already happened.
		log.Printf("checkout %s: failed to clear cart: %v", result.CheckoutID, err)
	}
	return result, nil
}

func (a *Aggregator) validateRequest(ctx context.Context, result *Result, req Request) (*domain.Cart, error) {
	if err := a.transition(result, StatusValidating); err != nil {
		return nil, err
	}

	if req.UserID == 0 {
		return nil, ErrMissingUser
	}
	if !req.PayMethod.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidPayMethod, req.PayMethod)
	}
	if err := a.validate.Struct(req.Shipping); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidShipping, err)
	}
	if req.PayMethod.IsCard() {
		if req.Card == nil {
			return nil, fmt.Errorf("%w: card details are required", ErrInvalidCard)
		}
		if err := a.validate.Struct(req.Card); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidCard, err)
		}
		if !expValid(req.Card.Exp, time.Now()) {
			return nil, ErrCardExpired
		}
	}

	cart, err := a.carts.Get(ctx, req.UserID)
	if err != nil {
		return nil, err
	}
	if len(cart.Items) == 0 {
		return nil, ErrEmptyCart
	}
	for _, item := range cart.Items {
		if item.ShopID == 0 {
			return nil, fmt.Errorf("%w: %q", ErrMissingShop, item.Name)
		}
	}
	if req.PayMethod == domain.PayCash && len(cart.ShopIDs()) != 1 {
		return nil, ErrCashMultiShop
	}

	if err := a.checkStock(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// checkStock re-validates every line item against a fresh product
// snapshot. The snapshot can still go stale between here and the
// upstream write; there is no reservation.
func (a *Aggregator) checkStock(ctx context.Context, cart *domain.Cart) error {
	products := make(map[int64]*domain.Product)
	for _, item := range cart.Items {
		if _, ok := products[item.ProductID]; ok {
			continue
		}
		p, err := a.backend.GetProduct(ctx, item.ProductID)
		if err != nil {
			return fmt.Errorf("failed to load product %d: %w", item.ProductID, err)
		}
		products[item.ProductID] = p
	}

	for _, item := range cart.Items {
		p := products[item.ProductID]
		if item.Qty > stock.Purchasable(p, item.Size) {
			return fmt.Errorf("%w: %q", ErrInsufficientStock, item.Name)
		}
	}
	return nil
}

// submitOrders creates one upstream order per shop group, in parallel.
// Any failure fails the whole checkout; the per-shop outcomes still
// say which orders were actually created.
func (a *Aggregator) submitOrders(ctx context.Context, result *Result, cart *domain.Cart, req Request) error {
	if err := a.transition(result, StatusSubmitting); err != nil {
		return err
	}

	groups := cart.GroupByShop()
	today := time.Now().Format("2006-01-02")
	result.Orders = make([]ShopOutcome, len(groups))

	g, gctx := errgroup.WithContext(ctx)
	for i, group := range groups {
		i, group := i, group
		g.Go(func() error {
			outcome := ShopOutcome{ShopID: group.ShopID, Amount: group.Amount()}

			order, err := a.backend.CreateOrder(gctx, domain.OrderRequest{
				Amount:     group.Amount(),
				EmitedDate: today,
				State:      true,
				PayMethod:  req.PayMethod,
				UserID:     req.UserID,
				ShopID:     group.ShopID,
			})
			if err != nil {
				outcome.Error = err.Error()
				result.Orders[i] = outcome
				return fmt.Errorf("%w: shop %d: %v", ErrOrderSubmission, group.ShopID, err)
			}

			outcome.OrderID = order.ID
			result.Orders[i] = outcome
			return nil
		})
	}
	return g.Wait()
}

// decrementStock writes the post-sale stock for every line item, in
// parallel and best-effort: a failed update is logged and recorded but
// never rolls back the orders, so inventory can drift until an
// operator reconciles it.
func (a *Aggregator) decrementStock(ctx context.Context, result *Result, cart *domain.Cart) {
	if err := a.transition(result, StatusDecrementing); err != nil {
		log.Printf("checkout %s: %v", result.CheckoutID, err)
		return
	}

	result.Decrements = make([]DecrementOutcome, len(cart.Items))

	var wg sync.WaitGroup
	for i, item := range cart.Items {
		i, item := i, item
		wg.Add(1)
		go func() {
			defer wg.Done()
			outcome := DecrementOutcome{ProductID: item.ProductID, Size: item.Size, Qty: item.Qty}

			if err := a.decrementItem(ctx, item); err != nil {
				log.Printf("checkout %s: stock decrement failed for product %d: %v",
					result.CheckoutID, item.ProductID, err)
				outcome.Error = err.Error()
			}
			result.Decrements[i] = outcome
		}()
	}
	wg.Wait()

	if a.catalog != nil {
		a.catalog.Invalidate()
	}
}

func (a *Aggregator) decrementItem(ctx context.Context, item domain.LineItem) error {
	p, err := a.backend.GetProduct(ctx, item.ProductID)
	if err != nil {
		return err
	}
	p.Stock = p.Stock.Decrement(item.Size, item.Qty)
	_, err = a.backend.UpdateProduct(ctx, p)
	return err
}

func (a *Aggregator) transition(result *Result, to Status) error {
	if !CanTransitionTo(result.Status, to) {
		return fmt.Errorf("%w: %s -> %s", IllegalTransitionError, result.Status, to)
	}
	result.Status = to
	return nil
}

func (a *Aggregator) fail(result *Result, err error) (*Result, error) {
	result.Status = StatusFailed
	log.Printf("checkout %s failed: %v", result.CheckoutID, err)
	return result, err
}

// expValid checks an MM/YY expiry against the given moment.
func expValid(exp string, now time.Time) bool {
	if len(exp) != 5 || exp[2] != '/' {
		return false
	}
	month, err := strconv.Atoi(exp[:2])
	if err != nil || month < 1 || month > 12 {
		return false
	}
	year, err := strconv.Atoi(exp[3:])
	if err != nil {
		return false
	}

	currentYear := now.Year() % 100
	currentMonth := int(now.Month())
	if year < currentYear {
		return false
	}
	if year == currentYear && month < currentMonth {
		return false
	}
	return true
}
