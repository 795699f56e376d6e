package checkout

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"github.com/carlosh1016/cloth-inc-storefront/internal/domain"
)

var errMockBackend = errors.New("mock backend failure")

// MockCarts implements Carts for testing
type MockCarts struct {
	Cart     *domain.Cart
	GetErr   error
	ClearErr error
	Cleared  bool
}

func (m *MockCarts) Get(context.Context, int64) (*domain.Cart, error) {
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	return m.Cart, nil
}

func (m *MockCarts) Clear(context.Context, int64) error {
	if m.ClearErr != nil {
		return m.ClearErr
	}
	m.Cleared = true
	return nil
}

// MockBackend implements Backend for testing. Failing shops and
// products are configured per ID.
type MockBackend struct {
	mu sync.Mutex

	Products        map[int64]*domain.Product
	FailShops       map[int64]bool
	FailProducts    map[int64]bool
	CreatedOrders   []domain.OrderRequest
	UpdatedProducts []*domain.Product

	nextOrderID    int64
	decrementsSeen int32
}

func (m *MockBackend) GetProduct(_ context.Context, id int64) (*domain.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.Products[id]
	if !ok {
		return nil, errMockBackend
	}
	copied := *p
	return &copied, nil
}

func (m *MockBackend) CreateOrder(_ context.Context, req domain.OrderRequest) (*domain.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailShops[req.ShopID] {
		return nil, errMockBackend
	}
	m.nextOrderID++
	m.CreatedOrders = append(m.CreatedOrders, req)
	return &domain.Order{ID: m.nextOrderID, Amount: req.Amount, ShopID: req.ShopID}, nil
}

func (m *MockBackend) UpdateProduct(_ context.Context, p *domain.Product) (*domain.Product, error) {
	atomic.AddInt32(&m.decrementsSeen, 1)
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailProducts[p.ID] {
		return nil, errMockBackend
	}
	m.UpdatedProducts = append(m.UpdatedProducts, p)
	m.Products[p.ID] = p
	return p, nil
}

// MockInvalidator implements Invalidator for testing
type MockInvalidator struct {
	calls int32
}

func (m *MockInvalidator) Invalidate() {
	atomic.AddInt32(&m.calls, 1)
}

func (m *MockInvalidator) Calls() int32 {
	return atomic.LoadInt32(&m.calls)
}
