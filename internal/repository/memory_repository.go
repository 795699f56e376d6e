package repository

import (
	"context"
	"sync"

	"github.com/carlosh1016/cloth-inc-storefront/internal/domain"
)

// MemoryRepository implements CartRepository with in-memory storage.
// Used in tests and when the service runs without MongoDB.
type MemoryRepository struct {
	mu    sync.RWMutex
	carts map[int64]*domain.Cart
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{carts: make(map[int64]*domain.Cart)}
}

func (m *MemoryRepository) GetCart(_ context.Context, userID int64) (*domain.Cart, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	cart, exists := m.carts[userID]
	if !exists {
		return nil, ErrCartNotFound
	}

	copied := *cart
	copied.Items = append([]domain.LineItem(nil), cart.Items...)
	return &copied, nil
}

func (m *MemoryRepository) UpsertCart(_ context.Context, cart *domain.Cart) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	copied := *cart
	copied.Items = append([]domain.LineItem(nil), cart.Items...)
	m.carts[cart.UserID] = &copied
	return nil
}

func (m *MemoryRepository) DeleteCart(_ context.Context, userID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.carts[userID]; !exists {
		return ErrCartNotFound
	}
	delete(m.carts, userID)
	return nil
}
