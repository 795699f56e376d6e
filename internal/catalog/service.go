package catalog

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/carlosh1016/cloth-inc-storefront/internal/domain"
	"golang.org/x/sync/singleflight"
)

// Lister is the slice of the upstream backend the catalog needs.
type Lister interface {
	ListProducts(ctx context.Context) ([]domain.Product, error)
	GetProduct(ctx context.Context, id int64) (*domain.Product, error)
}

const snapshotTTL = 30 * time.Second

// Service serves search over a short-lived snapshot of the upstream
// product list. Concurrent refreshes collapse through singleflight;
// invalidations from write paths are debounced so bursts (a checkout
// decrementing many products) cause one refresh, not one per product.
type Service struct {
	backend Lister
	sfg     singleflight.Group

	mu        sync.RWMutex
	snapshot  []domain.Product
	fetchedAt time.Time

	debounce *Debouncer
}

func NewService(backend Lister) *Service {
	s := &Service{backend: backend}
	s.debounce = NewDebouncer(DebounceInterval)
	return s
}

// Search returns the filtered, sorted catalog view for the spec.
func (s *Service) Search(ctx context.Context, spec domain.FilterSpec) ([]domain.Product, error) {
	products, err := s.Products(ctx)
	if err != nil {
		return nil, err
	}
	return FilterAndSort(products, spec), nil
}

// Products returns the current product snapshot, refreshing it from
// the backend when stale.
func (s *Service) Products(ctx context.Context) ([]domain.Product, error) {
	s.mu.RLock()
	fresh := time.Since(s.fetchedAt) < snapshotTTL
	snapshot := s.snapshot
	s.mu.RUnlock()

	if fresh {
		return snapshot, nil
	}

	v, err, _ := s.sfg.Do("products", func() (interface{}, error) {
		products, err := s.backend.ListProducts(ctx)
		if err != nil {
			return nil, err
		}
		s.mu.Lock()
		s.snapshot = products
		s.fetchedAt = time.Now()
		s.mu.Unlock()
		return products, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]domain.Product), nil
}

// Product fetches one product fresh from the backend. Stock checks
// always go through here, never through the snapshot.
func (s *Service) Product(ctx context.Context, id int64) (*domain.Product, error) {
	return s.backend.GetProduct(ctx, id)
}

// Invalidate marks the snapshot stale and schedules a debounced
// background refresh.
func (s *Service) Invalidate() {
	s.mu.Lock()
	s.fetchedAt = time.Time{}
	s.mu.Unlock()

	s.debounce.Trigger(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if _, err := s.Products(ctx); err != nil {
			log.Printf("catalog refresh error: %v \n", err)
		}
	})
}

// Close stops any pending refresh.
func (s *Service) Close() {
	s.debounce.Stop()
}
