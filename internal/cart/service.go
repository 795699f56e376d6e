// Package cart owns the per-user cart state. All mutation goes through
// the service operations; anything user-facing (toasts, redirects) is a
// caller concern.
package cart

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/carlosh1016/cloth-inc-storefront/internal/cache"
	"github.com/carlosh1016/cloth-inc-storefront/internal/domain"
	"github.com/carlosh1016/cloth-inc-storefront/internal/repository"
	"github.com/carlosh1016/cloth-inc-storefront/internal/stock"
	"golang.org/x/sync/singleflight"
)

// ProductSource supplies the product snapshot consulted before an item
// enters the cart.
type ProductSource interface {
	Product(ctx context.Context, id int64) (*domain.Product, error)
}

type Service struct {
	repo     repository.CartRepository
	cache    cache.CartCache
	products ProductSource
	sfg      singleflight.Group // Prevents cache stampede
}

func NewService(repo repository.CartRepository, cache cache.CartCache, products ProductSource) *Service {
	return &Service{
		repo:     repo,
		cache:    cache,
		products: products,
	}
}

// Get returns the user's cart, going to the repository on cache miss.
// Users without a stored cart get an empty one, never an error. Every
// caller receives its own copy, so mutating the result never reaches
// the cache or other concurrent callers.
func (s *Service) Get(ctx context.Context, userID int64) (*domain.Cart, error) {
	// Use singleflight to prevent multiple concurrent cache misses for same key
	v, err, _ := s.sfg.Do(fmt.Sprint(userID), func() (interface{}, error) {

		cart, err := s.cache.Get(ctx, userID)
		if err == nil {
			return cart, nil // cart is in cache
		}

		if !errors.Is(err, cache.ErrCacheMiss) {
			log.Printf("cache get error: %v \n", err) // log cache error but continue
		}

		cart, errGet := s.repo.GetCart(ctx, userID)
		if errGet != nil && errors.Is(errGet, repository.ErrCartNotFound) {
			return &domain.Cart{
				UserID:    userID,
				CreatedAt: time.Now(),
				UpdatedAt: time.Now(),
			}, nil
		}
		if errGet != nil {
			return nil, errGet
		}

		// Fill the cache before returning so the fill cannot land after
		// a later write-through and park a pre-write cart in the cache
		// for the full TTL.
		s.fillCache(userID, cart)

		return cart, nil
	})

	if err != nil {
		return nil, err
	}

	return v.(*domain.Cart).Clone(), nil
}

// AddItem merges the item into the user's cart. The product is fetched
// fresh so the request can be rejected when it exceeds the remaining
// per-size stock; once past that gate the item enters the cart with the
// availability recorded as its max quantity.
func (s *Service) AddItem(ctx context.Context, userID int64, item domain.LineItem) (*domain.Cart, error) {
	product, err := s.products.Product(ctx, item.ProductID)
	if err != nil {
		return nil, fmt.Errorf("failed to load product %d: %w", item.ProductID, err)
	}

	cart, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	qty := item.Qty
	if qty <= 0 {
		qty = 1
	}
	if err := stock.CheckAdd(product, cart, item.Size, qty); err != nil {
		return nil, err
	}

	item.Name = product.Name
	item.Price = product.FinalPrice()
	item.OriginalPrice = product.Price
	item.Discount = product.Discount
	item.MaxQty = stock.Purchasable(product, item.Size)
	if product.Shop != nil {
		item.ShopID = product.Shop.ID
		item.ShopName = product.Shop.Name
	}
	if item.AddedAt.IsZero() {
		item.AddedAt = time.Now()
	}

	cart.Add(item)

	if err := s.persist(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// SetQuantity overwrites a row's quantity; zero or less removes the
// row. Missing keys are a safe no-op.
func (s *Service) SetQuantity(ctx context.Context, userID int64, productID int64, variantID string, size domain.Size, qty int) (*domain.Cart, error) {
	cart, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	cart.SetQty(productID, variantID, size, qty)

	if err := s.persist(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// RemoveItem deletes the row matching the composite key.
func (s *Service) RemoveItem(ctx context.Context, userID int64, productID int64, variantID string, size domain.Size) (*domain.Cart, error) {
	cart, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	cart.Remove(productID, variantID, size)

	if err := s.persist(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// Clear empties the user's cart.
func (s *Service) Clear(ctx context.Context, userID int64) error {
	errDelete := s.repo.DeleteCart(ctx, userID)
	if errDelete != nil && !errors.Is(errDelete, repository.ErrCartNotFound) {
		log.Printf("repo delete cart error: %v \n", errDelete)
		return errDelete
	}

	s.invalidateCache(userID)
	return nil
}

func (s *Service) persist(ctx context.Context, cart *domain.Cart) error {
	if err := s.repo.UpsertCart(ctx, cart); err != nil {
		log.Printf("repo upsert cart error: %v \n", err)
		return err
	}
	// Write through instead of invalidating; the cache never holds a
	// cart older than what the repository was just given.
	s.fillCache(cart.UserID, cart.Clone())
	return nil
}

// fillCache is best effort. A failed set only costs the next read a
// repository round trip.
func (s *Service) fillCache(userID int64, cart *domain.Cart) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := s.cache.Set(ctx, userID, cart); err != nil {
		log.Printf("cache set error: %v \n", err)
	}
}

func (s *Service) invalidateCache(userID int64) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := s.cache.Delete(ctx, userID); err != nil {
		log.Printf("cache invalidate error: %v \n", err)
	}
}
