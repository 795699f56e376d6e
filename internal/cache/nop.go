package cache

import (
	"context"

	"github.com/carlosh1016/cloth-inc-storefront/internal/domain"
)

// NopCache satisfies CartCache without storing anything. Every read
// misses, so the service always goes to the repository. Used when the
// server runs without a redis instance.
type NopCache struct{}

func (NopCache) Get(context.Context, int64) (*domain.Cart, error) {
	return nil, ErrCacheMiss
}

func (NopCache) Set(context.Context, int64, *domain.Cart) error {
	return nil
}

func (NopCache) Delete(context.Context, int64) error {
	return nil
}
