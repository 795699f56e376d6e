package cache

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/carlosh1016/cloth-inc-storefront/internal/domain"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestRedis creates a miniredis server and returns a RedisCache instance
func setupTestRedis(t *testing.T) (*RedisCache, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})
	t.Cleanup(func() { client.Close() })

	return NewRedisCache(client), mr
}

func TestGet_Success(t *testing.T) {
	cache, mr := setupTestRedis(t)
	ctx := context.Background()

	cart := &domain.Cart{UserID: 123}
	cart.Add(domain.LineItem{ProductID: 1, Size: domain.SizeM, Qty: 2, Price: 10})
	cart.Add(domain.LineItem{ProductID: 2, Size: domain.SizeS, Qty: 3, Price: 5})

	cartJSON, _ := json.Marshal(cart)
	mr.Set(cacheKey(123), string(cartJSON))

	result, err := cache.Get(ctx, 123)
	require.NoError(t, err)
	assert.Equal(t, int64(123), result.UserID)
	require.Len(t, result.Items, 2)
	assert.Equal(t, 5, result.Count())
}

func TestGet_Miss(t *testing.T) {
	cache, _ := setupTestRedis(t)

	_, err := cache.Get(context.Background(), 404)
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestGet_CorruptPayload(t *testing.T) {
	cache, mr := setupTestRedis(t)
	mr.Set(cacheKey(1), "{not json")

	_, err := cache.Get(context.Background(), 1)
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrCacheMiss)
}

func TestSet_ThenGet(t *testing.T) {
	cache, mr := setupTestRedis(t)
	ctx := context.Background()

	cart := &domain.Cart{UserID: 7}
	cart.Add(domain.LineItem{ProductID: 1, Qty: 1, Price: 20})

	require.NoError(t, cache.Set(ctx, 7, cart))
	assert.True(t, mr.Exists(cacheKey(7)))

	got, err := cache.Get(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, 1, got.Count())
}

func TestDelete(t *testing.T) {
	cache, mr := setupTestRedis(t)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, 7, &domain.Cart{UserID: 7}))
	require.NoError(t, cache.Delete(ctx, 7))
	assert.False(t, mr.Exists(cacheKey(7)))

	_, err := cache.Get(ctx, 7)
	assert.ErrorIs(t, err, ErrCacheMiss)
}
