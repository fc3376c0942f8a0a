package cache

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Moulipolnati/Anika/internal/domain"
)

// setupTestRedis creates a miniredis server and returns a RedisCache instance
func setupTestRedis(t *testing.T) (*RedisCache, *miniredis.Miniredis, func()) {
	mr := miniredis.RunT(t)

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})

	cartCache := NewRedisCache(client)

	cleanup := func() {
		client.Close()
		mr.Close()
	}

	return cartCache, mr, cleanup
}

func testCart(shopperID string) *domain.Cart {
	return &domain.Cart{
		ShopperID: shopperID,
		Lines: []domain.CartLine{
			{ProductID: "p1", Quantity: 2, Name: "Silk Saree", PricePaise: 499900},
			{ProductID: "p2", Quantity: 1, Name: "Cotton Shirt", PricePaise: 199900},
		},
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
}

func TestGet_Success(t *testing.T) {
	cartCache, mr, cleanup := setupTestRedis(t)
	defer cleanup()

	ctx := context.Background()
	shopperID := "shopper-1"
	cart := testCart(shopperID)

	cartJSON, _ := json.Marshal(cart)
	mr.Set(cacheKey(shopperID), string(cartJSON))

	result, err := cartCache.Get(ctx, shopperID)

	require.NoError(t, err)
	assert.Equal(t, shopperID, result.ShopperID)
	require.Len(t, result.Lines, 2)
	assert.Equal(t, "p1", result.Lines[0].ProductID)
	assert.Equal(t, 2, result.Lines[0].Quantity)
}

func TestGet_CacheMiss(t *testing.T) {
	cartCache, _, cleanup := setupTestRedis(t)
	defer cleanup()

	_, err := cartCache.Get(context.Background(), "absent-shopper")

	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestGet_CorruptedData(t *testing.T) {
	cartCache, mr, cleanup := setupTestRedis(t)
	defer cleanup()

	mr.Set(cacheKey("shopper-1"), "not json")

	_, err := cartCache.Get(context.Background(), "shopper-1")

	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrCacheMiss)
}

func TestSet_ThenGet(t *testing.T) {
	cartCache, _, cleanup := setupTestRedis(t)
	defer cleanup()

	ctx := context.Background()
	cart := testCart("shopper-1")

	require.NoError(t, cartCache.Set(ctx, "shopper-1", cart))

	result, err := cartCache.Get(ctx, "shopper-1")
	require.NoError(t, err)
	assert.Equal(t, cart.TotalPaise(), result.TotalPaise())
}

func TestSet_AppliesTTL(t *testing.T) {
	cartCache, mr, cleanup := setupTestRedis(t)
	defer cleanup()

	require.NoError(t, cartCache.Set(context.Background(), "shopper-1", testCart("shopper-1")))

	ttl := mr.TTL(cacheKey("shopper-1"))
	assert.GreaterOrEqual(t, ttl, 15*time.Minute)
	assert.LessOrEqual(t, ttl, 20*time.Minute)
}

func TestDelete_RemovesKey(t *testing.T) {
	cartCache, _, cleanup := setupTestRedis(t)
	defer cleanup()

	ctx := context.Background()
	require.NoError(t, cartCache.Set(ctx, "shopper-1", testCart("shopper-1")))
	require.NoError(t, cartCache.Delete(ctx, "shopper-1"))

	_, err := cartCache.Get(ctx, "shopper-1")
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestDelete_AbsentKeyIsNoOp(t *testing.T) {
	cartCache, _, cleanup := setupTestRedis(t)
	defer cleanup()

	assert.NoError(t, cartCache.Delete(context.Background(), "never-seen"))
}
