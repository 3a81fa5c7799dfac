package storage

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/burn-exchange/internal/models"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPointsCache(t *testing.T) (*PointsCache, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	cache := NewPointsCache(NewRedisCacheFromClient(client), 30*time.Second)

	return cache, mr
}

func TestPointsCache_SetGet(t *testing.T) {
	cache, _ := newTestPointsCache(t)
	ctx := context.Background()

	summary := &models.PointsSummary{WalletAddress: "0xabc123", Points: 42}
	require.NoError(t, cache.Set(ctx, summary))

	got, err := cache.Get(ctx, "0xabc123")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "0xabc123", got.WalletAddress)
	assert.Equal(t, int64(42), got.Points)
}

func TestPointsCache_GetMiss(t *testing.T) {
	cache, _ := newTestPointsCache(t)

	got, err := cache.Get(context.Background(), "0xnothing")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestPointsCache_KeyIsCaseInsensitive(t *testing.T) {
	cache, _ := newTestPointsCache(t)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, &models.PointsSummary{WalletAddress: "0xABCdef", Points: 7}))

	got, err := cache.Get(ctx, "0xabcDEF")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, int64(7), got.Points)
}

func TestPointsCache_Invalidate(t *testing.T) {
	cache, _ := newTestPointsCache(t)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, &models.PointsSummary{WalletAddress: "0xabc", Points: 5}))
	require.NoError(t, cache.Invalidate(ctx, "0xABC"))

	got, err := cache.Get(ctx, "0xabc")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestPointsCache_Expiry(t *testing.T) {
	cache, mr := newTestPointsCache(t)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, &models.PointsSummary{WalletAddress: "0xabc", Points: 5}))

	mr.FastForward(31 * time.Second)

	got, err := cache.Get(ctx, "0xabc")
	require.NoError(t, err)
	assert.Nil(t, got)
}
