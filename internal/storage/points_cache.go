package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/burn-exchange/internal/models"
	"github.com/redis/go-redis/v9"
)

// PointsCache is a read-through cache of per-wallet point balances. Entries
// are invalidated on every accrual so stale balances live at most one TTL.
type PointsCache struct {
	redis *RedisCache
	ttl   time.Duration
}

// NewPointsCache creates a new points cache
func NewPointsCache(redis *RedisCache, ttl time.Duration) *PointsCache {
	return &PointsCache{
		redis: redis,
		ttl:   ttl,
	}
}

// key format: points:<wallet>
func (c *PointsCache) key(walletAddress string) string {
	return fmt.Sprintf("points:%s", strings.ToLower(walletAddress))
}

// Get returns the cached summary for a wallet, or nil on a cache miss.
// Cache errors are returned so callers can log them; a miss is not an error.
func (c *PointsCache) Get(ctx context.Context, walletAddress string) (*models.PointsSummary, error) {
	data, err := c.redis.Get(ctx, c.key(walletAddress))
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read points cache: %w", err)
	}

	var summary models.PointsSummary
	if err := json.Unmarshal([]byte(data), &summary); err != nil {
		return nil, fmt.Errorf("failed to decode cached points: %w", err)
	}

	return &summary, nil
}

// Set stores a wallet's summary with the configured TTL
func (c *PointsCache) Set(ctx context.Context, summary *models.PointsSummary) error {
	data, err := json.Marshal(summary)
	if err != nil {
		return fmt.Errorf("failed to encode points summary: %w", err)
	}

	return c.redis.Set(ctx, c.key(summary.WalletAddress), data, c.ttl)
}

// Invalidate drops a wallet's cached summary
func (c *PointsCache) Invalidate(ctx context.Context, walletAddress string) error {
	return c.redis.Del(ctx, c.key(walletAddress))
}
