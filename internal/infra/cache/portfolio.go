package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/mukundan316-cell/UseCaseFramework-sub001/internal/domain/capability"

	"github.com/redis/go-redis/v9"
)

const summaryKey = "cascade:portfolio:summary"

// PortfolioCache keeps the last computed portfolio summary in redis.
// The summary is recomputed from every tracked transition, so a short
// TTL saves the full-table walk on hot read paths.
type PortfolioCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewPortfolioCache(addr, password string, db int, ttl time.Duration) (*PortfolioCache, error) {
	if addr == "" {
		return nil, errors.New("redis addr is required")
	}
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	return &PortfolioCache{client: client, ttl: ttl}, nil
}

func (c *PortfolioCache) GetSummary(ctx context.Context) (*capability.PortfolioSummary, error) {
	raw, err := c.client.Get(ctx, summaryKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}
	var summary capability.PortfolioSummary
	if err := json.Unmarshal(raw, &summary); err != nil {
		return nil, err
	}
	return &summary, nil
}

func (c *PortfolioCache) SetSummary(ctx context.Context, summary capability.PortfolioSummary) error {
	payload, err := json.Marshal(summary)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, summaryKey, payload, c.ttl).Err()
}

func (c *PortfolioCache) Invalidate(ctx context.Context) error {
	return c.client.Del(ctx, summaryKey).Err()
}

func (c *PortfolioCache) Close() error {
	return c.client.Close()
}
