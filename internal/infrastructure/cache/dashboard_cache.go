package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	appreport "github.com/landlord/backend/internal/application/report"
	"github.com/landlord/backend/internal/domain/report"
	"github.com/redis/go-redis/v9"
)

const defaultSummaryKeyPrefix = "dashboard:summary:"

// RedisSummaryCache implements SummaryCache using Redis. It is suitable for
// deployments where several instances serve the dashboard and need to share
// cached summaries. Entries carry a TTL, so even a missed invalidation only
// serves stale numbers briefly.
type RedisSummaryCache struct {
	client    *redis.Client
	keyPrefix string
	ttl       time.Duration
}

// RedisConfig holds Redis connection configuration
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// NewRedisSummaryCache creates a new Redis-backed summary cache
func NewRedisSummaryCache(cfg RedisConfig, ttl time.Duration) (*RedisSummaryCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return NewRedisSummaryCacheWithClient(client, defaultSummaryKeyPrefix, ttl), nil
}

// NewRedisSummaryCacheWithClient creates a cache with an existing Redis client
// This is useful for testing or when sharing a client across components
func NewRedisSummaryCacheWithClient(client *redis.Client, keyPrefix string, ttl time.Duration) *RedisSummaryCache {
	if keyPrefix == "" {
		keyPrefix = defaultSummaryKeyPrefix
	}
	return &RedisSummaryCache{
		client:    client,
		keyPrefix: keyPrefix,
		ttl:       ttl,
	}
}

// Get returns the cached summary for a period, or nil on a miss
func (c *RedisSummaryCache) Get(ctx context.Context, period string) (*report.DashboardSummary, error) {
	data, err := c.client.Get(ctx, c.keyPrefix+period).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read cached summary: %w", err)
	}

	var summary report.DashboardSummary
	if err := json.Unmarshal(data, &summary); err != nil {
		return nil, fmt.Errorf("failed to decode cached summary: %w", err)
	}
	return &summary, nil
}

// Set stores the summary for a period with the configured TTL
func (c *RedisSummaryCache) Set(ctx context.Context, period string, summary report.DashboardSummary) error {
	data, err := json.Marshal(summary)
	if err != nil {
		return fmt.Errorf("failed to encode summary: %w", err)
	}
	if err := c.client.Set(ctx, c.keyPrefix+period, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache summary: %w", err)
	}
	return nil
}

// InvalidateAll removes every cached summary. Record mutations for any
// period can shift historical dashboards, so invalidation is not scoped to
// a single period.
func (c *RedisSummaryCache) InvalidateAll(ctx context.Context) error {
	iter := c.client.Scan(ctx, 0, c.keyPrefix+"*", 0).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("failed to scan cached summaries: %w", err)
	}
	if len(keys) == 0 {
		return nil
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("failed to drop cached summaries: %w", err)
	}
	return nil
}

// Close closes the Redis client
func (c *RedisSummaryCache) Close() error {
	return c.client.Close()
}

var _ appreport.SummaryCache = (*RedisSummaryCache)(nil)
