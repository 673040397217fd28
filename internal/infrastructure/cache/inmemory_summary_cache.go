package cache

import (
	"context"
	"sync"
	"time"

	appreport "github.com/landlord/backend/internal/application/report"
	"github.com/landlord/backend/internal/domain/report"
)

// summaryEntry represents a cached summary with expiration
type summaryEntry struct {
	summary   report.DashboardSummary
	expiresAt time.Time
}

// InMemorySummaryCache implements SummaryCache using an in-memory map
// This is suitable for single-instance deployments and testing
type InMemorySummaryCache struct {
	mu      sync.RWMutex
	entries map[string]summaryEntry
	ttl     time.Duration
}

// NewInMemorySummaryCache creates a new in-memory summary cache
func NewInMemorySummaryCache(ttl time.Duration) *InMemorySummaryCache {
	return &InMemorySummaryCache{
		entries: make(map[string]summaryEntry),
		ttl:     ttl,
	}
}

// Get returns the cached summary for a period, or nil on a miss
func (c *InMemorySummaryCache) Get(ctx context.Context, period string) (*report.DashboardSummary, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, exists := c.entries[period]
	if !exists || time.Now().After(e.expiresAt) {
		return nil, nil
	}

	summary := e.summary
	return &summary, nil
}

// Set stores the summary for a period with the configured TTL
func (c *InMemorySummaryCache) Set(ctx context.Context, period string, summary report.DashboardSummary) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[period] = summaryEntry{
		summary:   summary,
		expiresAt: time.Now().Add(c.ttl),
	}
	return nil
}

// InvalidateAll drops every cached summary
func (c *InMemorySummaryCache) InvalidateAll(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[string]summaryEntry)
	return nil
}

var _ appreport.SummaryCache = (*InMemorySummaryCache)(nil)
