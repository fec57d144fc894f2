// Package cache holds proposal comparison results for a short TTL so
// repeated compare requests for the same RFP do not re-run the aggregation
// call.
package cache

import (
	"sync"
	"time"

	"rfphub/internal/models"
)

type entry struct {
	comparison models.ProposalComparison
	expiresAt  time.Time
}

// ComparisonCache is an in-memory TTL cache keyed by RFP identifier
type ComparisonCache struct {
	entries map[string]entry
	mutex   sync.RWMutex
}

// New creates an empty comparison cache
func New() *ComparisonCache {
	return &ComparisonCache{
		entries: make(map[string]entry),
	}
}

// Get returns the cached comparison for an RFP, if present and fresh
func (c *ComparisonCache) Get(rfpID string) (models.ProposalComparison, bool) {
	c.mutex.RLock()
	e, exists := c.entries[rfpID]
	c.mutex.RUnlock()

	if !exists {
		return models.ProposalComparison{}, false
	}

	if time.Now().After(e.expiresAt) {
		c.mutex.Lock()
		delete(c.entries, rfpID)
		c.mutex.Unlock()
		return models.ProposalComparison{}, false
	}

	return e.comparison, true
}

// Set stores a comparison result with the given TTL
func (c *ComparisonCache) Set(rfpID string, comparison models.ProposalComparison, ttl time.Duration) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.entries[rfpID] = entry{
		comparison: comparison,
		expiresAt:  time.Now().Add(ttl),
	}
}

// Invalidate drops the cached comparison for an RFP, if any
func (c *ComparisonCache) Invalidate(rfpID string) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	delete(c.entries, rfpID)
}
