package analysiscache

import (
	"context"
	"sync"
	"time"

	"github.com/stylehive/outfit-planner/internal/domain/closet"
)

// MemoryCache keeps garment analysis results in process memory.
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	now     func() time.Time
}

type memoryEntry struct {
	analysis  closet.GarmentAnalysis
	expiresAt time.Time
}

// NewMemoryCache constructs the cache.
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{entries: make(map[string]memoryEntry), now: time.Now}
}

// GetGarment returns a cached analysis when present and not expired.
func (c *MemoryCache) GetGarment(_ context.Context, key string) (closet.GarmentAnalysis, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	entry, ok := c.entries[key]
	if !ok {
		return closet.GarmentAnalysis{}, false, nil
	}
	if !entry.expiresAt.IsZero() && c.now().After(entry.expiresAt) {
		return closet.GarmentAnalysis{}, false, nil
	}
	return entry.analysis, true, nil
}

// SaveGarment stores an analysis. A zero ttl keeps the entry indefinitely.
func (c *MemoryCache) SaveGarment(_ context.Context, key string, analysis closet.GarmentAnalysis, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	entry := memoryEntry{analysis: analysis}
	if ttl > 0 {
		entry.expiresAt = c.now().Add(ttl)
	}
	c.entries[key] = entry
	return nil
}

var _ closet.AnalysisCache = (*MemoryCache)(nil)
