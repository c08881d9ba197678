package cache

import (
	"sync"
	"time"

	"pulsefit/internal/application/plan/dto"
	"pulsefit/internal/shared/biztime"
)

// CatalogCache keeps the rendered public plan catalog in memory for a TTL.
// The catalog changes only through admin writes, which invalidate it, so the
// TTL is just a safety net against a missed invalidation.
type CatalogCache struct {
	mu       sync.RWMutex
	plans    []*dto.PublicPlanDTO
	cachedAt time.Time
	ttl      time.Duration
}

func NewCatalogCache(ttl time.Duration) *CatalogCache {
	return &CatalogCache{ttl: ttl}
}

func (c *CatalogCache) Get() ([]*dto.PublicPlanDTO, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.plans == nil || biztime.NowUTC().Sub(c.cachedAt) >= c.ttl {
		return nil, false
	}
	return c.plans, true
}

func (c *CatalogCache) Set(plans []*dto.PublicPlanDTO) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.plans = plans
	c.cachedAt = biztime.NowUTC()
}

func (c *CatalogCache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.plans = nil
}
