package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pulsefit/internal/application/plan/dto"
)

func TestCatalogCache_RoundTrip(t *testing.T) {
	c := NewCatalogCache(10 * time.Minute)

	_, ok := c.Get()
	assert.False(t, ok, "cold cache must miss")

	c.Set([]*dto.PublicPlanDTO{{Name: "Monthly"}})

	plans, ok := c.Get()
	require.True(t, ok)
	require.Len(t, plans, 1)
	assert.Equal(t, "Monthly", plans[0].Name)
}

func TestCatalogCache_Invalidate(t *testing.T) {
	c := NewCatalogCache(10 * time.Minute)
	c.Set([]*dto.PublicPlanDTO{{Name: "Monthly"}})

	c.Invalidate()

	_, ok := c.Get()
	assert.False(t, ok)
}

func TestCatalogCache_ExpiresAfterTTL(t *testing.T) {
	c := NewCatalogCache(time.Nanosecond)
	c.Set([]*dto.PublicPlanDTO{{Name: "Monthly"}})

	time.Sleep(time.Millisecond)

	_, ok := c.Get()
	assert.False(t, ok)
}

func TestCatalogCache_EmptyCatalogIsCacheable(t *testing.T) {
	c := NewCatalogCache(10 * time.Minute)
	c.Set([]*dto.PublicPlanDTO{})

	plans, ok := c.Get()
	require.True(t, ok, "an empty catalog is a valid cached value")
	assert.Empty(t, plans)
}
