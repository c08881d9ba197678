package usecases

import (
	"context"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pulsefit/internal/application/plan/dto"
	"pulsefit/internal/domain/plan"
	"pulsefit/internal/shared/logger"
)

type memoryPlanRepo struct {
	mu     sync.Mutex
	nextID uint
	plans  []*plan.Plan
	lists  int
}

func newMemoryPlanRepo() *memoryPlanRepo { return &memoryPlanRepo{nextID: 1} }

func (r *memoryPlanRepo) Create(_ context.Context, p *plan.Plan) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	_ = p.SetID(r.nextID)
	r.nextID++
	r.plans = append(r.plans, p)
	return nil
}

func (r *memoryPlanRepo) Update(_ context.Context, _ *plan.Plan) error { return nil }
func (r *memoryPlanRepo) Delete(_ context.Context, _ uint) error       { return nil }

func (r *memoryPlanRepo) GetBySID(_ context.Context, sid string) (*plan.Plan, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.plans {
		if p.SID() == sid {
			return p, nil
		}
	}
	return nil, nil
}

func (r *memoryPlanRepo) GetByName(_ context.Context, name string) (*plan.Plan, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.plans {
		if p.Name() == name {
			return p, nil
		}
	}
	return nil, nil
}

func (r *memoryPlanRepo) List(_ context.Context, includeInactive bool) ([]*plan.Plan, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lists++
	var out []*plan.Plan
	for _, p := range r.plans {
		if includeInactive || p.IsActive() {
			out = append(out, p)
		}
	}
	return out, nil
}

type stubCache struct {
	mu      sync.Mutex
	catalog []*dto.PublicPlanDTO
	ok      bool
}

func (c *stubCache) Get() ([]*dto.PublicPlanDTO, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.catalog, c.ok
}

func (c *stubCache) Set(catalog []*dto.PublicPlanDTO) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.catalog, c.ok = catalog, true
}

func (c *stubCache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.catalog, c.ok = nil, false
}

func seedPlan(t *testing.T, repo *memoryPlanRepo, name, description string) *plan.Plan {
	t.Helper()
	p, err := plan.NewPlan(name, description, 30, decimal.NewFromFloat(35.50))
	require.NoError(t, err)
	require.NoError(t, repo.Create(context.Background(), p))
	return p
}

func TestPublicCatalog_RendersSanitizedMarkdown(t *testing.T) {
	repo := newMemoryPlanRepo()
	seedPlan(t, repo, "Monthly", "**Unlimited** access\n\n<script>alert(1)</script>")

	uc := NewPublicCatalogUseCase(repo, nil, logger.NewLogger())
	catalog, err := uc.Execute(context.Background())
	require.NoError(t, err)
	require.Len(t, catalog, 1)

	assert.Contains(t, catalog[0].DescriptionHTML, "<strong>Unlimited</strong>")
	assert.NotContains(t, catalog[0].DescriptionHTML, "<script>")
	assert.Equal(t, "35.50", catalog[0].Price)
}

func TestPublicCatalog_ExcludesRetiredPlans(t *testing.T) {
	repo := newMemoryPlanRepo()
	seedPlan(t, repo, "Monthly", "")
	retired := seedPlan(t, repo, "Legacy", "")
	retired.Deactivate()

	uc := NewPublicCatalogUseCase(repo, nil, logger.NewLogger())
	catalog, err := uc.Execute(context.Background())
	require.NoError(t, err)
	require.Len(t, catalog, 1)
	assert.Equal(t, "Monthly", catalog[0].Name)
}

func TestPublicCatalog_ServesFromCache(t *testing.T) {
	repo := newMemoryPlanRepo()
	seedPlan(t, repo, "Monthly", "")
	cache := &stubCache{}

	uc := NewPublicCatalogUseCase(repo, cache, logger.NewLogger())

	_, err := uc.Execute(context.Background())
	require.NoError(t, err)
	_, err = uc.Execute(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, repo.lists, "second call must hit the cache")
}

func TestCreatePlan_DuplicateNameAndCacheInvalidation(t *testing.T) {
	repo := newMemoryPlanRepo()
	cache := &stubCache{}
	cache.Set([]*dto.PublicPlanDTO{})

	uc := NewCreatePlanUseCase(repo, cache, logger.NewLogger())

	_, err := uc.Execute(context.Background(), CreatePlanCommand{
		Name: "Monthly", DurationDays: 30, Price: decimal.NewFromInt(35),
	})
	require.NoError(t, err)
	_, ok := cache.Get()
	assert.False(t, ok, "plan writes must drop the cached catalog")

	_, err = uc.Execute(context.Background(), CreatePlanCommand{
		Name: "Monthly", DurationDays: 30, Price: decimal.NewFromInt(35),
	})
	require.Error(t, err)
}
