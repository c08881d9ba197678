package usecases

import "pulsefit/internal/application/plan/dto"

// CatalogCache holds the rendered public catalog for its TTL. It is a pure
// read-path optimization: every write path below invalidates it, and a cold
// cache just means one extra render.
type CatalogCache interface {
	Get() ([]*dto.PublicPlanDTO, bool)
	Set(plans []*dto.PublicPlanDTO)
	Invalidate()
}
