package usecases

import (
	"context"
	"fmt"

	"pulsefit/internal/domain/plan"
	apperrors "pulsefit/internal/shared/errors"
	"pulsefit/internal/shared/logger"
)

// DeletePlanUseCase deactivates rather than removes: members carry a plan
// snapshot, so a hard delete would orphan their history for no gain.
type DeletePlanUseCase struct {
	planRepo plan.PlanRepository
	cache    CatalogCache
	logger   logger.Interface
}

func NewDeletePlanUseCase(planRepo plan.PlanRepository, cache CatalogCache, logger logger.Interface) *DeletePlanUseCase {
	return &DeletePlanUseCase{planRepo: planRepo, cache: cache, logger: logger}
}

func (uc *DeletePlanUseCase) Execute(ctx context.Context, planSID string) error {
	p, err := uc.planRepo.GetBySID(ctx, planSID)
	if err != nil {
		uc.logger.Errorw("failed to get plan", "error", err, "plan_sid", planSID)
		return fmt.Errorf("failed to get plan: %w", err)
	}
	if p == nil {
		return apperrors.NewNotFoundError("plan not found", planSID)
	}

	p.Deactivate()
	if err := uc.planRepo.Update(ctx, p); err != nil {
		uc.logger.Errorw("failed to deactivate plan", "error", err, "plan_sid", planSID)
		return fmt.Errorf("failed to deactivate plan: %w", err)
	}

	if uc.cache != nil {
		uc.cache.Invalidate()
	}
	uc.logger.Infow("plan retired", "plan_sid", planSID)
	return nil
}
