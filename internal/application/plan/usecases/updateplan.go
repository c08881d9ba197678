package usecases

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"pulsefit/internal/domain/plan"
	apperrors "pulsefit/internal/shared/errors"
	"pulsefit/internal/shared/logger"
)

type UpdatePlanCommand struct {
	PlanSID      string
	Name         string
	Description  string
	DurationDays int
	Price        decimal.Decimal
	Active       *bool
}

type UpdatePlanUseCase struct {
	planRepo plan.PlanRepository
	cache    CatalogCache
	logger   logger.Interface
}

func NewUpdatePlanUseCase(planRepo plan.PlanRepository, cache CatalogCache, logger logger.Interface) *UpdatePlanUseCase {
	return &UpdatePlanUseCase{planRepo: planRepo, cache: cache, logger: logger}
}

func (uc *UpdatePlanUseCase) Execute(ctx context.Context, cmd UpdatePlanCommand) (*plan.Plan, error) {
	p, err := uc.planRepo.GetBySID(ctx, cmd.PlanSID)
	if err != nil {
		uc.logger.Errorw("failed to get plan", "error", err, "plan_sid", cmd.PlanSID)
		return nil, fmt.Errorf("failed to get plan: %w", err)
	}
	if p == nil {
		return nil, apperrors.NewNotFoundError("plan not found", cmd.PlanSID)
	}

	if err := p.Update(cmd.Name, cmd.Description, cmd.DurationDays, cmd.Price); err != nil {
		return nil, apperrors.NewValidationError("invalid plan data", err.Error())
	}
	if cmd.Active != nil {
		if *cmd.Active {
			p.Activate()
		} else {
			p.Deactivate()
		}
	}

	if err := uc.planRepo.Update(ctx, p); err != nil {
		uc.logger.Errorw("failed to update plan", "error", err, "plan_sid", cmd.PlanSID)
		return nil, fmt.Errorf("failed to update plan: %w", err)
	}

	if uc.cache != nil {
		uc.cache.Invalidate()
	}
	uc.logger.Infow("plan updated", "plan_sid", p.SID())
	return p, nil
}
