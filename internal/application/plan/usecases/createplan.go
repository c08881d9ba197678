package usecases

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"pulsefit/internal/domain/plan"
	apperrors "pulsefit/internal/shared/errors"
	"pulsefit/internal/shared/logger"
)

type CreatePlanCommand struct {
	Name         string
	Description  string
	DurationDays int
	Price        decimal.Decimal
}

type CreatePlanUseCase struct {
	planRepo plan.PlanRepository
	cache    CatalogCache
	logger   logger.Interface
}

func NewCreatePlanUseCase(planRepo plan.PlanRepository, cache CatalogCache, logger logger.Interface) *CreatePlanUseCase {
	return &CreatePlanUseCase{planRepo: planRepo, cache: cache, logger: logger}
}

func (uc *CreatePlanUseCase) Execute(ctx context.Context, cmd CreatePlanCommand) (*plan.Plan, error) {
	existing, err := uc.planRepo.GetByName(ctx, cmd.Name)
	if err != nil {
		uc.logger.Errorw("failed to check plan name", "error", err, "name", cmd.Name)
		return nil, fmt.Errorf("failed to check plan name: %w", err)
	}
	if existing != nil {
		return nil, apperrors.NewConflictError("plan name already exists", cmd.Name)
	}

	p, err := plan.NewPlan(cmd.Name, cmd.Description, cmd.DurationDays, cmd.Price)
	if err != nil {
		return nil, apperrors.NewValidationError("invalid plan data", err.Error())
	}

	if err := uc.planRepo.Create(ctx, p); err != nil {
		uc.logger.Errorw("failed to create plan", "error", err, "name", cmd.Name)
		return nil, fmt.Errorf("failed to create plan: %w", err)
	}

	if uc.cache != nil {
		uc.cache.Invalidate()
	}
	uc.logger.Infow("plan created", "plan_sid", p.SID(), "name", p.Name())
	return p, nil
}
