package usecases

import (
	"context"
	"fmt"

	"pulsefit/internal/domain/plan"
	"pulsefit/internal/shared/logger"
)

type ListPlansCommand struct {
	IncludeInactive bool
}

type ListPlansUseCase struct {
	planRepo plan.PlanRepository
	logger   logger.Interface
}

func NewListPlansUseCase(planRepo plan.PlanRepository, logger logger.Interface) *ListPlansUseCase {
	return &ListPlansUseCase{planRepo: planRepo, logger: logger}
}

func (uc *ListPlansUseCase) Execute(ctx context.Context, cmd ListPlansCommand) ([]*plan.Plan, error) {
	plans, err := uc.planRepo.List(ctx, cmd.IncludeInactive)
	if err != nil {
		uc.logger.Errorw("failed to list plans", "error", err)
		return nil, fmt.Errorf("failed to list plans: %w", err)
	}
	return plans, nil
}
