package usecases

import (
	"bytes"
	"context"
	"fmt"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"pulsefit/internal/application/plan/dto"
	"pulsefit/internal/domain/plan"
	"pulsefit/internal/shared/logger"
)

// PublicCatalogUseCase serves the member-facing plan list. Descriptions are
// authored in markdown by staff; they are rendered here and sanitized with
// bluemonday because staff input is still untrusted input once it reaches a
// browser. Results go through the TTL cache.
type PublicCatalogUseCase struct {
	planRepo  plan.PlanRepository
	cache     CatalogCache
	markdown  goldmark.Markdown
	sanitizer *bluemonday.Policy
	logger    logger.Interface
}

func NewPublicCatalogUseCase(planRepo plan.PlanRepository, cache CatalogCache, logger logger.Interface) *PublicCatalogUseCase {
	return &PublicCatalogUseCase{
		planRepo: planRepo,
		cache:    cache,
		markdown: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
		),
		sanitizer: bluemonday.UGCPolicy(),
		logger:    logger,
	}
}

func (uc *PublicCatalogUseCase) Execute(ctx context.Context) ([]*dto.PublicPlanDTO, error) {
	if uc.cache != nil {
		if cached, ok := uc.cache.Get(); ok {
			return cached, nil
		}
	}

	plans, err := uc.planRepo.List(ctx, false)
	if err != nil {
		uc.logger.Errorw("failed to list plans for catalog", "error", err)
		return nil, fmt.Errorf("failed to list plans: %w", err)
	}

	catalog := make([]*dto.PublicPlanDTO, 0, len(plans))
	for _, p := range plans {
		catalog = append(catalog, &dto.PublicPlanDTO{
			SID:             p.SID(),
			Name:            p.Name(),
			DescriptionHTML: uc.renderDescription(p),
			DurationDays:    p.DurationDays(),
			Price:           p.Price().StringFixed(2),
		})
	}

	if uc.cache != nil {
		uc.cache.Set(catalog)
	}
	return catalog, nil
}

func (uc *PublicCatalogUseCase) renderDescription(p *plan.Plan) string {
	if p.Description() == "" {
		return ""
	}
	var buf bytes.Buffer
	if err := uc.markdown.Convert([]byte(p.Description()), &buf); err != nil {
		uc.logger.Warnw("failed to render plan description", "error", err, "plan_sid", p.SID())
		return ""
	}
	return uc.sanitizer.Sanitize(buf.String())
}
