package mappers

import (
	"pulsefit/internal/domain/plan"
	"pulsefit/internal/infrastructure/persistence/models"
)

func PlanToModel(p *plan.Plan) *models.PlanModel {
	return &models.PlanModel{
		ID:           p.ID(),
		SID:          p.SID(),
		Name:         p.Name(),
		Description:  p.Description(),
		DurationDays: p.DurationDays(),
		Price:        p.Price(),
		Active:       p.IsActive(),
		CreatedAt:    p.CreatedAt(),
		UpdatedAt:    p.UpdatedAt(),
	}
}

func PlanToDomain(model *models.PlanModel) (*plan.Plan, error) {
	return plan.ReconstructPlan(
		model.ID,
		model.SID,
		model.Name,
		model.Description,
		model.DurationDays,
		model.Price,
		model.Active,
		model.CreatedAt,
		model.UpdatedAt,
	)
}

func PlansToDomain(rows []models.PlanModel) ([]*plan.Plan, error) {
	out := make([]*plan.Plan, 0, len(rows))
	for i := range rows {
		p, err := PlanToDomain(&rows[i])
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}
