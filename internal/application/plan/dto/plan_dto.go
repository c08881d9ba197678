package dto

import (
	"time"

	"pulsefit/internal/domain/plan"
)

// PlanDTO is the admin-facing plan shape with the raw markdown description.
type PlanDTO struct {
	SID          string    `json:"sid"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	DurationDays int       `json:"duration_days"`
	Price        string    `json:"price"`
	Active       bool      `json:"active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// PublicPlanDTO is the catalog shape: the description arrives already
// rendered to sanitized HTML.
type PublicPlanDTO struct {
	SID             string `json:"sid"`
	Name            string `json:"name"`
	DescriptionHTML string `json:"description_html"`
	DurationDays    int    `json:"duration_days"`
	Price           string `json:"price"`
}

func PlanToDTO(p *plan.Plan) *PlanDTO {
	if p == nil {
		return nil
	}
	return &PlanDTO{
		SID:          p.SID(),
		Name:         p.Name(),
		Description:  p.Description(),
		DurationDays: p.DurationDays(),
		Price:        p.Price().StringFixed(2),
		Active:       p.IsActive(),
		CreatedAt:    p.CreatedAt(),
		UpdatedAt:    p.UpdatedAt(),
	}
}

func PlansToDTO(plans []*plan.Plan) []*PlanDTO {
	dtos := make([]*PlanDTO, 0, len(plans))
	for _, p := range plans {
		dtos = append(dtos, PlanToDTO(p))
	}
	return dtos
}
