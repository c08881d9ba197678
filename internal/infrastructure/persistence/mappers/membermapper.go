package mappers

import (
	"encoding/json"
	"fmt"

	"pulsefit/internal/domain/member"
	"pulsefit/internal/infrastructure/persistence/models"
)

func MemberToModel(m *member.Member) (*models.MemberModel, error) {
	model := &models.MemberModel{
		ID:                    m.ID(),
		MemberID:              m.MemberID(),
		Name:                  m.Name(),
		Phone:                 m.Phone(),
		Email:                 m.Email(),
		PlanID:                m.PlanID(),
		PlanName:              m.PlanName(),
		SubscriptionStartDate: m.SubscriptionStart(),
		SubscriptionEndDate:   m.SubscriptionEnd(),
		Status:                string(m.Status()),
		TotalPaid:             m.TotalPaid(),
		LastExpiryNoticeAt:    m.LastExpiryNotice(),
		UserID:                m.UserID(),
		CreatedAt:             m.CreatedAt(),
		UpdatedAt:             m.UpdatedAt(),
	}

	if len(m.Metadata()) > 0 {
		raw, err := json.Marshal(m.Metadata())
		if err != nil {
			return nil, fmt.Errorf("failed to marshal member metadata: %w", err)
		}
		model.Metadata = raw
	}
	return model, nil
}

func MemberToDomain(model *models.MemberModel) (*member.Member, error) {
	var metadata map[string]interface{}
	if len(model.Metadata) > 0 {
		if err := json.Unmarshal(model.Metadata, &metadata); err != nil {
			return nil, fmt.Errorf("failed to unmarshal member metadata: %w", err)
		}
	}

	return member.ReconstructMember(
		model.ID,
		model.MemberID,
		model.Name,
		model.Phone,
		model.Email,
		model.PlanID,
		model.PlanName,
		model.SubscriptionStartDate,
		model.SubscriptionEndDate,
		member.Status(model.Status),
		model.TotalPaid,
		model.LastExpiryNoticeAt,
		model.UserID,
		metadata,
		model.CreatedAt,
		model.UpdatedAt,
	)
}

func MembersToDomain(rows []models.MemberModel) ([]*member.Member, error) {
	out := make([]*member.Member, 0, len(rows))
	for i := range rows {
		m, err := MemberToDomain(&rows[i])
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, nil
}
