package mappers

import (
	"fmt"

	"pulsefit/internal/domain/payment"
	vo "pulsefit/internal/domain/payment/valueobjects"
	"pulsefit/internal/infrastructure/persistence/models"
)

func PaymentToModel(p *payment.Payment) *models.PaymentModel {
	return &models.PaymentModel{
		ID:         p.ID(),
		SID:        p.SID(),
		MemberID:   p.MemberID(),
		MemberName: p.MemberName(),
		PlanID:     p.PlanID(),
		PlanName:   p.PlanName(),
		Amount:     p.Amount(),
		Method:     p.Method().String(),
		Status:     p.Status().String(),
		PaidAt:     p.PaidAt(),
		Notes:      p.Notes(),
		CreatedAt:  p.CreatedAt(),
	}
}

func PaymentToDomain(model *models.PaymentModel) (*payment.Payment, error) {
	method, err := vo.ParsePaymentMethod(model.Method)
	if err != nil {
		return nil, fmt.Errorf("invalid payment method in row %d: %w", model.ID, err)
	}
	status, err := vo.ParsePaymentStatus(model.Status)
	if err != nil {
		return nil, fmt.Errorf("invalid payment status in row %d: %w", model.ID, err)
	}

	return payment.ReconstructPayment(
		model.ID,
		model.SID,
		model.MemberID,
		model.MemberName,
		model.PlanID,
		model.PlanName,
		model.Amount,
		method,
		status,
		model.PaidAt,
		model.Notes,
		model.CreatedAt,
	)
}

func PaymentsToDomain(rows []models.PaymentModel) ([]*payment.Payment, error) {
	out := make([]*payment.Payment, 0, len(rows))
	for i := range rows {
		p, err := PaymentToDomain(&rows[i])
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}
