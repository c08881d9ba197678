package dto

import (
	"time"

	"pulsefit/internal/domain/payment"
)

type PaymentDTO struct {
	SID        string    `json:"sid"`
	MemberID   uint      `json:"member_id"`
	MemberName string    `json:"member_name"`
	PlanID     string    `json:"plan_id,omitempty"`
	PlanName   string    `json:"plan_name,omitempty"`
	Amount     string    `json:"amount"`
	Method     string    `json:"method"`
	Status     string    `json:"status"`
	PaidAt     time.Time `json:"paid_at"`
	Notes      string    `json:"notes,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

func PaymentToDTO(p *payment.Payment) *PaymentDTO {
	if p == nil {
		return nil
	}
	return &PaymentDTO{
		SID:        p.SID(),
		MemberID:   p.MemberID(),
		MemberName: p.MemberName(),
		PlanID:     p.PlanID(),
		PlanName:   p.PlanName(),
		Amount:     p.Amount().StringFixed(2),
		Method:     p.Method().String(),
		Status:     p.Status().String(),
		PaidAt:     p.PaidAt(),
		Notes:      p.Notes(),
		CreatedAt:  p.CreatedAt(),
	}
}

func PaymentsToDTO(payments []*payment.Payment) []*PaymentDTO {
	dtos := make([]*PaymentDTO, 0, len(payments))
	for _, p := range payments {
		dtos = append(dtos, PaymentToDTO(p))
	}
	return dtos
}
