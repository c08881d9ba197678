package usecases

import (
	"context"
	"fmt"
	"time"

	"pulsefit/internal/domain/payment"
	"pulsefit/internal/shared/logger"
)

type ListPaymentsCommand struct {
	MemberID *uint
	Status   string
	Method   string
	From     *time.Time
	To       *time.Time
	Page     int
	PageSize int
}

type ListPaymentsResult struct {
	Payments []*payment.Payment
	Total    int64
}

type ListPaymentsUseCase struct {
	paymentRepo payment.PaymentRepository
	logger      logger.Interface
}

func NewListPaymentsUseCase(paymentRepo payment.PaymentRepository, logger logger.Interface) *ListPaymentsUseCase {
	return &ListPaymentsUseCase{paymentRepo: paymentRepo, logger: logger}
}

func (uc *ListPaymentsUseCase) Execute(ctx context.Context, cmd ListPaymentsCommand) (*ListPaymentsResult, error) {
	filter := payment.PaymentFilter{
		MemberID: cmd.MemberID,
		Status:   cmd.Status,
		Method:   cmd.Method,
		From:     cmd.From,
		To:       cmd.To,
		Page:     cmd.Page,
		PageSize: cmd.PageSize,
	}

	payments, total, err := uc.paymentRepo.List(ctx, filter)
	if err != nil {
		uc.logger.Errorw("failed to list payments", "error", err)
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}
	return &ListPaymentsResult{Payments: payments, Total: total}, nil
}
