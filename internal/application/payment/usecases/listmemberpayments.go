package usecases

import (
	"context"
	"fmt"

	"pulsefit/internal/domain/member"
	"pulsefit/internal/domain/payment"
	apperrors "pulsefit/internal/shared/errors"
	"pulsefit/internal/shared/logger"
)

type ListMemberPaymentsCommand struct {
	MemberID string
}

// ListMemberPaymentsUseCase returns one member's ledger, newest first per
// the repository ordering.
type ListMemberPaymentsUseCase struct {
	memberRepo  member.MemberRepository
	paymentRepo payment.PaymentRepository
	logger      logger.Interface
}

func NewListMemberPaymentsUseCase(
	memberRepo member.MemberRepository,
	paymentRepo payment.PaymentRepository,
	logger logger.Interface,
) *ListMemberPaymentsUseCase {
	return &ListMemberPaymentsUseCase{memberRepo: memberRepo, paymentRepo: paymentRepo, logger: logger}
}

func (uc *ListMemberPaymentsUseCase) Execute(ctx context.Context, cmd ListMemberPaymentsCommand) ([]*payment.Payment, error) {
	m, err := uc.memberRepo.GetByMemberID(ctx, cmd.MemberID)
	if err != nil {
		uc.logger.Errorw("failed to get member", "error", err, "member_id", cmd.MemberID)
		return nil, fmt.Errorf("failed to get member: %w", err)
	}
	if m == nil {
		return nil, apperrors.NewNotFoundError("member not found", cmd.MemberID)
	}

	payments, err := uc.paymentRepo.ListByMemberID(ctx, m.ID())
	if err != nil {
		uc.logger.Errorw("failed to list member payments", "error", err, "member_id", cmd.MemberID)
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}
	return payments, nil
}
