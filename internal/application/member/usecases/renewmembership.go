package usecases

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"pulsefit/internal/domain/member"
	"pulsefit/internal/domain/payment"
	"pulsefit/internal/domain/payment/valueobjects"
	"pulsefit/internal/domain/plan"
	"pulsefit/internal/shared/biztime"
	apperrors "pulsefit/internal/shared/errors"
	"pulsefit/internal/shared/logger"
)

type RenewMembershipCommand struct {
	MemberID      string
	PlanSID       string
	PaymentMethod string

	// Amount is what the member actually paid; zero means the plan's list
	// price. Front-desk discounts and partial payments come through here.
	Amount decimal.Decimal
}

type RenewMembershipResult struct {
	Member  *member.Member
	Payment *payment.Payment
}

// RenewMembershipUseCase extends a membership by one plan period. A member
// renewed before expiry keeps the remaining paid days; a lapsed member
// restarts from today. The member update and the ledger insert are a
// two-step saga: if the ledger write fails after the member write, the
// failure is surfaced as a retryable dependency error, never swallowed.
type RenewMembershipUseCase struct {
	memberRepo  member.MemberRepository
	planRepo    plan.PlanRepository
	paymentRepo payment.PaymentRepository
	logger      logger.Interface
}

func NewRenewMembershipUseCase(
	memberRepo member.MemberRepository,
	planRepo plan.PlanRepository,
	paymentRepo payment.PaymentRepository,
	logger logger.Interface,
) *RenewMembershipUseCase {
	return &RenewMembershipUseCase{
		memberRepo:  memberRepo,
		planRepo:    planRepo,
		paymentRepo: paymentRepo,
		logger:      logger,
	}
}

func (uc *RenewMembershipUseCase) Execute(ctx context.Context, cmd RenewMembershipCommand) (*RenewMembershipResult, error) {
	m, err := uc.memberRepo.GetByMemberID(ctx, cmd.MemberID)
	if err != nil {
		uc.logger.Errorw("failed to get member", "error", err, "member_id", cmd.MemberID)
		return nil, fmt.Errorf("failed to get member: %w", err)
	}
	if m == nil {
		return nil, apperrors.NewNotFoundError("member not found", cmd.MemberID)
	}

	p, err := uc.planRepo.GetBySID(ctx, cmd.PlanSID)
	if err != nil {
		uc.logger.Errorw("failed to get plan", "error", err, "plan_sid", cmd.PlanSID)
		return nil, fmt.Errorf("failed to get plan: %w", err)
	}
	if p == nil {
		return nil, apperrors.NewNotFoundError("plan not found", cmd.PlanSID)
	}
	if !p.IsActive() {
		return nil, apperrors.NewValidationError("plan is not active", cmd.PlanSID)
	}

	methodRaw := cmd.PaymentMethod
	if methodRaw == "" {
		methodRaw = valueobjects.MethodCash.String()
	}
	method, err := valueobjects.ParsePaymentMethod(methodRaw)
	if err != nil {
		return nil, apperrors.NewValidationError("invalid payment method", cmd.PaymentMethod)
	}

	amount := cmd.Amount
	if amount.IsZero() {
		amount = p.Price()
	}
	if amount.IsNegative() {
		return nil, apperrors.NewValidationError("amount cannot be negative", amount.String())
	}

	now := biztime.NowUTC()
	if err := m.Renew(p.SID(), p.Name(), p.DurationDays(), amount, now); err != nil {
		return nil, apperrors.NewValidationError("invalid renewal", err.Error())
	}

	if err := uc.memberRepo.Update(ctx, m); err != nil {
		uc.logger.Errorw("failed to update member for renewal", "error", err, "member_id", cmd.MemberID)
		return nil, fmt.Errorf("failed to update member: %w", err)
	}

	pay, err := payment.NewPayment(m.ID(), m.Name(), p.SID(), p.Name(),
		amount, method, valueobjects.StatusCompleted, now, "Renewal payment")
	if err != nil {
		return nil, fmt.Errorf("failed to build payment: %w", err)
	}

	if err := uc.paymentRepo.Create(ctx, pay); err != nil {
		// The member write already landed: the subscription is extended but
		// the ledger is missing a row. Reported loudly so the caller retries
		// the payment; the reconciliation report catches any that slip.
		uc.logger.Errorw("renewal payment insert failed after member update",
			"error", err,
			"member_id", cmd.MemberID,
			"amount", amount,
		)
		return nil, apperrors.NewDependencyError("membership renewed but payment record failed", err.Error())
	}

	uc.logger.Infow("membership renewed",
		"member_id", m.MemberID(),
		"plan", p.Name(),
		"new_end", m.SubscriptionEnd(),
		"amount", amount,
	)

	return &RenewMembershipResult{Member: m, Payment: pay}, nil
}
