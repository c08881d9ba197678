package usecases

import (
	"context"
	"fmt"

	"pulsefit/internal/domain/member"
	"pulsefit/internal/domain/payment"
	"pulsefit/internal/shared/logger"
)

type ReconcileTotalsCommand struct {
	// PageSize bounds each member page; zero uses the default.
	PageSize int
}

type TotalDrift struct {
	MemberID    string `json:"member_id"`
	Name        string `json:"name"`
	StoredTotal string `json:"stored_total"`
	LedgerTotal string `json:"ledger_total"`
	Difference  string `json:"difference"`
}

type ReconcileTotalsReport struct {
	Checked int          `json:"checked"`
	Drifted []TotalDrift `json:"drifted,omitempty"`
}

// ReconcileTotalsUseCase compares each member's stored running total against
// the sum of their completed ledger entries. The ledger is append-only and
// bulk deletion never rewrites member totals, so drift is expected after
// admin cleanups; this report is how operators see it.
type ReconcileTotalsUseCase struct {
	memberRepo  member.MemberRepository
	paymentRepo payment.PaymentRepository
	logger      logger.Interface
}

func NewReconcileTotalsUseCase(
	memberRepo member.MemberRepository,
	paymentRepo payment.PaymentRepository,
	logger logger.Interface,
) *ReconcileTotalsUseCase {
	return &ReconcileTotalsUseCase{memberRepo: memberRepo, paymentRepo: paymentRepo, logger: logger}
}

func (uc *ReconcileTotalsUseCase) Execute(ctx context.Context, cmd ReconcileTotalsCommand) (*ReconcileTotalsReport, error) {
	pageSize := cmd.PageSize
	if pageSize <= 0 {
		pageSize = defaultSweepPageSize
	}

	report := &ReconcileTotalsReport{}
	page := 1

	for {
		members, _, err := uc.memberRepo.List(ctx, member.MemberFilter{Page: page, PageSize: pageSize})
		if err != nil {
			uc.logger.Errorw("failed to page members for reconciliation", "error", err, "page", page)
			return nil, fmt.Errorf("failed to list members: %w", err)
		}
		if len(members) == 0 {
			break
		}

		for _, m := range members {
			report.Checked++
			ledgerTotal, err := uc.paymentRepo.SumCompletedByMemberID(ctx, m.ID())
			if err != nil {
				uc.logger.Errorw("failed to sum ledger", "error", err, "member_id", m.MemberID())
				return nil, fmt.Errorf("failed to sum payments for %s: %w", m.MemberID(), err)
			}
			if m.TotalPaid().Equal(ledgerTotal) {
				continue
			}
			report.Drifted = append(report.Drifted, TotalDrift{
				MemberID:    m.MemberID(),
				Name:        m.Name(),
				StoredTotal: m.TotalPaid().StringFixed(2),
				LedgerTotal: ledgerTotal.StringFixed(2),
				Difference:  m.TotalPaid().Sub(ledgerTotal).StringFixed(2),
			})
		}

		if len(members) < pageSize {
			break
		}
		page++
	}

	uc.logger.Infow("total-paid reconciliation finished",
		"checked", report.Checked,
		"drifted", len(report.Drifted),
	)
	return report, nil
}
