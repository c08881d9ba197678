package usecases

import (
	"context"
	"fmt"

	"pulsefit/internal/domain/member"
	"pulsefit/internal/domain/payment"
	"pulsefit/internal/shared/biztime"
	"pulsefit/internal/shared/logger"
)

type DashboardStatsResult struct {
	ActiveMembers  int64  `json:"active_members"`
	ExpiredMembers int64  `json:"expired_members"`
	ExpiringSoon   int64  `json:"expiring_soon"`
	MonthRevenue   string `json:"month_revenue"`
}

// DashboardStatsUseCase aggregates the admin landing-page counters. The
// active/expired counts come from the persisted label (cheap and fresh
// enough for a dashboard); expiring-soon is counted from end dates.
type DashboardStatsUseCase struct {
	memberRepo  member.MemberRepository
	paymentRepo payment.PaymentRepository
	evalCfg     member.EvaluationConfig
	logger      logger.Interface
}

func NewDashboardStatsUseCase(
	memberRepo member.MemberRepository,
	paymentRepo payment.PaymentRepository,
	evalCfg member.EvaluationConfig,
	logger logger.Interface,
) *DashboardStatsUseCase {
	return &DashboardStatsUseCase{
		memberRepo:  memberRepo,
		paymentRepo: paymentRepo,
		evalCfg:     evalCfg,
		logger:      logger,
	}
}

func (uc *DashboardStatsUseCase) Execute(ctx context.Context) (*DashboardStatsResult, error) {
	now := biztime.NowUTC()

	active, err := uc.memberRepo.CountByPersistedStatus(ctx, member.StatusActive)
	if err != nil {
		return nil, fmt.Errorf("failed to count active members: %w", err)
	}
	expired, err := uc.memberRepo.CountByPersistedStatus(ctx, member.StatusExpired)
	if err != nil {
		return nil, fmt.Errorf("failed to count expired members: %w", err)
	}

	expiringSoon, err := uc.memberRepo.CountEndingBetween(ctx, now, now.AddDate(0, 0, uc.evalCfg.ExpiringSoonDays))
	if err != nil {
		return nil, fmt.Errorf("failed to count expiring members: %w", err)
	}

	monthStart := biztime.StartOfMonthUTC(now)
	revenue, err := uc.paymentRepo.TotalCompletedSince(ctx, monthStart)
	if err != nil {
		return nil, fmt.Errorf("failed to sum month revenue: %w", err)
	}

	return &DashboardStatsResult{
		ActiveMembers:  active,
		ExpiredMembers: expired,
		ExpiringSoon:   expiringSoon,
		MonthRevenue:   revenue.StringFixed(2),
	}, nil
}
