package usecases

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pulsefit/internal/domain/member"
	"pulsefit/internal/domain/plan"
	apperrors "pulsefit/internal/shared/errors"
	"pulsefit/internal/shared/biztime"
)

func setupRenewal(t *testing.T) (*memoryMemberRepo, *memoryPlanRepo, *memoryPaymentRepo, *plan.Plan) {
	t.Helper()
	memberRepo := newMemoryMemberRepo()
	planRepo := newMemoryPlanRepo()
	paymentRepo := newMemoryPaymentRepo()

	monthly, err := plan.NewPlan("Monthly", "", 30, decimal.NewFromFloat(35.50))
	require.NoError(t, err)
	require.NoError(t, planRepo.Create(context.Background(), monthly))

	return memberRepo, planRepo, paymentRepo, monthly
}

func TestRenewMembership_CreatesLedgerEntry(t *testing.T) {
	memberRepo, planRepo, paymentRepo, monthly := setupRenewal(t)
	now := biztime.NowUTC()
	m := seedMember(t, memberRepo, "GM-100", now.AddDate(0, 0, 10), member.StatusActive)
	oldEnd := m.SubscriptionEnd()

	uc := NewRenewMembershipUseCase(memberRepo, planRepo, paymentRepo, testLogger())
	result, err := uc.Execute(context.Background(), RenewMembershipCommand{
		MemberID: "GM-100",
		PlanSID:  monthly.SID(),
	})
	require.NoError(t, err)

	assert.Equal(t, oldEnd.AddDate(0, 0, 30), result.Member.SubscriptionEnd(),
		"remaining paid days are preserved")
	assert.True(t, result.Member.TotalPaid().Equal(decimal.NewFromFloat(35.50)))

	require.NotNil(t, result.Payment)
	assert.Equal(t, "Renewal payment", result.Payment.Notes())
	assert.True(t, result.Payment.Amount().Equal(monthly.Price()))
	assert.True(t, result.Payment.Status().IsCompleted())

	entries, err := paymentRepo.ListByMemberID(context.Background(), m.ID())
	require.NoError(t, err)
	assert.Len(t, entries, 1, "exactly one ledger entry per renewal")
}

func TestRenewMembership_CustomAmountOverridesListPrice(t *testing.T) {
	memberRepo, planRepo, paymentRepo, monthly := setupRenewal(t)
	now := biztime.NowUTC()
	m := seedMember(t, memberRepo, "GM-100", now.AddDate(0, 0, 10), member.StatusActive)

	uc := NewRenewMembershipUseCase(memberRepo, planRepo, paymentRepo, testLogger())
	discounted := decimal.NewFromInt(20)
	result, err := uc.Execute(context.Background(), RenewMembershipCommand{
		MemberID: "GM-100",
		PlanSID:  monthly.SID(),
		Amount:   discounted,
	})
	require.NoError(t, err)

	assert.True(t, result.Member.TotalPaid().Equal(discounted),
		"the paid amount, not the list price, feeds the running total")
	assert.True(t, result.Payment.Amount().Equal(discounted))

	entries, err := paymentRepo.ListByMemberID(context.Background(), m.ID())
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.True(t, entries[0].Amount().Equal(discounted))
}

func TestRenewMembership_NegativeAmountRejected(t *testing.T) {
	memberRepo, planRepo, paymentRepo, monthly := setupRenewal(t)
	now := biztime.NowUTC()
	seedMember(t, memberRepo, "GM-100", now.AddDate(0, 0, 10), member.StatusActive)

	uc := NewRenewMembershipUseCase(memberRepo, planRepo, paymentRepo, testLogger())
	_, err := uc.Execute(context.Background(), RenewMembershipCommand{
		MemberID: "GM-100",
		PlanSID:  monthly.SID(),
		Amount:   decimal.NewFromInt(-5),
	})
	require.Error(t, err)

	appErr, ok := apperrors.IsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrorTypeValidation, appErr.Type)
}

func TestRenewMembership_LapsedRestartsFromToday(t *testing.T) {
	memberRepo, planRepo, paymentRepo, monthly := setupRenewal(t)
	now := biztime.NowUTC()
	seedMember(t, memberRepo, "GM-100", now.AddDate(0, 0, -10), member.StatusExpired)

	uc := NewRenewMembershipUseCase(memberRepo, planRepo, paymentRepo, testLogger())
	result, err := uc.Execute(context.Background(), RenewMembershipCommand{
		MemberID: "GM-100",
		PlanSID:  monthly.SID(),
	})
	require.NoError(t, err)

	wantEnd := biztime.NoonUTC(now).AddDate(0, 0, 30)
	assert.Equal(t, wantEnd, result.Member.SubscriptionEnd())
	assert.Equal(t, member.StatusActive, result.Member.Status())
}

func TestRenewMembership_TotalPaidAcrossRenewals(t *testing.T) {
	memberRepo, planRepo, paymentRepo, monthly := setupRenewal(t)
	now := biztime.NowUTC()
	m := seedMember(t, memberRepo, "GM-100", now.AddDate(0, 0, 10), member.StatusActive)

	uc := NewRenewMembershipUseCase(memberRepo, planRepo, paymentRepo, testLogger())
	for i := 0; i < 3; i++ {
		_, err := uc.Execute(context.Background(), RenewMembershipCommand{
			MemberID: "GM-100",
			PlanSID:  monthly.SID(),
		})
		require.NoError(t, err)
	}

	ledger, err := paymentRepo.SumCompletedByMemberID(context.Background(), m.ID())
	require.NoError(t, err)
	assert.True(t, m.TotalPaid().Equal(ledger),
		"running total matches the ledger after N renewals: %s vs %s", m.TotalPaid(), ledger)
	assert.True(t, m.TotalPaid().Equal(decimal.NewFromFloat(106.50)))
}

func TestRenewMembership_PaymentFailureSurfacesDependencyError(t *testing.T) {
	memberRepo, planRepo, paymentRepo, monthly := setupRenewal(t)
	paymentRepo.failCreate = true
	now := biztime.NowUTC()
	seedMember(t, memberRepo, "GM-100", now.AddDate(0, 0, 10), member.StatusActive)

	uc := NewRenewMembershipUseCase(memberRepo, planRepo, paymentRepo, testLogger())
	_, err := uc.Execute(context.Background(), RenewMembershipCommand{
		MemberID: "GM-100",
		PlanSID:  monthly.SID(),
	})
	require.Error(t, err)

	appErr, ok := apperrors.IsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrorTypeDependency, appErr.Type,
		"a half-applied renewal must be loudly retryable, never swallowed")
}

func TestRenewMembership_UnknownMemberAndPlan(t *testing.T) {
	memberRepo, planRepo, paymentRepo, monthly := setupRenewal(t)
	now := biztime.NowUTC()
	seedMember(t, memberRepo, "GM-100", now.AddDate(0, 0, 10), member.StatusActive)

	uc := NewRenewMembershipUseCase(memberRepo, planRepo, paymentRepo, testLogger())

	_, err := uc.Execute(context.Background(), RenewMembershipCommand{MemberID: "GM-404", PlanSID: monthly.SID()})
	require.Error(t, err)
	appErr, ok := apperrors.IsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrorTypeNotFound, appErr.Type)

	_, err = uc.Execute(context.Background(), RenewMembershipCommand{MemberID: "GM-100", PlanSID: "plan_missing"})
	require.Error(t, err)
	appErr, ok = apperrors.IsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrorTypeNotFound, appErr.Type)
}
