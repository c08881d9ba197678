package repository

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pulsefit/internal/domain/payment"
	vo "pulsefit/internal/domain/payment/valueobjects"
	"pulsefit/internal/shared/logger"
)

func newTestPayment(t *testing.T, memberID uint, amount float64, status vo.PaymentStatus, paidAt time.Time) *payment.Payment {
	t.Helper()
	p, err := payment.NewPayment(memberID, "Sofia", "plan_m", "Monthly",
		decimal.NewFromFloat(amount), vo.MethodCard, status, paidAt, "test")
	require.NoError(t, err)
	return p
}

func TestPaymentRepository_CreateAndSum(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPaymentRepository(db, logger.NewLogger())
	ctx := context.Background()
	now := time.Now().UTC()

	require.NoError(t, repo.Create(ctx, newTestPayment(t, 1, 35.50, vo.StatusCompleted, now)))
	require.NoError(t, repo.Create(ctx, newTestPayment(t, 1, 20.00, vo.StatusCompleted, now)))
	require.NoError(t, repo.Create(ctx, newTestPayment(t, 1, 99.99, vo.StatusPending, now)))
	require.NoError(t, repo.Create(ctx, newTestPayment(t, 2, 10.00, vo.StatusCompleted, now)))

	total, err := repo.SumCompletedByMemberID(ctx, 1)
	require.NoError(t, err)
	assert.True(t, total.Equal(decimal.NewFromFloat(55.50)),
		"pending entries must not count, got %s", total)

	empty, err := repo.SumCompletedByMemberID(ctx, 42)
	require.NoError(t, err)
	assert.True(t, empty.IsZero())
}

func TestPaymentRepository_TotalCompletedSince(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPaymentRepository(db, logger.NewLogger())
	ctx := context.Background()
	now := time.Now().UTC()

	require.NoError(t, repo.Create(ctx, newTestPayment(t, 1, 100, vo.StatusCompleted, now.AddDate(0, -2, 0))))
	require.NoError(t, repo.Create(ctx, newTestPayment(t, 1, 35, vo.StatusCompleted, now)))

	total, err := repo.TotalCompletedSince(ctx, now.AddDate(0, 0, -7))
	require.NoError(t, err)
	assert.True(t, total.Equal(decimal.NewFromInt(35)))
}

func TestPaymentRepository_ListFilterAndBulkDelete(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPaymentRepository(db, logger.NewLogger())
	ctx := context.Background()
	now := time.Now().UTC()

	p1 := newTestPayment(t, 1, 35, vo.StatusCompleted, now)
	p2 := newTestPayment(t, 1, 20, vo.StatusFailed, now)
	p3 := newTestPayment(t, 2, 10, vo.StatusCompleted, now)
	for _, p := range []*payment.Payment{p1, p2, p3} {
		require.NoError(t, repo.Create(ctx, p))
	}

	memberID := uint(1)
	list, total, err := repo.List(ctx, payment.PaymentFilter{MemberID: &memberID})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, list, 2)

	completed, total, err := repo.List(ctx, payment.PaymentFilter{Status: vo.StatusCompleted.String()})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	_ = completed

	deleted, err := repo.BulkDelete(ctx, []string{p1.SID(), p3.SID(), "pay_missing"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), deleted)

	remaining, err := repo.ListByMemberID(ctx, 1)
	require.NoError(t, err)
	require.Len(t, remaining, 1)
	assert.Equal(t, p2.SID(), remaining[0].SID())
}
