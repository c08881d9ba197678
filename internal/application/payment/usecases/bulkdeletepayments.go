package usecases

import (
	"context"
	"fmt"

	"pulsefit/internal/domain/payment"
	apperrors "pulsefit/internal/shared/errors"
	"pulsefit/internal/shared/logger"
)

type BulkDeletePaymentsCommand struct {
	SIDs []string
}

type BulkDeletePaymentsResult struct {
	Deleted int64 `json:"deleted"`
}

// BulkDeletePaymentsUseCase removes ledger entries wholesale. Member running
// totals are deliberately left alone: the ledger is an audit log and the
// totals drift report is the tool for spotting the divergence afterwards.
type BulkDeletePaymentsUseCase struct {
	paymentRepo payment.PaymentRepository
	logger      logger.Interface
}

func NewBulkDeletePaymentsUseCase(paymentRepo payment.PaymentRepository, logger logger.Interface) *BulkDeletePaymentsUseCase {
	return &BulkDeletePaymentsUseCase{paymentRepo: paymentRepo, logger: logger}
}

func (uc *BulkDeletePaymentsUseCase) Execute(ctx context.Context, cmd BulkDeletePaymentsCommand) (*BulkDeletePaymentsResult, error) {
	if len(cmd.SIDs) == 0 {
		return nil, apperrors.NewValidationError("no payment IDs given")
	}

	deleted, err := uc.paymentRepo.BulkDelete(ctx, cmd.SIDs)
	if err != nil {
		uc.logger.Errorw("failed to bulk delete payments", "error", err, "count", len(cmd.SIDs))
		return nil, fmt.Errorf("failed to delete payments: %w", err)
	}

	uc.logger.Infow("payments deleted", "requested", len(cmd.SIDs), "deleted", deleted)
	return &BulkDeletePaymentsResult{Deleted: deleted}, nil
}
