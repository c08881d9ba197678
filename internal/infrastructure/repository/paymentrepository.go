package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"pulsefit/internal/domain/payment"
	vo "pulsefit/internal/domain/payment/valueobjects"
	"pulsefit/internal/infrastructure/persistence/mappers"
	"pulsefit/internal/infrastructure/persistence/models"
	"pulsefit/internal/shared/logger"
)

// PaymentRepository implements payment.PaymentRepository on gorm. The ledger
// has no Update: rows are immutable once written.
type PaymentRepository struct {
	db     *gorm.DB
	logger logger.Interface
}

func NewPaymentRepository(db *gorm.DB, logger logger.Interface) *PaymentRepository {
	return &PaymentRepository{db: db, logger: logger}
}

func (r *PaymentRepository) Create(ctx context.Context, p *payment.Payment) error {
	model := mappers.PaymentToModel(p)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create payment: %w", err)
	}
	return p.SetID(model.ID)
}

func (r *PaymentRepository) GetBySID(ctx context.Context, sid string) (*payment.Payment, error) {
	var model models.PaymentModel
	if err := r.db.WithContext(ctx).Where("sid = ?", sid).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get payment: %w", err)
	}
	return mappers.PaymentToDomain(&model)
}

func (r *PaymentRepository) ListByMemberID(ctx context.Context, memberID uint) ([]*payment.Payment, error) {
	var rows []models.PaymentModel
	if err := r.db.WithContext(ctx).
		Where("member_id = ?", memberID).
		Order("paid_at DESC").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list member payments: %w", err)
	}
	return mappers.PaymentsToDomain(rows)
}

func (r *PaymentRepository) List(ctx context.Context, filter payment.PaymentFilter) ([]*payment.Payment, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.PaymentModel{})

	if filter.MemberID != nil {
		query = query.Where("member_id = ?", *filter.MemberID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Method != "" {
		query = query.Where("method = ?", filter.Method)
	}
	if filter.From != nil {
		query = query.Where("paid_at >= ?", *filter.From)
	}
	if filter.To != nil {
		query = query.Where("paid_at <= ?", *filter.To)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count payments: %w", err)
	}

	page, pageSize := filter.Page, filter.PageSize
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}

	var rows []models.PaymentModel
	if err := query.Order("paid_at DESC").
		Offset((page - 1) * pageSize).Limit(pageSize).
		Find(&rows).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list payments: %w", err)
	}

	payments, err := mappers.PaymentsToDomain(rows)
	if err != nil {
		return nil, 0, err
	}
	return payments, total, nil
}

func (r *PaymentRepository) BulkDelete(ctx context.Context, sids []string) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("sid IN ?", sids).
		Delete(&models.PaymentModel{})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to delete payments: %w", result.Error)
	}
	return result.RowsAffected, nil
}

func (r *PaymentRepository) SumCompletedByMemberID(ctx context.Context, memberID uint) (decimal.Decimal, error) {
	return r.sumCompleted(ctx, r.db.WithContext(ctx).
		Model(&models.PaymentModel{}).
		Where("member_id = ?", memberID))
}

func (r *PaymentRepository) TotalCompletedSince(ctx context.Context, since time.Time) (decimal.Decimal, error) {
	return r.sumCompleted(ctx, r.db.WithContext(ctx).
		Model(&models.PaymentModel{}).
		Where("paid_at >= ?", since))
}

func (r *PaymentRepository) sumCompleted(_ context.Context, query *gorm.DB) (decimal.Decimal, error) {
	var raw *string
	if err := query.
		Where("status = ?", vo.StatusCompleted.String()).
		Select("SUM(amount)").
		Scan(&raw).Error; err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum payments: %w", err)
	}
	if raw == nil {
		return decimal.Zero, nil
	}
	total, err := decimal.NewFromString(*raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to parse payment sum: %w", err)
	}
	return total, nil
}
