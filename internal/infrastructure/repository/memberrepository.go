package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"pulsefit/internal/domain/member"
	"pulsefit/internal/infrastructure/persistence/mappers"
	"pulsefit/internal/infrastructure/persistence/models"
	"pulsefit/internal/shared/logger"
)

// MemberRepository implements member.MemberRepository on gorm.
type MemberRepository struct {
	db     *gorm.DB
	logger logger.Interface
}

func NewMemberRepository(db *gorm.DB, logger logger.Interface) *MemberRepository {
	return &MemberRepository{db: db, logger: logger}
}

func (r *MemberRepository) Create(ctx context.Context, m *member.Member) error {
	model, err := mappers.MemberToModel(m)
	if err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create member: %w", err)
	}
	return m.SetID(model.ID)
}

func (r *MemberRepository) Update(ctx context.Context, m *member.Member) error {
	model, err := mappers.MemberToModel(m)
	if err != nil {
		return err
	}
	result := r.db.WithContext(ctx).Model(&models.MemberModel{}).
		Where("id = ?", m.ID()).
		Select("name", "phone", "email", "plan_id", "plan_name",
			"subscription_start_date", "subscription_end_date", "status",
			"total_paid", "last_expiry_notice_at", "user_id", "metadata", "updated_at").
		Updates(model)
	if result.Error != nil {
		return fmt.Errorf("failed to update member: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return member.ErrMemberNotFound
	}
	return nil
}

func (r *MemberRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.MemberModel{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete member: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return member.ErrMemberNotFound
	}
	return nil
}

func (r *MemberRepository) GetByID(ctx context.Context, id uint) (*member.Member, error) {
	var model models.MemberModel
	if err := r.db.WithContext(ctx).First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get member: %w", err)
	}
	return mappers.MemberToDomain(&model)
}

func (r *MemberRepository) GetByMemberID(ctx context.Context, memberID string) (*member.Member, error) {
	var model models.MemberModel
	if err := r.db.WithContext(ctx).Where("member_id = ?", memberID).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get member: %w", err)
	}
	return mappers.MemberToDomain(&model)
}

func (r *MemberRepository) GetByEmail(ctx context.Context, email string) (*member.Member, error) {
	var model models.MemberModel
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get member: %w", err)
	}
	return mappers.MemberToDomain(&model)
}

func (r *MemberRepository) GetByUserID(ctx context.Context, userID uint) (*member.Member, error) {
	var model models.MemberModel
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get member: %w", err)
	}
	return mappers.MemberToDomain(&model)
}

func (r *MemberRepository) ExistsByMemberID(ctx context.Context, memberID string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.MemberModel{}).
		Where("member_id = ?", memberID).Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check member ID: %w", err)
	}
	return count > 0, nil
}

func (r *MemberRepository) List(ctx context.Context, filter member.MemberFilter) ([]*member.Member, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.MemberModel{})

	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		query = query.Where("member_id LIKE ? OR name LIKE ? OR phone LIKE ?", like, like, like)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count members: %w", err)
	}

	page, pageSize := filter.Page, filter.PageSize
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}

	var rows []models.MemberModel
	if err := query.Order("created_at DESC").
		Offset((page - 1) * pageSize).Limit(pageSize).
		Find(&rows).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list members: %w", err)
	}

	members, err := mappers.MembersToDomain(rows)
	if err != nil {
		return nil, 0, err
	}
	return members, total, nil
}

func (r *MemberRepository) ListByPersistedStatus(ctx context.Context, status member.Status, limit, offset int) ([]*member.Member, error) {
	var rows []models.MemberModel
	if err := r.db.WithContext(ctx).
		Where("status = ?", string(status)).
		Order("id ASC").
		Limit(limit).Offset(offset).
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list members by status: %w", err)
	}
	return mappers.MembersToDomain(rows)
}

func (r *MemberRepository) CountByPersistedStatus(ctx context.Context, status member.Status) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.MemberModel{}).
		Where("status = ?", string(status)).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count members: %w", err)
	}
	return count, nil
}

func (r *MemberRepository) CountEndingBetween(ctx context.Context, from, to time.Time) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.MemberModel{}).
		Where("subscription_end_date >= ? AND subscription_end_date <= ?", from, to).
		Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count ending members: %w", err)
	}
	return count, nil
}
