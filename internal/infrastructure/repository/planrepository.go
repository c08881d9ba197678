package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"pulsefit/internal/domain/plan"
	"pulsefit/internal/infrastructure/persistence/mappers"
	"pulsefit/internal/infrastructure/persistence/models"
	"pulsefit/internal/shared/logger"
)

// PlanRepository implements plan.PlanRepository on gorm.
type PlanRepository struct {
	db     *gorm.DB
	logger logger.Interface
}

func NewPlanRepository(db *gorm.DB, logger logger.Interface) *PlanRepository {
	return &PlanRepository{db: db, logger: logger}
}

func (r *PlanRepository) Create(ctx context.Context, p *plan.Plan) error {
	model := mappers.PlanToModel(p)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create plan: %w", err)
	}
	return p.SetID(model.ID)
}

func (r *PlanRepository) Update(ctx context.Context, p *plan.Plan) error {
	model := mappers.PlanToModel(p)
	result := r.db.WithContext(ctx).Model(&models.PlanModel{}).
		Where("id = ?", p.ID()).
		Select("name", "description", "duration_days", "price", "active", "updated_at").
		Updates(model)
	if result.Error != nil {
		return fmt.Errorf("failed to update plan: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return plan.ErrPlanNotFound
	}
	return nil
}

func (r *PlanRepository) Delete(ctx context.Context, dbID uint) error {
	result := r.db.WithContext(ctx).Delete(&models.PlanModel{}, dbID)
	if result.Error != nil {
		return fmt.Errorf("failed to delete plan: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return plan.ErrPlanNotFound
	}
	return nil
}

func (r *PlanRepository) GetBySID(ctx context.Context, sid string) (*plan.Plan, error) {
	var model models.PlanModel
	if err := r.db.WithContext(ctx).Where("sid = ?", sid).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get plan: %w", err)
	}
	return mappers.PlanToDomain(&model)
}

func (r *PlanRepository) GetByName(ctx context.Context, name string) (*plan.Plan, error) {
	var model models.PlanModel
	if err := r.db.WithContext(ctx).Where("LOWER(name) = LOWER(?)", name).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get plan by name: %w", err)
	}
	return mappers.PlanToDomain(&model)
}

func (r *PlanRepository) List(ctx context.Context, includeInactive bool) ([]*plan.Plan, error) {
	query := r.db.WithContext(ctx).Model(&models.PlanModel{})
	if !includeInactive {
		query = query.Where("active = ?", true)
	}

	var rows []models.PlanModel
	if err := query.Order("price ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list plans: %w", err)
	}
	return mappers.PlansToDomain(rows)
}
