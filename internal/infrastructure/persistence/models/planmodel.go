package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type PlanModel struct {
	ID           uint            `gorm:"primaryKey;autoIncrement"`
	SID          string          `gorm:"column:sid;type:varchar(50);not null;uniqueIndex"`
	Name         string          `gorm:"type:varchar(100);not null;uniqueIndex"`
	Description  string          `gorm:"type:text"`
	DurationDays int             `gorm:"column:duration_days;not null"`
	Price        decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Active       bool            `gorm:"not null;default:true;index"`
	CreatedAt    time.Time       `gorm:"autoCreateTime"`
	UpdatedAt    time.Time       `gorm:"autoUpdateTime"`
}

func (PlanModel) TableName() string {
	return "plans"
}
