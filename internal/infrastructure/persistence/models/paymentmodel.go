package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentModel is the gorm row for the payments ledger. Rows are append-only
// and carry denormalized member/plan snapshots.
type PaymentModel struct {
	ID         uint            `gorm:"primaryKey;autoIncrement"`
	SID        string          `gorm:"column:sid;type:varchar(50);not null;uniqueIndex"`
	MemberID   uint            `gorm:"column:member_id;not null;index"`
	MemberName string          `gorm:"column:member_name;type:varchar(100)"`
	PlanID     string          `gorm:"column:plan_id;type:varchar(50)"`
	PlanName   string          `gorm:"column:plan_name;type:varchar(100)"`
	Amount     decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Method     string          `gorm:"type:varchar(20);not null"`
	Status     string          `gorm:"type:varchar(20);not null;index"`
	PaidAt     time.Time       `gorm:"column:paid_at;not null;index"`
	Notes      string          `gorm:"type:varchar(255)"`
	CreatedAt  time.Time       `gorm:"autoCreateTime"`
}

func (PaymentModel) TableName() string {
	return "payments"
}
