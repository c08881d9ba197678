package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// MemberModel is the gorm row for the members table. Subscription dates are
// stored as UTC instants (noon-normalized by the domain layer).
type MemberModel struct {
	ID                    uint            `gorm:"primaryKey;autoIncrement"`
	MemberID              string          `gorm:"column:member_id;type:varchar(50);not null;uniqueIndex"`
	Name                  string          `gorm:"type:varchar(100);not null"`
	Phone                 string          `gorm:"type:varchar(30);not null;index"`
	Email                 string          `gorm:"type:varchar(255);index"`
	PlanID                string          `gorm:"column:plan_id;type:varchar(50);index"`
	PlanName              string          `gorm:"column:plan_name;type:varchar(100)"`
	SubscriptionStartDate time.Time       `gorm:"column:subscription_start_date;not null"`
	SubscriptionEndDate   time.Time       `gorm:"column:subscription_end_date;not null;index"`
	Status                string          `gorm:"type:varchar(20);not null;index"`
	TotalPaid             decimal.Decimal `gorm:"column:total_paid;type:decimal(12,2);not null;default:0"`
	LastExpiryNoticeAt    *time.Time      `gorm:"column:last_expiry_notice_at"`
	UserID                *uint           `gorm:"column:user_id;index"`
	Metadata              datatypes.JSON  `gorm:"type:json"`
	CreatedAt             time.Time       `gorm:"autoCreateTime"`
	UpdatedAt             time.Time       `gorm:"autoUpdateTime"`
	DeletedAt             gorm.DeletedAt  `gorm:"index"`
}

func (MemberModel) TableName() string {
	return "members"
}
