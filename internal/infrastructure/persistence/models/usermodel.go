package models

import "time"

type UserModel struct {
	ID                 uint      `gorm:"primaryKey;autoIncrement"`
	Email              string    `gorm:"type:varchar(255);not null;uniqueIndex"`
	PasswordHash       string    `gorm:"column:password_hash;type:varchar(255);not null"`
	Role               string    `gorm:"type:varchar(20);not null;default:'member'"`
	MustChangePassword bool      `gorm:"column:must_change_password;not null;default:false"`
	CreatedAt          time.Time `gorm:"autoCreateTime"`
	UpdatedAt          time.Time `gorm:"autoUpdateTime"`
}

func (UserModel) TableName() string {
	return "users"
}
