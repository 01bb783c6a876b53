package model

import (
	"time"
)

// Account represents the database model for reward accounts
type Account struct {
	ID                   uint64    `gorm:"primaryKey"`
	Points               int64     `gorm:"not null"`
	TotalEarned          int64     `gorm:"not null"`
	TotalWithdrawn       int64     `gorm:"not null"`
	DailyWatchCount      int       `gorm:"not null;default:0"`
	LastResetDate        time.Time `gorm:"not null"`
	ReferralCode         string    `gorm:"uniqueIndex;not null;size:16"`
	ReferredBy           *uint64   `gorm:"index"`
	ReferralBonusAwarded bool      `gorm:"not null;default:false"`
	Disabled             bool      `gorm:"not null;default:false"`
	Banned               bool      `gorm:"not null;default:false"`
	CreatedAt            time.Time `gorm:"not null"`
	UpdatedAt            time.Time `gorm:"not null"`
}

// TableName specifies the table name for Account
func (Account) TableName() string {
	return "accounts"
}
