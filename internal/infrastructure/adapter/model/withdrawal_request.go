package model

import (
	"time"
)

// WithdrawalRequest represents the database model for withdrawal settlement records
type WithdrawalRequest struct {
	ID                string    `gorm:"primaryKey;size:36"`
	AccountID         uint64    `gorm:"not null;index"`
	AmountCurrency    int64     `gorm:"not null"`
	PointsDebited     int64     `gorm:"not null"`
	PayoutDestination string    `gorm:"not null;size:255"`
	Status            string    `gorm:"not null;size:20;index"`
	CreatedAt         time.Time `gorm:"not null"`
	ResolvedAt        *time.Time

	// Define relationships
	Account Account `gorm:"foreignKey:AccountID;references:ID"`
}

// TableName specifies the table name for WithdrawalRequest
func (WithdrawalRequest) TableName() string {
	return "withdrawal_requests"
}
