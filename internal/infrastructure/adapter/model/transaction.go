package model

import (
	"time"
)

// Transaction represents the database model for ledger entries
type Transaction struct {
	ID            uint64    `gorm:"primaryKey;autoIncrement"`
	AccountID     uint64    `gorm:"not null;index"`
	Type          string    `gorm:"not null;size:50"`
	Points        int64     `gorm:"not null"`
	BalanceAfter  int64     `gorm:"not null"`
	SourceEventID *string   `gorm:"size:255"`
	CreatedAt     time.Time `gorm:"not null;index"`

	// Define relationships
	Account Account `gorm:"foreignKey:AccountID;references:ID"`
}

// TableName specifies the table name for Transaction
func (Transaction) TableName() string {
	return "transactions"
}
