package model

import (
	"time"
)

// EventIdentity represents the database model for consumed reward events.
// The unique index on EventID is what enforces exactly-once crediting.
type EventIdentity struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement"`
	EventID   string    `gorm:"uniqueIndex;not null;size:255"`
	AccountID uint64    `gorm:"not null;index"`
	Outcome   string    `gorm:"not null;size:20"`
	CreatedAt time.Time `gorm:"not null;index"`
}

// TableName specifies the table name for EventIdentity
func (EventIdentity) TableName() string {
	return "event_identities"
}
