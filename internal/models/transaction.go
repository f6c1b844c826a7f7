package models

import (
	"time"

	"gorm.io/gorm"
)

// Transaction statuses
const (
	TransactionStatusCompleted = "completed"
	TransactionStatusFailed    = "failed"
)

// Transaction is an end transaction (recharge, payment) initiated by a
// user. SchemeID snapshots the initiating user's scheme at creation time.
// Immutable once created.
type Transaction struct {
	gorm.Model
	Reference string  `gorm:"uniqueIndex;not null"`
	ClientRef *string `gorm:"uniqueIndex"` // caller-supplied dedup key
	UserID    uint    `gorm:"not null;index"`
	SchemeID  uint    `gorm:"not null"`
	ServiceID uint    `gorm:"not null"`
	Amount    float64 `gorm:"not null"`
	Status    string  `gorm:"not null;default:'completed'"`
}

// CommissionLedger is one user's earned commission for one transaction.
// Role and SchemeID are snapshots taken at settlement time, not live
// lookups. Rows are append-only and deleted only with their transaction.
type CommissionLedger struct {
	ID            uint   `gorm:"primarykey"`
	EntryID       string `gorm:"uniqueIndex;not null"`
	TransactionID uint   `gorm:"not null;index"`
	UserID        uint   `gorm:"not null;index"`
	Role          Role   `gorm:"not null"`
	SchemeID      *uint
	ServiceID     uint           `gorm:"not null"`
	Kind          CommissionKind `gorm:"not null"`
	Percent       float64        `gorm:"not null"`
	Amount        float64        `gorm:"not null"`
	CreatedAt     time.Time
}
