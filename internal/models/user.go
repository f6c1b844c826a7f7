package models

import (
	"time"

	"gorm.io/gorm"
)

// User is a participant in the reseller hierarchy. ParentID points at the
// user who onboarded them; the payout chain for settlement follows these
// links, not the scheme tree.
type User struct {
	gorm.Model
	Name         string `gorm:"not null"`
	Email        string `gorm:"uniqueIndex;not null"`
	Password     string `gorm:"not null"`
	Role         Role   `gorm:"not null;index"`
	ParentID     *uint  `gorm:"index"`
	SchemeID     *uint  `gorm:"index"`
	CreatedBy    *uint
	IsActive     bool `gorm:"default:true"`
	TokenVersion int  `gorm:"default:1"`
	LastLoginAt  time.Time
}
