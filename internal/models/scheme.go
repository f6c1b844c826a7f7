package models

import "gorm.io/gorm"

// Scheme is a configuration-tenancy node. Schemes form a tree through
// ParentSchemeID; a nil parent marks a root. Commission caps attach to
// (scheme, service) pairs.
type Scheme struct {
	gorm.Model
	Name           string `gorm:"uniqueIndex;not null"`
	ParentSchemeID *uint  `gorm:"index"`
	CreatedBy      uint   `gorm:"not null"`
	IsActive       bool   `gorm:"default:true"`
}

// Service is a catalogue entry transactions are booked against, e.g.
// mobile recharge or DMT.
type Service struct {
	gorm.Model
	Category string `gorm:"not null"`
	Code     string `gorm:"uniqueIndex;not null"`
	Name     string `gorm:"not null"`
}
