package repositories

import (
	"errors"

	"rezopay/internal/models"
)

var ErrCapNotFound = errors.New("commission record not found")

// CommissionRepository stores scheme commission cap records, keyed by
// (scheme, service). Cap carries store semantics for the resolver: a
// missing record yields (nil, nil).
type CommissionRepository interface {
	// Cap is the resolver's lookup; read-through cached.
	Cap(schemeID, serviceID uint) (*models.SchemeCommission, error)

	// GetBySchemeService returns the record or ErrCapNotFound.
	GetBySchemeService(schemeID, serviceID uint) (*models.SchemeCommission, error)

	// Upsert creates or replaces the record for its (scheme, service)
	// key and invalidates the cache entry.
	Upsert(record *models.SchemeCommission) error

	// ListByScheme returns all cap records a scheme configures.
	ListByScheme(schemeID uint) ([]*models.SchemeCommission, error)
}
