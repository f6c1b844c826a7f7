package commission

import (
	"rezopay/internal/models"

	"gorm.io/gorm"
)

// SchemeDirectory resolves scheme nodes by identifier. Implementations
// return (nil, nil) for an unknown identifier; the parent link is followed
// through Scheme.ParentSchemeID rather than an object graph, so the walk
// stays bounded and testable.
type SchemeDirectory interface {
	SchemeByID(id uint) (*models.Scheme, error)
}

// CapStore looks up the commission cap record for a (scheme, service)
// pair. A nil record with nil error means the scheme does not configure
// the service.
type CapStore interface {
	Cap(schemeID, serviceID uint) (*models.SchemeCommission, error)
}

// UserDirectory resolves users by identifier. Implementations return
// (nil, nil) for an unknown identifier.
type UserDirectory interface {
	UserByID(id uint) (*models.User, error)
}

// LedgerWriter appends a ledger entry inside the caller-supplied unit of
// work. The engine never commits; the surrounding transaction does.
type LedgerWriter interface {
	InsertLedgerEntry(uow *gorm.DB, entry *models.CommissionLedger) error
}
