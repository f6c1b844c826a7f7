package commission

import (
	"errors"

	"rezopay/internal/models"

	"gorm.io/gorm"
)

// In-memory collaborators for engine tests. They mirror the directory
// semantics of the repositories: unknown identifiers yield (nil, nil).

type capKey struct {
	schemeID  uint
	serviceID uint
}

type fakeSchemes struct {
	schemes map[uint]*models.Scheme
}

func (f *fakeSchemes) SchemeByID(id uint) (*models.Scheme, error) {
	return f.schemes[id], nil
}

type fakeCaps struct {
	caps map[capKey]*models.SchemeCommission
}

func (f *fakeCaps) Cap(schemeID, serviceID uint) (*models.SchemeCommission, error) {
	return f.caps[capKey{schemeID, serviceID}], nil
}

type fakeUsers struct {
	users map[uint]*models.User
}

func (f *fakeUsers) UserByID(id uint) (*models.User, error) {
	return f.users[id], nil
}

// fakeLedger records inserted entries; failAfter > 0 makes the writer fail
// once that many inserts have succeeded.
type fakeLedger struct {
	entries   []models.CommissionLedger
	failAfter int
}

var errLedgerWrite = errors.New("ledger write failed")

func (f *fakeLedger) InsertLedgerEntry(_ *gorm.DB, entry *models.CommissionLedger) error {
	if f.failAfter > 0 && len(f.entries) >= f.failAfter {
		return errLedgerWrite
	}
	f.entries = append(f.entries, *entry)
	return nil
}

func ptr(v float64) *float64 { return &v }

func scheme(id uint, parent *uint) *models.Scheme {
	s := &models.Scheme{ParentSchemeID: parent, IsActive: true}
	s.ID = id
	return s
}

func user(id uint, role models.Role, parentID, schemeID *uint) *models.User {
	u := &models.User{Role: role, ParentID: parentID, SchemeID: schemeID, IsActive: true}
	u.ID = id
	return u
}

func uintPtr(v uint) *uint { return &v }
