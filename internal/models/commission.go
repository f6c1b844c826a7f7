package models

import (
	"fmt"
	"time"
)

// CommissionKind states how a cap record's values are interpreted.
type CommissionKind string

const (
	KindPercentage CommissionKind = "PERCENTAGE"
	KindFlat       CommissionKind = "FLAT"
)

// Valid reports whether k is a known commission kind.
func (k CommissionKind) Valid() bool {
	return k == KindPercentage || k == KindFlat
}

// SchemeCommission holds the absolute commission ceilings a scheme sets per
// role for one service. A nil column means the scheme does not constrain
// that role and defers to its ancestors. Values are cumulative-from-root:
// a role's value is the maximum total payable to that role or below, not an
// isolated share. SUPER_ADMIN never earns commission and has no column.
type SchemeCommission struct {
	ID        uint `gorm:"primarykey"`
	SchemeID  uint `gorm:"not null;uniqueIndex:uq_scheme_service"`
	ServiceID uint `gorm:"not null;uniqueIndex:uq_scheme_service"`

	Admin             *float64
	WhiteLabel        *float64
	MasterDistributor *float64
	Distributor       *float64
	Retailer          *float64
	Customer          *float64

	Kind        CommissionKind `gorm:"not null"`
	SetByUserID uint           `gorm:"not null"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// PayableRoles are the roles that can carry a configured rate, most senior
// first. Matches the cap record's columns.
var PayableRoles = []Role{
	RoleAdmin,
	RoleWhiteLabel,
	RoleMasterDistributor,
	RoleDistributor,
	RoleRetailer,
	RoleCustomer,
}

// rateFields dispatches each payable role to its column. One explicit entry
// per role; init asserts the table covers every payable role so a role can
// never silently fall through.
var rateFields = map[Role]struct {
	get func(*SchemeCommission) *float64
	set func(*SchemeCommission, *float64)
}{
	RoleAdmin: {
		get: func(c *SchemeCommission) *float64 { return c.Admin },
		set: func(c *SchemeCommission, v *float64) { c.Admin = v },
	},
	RoleWhiteLabel: {
		get: func(c *SchemeCommission) *float64 { return c.WhiteLabel },
		set: func(c *SchemeCommission, v *float64) { c.WhiteLabel = v },
	},
	RoleMasterDistributor: {
		get: func(c *SchemeCommission) *float64 { return c.MasterDistributor },
		set: func(c *SchemeCommission, v *float64) { c.MasterDistributor = v },
	},
	RoleDistributor: {
		get: func(c *SchemeCommission) *float64 { return c.Distributor },
		set: func(c *SchemeCommission, v *float64) { c.Distributor = v },
	},
	RoleRetailer: {
		get: func(c *SchemeCommission) *float64 { return c.Retailer },
		set: func(c *SchemeCommission, v *float64) { c.Retailer = v },
	},
	RoleCustomer: {
		get: func(c *SchemeCommission) *float64 { return c.Customer },
		set: func(c *SchemeCommission, v *float64) { c.Customer = v },
	},
}

func init() {
	for _, role := range PayableRoles {
		if _, ok := rateFields[role]; !ok {
			panic(fmt.Sprintf("models: no rate column mapped for role %s", role))
		}
	}
}

// RateFor returns the configured value for role, or nil when the record
// does not constrain it. Roles without a column (SUPER_ADMIN) map to nil.
func (c *SchemeCommission) RateFor(role Role) *float64 {
	f, ok := rateFields[role]
	if !ok {
		return nil
	}
	return f.get(c)
}

// SetRateFor stores a value for role. It reports false for roles that have
// no column on the record.
func (c *SchemeCommission) SetRateFor(role Role, v *float64) bool {
	f, ok := rateFields[role]
	if !ok {
		return false
	}
	f.set(c, v)
	return true
}
