package models

// Role is one of the seven fixed seniority tiers assigned to every user.
type Role string

const (
	RoleSuperAdmin        Role = "SUPER_ADMIN"
	RoleAdmin             Role = "ADMIN"
	RoleWhiteLabel        Role = "WHITE_LABEL"
	RoleMasterDistributor Role = "MASTER_DISTRIBUTOR"
	RoleDistributor       Role = "DISTRIBUTOR"
	RoleRetailer          Role = "RETAILER"
	RoleCustomer          Role = "CUSTOMER"
)

// RoleRank is the explicit seniority order, most senior first (rank 1).
// Margin ordering, onboarding rules and commission setup checks all depend
// on this table rather than on declaration order.
var RoleRank = map[Role]int{
	RoleSuperAdmin:        1,
	RoleAdmin:             2,
	RoleWhiteLabel:        3,
	RoleMasterDistributor: 4,
	RoleDistributor:       5,
	RoleRetailer:          6,
	RoleCustomer:          7,
}

// RolesBySeniority lists every role from most senior to most junior.
var RolesBySeniority = []Role{
	RoleSuperAdmin,
	RoleAdmin,
	RoleWhiteLabel,
	RoleMasterDistributor,
	RoleDistributor,
	RoleRetailer,
	RoleCustomer,
}

// Valid reports whether r is one of the seven known roles.
func (r Role) Valid() bool {
	_, ok := RoleRank[r]
	return ok
}

// SeniorTo reports whether r outranks other (strictly more senior).
func (r Role) SeniorTo(other Role) bool {
	return RoleRank[r] < RoleRank[other]
}

// onboardableRoles maps each role to the roles it is allowed to onboard.
// A role can only onboard roles strictly below it; CUSTOMER onboards nobody.
var onboardableRoles = map[Role][]Role{
	RoleSuperAdmin:        {RoleAdmin, RoleWhiteLabel, RoleMasterDistributor, RoleDistributor, RoleRetailer, RoleCustomer},
	RoleAdmin:             {RoleWhiteLabel, RoleMasterDistributor, RoleDistributor, RoleRetailer, RoleCustomer},
	RoleWhiteLabel:        {RoleMasterDistributor, RoleDistributor, RoleRetailer, RoleCustomer},
	RoleMasterDistributor: {RoleDistributor, RoleRetailer, RoleCustomer},
	RoleDistributor:       {RoleRetailer, RoleCustomer},
	RoleRetailer:          {RoleCustomer},
}

// CanOnboard reports whether a user with parent role may onboard a user
// with child role.
func CanOnboard(parent, child Role) bool {
	for _, r := range onboardableRoles[parent] {
		if r == child {
			return true
		}
	}
	return false
}

// commissionSetterRoles are the roles allowed to configure scheme commissions.
var commissionSetterRoles = map[Role]bool{
	RoleSuperAdmin: true,
	RoleAdmin:      true,
	RoleWhiteLabel: true,
}

// CanSetCommission reports whether the role may configure commission caps.
func (r Role) CanSetCommission() bool {
	return commissionSetterRoles[r]
}

// CanInitiateTransaction reports whether the role may initiate transactions.
// Administrative tiers never transact themselves.
func (r Role) CanInitiateTransaction() bool {
	return r != RoleSuperAdmin && r != RoleAdmin
}
