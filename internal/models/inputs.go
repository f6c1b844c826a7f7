package models

// Request payloads shared between handlers and services.

type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type OnboardUserInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     Role   `json:"role"`
	SchemeID *uint  `json:"scheme_id"`
}

type CreateSchemeInput struct {
	Name string `json:"name"`
}

type UpdateSchemeInput struct {
	Name     *string `json:"name"`
	IsActive *bool   `json:"is_active"`
}

// CommissionSetupInput mirrors the cap record: one optional absolute value
// per payable role.
type CommissionSetupInput struct {
	SchemeID  uint           `json:"scheme_id"`
	ServiceID uint           `json:"service_id"`
	Kind      CommissionKind `json:"commission_kind"`

	Admin             *float64 `json:"admin"`
	WhiteLabel        *float64 `json:"white_label"`
	MasterDistributor *float64 `json:"master_distributor"`
	Distributor       *float64 `json:"distributor"`
	Retailer          *float64 `json:"retailer"`
	Customer          *float64 `json:"customer"`
}

// Rates returns the payload's values per payable role, in seniority order.
// Unset roles map to nil.
func (in *CommissionSetupInput) Rates() map[Role]*float64 {
	return map[Role]*float64{
		RoleAdmin:             in.Admin,
		RoleWhiteLabel:        in.WhiteLabel,
		RoleMasterDistributor: in.MasterDistributor,
		RoleDistributor:       in.Distributor,
		RoleRetailer:          in.Retailer,
		RoleCustomer:          in.Customer,
	}
}

type CreateTransactionInput struct {
	ServiceID uint    `json:"service_id"`
	Amount    float64 `json:"amount"`
	ClientRef string  `json:"client_ref"`
}
