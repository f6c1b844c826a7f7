package validation

import (
	"strings"

	"rezopay/internal/models"
)

// CommissionSetup applies the shape checks for a cap payload: known kind,
// non-negative values, percentages bounded at 100. Hierarchy checks (who
// may set what, parent ceilings) live in the scheme service because they
// need the parent scheme's record.
func (v *Validator) CommissionSetup(in *models.CommissionSetupInput) {
	v.Check(in.SchemeID != 0, "scheme_id", "must not be zero")
	v.Check(in.ServiceID != 0, "service_id", "must not be zero")
	v.Check(in.Kind.Valid(), "commission_kind", "must be PERCENTAGE or FLAT")

	for role, value := range in.Rates() {
		if value == nil {
			continue
		}
		field := strings.ToLower(string(role))
		v.Check(*value >= 0, field, "commission cannot be negative")
		if in.Kind == models.KindPercentage {
			v.Check(*value <= MaxCommissionPercent, field, "percentage cannot exceed 100")
		}
	}
}
