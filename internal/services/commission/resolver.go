package commission

import (
	"fmt"

	"rezopay/internal/models"
)

// Resolver computes effective absolute commission rates from the scheme
// hierarchy. It only reads; it has no side effects.
type Resolver struct {
	schemes SchemeDirectory
	caps    CapStore
}

func NewResolver(schemes SchemeDirectory, caps CapStore) *Resolver {
	if schemes == nil {
		panic("scheme directory is required")
	}
	if caps == nil {
		panic("cap store is required")
	}
	return &Resolver{schemes: schemes, caps: caps}
}

// ResolveAbsolute walks the ancestor chain of schemeID and returns the
// effective absolute rate per role for serviceID: for each role, the value
// set by the nearest ancestor that configures it. A child scheme tightens
// rates simply by overriding; an unset role defers upward.
//
// The returned kind is taken from the cap record nearest to the start
// scheme, since a record's kind applies to the whole record.
//
// Returns ErrNoCommissionConfigured when no ancestor configures any role,
// and ErrSchemeCycle when the parent links revisit a scheme.
func (r *Resolver) ResolveAbsolute(schemeID, serviceID uint) (map[models.Role]float64, models.CommissionKind, error) {
	if schemeID == 0 {
		return nil, "", ErrNoSchemeAssigned
	}

	chain, err := r.capChain(schemeID, serviceID)
	if err != nil {
		return nil, "", err
	}
	if len(chain) == 0 {
		return nil, "", ErrNoCommissionConfigured
	}

	kind := chain[0].Kind
	if !kind.Valid() {
		return nil, "", fmt.Errorf("%w: %q", ErrInvalidCommissionKind, kind)
	}

	absolute := make(map[models.Role]float64)
	for _, role := range models.PayableRoles {
		for _, record := range chain {
			if v := record.RateFor(role); v != nil {
				absolute[role] = *v
				break
			}
		}
	}
	if len(absolute) == 0 {
		return nil, "", ErrNoCommissionConfigured
	}

	return absolute, kind, nil
}

// capChain collects the cap records along the scheme ancestor chain,
// nearest scheme first. Schemes without a record for the service are
// skipped. The visited set bounds the walk against cyclic parent links.
func (r *Resolver) capChain(schemeID, serviceID uint) ([]*models.SchemeCommission, error) {
	var chain []*models.SchemeCommission
	visited := make(map[uint]struct{})

	scheme, err := r.schemes.SchemeByID(schemeID)
	if err != nil {
		return nil, fmt.Errorf("looking up scheme %d: %w", schemeID, err)
	}

	for scheme != nil {
		if _, seen := visited[scheme.ID]; seen {
			return nil, fmt.Errorf("%w: scheme %d revisited", ErrSchemeCycle, scheme.ID)
		}
		visited[scheme.ID] = struct{}{}

		record, err := r.caps.Cap(scheme.ID, serviceID)
		if err != nil {
			return nil, fmt.Errorf("looking up cap for scheme %d service %d: %w", scheme.ID, serviceID, err)
		}
		if record != nil {
			chain = append(chain, record)
		}

		if scheme.ParentSchemeID == nil {
			break
		}
		scheme, err = r.schemes.SchemeByID(*scheme.ParentSchemeID)
		if err != nil {
			return nil, fmt.Errorf("looking up parent scheme: %w", err)
		}
	}

	return chain, nil
}
