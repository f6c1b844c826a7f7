package commission

import "rezopay/internal/models"

// Margins converts per-role absolute (cumulative) rates into the
// non-overlapping share each role keeps. Roles are processed from most
// senior to most junior; a role's margin is its absolute rate minus the
// absolute rate of the nearest more junior role that has one, or the full
// rate for the most junior configured role.
//
// Only strictly positive margins are returned. A role whose rate does not
// exceed its nearest junior's rate earns nothing — a configuration
// inconsistency, not a runtime error. Summing all returned margins always
// reconstructs the most senior configured absolute rate.
func Margins(absolute map[models.Role]float64) map[models.Role]float64 {
	margins := make(map[models.Role]float64, len(absolute))

	// RolesBySeniority carries the explicit rank order; iterating it keeps
	// the arithmetic independent of map ordering.
	var configured []models.Role
	for _, role := range models.RolesBySeniority {
		if _, ok := absolute[role]; ok {
			configured = append(configured, role)
		}
	}

	for i, role := range configured {
		next := 0.0
		if i+1 < len(configured) {
			next = absolute[configured[i+1]]
		}
		if margin := absolute[role] - next; margin > 0 {
			margins[role] = margin
		}
	}

	return margins
}
