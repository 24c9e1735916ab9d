package oracle

import "github.com/NumerousHats/twig-graft/internal/domain"

// LocationsConsistent reports whether two Facts' location lists could
// describe the same place: at least one Location on the first side is
// Consistent (§3) with at least one Location on the second side. An empty
// list on either side is vacuously consistent. Within non-empty lists,
// entirely empty Locations are skipped, and two Locations with no house
// number in common (including when either has none) are not Consistent,
// so lists holding only such Locations are reported inconsistent.
func LocationsConsistent(a, b []domain.Location) bool {
	if len(a) == 0 || len(b) == 0 {
		return true
	}
	for _, la := range a {
		if la.IsEmpty() {
			continue
		}
		for _, lb := range b {
			if lb.IsEmpty() {
				continue
			}
			if la.Consistent(lb) {
				return true
			}
		}
	}
	return false
}
