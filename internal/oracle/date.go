package oracle

import "github.com/NumerousHats/twig-graft/internal/domain"

// datesMismatch implements §4.B rule 4: Birth intervals (if both present)
// must overlap-consistent, likewise Death intervals; if one Person has a
// Birth and the other a Death, the earliest possible Birth must strictly
// precede the latest possible Death.
func datesMismatch(p1, p2 *domain.Person) bool {
	if b1, b2, ok := bothDates(p1, p2, domain.FactBirth); ok && !b1.OverlapConsistent(b2) {
		return true
	}
	if d1, d2, ok := bothDates(p1, p2, domain.FactDeath); ok && !d1.OverlapConsistent(d2) {
		return true
	}

	if birth, ok1 := earliestDate(p1, domain.FactBirth); ok1 {
		if death, ok2 := latestDate(p2, domain.FactDeath); ok2 && !birthPrecedesDeath(birth, death) {
			return true
		}
	}
	if birth, ok1 := earliestDate(p2, domain.FactBirth); ok1 {
		if death, ok2 := latestDate(p1, domain.FactDeath); ok2 && !birthPrecedesDeath(birth, death) {
			return true
		}
	}

	return false
}

// birthPrecedesDeath reports whether birth's earliest moment is strictly
// before death's latest possible moment.
func birthPrecedesDeath(birth, death domain.GenDate) bool {
	return birth.Start.Before(death.End)
}

// bothDates returns the earliest-starting date of the given kind on each
// Person, and whether both were found.
func bothDates(p1, p2 *domain.Person, kind domain.FactKind) (domain.GenDate, domain.GenDate, bool) {
	d1, ok1 := earliestDate(p1, kind)
	d2, ok2 := earliestDate(p2, kind)
	return d1, d2, ok1 && ok2
}

// earliestDate returns the earliest-starting date attached to a Fact of the
// given kind on the Person.
func earliestDate(p *domain.Person, kind domain.FactKind) (domain.GenDate, bool) {
	var best domain.GenDate
	found := false
	for _, f := range p.FactsOfKind(kind) {
		for _, d := range f.AllDates() {
			if !found || d.Before(best) {
				best = d
				found = true
			}
		}
	}
	return best, found
}

// latestDate returns the latest-ending date attached to a Fact of the given
// kind on the Person.
func latestDate(p *domain.Person, kind domain.FactKind) (domain.GenDate, bool) {
	var best domain.GenDate
	found := false
	for _, f := range p.FactsOfKind(kind) {
		for _, d := range f.AllDates() {
			if !found || d.End.After(best.End) {
				best = d
				found = true
			}
		}
	}
	return best, found
}
