package oracle

import "github.com/NumerousHats/twig-graft/internal/domain"

// HasLiveSpouseFunc reports whether the given Person currently holds a live
// spouse Relationship in the graph. PersonMismatch's rule 5 needs this fact
// but the oracle package does not import internal/graph, so the caller
// supplies this callback;
// internal/merger wires it to the live graph it owns.
type HasLiveSpouseFunc func(p domain.Person) bool

// PersonMismatch implements §4.B: returns true if p1 and p2 cannot be the
// same real-world individual. The decision rules are evaluated in order;
// the first decisive rule wins. hasLiveSpouse may be nil, in which case
// rule 5 only consults each Person's married Names.
func PersonMismatch(p1, p2 *domain.Person, hasLiveSpouse HasLiveSpouseFunc) bool {
	return comparePersons(p1, p2, hasLiveSpouse).mismatch
}

// comparisonDetail carries the rule that decided a person comparison, for
// use in the Merger's warning-level skip logging. It is not part of
// PersonMismatch's exported boolean contract.
type comparisonDetail struct {
	mismatch bool
	rule     string // which §4.B rule decided it; "" if rule 6 (no mismatch found)
}

// comparePersons evaluates the §4.B decision rules in order and reports
// which rule decided the outcome, grounded on comparison.py's
// compare_person (which returns a tuple of per-criterion match counts
// rather than a bare boolean).
func comparePersons(p1, p2 *domain.Person, hasLiveSpouse HasLiveSpouseFunc) comparisonDetail {
	if p1.HasFact(domain.FactStillbirth) || p2.HasFact(domain.FactStillbirth) {
		return comparisonDetail{mismatch: true, rule: "stillbirth"}
	}

	if p1.Gender != domain.GenderUnknown && p1.Gender != "" &&
		p2.Gender != domain.GenderUnknown && p2.Gender != "" &&
		p1.Gender != p2.Gender {
		return comparisonDetail{mismatch: true, rule: "gender"}
	}

	if nameMismatch(p1, p2) {
		return comparisonDetail{mismatch: true, rule: "name"}
	}

	if datesMismatch(p1, p2) {
		return comparisonDetail{mismatch: true, rule: "date"}
	}

	if coelebsMismatch(p1, p2, hasLiveSpouse) {
		return comparisonDetail{mismatch: true, rule: "coelebs"}
	}

	return comparisonDetail{mismatch: false}
}

// coelebsMismatch implements §4.B rule 5: a Person recorded as Coelebs
// (never married) cannot be the same individual as one who has ever taken
// a spouse, whether evidenced by a married Name or by a live spouse
// Relationship in the graph.
func coelebsMismatch(p1, p2 *domain.Person, hasLiveSpouse HasLiveSpouseFunc) bool {
	if p1.HasFact(domain.FactCoelebs) && everMarried(p2, hasLiveSpouse) {
		return true
	}
	if p2.HasFact(domain.FactCoelebs) && everMarried(p1, hasLiveSpouse) {
		return true
	}
	return false
}

// MismatchReason reports which §4.B rule (if any) disqualified p1 and p2
// from being the same individual. It returns "" when PersonMismatch would
// return false. Intended for warning-level skip logging in internal/merger.
func MismatchReason(p1, p2 *domain.Person, hasLiveSpouse HasLiveSpouseFunc) string {
	return comparePersons(p1, p2, hasLiveSpouse).rule
}

func everMarried(p *domain.Person, hasLiveSpouse HasLiveSpouseFunc) bool {
	if len(p.NamesOfType(domain.NameMarried)) > 0 {
		return true
	}
	if hasLiveSpouse != nil && hasLiveSpouse(*p) {
		return true
	}
	return false
}
