// Package oracle implements the §4.B compatibility oracles the MCS engine
// consults (but does not interpret): PersonMismatch and RelationTypeEqual,
// plus the supporting comparison helpers, grounded on the original
// prototype's comparison.py.
package oracle

import "github.com/NumerousHats/twig-graft/internal/domain"

// namePart identifies which structured part of a Name to compare.
type namePart int

const (
	partGiven namePart = iota
	partSurname
)

// compareNamePart compares one structured part of two Names, using the
// standardized form when both are known. Returns nil when the comparison
// is indeterminate (one or both standardized values are unknown) —
// fuzzy matching on raw name parts is explicitly out of scope (§1
// Non-goals), grounded on comparison.py's compare_name_part TODO.
func compareNamePart(n1, n2 domain.Name, part namePart) *bool {
	var std1, std2 string
	switch part {
	case partGiven:
		std1, std2 = n1.StandardGiven, n2.StandardGiven
	case partSurname:
		std1, std2 = n1.StandardSurname, n2.StandardSurname
	}

	if std1 == "" || std2 == "" {
		return nil
	}
	result := std1 == std2
	return &result
}

// compareFullName compares both the given and surname parts of two Names.
// It returns a pointer to true if both known parts agree, false if it is
// impossible for the two Names to belong to the same person, and nil
// otherwise. If disqualifySurnameMismatch is true, a definite surname
// disagreement returns false even if the given names agree — used for
// birth-name comparisons per §4.B rule 3 ("surname mismatch is fatal").
//
// Grounded on comparison.py's compare_fullname.
func compareFullName(n1, n2 domain.Name, disqualifySurnameMismatch bool) *bool {
	matches := 0

	givenComp := compareNamePart(n1, n2, partGiven)
	if givenComp != nil {
		if *givenComp {
			matches++
		} else {
			f := false
			return &f
		}
	}

	surnameComp := compareNamePart(n1, n2, partSurname)
	if surnameComp != nil {
		if disqualifySurnameMismatch && !*surnameComp {
			f := false
			return &f
		}
		if *surnameComp {
			matches++
		}
	}

	if matches == 2 {
		tru := true
		return &tru
	}
	return nil
}

// nameMismatch implements §4.B rule 3: compares birth names to each other,
// and every married/unknown name of one Person against every
// married/unknown name of the other, reporting true as soon as a definite
// disagreement is found anywhere. Grounded on comparison.py's name_match.
func nameMismatch(p1, p2 *domain.Person) bool {
	birth1, hasBirth1 := p1.BirthName()
	birth2, hasBirth2 := p2.BirthName()

	if hasBirth1 && hasBirth2 {
		if comp := compareFullName(birth1, birth2, true); comp != nil && !*comp {
			return true
		}
	}

	names1 := otherNames(p1)
	names2 := otherNames(p2)

	for _, n1 := range names1 {
		for _, n2 := range names2 {
			if comp := compareFullName(n1, n2, false); comp != nil && !*comp {
				return true
			}
		}
	}

	if hasBirth1 {
		for _, n2 := range names2 {
			if comp := compareFullName(birth1, n2, false); comp != nil && !*comp {
				return true
			}
		}
	}

	if hasBirth2 {
		for _, n1 := range names1 {
			if comp := compareFullName(n1, birth2, false); comp != nil && !*comp {
				return true
			}
		}
	}

	return false
}

// otherNames returns every married or unknown-type Name held by a Person.
func otherNames(p *domain.Person) []domain.Name {
	out := p.NamesOfType(domain.NameMarried)
	out = append(out, p.NamesOfType(domain.NameUnknown)...)
	return out
}
