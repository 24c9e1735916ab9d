// Package thesaurus defines the read-only raw-to-standardized name lookup
// a Name's StandardGiven/StandardSurname fields are populated from.
// Standardization itself (spelling variants, diacritic folding, village
// nickname resolution) is an external, out-of-scope concern (spec.md §1
// Non-goals: "thesaurus standardization implementation"); this package is
// only the contract an implementer's lookup table satisfies, grounded on
// original_source/data_model.py's Name.standard_given/standard_surname
// fields being populated "externally."
package thesaurus

// Thesaurus looks up the standardized form of a raw name part. A miss is
// non-fatal: callers keep the raw spelling when ok is false.
type Thesaurus interface {
	Standardize(raw string) (standardized string, ok bool)
}

// Map is the simplest Thesaurus: a static raw -> standardized table.
type Map map[string]string

// Standardize implements Thesaurus.
func (m Map) Standardize(raw string) (string, bool) {
	v, ok := m[raw]
	return v, ok
}

// Apply returns the standardized form of raw if t has one, else raw
// itself unchanged.
func Apply(t Thesaurus, raw string) string {
	if t == nil || raw == "" {
		return raw
	}
	if v, ok := t.Standardize(raw); ok {
		return v
	}
	return raw
}
