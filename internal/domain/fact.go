package domain

import (
	"errors"
	"fmt"
)

// Fact is a data item presumed true about a Person or Relationship: a
// birth, death, burial, marriage, etc. (§3 Person.facts). Grounded on the
// original prototype's Conclusion/Fact split, adapted to the teacher's
// Validate()/typed-error convention.
type Fact struct {
	Kind       FactKind   `json:"kind"`
	Date       *GenDate   `json:"date,omitempty"`
	Dates      []GenDate  `json:"dates,omitempty"` // multiple candidate date ranges, when present
	Age        *Duration  `json:"age,omitempty"`
	Locations  []Location `json:"locations,omitempty"`
	Content    string     `json:"content,omitempty"`
	Sources    []Source   `json:"sources,omitempty"`
	Notes      []string   `json:"notes,omitempty"`
	Confidence Confidence `json:"confidence,omitempty"`
}

// FactValidationError represents a validation error for a Fact.
type FactValidationError struct {
	Field   string
	Message string
}

func (e FactValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// NewFact creates a new Fact of the given kind.
func NewFact(kind FactKind) Fact {
	return Fact{Kind: kind}
}

// Validate checks that the Fact has valid data.
func (f Fact) Validate() error {
	var errs []error
	if f.Kind == "" {
		errs = append(errs, FactValidationError{Field: "kind", Message: "cannot be empty"})
	} else if !f.Kind.IsValid() {
		errs = append(errs, FactValidationError{Field: "kind", Message: fmt.Sprintf("invalid value: %s", f.Kind)})
	}
	if f.Date != nil {
		if err := f.Date.Validate(); err != nil {
			errs = append(errs, FactValidationError{Field: "date", Message: err.Error()})
		}
	}
	if f.Age != nil {
		if err := f.Age.Validate(); err != nil {
			errs = append(errs, FactValidationError{Field: "age", Message: err.Error()})
		}
	}
	if !f.Confidence.IsValid() {
		errs = append(errs, FactValidationError{Field: "confidence", Message: fmt.Sprintf("invalid value: %s", f.Confidence)})
	}
	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// AllDates returns every GenDate attached to the Fact (Date plus Dates),
// skipping zero values.
func (f Fact) AllDates() []GenDate {
	var out []GenDate
	if f.Date != nil && !f.Date.IsZero() {
		out = append(out, *f.Date)
	}
	for _, d := range f.Dates {
		if !d.IsZero() {
			out = append(out, d)
		}
	}
	return out
}

// sameKeyAs reports whether two Facts are the same Fact for deduplication
// purposes during a merge: same kind and same date, per §4.A's
// "deduplicated by structural equality of ... fact-kind+date".
func (f Fact) sameKeyAs(other Fact) bool {
	if f.Kind != other.Kind {
		return false
	}
	fd, od := f.Date, other.Date
	if fd == nil || od == nil {
		return fd == od
	}
	return fd.Start.Equal(od.Start) && fd.End.Equal(od.End) && fd.Accuracy == od.Accuracy
}
