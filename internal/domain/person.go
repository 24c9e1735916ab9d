package domain

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// Person is a conclusion about one historical individual (§3 Person).
// Identifiers are opaque, globally unique, and stable for the Person's
// lifetime; they are the node key in the Graph.
type Person struct {
	ID      uuid.UUID  `json:"identifier"`
	Gender  Gender     `json:"gender,omitempty"`
	Names   []Name     `json:"names,omitempty"`
	Facts   []Fact     `json:"facts,omitempty"`
	Sources []Source   `json:"sources,omitempty"`
	Notes   []string   `json:"notes,omitempty"`

	Confidence Confidence `json:"confidence,omitempty"`

	// Merged is the tombstone flag (§3 Lifecycle): once true, no new
	// edges may be created incident to this Person.
	Merged bool `json:"merged"`
}

// PersonValidationError represents a validation error for a Person.
type PersonValidationError struct {
	Field   string
	Message string
}

func (e PersonValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// NewPerson creates a new Person with a fresh identifier.
func NewPerson(gender Gender) *Person {
	return &Person{
		ID:     uuid.New(),
		Gender: gender,
	}
}

// Validate checks that the Person has valid data, including the "at most
// one birth name" invariant from §3.
func (p *Person) Validate() error {
	var errs []error

	if !p.Gender.IsValid() {
		errs = append(errs, PersonValidationError{Field: "gender", Message: fmt.Sprintf("invalid value: %s", p.Gender)})
	}
	if !p.Confidence.IsValid() {
		errs = append(errs, PersonValidationError{Field: "confidence", Message: fmt.Sprintf("invalid value: %s", p.Confidence)})
	}

	birthNames := 0
	for i, n := range p.Names {
		if err := n.Validate(); err != nil {
			errs = append(errs, PersonValidationError{Field: fmt.Sprintf("names[%d]", i), Message: err.Error()})
		}
		if n.Type == NameBirth {
			birthNames++
		}
	}
	if birthNames > 1 {
		errs = append(errs, PersonValidationError{Field: "names", Message: "a Person has at most one birth name"})
	}

	for i, f := range p.Facts {
		if err := f.Validate(); err != nil {
			errs = append(errs, PersonValidationError{Field: fmt.Sprintf("facts[%d]", i), Message: err.Error()})
		}
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// BirthName returns the Person's birth name, if any.
func (p *Person) BirthName() (Name, bool) {
	for _, n := range p.Names {
		if n.Type == NameBirth {
			return n, true
		}
	}
	return Name{}, false
}

// NamesOfType returns every Name of the given type held by the Person.
func (p *Person) NamesOfType(t NameType) []Name {
	var out []Name
	for _, n := range p.Names {
		if n.Type == t {
			out = append(out, n)
		}
	}
	return out
}

// HasFact reports whether the Person carries at least one Fact of the
// given kind.
func (p *Person) HasFact(kind FactKind) bool {
	for _, f := range p.Facts {
		if f.Kind == kind {
			return true
		}
	}
	return false
}

// FactsOfKind returns every Fact of the given kind.
func (p *Person) FactsOfKind(kind FactKind) []Fact {
	var out []Fact
	for _, f := range p.Facts {
		if f.Kind == kind {
			out = append(out, f)
		}
	}
	return out
}

// AddName appends a Name to the Person.
func (p *Person) AddName(n Name) {
	p.Names = append(p.Names, n)
}

// AddFact appends a Fact to the Person.
func (p *Person) AddFact(f Fact) {
	p.Facts = append(p.Facts, f)
}
