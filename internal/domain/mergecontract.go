package domain

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// ErrMergeIncompatible is returned by Person.Merge when the two Persons
// are already known to be mergeable-incompatible (§4.A, §7).
var ErrMergeIncompatible = errors.New("domain: persons are incompatible for merge")

// ErrRelationMergeConflict is returned by Relationship.Merge when the two
// Relationships carry irreconcilable facts (§4.A, §7).
var ErrRelationMergeConflict = errors.New("domain: relationships conflict and cannot be merged")

// MergeIncompatibleError wraps ErrMergeIncompatible with the offending IDs.
type MergeIncompatibleError struct {
	FirstID, SecondID uuid.UUID
	Reason            string
}

func (e *MergeIncompatibleError) Error() string {
	return fmt.Sprintf("cannot merge person %s with %s: %s", e.FirstID, e.SecondID, e.Reason)
}

func (e *MergeIncompatibleError) Unwrap() error { return ErrMergeIncompatible }

// RelationMergeConflictError wraps ErrRelationMergeConflict with the
// offending Relationship IDs.
type RelationMergeConflictError struct {
	FirstID, SecondID uuid.UUID
	Reason            string
}

func (e *RelationMergeConflictError) Error() string {
	return fmt.Sprintf("cannot merge relationship %s with %s: %s", e.FirstID, e.SecondID, e.Reason)
}

func (e *RelationMergeConflictError) Unwrap() error { return ErrRelationMergeConflict }

// MergeCheckFunc is the compatibility oracle Person.Merge consults (kept
// as a function type here to avoid a domain -> oracle import cycle;
// internal/merger supplies a closure over oracle.PersonMismatch).
type MergeCheckFunc func(a, b *Person) bool

// Merge implements §4.A's Person.merge contract. mismatch is the
// compatibility oracle (person_mismatch); Merge fails with
// MergeIncompatibleError if mismatch reports true (defense-in-depth: the
// caller, typically internal/merger, should already have checked).
//
// On success it returns a new Person p_m whose names/facts are the
// deduplicated union of both inputs, plus two provenance Relationships
// self->p_m and other->p_m of type RelationMergedInto. The caller is
// responsible for marking self and other as merged and adding p_m, r1, r2
// to the graph (§4.A Postconditions).
func (p *Person) Merge(other *Person, mismatch MergeCheckFunc) (merged *Person, r1, r2 *Relationship, err error) {
	if p.Merged || other.Merged {
		return nil, nil, nil, &MergeIncompatibleError{FirstID: p.ID, SecondID: other.ID, Reason: "a Person involved is already merged"}
	}
	if mismatch != nil && mismatch(p, other) {
		return nil, nil, nil, &MergeIncompatibleError{FirstID: p.ID, SecondID: other.ID, Reason: "compatibility oracle rejected the pair"}
	}

	pm := &Person{
		ID:         uuid.New(),
		Gender:     mergeGender(p.Gender, other.Gender),
		Names:      unionNames(p.Names, other.Names),
		Facts:      unionFacts(p.Facts, other.Facts),
		Sources:    append(append([]Source{}, p.Sources...), other.Sources...),
		Notes:      append(append([]string{}, p.Notes...), other.Notes...),
		Confidence: maxConfidence(p.Confidence, other.Confidence),
	}

	r1 = NewRelationship(p.ID, pm.ID, RelationMergedInto)
	r2 = NewRelationship(other.ID, pm.ID, RelationMergedInto)

	return pm, r1, r2, nil
}

func mergeGender(a, b Gender) Gender {
	if a != "" && a != GenderUnknown {
		return a
	}
	return b
}

func unionNames(a, b []Name) []Name {
	out := append([]Name{}, a...)
	for _, n := range b {
		dup := false
		for _, existing := range out {
			if existing.sameKeyAs(n) {
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, n)
		}
	}
	return out
}

func unionFacts(a, b []Fact) []Fact {
	out := append([]Fact{}, a...)
	for _, f := range b {
		dup := false
		for _, existing := range out {
			if existing.sameKeyAs(f) {
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, f)
		}
	}
	return out
}

var confidenceRank = map[Confidence]int{
	"":                 0,
	ConfidenceLow:      1,
	ConfidenceModerate: 2,
	ConfidenceHigh:     3,
	ConfidenceProven:   4,
}

func maxConfidence(a, b Confidence) Confidence {
	if confidenceRank[b] > confidenceRank[a] {
		return b
	}
	return a
}

// Merge implements §4.A's Relation.merge contract. Both Relationships
// must already share relationship_type and endpoints (the caller
// reassigns endpoints to the merged Person's ID before calling this).
// Facts are unioned; Merge fails with RelationMergeConflictError on
// irreconcilable facts (contradictory marriage dates whose intervals do
// not overlap).
func (r *Relationship) Merge(other *Relationship) (*Relationship, error) {
	if r.Type != other.Type {
		return nil, &RelationMergeConflictError{FirstID: r.ID, SecondID: other.ID, Reason: "relationship_type differs"}
	}
	if r.FromID != other.FromID || r.ToID != other.ToID {
		return nil, &RelationMergeConflictError{FirstID: r.ID, SecondID: other.ID, Reason: "endpoints differ"}
	}

	if err := checkFactConflicts(r.Facts, other.Facts); err != nil {
		return nil, &RelationMergeConflictError{FirstID: r.ID, SecondID: other.ID, Reason: err.Error()}
	}

	return &Relationship{
		ID:     uuid.New(),
		FromID: r.FromID,
		ToID:   r.ToID,
		Type:   r.Type,
		Facts:  unionFacts(r.Facts, other.Facts),
	}, nil
}

// checkFactConflicts reports an error if any pair of same-kind facts
// across the two lists carries dates that are not overlap-consistent
// (§9(c): pre-existing spousal-edge marriage-date conflicts).
func checkFactConflicts(a, b []Fact) error {
	for _, fa := range a {
		for _, fb := range b {
			if fa.Kind != fb.Kind {
				continue
			}
			if fa.sameKeyAs(fb) {
				continue // identical, not conflicting
			}
			datesA, datesB := fa.AllDates(), fb.AllDates()
			if len(datesA) == 0 || len(datesB) == 0 {
				continue
			}
			if !anyOverlap(datesA, datesB) {
				return fmt.Errorf("contradictory %s dates", fa.Kind)
			}
		}
	}
	return nil
}

func anyOverlap(a, b []GenDate) bool {
	for _, da := range a {
		for _, db := range b {
			if da.OverlapConsistent(db) {
				return true
			}
		}
	}
	return false
}
