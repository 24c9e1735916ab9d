package domain

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// Relationship is a directed edge annotation between two Persons (§3).
// For RelationParentChild, From is the parent. For RelationSpouse, From is
// the husband. Adapted from the teacher's Association (the other directed
// person-to-person edge in `internal/domain/association.go`), generalized
// to the closed RelationshipType enumeration this domain needs.
type Relationship struct {
	ID     uuid.UUID        `json:"identifier"`
	FromID uuid.UUID        `json:"from_id"`
	ToID   uuid.UUID        `json:"to_id"`
	Type   RelationshipType `json:"relationship_type"`
	Facts  []Fact           `json:"facts,omitempty"`
}

// RelationshipValidationError represents a validation error for a Relationship.
type RelationshipValidationError struct {
	Field   string
	Message string
}

func (e RelationshipValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// NewRelationship creates a new Relationship with a fresh identifier.
func NewRelationship(from, to uuid.UUID, relType RelationshipType) *Relationship {
	return &Relationship{
		ID:     uuid.New(),
		FromID: from,
		ToID:   to,
		Type:   relType,
	}
}

// Validate checks that the Relationship has valid data.
func (r *Relationship) Validate() error {
	var errs []error

	if r.FromID == uuid.Nil {
		errs = append(errs, RelationshipValidationError{Field: "from_id", Message: "cannot be empty"})
	}
	if r.ToID == uuid.Nil {
		errs = append(errs, RelationshipValidationError{Field: "to_id", Message: "cannot be empty"})
	}
	if r.FromID == r.ToID && r.FromID != uuid.Nil {
		errs = append(errs, RelationshipValidationError{Field: "to_id", Message: "cannot equal from_id"})
	}
	if !r.Type.IsValid() {
		errs = append(errs, RelationshipValidationError{Field: "relationship_type", Message: fmt.Sprintf("invalid value: %s", r.Type)})
	}
	for i, f := range r.Facts {
		if err := f.Validate(); err != nil {
			errs = append(errs, RelationshipValidationError{Field: fmt.Sprintf("facts[%d]", i), Message: err.Error()})
		}
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// Endpoints returns the (from, to) pair the Relationship connects.
func (r *Relationship) Endpoints() (uuid.UUID, uuid.UUID) {
	return r.FromID, r.ToID
}
