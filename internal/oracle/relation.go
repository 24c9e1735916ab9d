package oracle

import "github.com/NumerousHats/twig-graft/internal/domain"

// RelationTypeEqual implements §4.B's trivial edge compatibility predicate:
// two Relationships are compatible candidates for an MCS edge match only if
// they carry the same relationship type.
func RelationTypeEqual(e1, e2 *domain.Relationship) bool {
	return e1.Type == e2.Type
}
