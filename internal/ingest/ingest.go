// Package ingest defines the narrow contract an external record source
// must satisfy to add Persons and Relationships to a Graph. It parses
// nothing itself: CSV, GEDCOM, or any other tabular/structured record
// format is an external collaborator's concern (spec.md §1 Non-goals),
// grounded on original_source/import_records.py's record-to-graph
// boundary rather than any of the teacher's format-specific importers.
package ingest

import (
	"github.com/NumerousHats/twig-graft/internal/domain"
	"github.com/NumerousHats/twig-graft/internal/graph"
)

// Record is produced by an external ingester: a self-contained bundle of
// Persons and the Relationships between them, ready to be appended to a
// Graph. Ingesters are responsible for constructing valid Person/
// Relationship values (identifiers, names, facts); this package only
// moves them into the Graph.
type Record interface {
	People() []domain.Person
	Relations() []domain.Relationship
}

// Append adds every Person and Relationship in r to g. Persons are added
// first so that Relationships referencing them never hit a dangling
// endpoint.
func Append(g *graph.Graph, r Record) error {
	for _, p := range r.People() {
		p := p
		if err := p.Validate(); err != nil {
			return err
		}
		g.AddPerson(&p)
	}
	for _, rel := range r.Relations() {
		rel := rel
		if err := rel.Validate(); err != nil {
			return err
		}
		if err := g.AddRelationship(&rel); err != nil {
			return err
		}
	}
	return nil
}
