// Package persistence implements the JSON graph codec described in §6:
// a lossless round-trip of every live Person and Relationship through
// two top-level arrays. Grounded on the teacher's
// internal/exporter/json.go (TreeExport struct, ID-sorted deterministic
// output, countingWriter byte accounting), adapted from a read-model
// projection export to a full load/save codec since this repo has no
// separate persistence layer to export from (§5: one in-memory Graph).
package persistence

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"github.com/NumerousHats/twig-graft/internal/domain"
	"github.com/NumerousHats/twig-graft/internal/graph"
)

// GraphDocument is the wire shape of a Graph: two arrays, persons and
// relations, matching §6's JSON persistence format exactly.
type GraphDocument struct {
	Persons   []domain.Person       `json:"persons"`
	Relations []domain.Relationship `json:"relations"`
}

// countingWriter wraps an io.Writer and counts bytes written, grounded on
// the teacher's exporter.countingWriter.
type countingWriter struct {
	w     io.Writer
	count int64
}

func (cw *countingWriter) Write(p []byte) (int, error) {
	n, err := cw.w.Write(p)
	cw.count += int64(n)
	return n, err
}

// Save writes every Person and Relationship currently in g to w as a
// GraphDocument, sorted by identifier for deterministic output. Merged
// (tombstoned) Persons are included so a later Load round-trips the
// entire history, not just the live subgraph.
func Save(w io.Writer, g *graph.Graph) (int64, error) {
	personIDs := g.PersonIDs()
	sort.Slice(personIDs, func(i, j int) bool { return personIDs[i].String() < personIDs[j].String() })
	persons := make([]domain.Person, 0, len(personIDs))
	for _, id := range personIDs {
		p, ok := g.Person(id)
		if !ok {
			continue
		}
		persons = append(persons, p)
	}

	relIDs := g.RelationshipIDs()
	sort.Slice(relIDs, func(i, j int) bool { return relIDs[i].String() < relIDs[j].String() })
	relations := make([]domain.Relationship, 0, len(relIDs))
	for _, id := range relIDs {
		r, ok := g.Relationship(id)
		if !ok {
			continue
		}
		relations = append(relations, r)
	}

	cw := &countingWriter{w: w}
	enc := json.NewEncoder(cw)
	enc.SetIndent("", "  ")
	if err := enc.Encode(GraphDocument{Persons: persons, Relations: relations}); err != nil {
		return cw.count, fmt.Errorf("persistence: encode graph: %w", err)
	}
	return cw.count, nil
}

// Load reads a GraphDocument from r and builds a fresh Graph from it.
// Every Relationship must reference a Person present in the same
// document, or Load fails with a *graph.GraphInvariantError.
func Load(r io.Reader) (*graph.Graph, error) {
	var doc GraphDocument
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("persistence: decode graph: %w", err)
	}

	g := graph.New()
	for i := range doc.Persons {
		p := doc.Persons[i]
		if err := p.Validate(); err != nil {
			return nil, fmt.Errorf("persistence: person %s: %w", p.ID, err)
		}
		g.AddPerson(&p)
	}
	for i := range doc.Relations {
		r := doc.Relations[i]
		if err := r.Validate(); err != nil {
			return nil, fmt.Errorf("persistence: relationship %s: %w", r.ID, err)
		}
		if err := g.AddRelationship(&r); err != nil {
			return nil, err
		}
	}
	return g, nil
}
