// Package graph holds the arena-plus-index labeled directed graph the
// Merger operates on: a Person store, a Relationship store, and adjacency
// indices over them, grounded on the original prototype's PeopleGraph
// (networkx.DiGraph plus a people dict) and the teacher's map-keyed,
// copy-on-read in-memory store convention
// (internal/repository/memory/readmodel.go).
package graph

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/NumerousHats/twig-graft/internal/domain"
)

// ErrGraphInvariantViolated is the sentinel wrapped by GraphInvariantError.
var ErrGraphInvariantViolated = fmt.Errorf("graph: invariant violated")

// GraphInvariantError reports a structural inconsistency: a dangling edge
// or a Relationship whose endpoint has no backing Person. Per §7 this is
// fatal and is never recovered by the Merger.
type GraphInvariantError struct {
	NodeID uuid.UUID
	Reason string
}

func (e *GraphInvariantError) Error() string {
	return fmt.Sprintf("graph: invariant violated at node %s: %s", e.NodeID, e.Reason)
}

func (e *GraphInvariantError) Unwrap() error { return ErrGraphInvariantViolated }

// Graph is the single owner of all Person and Relationship state for the
// duration of a Merger run (§5: single-threaded, one owner, no locking).
// Persons and Relationships never hold pointers to each other; all
// traversal goes through the adjacency indices, keyed by identifier, so
// the graph can be serialized and copied without breaking cycles.
type Graph struct {
	persons       map[uuid.UUID]*domain.Person
	relationships map[uuid.UUID]*domain.Relationship

	// succ[u] maps the ToID of each Relationship whose FromID is u to that
	// Relationship's id, and pred is the mirror image keyed by ToID.
	succ map[uuid.UUID]map[uuid.UUID]uuid.UUID // personID -> neighborID -> relationshipID
	pred map[uuid.UUID]map[uuid.UUID]uuid.UUID
}

// New returns an empty Graph.
func New() *Graph {
	return &Graph{
		persons:       make(map[uuid.UUID]*domain.Person),
		relationships: make(map[uuid.UUID]*domain.Relationship),
		succ:          make(map[uuid.UUID]map[uuid.UUID]uuid.UUID),
		pred:          make(map[uuid.UUID]map[uuid.UUID]uuid.UUID),
	}
}

// AddPerson inserts or replaces a Person keyed by its identifier.
func (g *Graph) AddPerson(p *domain.Person) {
	cp := *p
	g.persons[p.ID] = &cp
	if g.succ[p.ID] == nil {
		g.succ[p.ID] = make(map[uuid.UUID]uuid.UUID)
	}
	if g.pred[p.ID] == nil {
		g.pred[p.ID] = make(map[uuid.UUID]uuid.UUID)
	}
}

// Person returns a copy of the Person with the given id, or false if absent.
func (g *Graph) Person(id uuid.UUID) (domain.Person, bool) {
	p, ok := g.persons[id]
	if !ok {
		return domain.Person{}, false
	}
	return *p, true
}

// SetPerson overwrites the stored Person (used when marking merged=true).
func (g *Graph) SetPerson(p domain.Person) {
	cp := p
	g.persons[p.ID] = &cp
}

// AddRelationship inserts a directed edge and updates the adjacency
// indices. The endpoints must already have Person entries.
func (g *Graph) AddRelationship(r *domain.Relationship) error {
	if _, ok := g.persons[r.FromID]; !ok {
		return &GraphInvariantError{NodeID: r.FromID, Reason: "relationship from_id has no Person"}
	}
	if _, ok := g.persons[r.ToID]; !ok {
		return &GraphInvariantError{NodeID: r.ToID, Reason: "relationship to_id has no Person"}
	}
	cp := *r
	g.relationships[r.ID] = &cp
	if g.succ[r.FromID] == nil {
		g.succ[r.FromID] = make(map[uuid.UUID]uuid.UUID)
	}
	if g.pred[r.ToID] == nil {
		g.pred[r.ToID] = make(map[uuid.UUID]uuid.UUID)
	}
	g.succ[r.FromID][r.ToID] = r.ID
	g.pred[r.ToID][r.FromID] = r.ID
	return nil
}

// RemoveRelationship removes an edge by identifier.
func (g *Graph) RemoveRelationship(id uuid.UUID) {
	r, ok := g.relationships[id]
	if !ok {
		return
	}
	delete(g.succ[r.FromID], r.ToID)
	delete(g.pred[r.ToID], r.FromID)
	delete(g.relationships, id)
}

// Relationship returns a copy of the Relationship with the given id.
func (g *Graph) Relationship(id uuid.UUID) (domain.Relationship, bool) {
	r, ok := g.relationships[id]
	if !ok {
		return domain.Relationship{}, false
	}
	return *r, true
}

// RelationshipBetween returns the Relationship (if any) with the given
// from/to endpoints.
func (g *Graph) RelationshipBetween(from, to uuid.UUID) (domain.Relationship, bool) {
	id, ok := g.succ[from][to]
	if !ok {
		return domain.Relationship{}, false
	}
	return g.Relationship(id)
}

// Successors returns the ids of every Person that from has an outgoing
// Relationship to.
func (g *Graph) Successors(from uuid.UUID) []uuid.UUID {
	out := make([]uuid.UUID, 0, len(g.succ[from]))
	for to := range g.succ[from] {
		out = append(out, to)
	}
	return out
}

// Predecessors returns the ids of every Person with an outgoing
// Relationship to the given node.
func (g *Graph) Predecessors(to uuid.UUID) []uuid.UUID {
	out := make([]uuid.UUID, 0, len(g.pred[to]))
	for from := range g.pred[to] {
		out = append(out, from)
	}
	return out
}

// PersonIDs returns every Person identifier currently in the graph.
func (g *Graph) PersonIDs() []uuid.UUID {
	out := make([]uuid.UUID, 0, len(g.persons))
	for id := range g.persons {
		out = append(out, id)
	}
	return out
}

// RelationshipIDs returns every Relationship identifier currently in the
// graph.
func (g *Graph) RelationshipIDs() []uuid.UUID {
	out := make([]uuid.UUID, 0, len(g.relationships))
	for id := range g.relationships {
		out = append(out, id)
	}
	return out
}

// LivePersonIDs returns the ids of every Person with merged == false.
func (g *Graph) LivePersonIDs() []uuid.UUID {
	var out []uuid.UUID
	for id, p := range g.persons {
		if !p.Merged {
			out = append(out, id)
		}
	}
	return out
}

// LiveSuccessors returns from's successors, excluding any whose Person is
// already merged.
func (g *Graph) LiveSuccessors(from uuid.UUID) []uuid.UUID {
	return g.filterLive(g.Successors(from))
}

// LivePredecessors returns to's predecessors, excluding any whose Person is
// already merged.
func (g *Graph) LivePredecessors(to uuid.UUID) []uuid.UUID {
	return g.filterLive(g.Predecessors(to))
}

func (g *Graph) filterLive(ids []uuid.UUID) []uuid.UUID {
	var out []uuid.UUID
	for _, id := range ids {
		if p, ok := g.persons[id]; ok && !p.Merged {
			out = append(out, id)
		}
	}
	return out
}

// HasLiveSpouse reports whether the Person has a live RelationSpouse edge
// incident to it, in either direction. It satisfies oracle.HasLiveSpouseFunc.
func (g *Graph) HasLiveSpouse(p domain.Person) bool {
	for _, to := range g.LiveSuccessors(p.ID) {
		if r, ok := g.RelationshipBetween(p.ID, to); ok && r.Type == domain.RelationSpouse {
			return true
		}
	}
	for _, from := range g.LivePredecessors(p.ID) {
		if r, ok := g.RelationshipBetween(from, p.ID); ok && r.Type == domain.RelationSpouse {
			return true
		}
	}
	return false
}

// CheckInvariants verifies that every Relationship's endpoints resolve to a
// Person. Per §7 this is the one graph-level check whose failure is fatal.
func (g *Graph) CheckInvariants() error {
	for _, r := range g.relationships {
		if _, ok := g.persons[r.FromID]; !ok {
			return &GraphInvariantError{NodeID: r.FromID, Reason: "dangling relationship: from_id has no Person"}
		}
		if _, ok := g.persons[r.ToID]; !ok {
			return &GraphInvariantError{NodeID: r.ToID, Reason: "dangling relationship: to_id has no Person"}
		}
	}
	return nil
}

// Summary is the result of Summarize: node/edge/component counts, useful
// for a verbose CLI mode.
type Summary struct {
	Nodes      int
	Edges      int
	Components int
}

// Summarize returns node, edge, and weakly-connected-component counts over
// the live subgraph, grounded on graph_model.py's PeopleGraph.summarize.
func (g *Graph) Summarize() Summary {
	live := g.LivePersonIDs()
	components := WeaklyConnectedComponents(g, live)
	edges := 0
	liveSet := make(map[uuid.UUID]bool, len(live))
	for _, id := range live {
		liveSet[id] = true
	}
	for _, r := range g.relationships {
		if liveSet[r.FromID] && liveSet[r.ToID] {
			edges++
		}
	}
	return Summary{Nodes: len(live), Edges: edges, Components: len(components)}
}
