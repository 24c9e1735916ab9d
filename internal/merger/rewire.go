package merger

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/NumerousHats/twig-graft/internal/domain"
	"github.com/NumerousHats/twig-graft/internal/graph"
)

// rewirePlan is the tentative outcome of folding every edge incident to
// two about-to-be-merged Persons onto their replacement: the set of old
// Relationships to remove and the new ones to add. Computing this plan
// never touches the Graph (§4.D step 2's "pre-flight" check) so a
// conflict discovered partway through leaves no trace; only apply
// mutates anything, and only after the whole plan has been accepted.
type rewirePlan struct {
	removals  []uuid.UUID
	additions []*domain.Relationship
}

// planRewire computes the rewirePlan for merging oldA and oldB into
// merged, or returns an error naming the first shared-neighbor
// Relationship.Merge conflict found. Grounded on birth_merge.py's two
// commented-out "pass" placeholders after its .merge() call, which never
// actually rewired a Person's edges; this is a supplemented,
// genuinely-implemented version following the two-phase split §4.D and
// §5 describe.
func (m *Merger) planRewire(oldA, oldB, merged uuid.UUID) (*rewirePlan, error) {
	plan := &rewirePlan{}
	if err := m.planDirection(oldA, oldB, merged, true, plan); err != nil {
		return nil, err
	}
	if err := m.planDirection(oldA, oldB, merged, false, plan); err != nil {
		return nil, err
	}
	return plan, nil
}

// planDirection plans either the outgoing-edge fold (oldA/oldB's
// successors) or the incoming-edge fold (their predecessors).
func (m *Merger) planDirection(oldA, oldB, merged uuid.UUID, outgoing bool, plan *rewirePlan) error {
	var neighbors map[uuid.UUID]bool
	if outgoing {
		neighbors = unionLive(m.graph.LiveSuccessors(oldA), m.graph.LiveSuccessors(oldB), oldA, oldB)
	} else {
		neighbors = unionLive(m.graph.LivePredecessors(oldA), m.graph.LivePredecessors(oldB), oldA, oldB)
	}
	for n := range neighbors {
		var rA, rB domain.Relationship
		var okA, okB bool
		if outgoing {
			rA, okA = m.graph.RelationshipBetween(oldA, n)
			rB, okB = m.graph.RelationshipBetween(oldB, n)
		} else {
			rA, okA = m.graph.RelationshipBetween(n, oldA)
			rB, okB = m.graph.RelationshipBetween(n, oldB)
		}
		if err := planFold(rA, okA, rB, okB, merged, n, outgoing, plan); err != nil {
			return err
		}
	}
	return nil
}

// planFold resolves the at-most-two edges a shared neighbor n may hold
// to the two old Persons into their post-merge replacement, appending to
// plan. A neighbor reachable from both oldA and oldB of the same
// relationship type has its two edges tentatively folded via
// Relationship.Merge; a neighbor reachable from only one of them is just
// rerouted. Returns an error, aborting the whole plan, if a shared
// neighbor's two Relationships conflict (§7 RelationMergeConflict, §8
// scenario 5).
func planFold(rA domain.Relationship, okA bool, rB domain.Relationship, okB bool, merged, n uuid.UUID, outgoing bool, plan *rewirePlan) error {
	switch {
	case okA && okB && rA.Type == rB.Type:
		origA, origB := rA.ID, rB.ID
		if outgoing {
			rA.FromID, rA.ToID = merged, n
			rB.FromID, rB.ToID = merged, n
		} else {
			rA.FromID, rA.ToID = n, merged
			rB.FromID, rB.ToID = n, merged
		}
		mergedRel, err := rA.Merge(&rB)
		if err != nil {
			return fmt.Errorf("shared edge to %s could not be merged: %w", n, err)
		}
		plan.removals = append(plan.removals, origA, origB)
		plan.additions = append(plan.additions, mergedRel)
	case okA:
		plan.removals = append(plan.removals, rA.ID)
		plan.additions = append(plan.additions, rerouted(rA, merged, n, outgoing))
	case okB:
		plan.removals = append(plan.removals, rB.ID)
		plan.additions = append(plan.additions, rerouted(rB, merged, n, outgoing))
	}
	return nil
}

// rerouted returns a new Relationship of the same type and facts as r,
// incident to merged and n instead of r's original endpoint.
func rerouted(r domain.Relationship, merged, n uuid.UUID, outgoing bool) *domain.Relationship {
	nr := &domain.Relationship{ID: uuid.New(), Type: r.Type, Facts: r.Facts}
	if outgoing {
		nr.FromID, nr.ToID = merged, n
	} else {
		nr.FromID, nr.ToID = n, merged
	}
	return nr
}

// apply commits a previously-accepted rewirePlan: every old Relationship
// it names is removed and every new one added. By the time this runs,
// planRewire has already guaranteed no duplicate edge can result, since
// exactly one replacement Relationship is planned per neighbor.
func (p *rewirePlan) apply(g *graph.Graph) {
	for _, id := range p.removals {
		g.RemoveRelationship(id)
	}
	for _, r := range p.additions {
		_ = g.AddRelationship(r)
	}
}

// unionLive returns the distinct live neighbors from both lists, excluding
// each old Person from the other's neighbor list (a direct edge between
// the two merged Persons is superseded by the merge itself, not rerouted).
func unionLive(a, b []uuid.UUID, excludeA, excludeB uuid.UUID) map[uuid.UUID]bool {
	out := make(map[uuid.UUID]bool, len(a)+len(b))
	for _, n := range a {
		if n != excludeB {
			out[n] = true
		}
	}
	for _, n := range b {
		if n != excludeA {
			out[n] = true
		}
	}
	return out
}
