package merger

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/NumerousHats/twig-graft/internal/domain"
	"github.com/NumerousHats/twig-graft/internal/graph"
)

func mustAddRel(t *testing.T, g *graph.Graph, r *domain.Relationship) {
	t.Helper()
	if err := g.AddRelationship(r); err != nil {
		t.Fatalf("AddRelationship: %v", err)
	}
}

func dateAt(y int) *domain.GenDate {
	d := domain.NewExactDate(time.Date(y, time.January, 1, 0, 0, 0, 0, time.UTC))
	return &d
}

// TestPlanRewire_SharedNeighborConflictAbortsWholePlan exercises §8
// scenario 5: two old Persons share a neighbor via the same relationship
// type, but the two edges carry marriage-date facts that do not
// overlap-consistent. planRewire must report an error and leave
// removals/additions empty rather than falling back to two independent
// reroutes (which would leave a duplicate edge to the shared neighbor).
func TestPlanRewire_SharedNeighborConflictAbortsWholePlan(t *testing.T) {
	g := graph.New()
	oldA := domain.NewPerson(domain.GenderMale)
	oldB := domain.NewPerson(domain.GenderMale)
	spouse := domain.NewPerson(domain.GenderFemale)
	g.AddPerson(oldA)
	g.AddPerson(oldB)
	g.AddPerson(spouse)

	rA := domain.NewRelationship(oldA.ID, spouse.ID, domain.RelationSpouse)
	rA.Facts = []domain.Fact{{Kind: domain.FactMarriage, Date: dateAt(1870)}}
	rB := domain.NewRelationship(oldB.ID, spouse.ID, domain.RelationSpouse)
	rB.Facts = []domain.Fact{{Kind: domain.FactMarriage, Date: dateAt(1920)}}
	mustAddRel(t, g, rA)
	mustAddRel(t, g, rB)

	m := New(g, DefaultOptions(), nil)
	plan, err := m.planRewire(oldA.ID, oldB.ID, uuid.New())
	if err == nil {
		t.Fatal("expected a conflict error, got nil")
	}
	if plan != nil {
		t.Errorf("expected no plan on conflict, got %+v", plan)
	}

	// The graph must be completely untouched: both original edges live,
	// no new Relationship added anywhere.
	if _, ok := g.RelationshipBetween(oldA.ID, spouse.ID); !ok {
		t.Error("oldA's edge to spouse should be untouched after an aborted plan")
	}
	if _, ok := g.RelationshipBetween(oldB.ID, spouse.ID); !ok {
		t.Error("oldB's edge to spouse should be untouched after an aborted plan")
	}
	if len(g.RelationshipIDs()) != 2 {
		t.Errorf("expected exactly 2 relationships (no orphaned reroute), got %d", len(g.RelationshipIDs()))
	}
}

// TestPlanRewire_SharedNeighborNonConflictingFoldsIntoOneEdge covers the
// success path: a shared neighbor with compatible facts on both old
// edges folds into a single new Relationship, and applying the plan
// leaves exactly one edge to that neighbor.
func TestPlanRewire_SharedNeighborNonConflictingFoldsIntoOneEdge(t *testing.T) {
	g := graph.New()
	oldA := domain.NewPerson(domain.GenderMale)
	oldB := domain.NewPerson(domain.GenderMale)
	spouse := domain.NewPerson(domain.GenderFemale)
	g.AddPerson(oldA)
	g.AddPerson(oldB)
	g.AddPerson(spouse)

	rA := domain.NewRelationship(oldA.ID, spouse.ID, domain.RelationSpouse)
	rA.Facts = []domain.Fact{{Kind: domain.FactMarriage, Date: dateAt(1870)}}
	rB := domain.NewRelationship(oldB.ID, spouse.ID, domain.RelationSpouse)
	rB.Facts = []domain.Fact{{Kind: domain.FactMarriage, Date: dateAt(1870)}}
	mustAddRel(t, g, rA)
	mustAddRel(t, g, rB)

	merged := uuid.New()
	g.AddPerson(&domain.Person{ID: merged})

	m := New(g, DefaultOptions(), nil)
	plan, err := m.planRewire(oldA.ID, oldB.ID, merged)
	if err != nil {
		t.Fatalf("unexpected conflict: %v", err)
	}
	plan.apply(g)

	if _, ok := g.RelationshipBetween(oldA.ID, spouse.ID); ok {
		t.Error("oldA's original edge should have been removed")
	}
	if _, ok := g.RelationshipBetween(oldB.ID, spouse.ID); ok {
		t.Error("oldB's original edge should have been removed")
	}
	if _, ok := g.RelationshipBetween(merged, spouse.ID); !ok {
		t.Error("expected exactly one folded edge from merged to the shared neighbor")
	}
	if len(g.RelationshipIDs()) != 1 {
		t.Errorf("expected exactly 1 relationship after folding, got %d", len(g.RelationshipIDs()))
	}
}

// TestPlanRewire_NonSharedNeighborsAreRerouted covers the reroute-only
// path: a neighbor reachable from just one old Person keeps its
// Relationship's type and facts, repointed at the merged Person.
func TestPlanRewire_NonSharedNeighborsAreRerouted(t *testing.T) {
	g := graph.New()
	oldA := domain.NewPerson(domain.GenderMale)
	oldB := domain.NewPerson(domain.GenderMale)
	childOfA := domain.NewPerson(domain.GenderUnknown)
	g.AddPerson(oldA)
	g.AddPerson(oldB)
	g.AddPerson(childOfA)
	mustAddRel(t, g, domain.NewRelationship(oldA.ID, childOfA.ID, domain.RelationParentChild))

	merged := uuid.New()
	g.AddPerson(&domain.Person{ID: merged})

	m := New(g, DefaultOptions(), nil)
	plan, err := m.planRewire(oldA.ID, oldB.ID, merged)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	plan.apply(g)

	r, ok := g.RelationshipBetween(merged, childOfA.ID)
	if !ok {
		t.Fatal("expected childOfA's edge to be rerouted onto merged")
	}
	if r.Type != domain.RelationParentChild {
		t.Errorf("rerouted relationship type = %s, want %s", r.Type, domain.RelationParentChild)
	}
	if len(g.RelationshipIDs()) != 1 {
		t.Errorf("expected exactly 1 relationship after reroute, got %d", len(g.RelationshipIDs()))
	}
}
