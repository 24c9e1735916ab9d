package graph

import (
	"errors"
	"testing"

	"github.com/NumerousHats/twig-graft/internal/domain"
)

func newTestPerson() *domain.Person {
	return domain.NewPerson(domain.GenderUnknown)
}

func TestGraph_AddRelationship_DanglingEndpoint(t *testing.T) {
	g := New()
	p1 := newTestPerson()
	g.AddPerson(p1)

	r := domain.NewRelationship(p1.ID, newTestPerson().ID, domain.RelationParentChild)
	err := g.AddRelationship(r)
	if err == nil {
		t.Fatal("expected GraphInvariantError for dangling endpoint")
	}
	var invErr *GraphInvariantError
	if !errors.As(err, &invErr) {
		t.Errorf("expected *GraphInvariantError, got %T", err)
	}
}

func TestGraph_SuccessorsAndPredecessors(t *testing.T) {
	g := New()
	parent, child := newTestPerson(), newTestPerson()
	g.AddPerson(parent)
	g.AddPerson(child)

	r := domain.NewRelationship(parent.ID, child.ID, domain.RelationParentChild)
	if err := g.AddRelationship(r); err != nil {
		t.Fatalf("AddRelationship() error = %v", err)
	}

	succ := g.Successors(parent.ID)
	if len(succ) != 1 || succ[0] != child.ID {
		t.Errorf("Successors(parent) = %v, want [%v]", succ, child.ID)
	}
	pred := g.Predecessors(child.ID)
	if len(pred) != 1 || pred[0] != parent.ID {
		t.Errorf("Predecessors(child) = %v, want [%v]", pred, parent.ID)
	}
}

func TestGraph_LiveFiltersMergedNodes(t *testing.T) {
	g := New()
	parent, child := newTestPerson(), newTestPerson()
	g.AddPerson(parent)
	g.AddPerson(child)
	r := domain.NewRelationship(parent.ID, child.ID, domain.RelationParentChild)
	_ = g.AddRelationship(r)

	child.Merged = true
	g.SetPerson(*child)

	if live := g.LiveSuccessors(parent.ID); len(live) != 0 {
		t.Errorf("expected no live successors once child is merged, got %v", live)
	}
}

func TestGraph_HasLiveSpouse(t *testing.T) {
	g := New()
	husband, wife := newTestPerson(), newTestPerson()
	g.AddPerson(husband)
	g.AddPerson(wife)
	r := domain.NewRelationship(husband.ID, wife.ID, domain.RelationSpouse)
	_ = g.AddRelationship(r)

	if !g.HasLiveSpouse(*husband) {
		t.Error("expected husband to have a live spouse")
	}
	if !g.HasLiveSpouse(*wife) {
		t.Error("expected wife to have a live spouse (undirected check)")
	}

	other := newTestPerson()
	g.AddPerson(other)
	if g.HasLiveSpouse(*other) {
		t.Error("unrelated person should have no live spouse")
	}
}

func TestGraph_CheckInvariants(t *testing.T) {
	g := New()
	p1, p2 := newTestPerson(), newTestPerson()
	g.AddPerson(p1)
	g.AddPerson(p2)
	r := domain.NewRelationship(p1.ID, p2.ID, domain.RelationParentChild)
	_ = g.AddRelationship(r)

	if err := g.CheckInvariants(); err != nil {
		t.Errorf("CheckInvariants() = %v, want nil", err)
	}
}
