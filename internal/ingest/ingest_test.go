package ingest_test

import (
	"testing"

	"github.com/NumerousHats/twig-graft/internal/domain"
	"github.com/NumerousHats/twig-graft/internal/graph"
	"github.com/NumerousHats/twig-graft/internal/ingest"
)

type fakeRecord struct {
	people    []domain.Person
	relations []domain.Relationship
}

func (r fakeRecord) People() []domain.Person           { return r.people }
func (r fakeRecord) Relations() []domain.Relationship { return r.relations }

func TestAppend_AddsPeopleBeforeRelations(t *testing.T) {
	a := domain.NewPerson(domain.GenderMale)
	b := domain.NewPerson(domain.GenderFemale)
	rel := domain.NewRelationship(a.ID, b.ID, domain.RelationSpouse)

	rec := fakeRecord{
		people:    []domain.Person{*a, *b},
		relations: []domain.Relationship{*rel},
	}

	g := graph.New()
	if err := ingest.Append(g, rec); err != nil {
		t.Fatalf("Append() error = %v", err)
	}
	if _, ok := g.Person(a.ID); !ok {
		t.Error("expected Person a to be present")
	}
	if _, ok := g.RelationshipBetween(a.ID, b.ID); !ok {
		t.Error("expected the spouse Relationship to be present")
	}
}

func TestAppend_RejectsDanglingRelationship(t *testing.T) {
	a := domain.NewPerson(domain.GenderMale)
	rel := domain.NewRelationship(a.ID, domain.NewPerson(domain.GenderFemale).ID, domain.RelationSpouse)

	rec := fakeRecord{
		people:    []domain.Person{*a},
		relations: []domain.Relationship{*rel},
	}

	g := graph.New()
	if err := ingest.Append(g, rec); err == nil {
		t.Error("expected an error for a Relationship whose other endpoint was never added")
	}
}

func TestAppend_RejectsInvalidPerson(t *testing.T) {
	rec := fakeRecord{people: []domain.Person{{Gender: "not-a-gender"}}}

	g := graph.New()
	if err := ingest.Append(g, rec); err == nil {
		t.Error("expected an error for an invalid Person")
	}
}
