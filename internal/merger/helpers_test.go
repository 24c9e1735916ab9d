package merger_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/NumerousHats/twig-graft/internal/domain"
	"github.com/NumerousHats/twig-graft/internal/graph"
)

// buildChain adds n Persons named surname/"Person<i>", born one year apart
// starting at baseYear, linked as a parent-child chain, to g.
func buildChain(t *testing.T, g *graph.Graph, n int, baseYear int, surname string) []uuid.UUID {
	t.Helper()
	ids := make([]uuid.UUID, n)
	for i := 0; i < n; i++ {
		p := namedPerson(givenFor(i), surname, baseYear+i)
		g.AddPerson(p)
		ids[i] = p.ID
	}
	for i := 0; i+1 < n; i++ {
		r := domain.NewRelationship(ids[i], ids[i+1], domain.RelationParentChild)
		require.NoError(t, g.AddRelationship(r))
	}
	return ids
}

// buildChainWithFirstEdgeFacts is buildChain but attaches facts to the
// first edge (ids[0] -> ids[1]) instead of leaving it bare, used to
// exercise Relationship.Merge conflicts during a pair merge.
func buildChainWithFirstEdgeFacts(t *testing.T, g *graph.Graph, n int, baseYear int, surname string, facts []domain.Fact) []uuid.UUID {
	t.Helper()
	ids := make([]uuid.UUID, n)
	for i := 0; i < n; i++ {
		p := namedPerson(givenFor(i), surname, baseYear+i)
		g.AddPerson(p)
		ids[i] = p.ID
	}
	for i := 0; i+1 < n; i++ {
		r := domain.NewRelationship(ids[i], ids[i+1], domain.RelationParentChild)
		if i == 0 {
			r.Facts = facts
		}
		require.NoError(t, g.AddRelationship(r))
	}
	return ids
}

func exactDate(y int) *domain.GenDate {
	d := domain.NewExactDate(time.Date(y, time.January, 1, 0, 0, 0, 0, time.UTC))
	return &d
}

// buildVShape adds a Parent Person plus two indistinguishable Twin
// children to g, connected by parent-child edges, and returns their ids.
func buildVShape(t *testing.T, g *graph.Graph, surname string) (parent, twin1, twin2 uuid.UUID) {
	t.Helper()
	p := namedPerson("Parent", surname, 1850)
	a := namedPerson("Twin", surname, 1880)
	b := namedPerson("Twin", surname, 1880)
	g.AddPerson(p)
	g.AddPerson(a)
	g.AddPerson(b)
	require.NoError(t, g.AddRelationship(domain.NewRelationship(p.ID, a.ID, domain.RelationParentChild)))
	require.NoError(t, g.AddRelationship(domain.NewRelationship(p.ID, b.ID, domain.RelationParentChild)))
	return p.ID, a.ID, b.ID
}

func namedPerson(given, surname string, birthYear int) *domain.Person {
	p := domain.NewPerson(domain.GenderUnknown)
	p.AddName(domain.NewName(domain.NameBirth, domain.NameParts{Given: given, Surname: surname}))
	d := domain.NewExactDate(time.Date(birthYear, time.January, 1, 0, 0, 0, 0, time.UTC))
	p.AddFact(domain.Fact{Kind: domain.FactBirth, Date: &d})
	return p
}

func givenFor(i int) string {
	names := []string{"Anna", "Bartosz", "Cecylia", "Dominik", "Ewa", "Franciszek", "Grazyna"}
	if i < len(names) {
		return names[i]
	}
	return "Person"
}
