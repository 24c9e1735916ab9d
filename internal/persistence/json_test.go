package persistence_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NumerousHats/twig-graft/internal/domain"
	"github.com/NumerousHats/twig-graft/internal/graph"
	"github.com/NumerousHats/twig-graft/internal/persistence"
)

func TestSaveLoad_RoundTripIsLossless(t *testing.T) {
	g := graph.New()

	husband := domain.NewPerson(domain.GenderMale)
	husband.AddName(domain.NewName(domain.NameBirth, domain.NameParts{Given: "Jan", Surname: "Kowalski"}))
	birth := domain.NewExactDate(time.Date(1850, time.March, 4, 0, 0, 0, 0, time.UTC))
	husband.AddFact(domain.Fact{Kind: domain.FactBirth, Date: &birth})

	wife := domain.NewPerson(domain.GenderFemale)
	wife.AddName(domain.NewName(domain.NameBirth, domain.NameParts{Given: "Maria", Surname: "Nowak"}))

	g.AddPerson(husband)
	g.AddPerson(wife)
	rel := domain.NewRelationship(husband.ID, wife.ID, domain.RelationSpouse)
	require.NoError(t, g.AddRelationship(rel))

	var buf bytes.Buffer
	n, err := persistence.Save(&buf, g)
	require.NoError(t, err)
	assert.Positive(t, n)

	loaded, err := persistence.Load(&buf)
	require.NoError(t, err)

	p, ok := loaded.Person(husband.ID)
	require.True(t, ok)
	assert.Equal(t, domain.GenderMale, p.Gender)
	require.Len(t, p.Names, 1)
	assert.Equal(t, "Kowalski", p.Names[0].Parts.Surname)
	require.Len(t, p.Facts, 1)
	require.NotNil(t, p.Facts[0].Date)
	assert.True(t, birth.Start.Equal(p.Facts[0].Date.Start))

	_, ok = loaded.RelationshipBetween(husband.ID, wife.ID)
	assert.True(t, ok)
}

func TestSaveLoad_PreservesMergedTombstones(t *testing.T) {
	g := graph.New()
	p := domain.NewPerson(domain.GenderUnknown)
	p.Merged = true
	g.AddPerson(p)

	var buf bytes.Buffer
	_, err := persistence.Save(&buf, g)
	require.NoError(t, err)

	loaded, err := persistence.Load(&buf)
	require.NoError(t, err)

	got, ok := loaded.Person(p.ID)
	require.True(t, ok)
	assert.True(t, got.Merged)
}

func TestLoad_RejectsDanglingRelationship(t *testing.T) {
	doc := `{"persons":[],"relations":[{"identifier":"11111111-1111-1111-1111-111111111111","from_id":"22222222-2222-2222-2222-222222222222","to_id":"33333333-3333-3333-3333-333333333333","relationship_type":"spouse"}]}`

	_, err := persistence.Load(bytes.NewBufferString(doc))
	assert.Error(t, err)
}

func TestLoad_RejectsInvalidPerson(t *testing.T) {
	doc := `{"persons":[{"identifier":"11111111-1111-1111-1111-111111111111","gender":"not-a-gender"}],"relations":[]}`

	_, err := persistence.Load(bytes.NewBufferString(doc))
	assert.Error(t, err)
}
