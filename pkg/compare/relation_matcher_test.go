package compare

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/athapong/kgalign/pkg/graph"
)

func graphWithEdge(t *testing.T, graphType, sourceType, targetType, relation string) *graph.KnowledgeGraph {
	t.Helper()
	kg := graph.New(graphType)
	require.True(t, kg.AddEntity("a", graph.Entity{Text: "a", Type: sourceType}))
	require.True(t, kg.AddEntity("b", graph.Entity{Text: "b", Type: targetType}))
	require.True(t, kg.AddRelationship("r", "a", "b", graph.Relationship{Relation: relation}))
	return kg
}

func TestEqualLabelsWithEqualEndpointTypes(t *testing.T) {
	source := graphWithEdge(t, graph.GraphTypeBusiness, "CONTRACT", "MONEY", "contains")
	target := graphWithEdge(t, graph.GraphTypeProgrammatic, "CONTRACT", "MONEY", "contains")

	m := NewRelationshipMatcher(DefaultMatcherConfig())
	sr := source.Relationships()[0]
	tr := target.Relationships()[0]

	score := m.Score(sr, source, tr, target)
	assert.GreaterOrEqual(t, score, 0.5,
		"label equality plus exact endpoint types must clear 0.5")

	matches := m.Match(source, target)
	require.Len(t, matches, 1)
	assert.Equal(t, MatchTypeExact, matches[0].MatchType)
	assert.Equal(t, "r", matches[0].SourceRelation.ID)
}

func TestPartialEndpointCredit(t *testing.T) {
	m := NewRelationshipMatcher(DefaultMatcherConfig())

	// DATE and DURATION share a domain group without an explicit
	// compatibility pair, so each endpoint earns the partial 0.06.
	source := graphWithEdge(t, graph.GraphTypeBusiness, "DATE", "DATE", "expires_on")
	exact := graphWithEdge(t, graph.GraphTypeProgrammatic, "DATE", "DATE", "expires_on")
	partial := graphWithEdge(t, graph.GraphTypeProgrammatic, "DURATION", "DURATION", "expires_on")

	sr := source.Relationships()[0]
	exactScore := m.Score(sr, source, exact.Relationships()[0], exact)
	partialScore := m.Score(sr, source, partial.Relationships()[0], partial)

	assert.Greater(t, exactScore, partialScore)
	assert.InDelta(t, 0.08, exactScore-partialScore, 1e-9,
		"two endpoints each drop from 0.1 to 0.06")
}

func TestBusinessRelationMapping(t *testing.T) {
	m := NewRelationshipMatcher(DefaultMatcherConfig())

	source := graphWithEdge(t, graph.GraphTypeBusiness, "PERSON", "MONEY", "pays")
	target := graphWithEdge(t, graph.GraphTypeProgrammatic, "ADDRESS", "UINT256", "transfers")

	score := m.Score(source.Relationships()[0], source, target.Relationships()[0], target)
	// 0.8 mapping * 0.4, compatibility-table labels 0.2, endpoints 0.1+0.1,
	// shared financial semantic category 0.1.
	assert.GreaterOrEqual(t, score, 0.7)
	assert.LessOrEqual(t, score, 1.0)
}

func TestRelationshipMatchAgainstEmptyTarget(t *testing.T) {
	m := NewRelationshipMatcher(DefaultMatcherConfig())
	source := graphWithEdge(t, graph.GraphTypeBusiness, "PERSON", "MONEY", "pays")
	target := graph.New(graph.GraphTypeProgrammatic)

	assert.Empty(t, m.Match(source, target))
}

func TestRelationshipDirectionalAsymmetry(t *testing.T) {
	m := NewRelationshipMatcher(DefaultMatcherConfig())

	source := graph.New(graph.GraphTypeBusiness)
	require.True(t, source.AddEntity("p", graph.Entity{Text: "tenant", Type: "PERSON"}))
	require.True(t, source.AddEntity("m", graph.Entity{Text: "rent", Type: "MONEY"}))
	require.True(t, source.AddEntity("d", graph.Entity{Text: "deposit", Type: "MONEY"}))
	require.True(t, source.AddRelationship("r1", "p", "m", graph.Relationship{Relation: "pays"}))
	require.True(t, source.AddRelationship("r2", "p", "d", graph.Relationship{Relation: "pays"}))

	target := graphWithEdge(t, graph.GraphTypeProgrammatic, "ADDRESS", "UINT256", "transfers")

	forward := m.Match(source, target)
	backward := m.Match(target, source)

	assert.Len(t, forward, 2, "both source edges claim the single target edge")
	for _, match := range backward {
		assert.GreaterOrEqual(t, match.Score, 0.0)
		assert.LessOrEqual(t, match.Score, 1.0)
	}
}
