package compare

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/athapong/kgalign/pkg/graph"
)

func leaseGraph(t *testing.T, graphType string) *graph.KnowledgeGraph {
	t.Helper()
	kg := graph.New(graphType)
	require.True(t, kg.AddEntity("org", graph.Entity{Text: "Acme Corporation", Type: "ORGANIZATION"}))
	require.True(t, kg.AddEntity("deposit", graph.Entity{Text: "security deposit", Type: "MONEY"}))
	require.True(t, kg.AddRelationship("r1", "org", "deposit", graph.Relationship{Relation: "pays"}))
	return kg
}

func TestSelfComparison(t *testing.T) {
	source := leaseGraph(t, graph.GraphTypeBusiness)
	target := leaseGraph(t, graph.GraphTypeBusiness)

	report := NewComparator(DefaultMatcherConfig()).Compare(source, target)

	assert.InDelta(t, 1.0, report.EntityPreservation, 1e-9)
	assert.InDelta(t, 1.0, report.RelationshipPreservation, 1e-9)
	assert.InDelta(t, 1.0, report.OverallSimilarity, 1e-9)
	for _, m := range report.EntityMatches {
		assert.Equal(t, MatchTypeExact, m.MatchType)
	}
	for _, m := range report.RelationshipMatches {
		assert.Equal(t, MatchTypeExact, m.MatchType)
	}
	assert.Equal(t, ComplianceHigh, report.Compliance.ComplianceLevel)
	assert.True(t, report.Compliance.IsCompliant)
	assert.Empty(t, report.Compliance.ComplianceIssues)
	assert.Empty(t, report.Summary.UnmatchedSourceEntities)
	assert.Empty(t, report.Summary.UnmatchedSourceRelationships)
	assert.True(t, strings.HasPrefix(report.ComparisonID, "comparison_"))
}

func TestEmptyGraphConventions(t *testing.T) {
	comparator := NewComparator(DefaultMatcherConfig())
	empty := func() *graph.KnowledgeGraph { return graph.New(graph.GraphTypeBusiness) }

	t.Run("empty vs empty", func(t *testing.T) {
		report := comparator.Compare(empty(), empty())
		assert.InDelta(t, 1.0, report.EntityPreservation, 1e-9)
		assert.InDelta(t, 1.0, report.RelationshipPreservation, 1e-9)
		assert.InDelta(t, 1.0, report.OverallSimilarity, 1e-9)
	})

	t.Run("populated vs empty", func(t *testing.T) {
		report := comparator.Compare(leaseGraph(t, graph.GraphTypeBusiness), empty())
		assert.InDelta(t, 0.0, report.EntityPreservation, 1e-9)
		assert.InDelta(t, 0.0, report.RelationshipPreservation, 1e-9)
		assert.Equal(t, ComplianceLow, report.Compliance.ComplianceLevel)
		assert.False(t, report.Compliance.IsCompliant)
		assert.Len(t, report.Compliance.ComplianceIssues, 3)
		assert.Len(t, report.Summary.UnmatchedSourceEntities, 2)
	})

	t.Run("empty vs populated", func(t *testing.T) {
		report := comparator.Compare(empty(), leaseGraph(t, graph.GraphTypeProgrammatic))
		assert.InDelta(t, 0.0, report.EntityPreservation, 1e-9)
		assert.InDelta(t, 0.0, report.RelationshipPreservation, 1e-9)
	})
}

func TestQualityDistribution(t *testing.T) {
	dist := qualityDistribution([]float64{0.95, 0.75, 0.6, 0.41, 0.4, 0.1})
	assert.Equal(t, 2, dist[QualityHigh])
	assert.Equal(t, 2, dist[QualityMedium])
	assert.Equal(t, 2, dist[QualityLow])

	empty := qualityDistribution(nil)
	assert.Equal(t, 0, empty[QualityHigh])
	assert.Equal(t, 0, empty[QualityMedium])
	assert.Equal(t, 0, empty[QualityLow])
}

func TestHighQualityScenarioBucketing(t *testing.T) {
	source := graph.New(graph.GraphTypeBusiness)
	require.True(t, source.AddEntity("org", graph.Entity{Text: "ABC Corporation", Type: "ORGANIZATION"}))
	target := graph.New(graph.GraphTypeProgrammatic)
	require.True(t, target.AddEntity("client", graph.Entity{Text: "client", Type: "VARIABLE"}))

	report := NewComparator(DefaultMatcherConfig()).Compare(source, target)
	require.Len(t, report.EntityMatches, 1)
	assert.GreaterOrEqual(t, report.EntityMatches[0].Score, 0.75)
	assert.Equal(t, 1, report.EntityAnalysis.MatchQualityDistribution[QualityHigh])
}

func TestComplianceLevels(t *testing.T) {
	cases := []struct {
		overall float64
		level   string
		ok      bool
	}{
		{0.9, ComplianceHigh, true},
		{0.7, ComplianceMedium, true},
		{0.55, ComplianceMedium, false},
		{0.3, ComplianceLow, false},
	}
	for _, tc := range cases {
		assessment := assessCompliance(tc.overall, 1.0, 1.0)
		assert.Equal(t, tc.level, assessment.ComplianceLevel, "overall %v", tc.overall)
		assert.Equal(t, tc.ok, assessment.IsCompliant, "overall %v", tc.overall)
	}
}

func TestRecommendationRules(t *testing.T) {
	recs := buildRecommendations(0.2, 3, 5)
	require.Len(t, recs, 3, "redesign, entity mapping and relationship modeling rules all fire")
	assert.Contains(t, recs[0], "redesign")

	good := buildRecommendations(0.9, 50, 50)
	require.Len(t, good, 1)
	assert.Contains(t, good[0], "Good alignment")
}

func TestCoveragePercent(t *testing.T) {
	assert.InDelta(t, 50.0, coveragePercent(1, 2), 1e-9)
	assert.InDelta(t, 0.0, coveragePercent(0, 0), 1e-9)
	assert.InDelta(t, 200.0, coveragePercent(4, 2), 1e-9,
		"many-to-one matching can claim a target more than once")
}
