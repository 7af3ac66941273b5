package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddEntityValidation(t *testing.T) {
	kg := New(GraphTypeBusiness)

	assert.False(t, kg.AddEntity("e1", Entity{Type: "MONEY"}), "missing text must be rejected")
	assert.False(t, kg.AddEntity("e1", Entity{Text: "$500"}), "missing type must be rejected")
	assert.False(t, kg.AddEntity("", Entity{Text: "$500", Type: "MONEY"}), "missing id must be rejected")
	assert.Equal(t, 0, kg.EntityCount(), "rejected writes must leave the graph unchanged")

	assert.True(t, kg.AddEntity("e1", Entity{Text: "$500", Type: "MONEY"}))
	e, ok := kg.GetEntity("e1")
	require.True(t, ok)
	assert.Equal(t, 1.0, e.Confidence, "confidence defaults to 1.0")
	assert.Equal(t, "e1", e.ID)
}

func TestAddRelationshipRejectsDanglingEndpoints(t *testing.T) {
	kg := New(GraphTypeBusiness)
	require.True(t, kg.AddEntity("a", Entity{Text: "landlord", Type: "PERSON"}))
	require.True(t, kg.AddEntity("b", Entity{Text: "rent", Type: "MONEY"}))

	assert.False(t, kg.AddRelationship("r1", "a", "missing", Relationship{Relation: "pays"}))
	assert.False(t, kg.AddRelationship("r1", "missing", "b", Relationship{Relation: "pays"}))
	assert.False(t, kg.AddRelationship("r1", "a", "b", Relationship{}), "missing relation label")
	assert.Equal(t, 0, kg.RelationshipCount())

	assert.True(t, kg.AddRelationship("r1", "a", "b", Relationship{Relation: "pays"}))
	r, ok := kg.GetRelationship("r1")
	require.True(t, ok)
	assert.Equal(t, "a", r.SourceID)
	assert.Equal(t, "b", r.TargetID)
	assert.Equal(t, 1.0, r.Confidence)
}

func TestPropertiesAreCopiedOnInsert(t *testing.T) {
	kg := New(GraphTypeBusiness)
	props := map[string]interface{}{"clause": "payment"}
	require.True(t, kg.AddEntity("a", Entity{Text: "rent", Type: "MONEY", Properties: props}))

	props["clause"] = "mutated"
	e, _ := kg.GetEntity("a")
	assert.Equal(t, "payment", e.Properties["clause"])
}

func TestGetNeighborsDirections(t *testing.T) {
	kg := New(GraphTypeBusiness)
	for _, id := range []string{"a", "b", "c"} {
		require.True(t, kg.AddEntity(id, Entity{Text: id, Type: "NODE"}))
	}
	require.True(t, kg.AddRelationship("r1", "a", "b", Relationship{Relation: "links"}))
	require.True(t, kg.AddRelationship("r2", "c", "a", Relationship{Relation: "links"}))

	out := kg.GetNeighbors("a", DirectionOut)
	require.Len(t, out, 1)
	assert.Equal(t, "b", out[0].ID)

	in := kg.GetNeighbors("a", DirectionIn)
	require.Len(t, in, 1)
	assert.Equal(t, "c", in[0].ID)

	both := kg.GetNeighbors("a", DirectionBoth)
	require.Len(t, both, 2)
	assert.Equal(t, "b", both[0].ID)
	assert.Equal(t, "c", both[1].ID)

	assert.Empty(t, kg.GetNeighbors("unknown", DirectionBoth))
}

func TestSearchEntitiesScoring(t *testing.T) {
	kg := New(GraphTypeBusiness)
	require.True(t, kg.AddEntity("e1", Entity{Text: "rent", Type: "MONEY"}))
	require.True(t, kg.AddEntity("e2", Entity{Text: "rent payment", Type: "MONEY"}))
	require.True(t, kg.AddEntity("e3", Entity{Text: "landlord", Type: "PERSON"}))

	results := kg.SearchEntities("RENT")
	require.Len(t, results, 2)
	assert.Equal(t, "e1", results[0].Entity.ID, "exact text match ranks first")
	assert.Equal(t, 10, results[0].RelevanceScore)
	assert.Equal(t, "e2", results[1].Entity.ID)
	assert.Equal(t, 5, results[1].RelevanceScore)

	byType := kg.SearchEntities("money", "type")
	require.Len(t, byType, 2)
	assert.Equal(t, 10, byType[0].RelevanceScore)

	assert.Empty(t, kg.SearchEntities(""))
}

func TestSubgraphIsIndependent(t *testing.T) {
	kg := New(GraphTypeBusiness)
	for _, id := range []string{"a", "b", "c"} {
		require.True(t, kg.AddEntity(id, Entity{Text: id, Type: "NODE", Properties: map[string]interface{}{"k": "v"}}))
	}
	require.True(t, kg.AddRelationship("r1", "a", "b", Relationship{Relation: "links"}))
	require.True(t, kg.AddRelationship("r2", "b", "c", Relationship{Relation: "links"}))

	sub := kg.Subgraph([]string{"a", "b", "unknown"})
	assert.Equal(t, 2, sub.EntityCount())
	assert.Equal(t, 1, sub.RelationshipCount(), "only edges with both endpoints included survive")

	// Mutating the parent must not leak into the subgraph.
	require.True(t, kg.AddEntity("a", Entity{Text: "changed", Type: "NODE"}))
	e, ok := sub.GetEntity("a")
	require.True(t, ok)
	assert.Equal(t, "a", e.Text)
}

func TestMetadataRecomputed(t *testing.T) {
	kg := New(GraphTypeBusiness)
	require.True(t, kg.AddEntity("a", Entity{Text: "landlord", Type: "PERSON"}))
	require.True(t, kg.AddEntity("b", Entity{Text: "tenant", Type: "PERSON"}))
	require.True(t, kg.AddEntity("c", Entity{Text: "rent", Type: "MONEY"}))
	require.True(t, kg.AddRelationship("r1", "b", "c", Relationship{Relation: "pays"}))

	md := kg.Metadata()
	assert.Equal(t, 3, md.TotalEntities)
	assert.Equal(t, 1, md.TotalRelationships)
	assert.Equal(t, 2, md.EntityTypeCounts["PERSON"])
	assert.Equal(t, 1, md.EntityTypeCounts["MONEY"])
	assert.Equal(t, 1, md.RelationshipTypeCounts["pays"])
}

func TestStatistics(t *testing.T) {
	kg := New(GraphTypeBusiness)
	for _, id := range []string{"a", "b", "c", "d"} {
		require.True(t, kg.AddEntity(id, Entity{Text: id, Type: "NODE"}))
	}
	require.True(t, kg.AddRelationship("r1", "a", "b", Relationship{Relation: "links"}))
	require.True(t, kg.AddRelationship("r2", "b", "c", Relationship{Relation: "links"}))

	stats := kg.Statistics()
	assert.Equal(t, 4, stats.TotalEntities)
	assert.Equal(t, 2, stats.TotalRelationships)
	assert.Equal(t, 2, stats.NumberOfComponents, "d is isolated")
	assert.False(t, stats.IsConnected)
	assert.Equal(t, 3, stats.LargestComponentSize)
	assert.Equal(t, 2, stats.MaxDegree)
	assert.Equal(t, 0, stats.MinDegree)
	assert.InDelta(t, 1.0, stats.AverageDegree, 1e-9)
	assert.InDelta(t, 2.0/12.0, stats.GraphDensity, 1e-9)

	empty := New(GraphTypeBusiness)
	assert.Equal(t, Statistics{
		EntityTypes:       map[string]int{},
		RelationshipTypes: map[string]int{},
	}, empty.Statistics())
}

func TestSnapshotRoundTrip(t *testing.T) {
	kg := New(GraphTypeProgrammatic)
	require.True(t, kg.AddEntity("a", Entity{Text: "payRent", Type: "FUNCTION"}))
	require.True(t, kg.AddEntity("b", Entity{Text: "rentAmount", Type: "STATE_VARIABLE"}))
	require.True(t, kg.AddRelationship("r1", "a", "b", Relationship{Relation: "modifies"}))

	restored := FromSnapshot(kg.Snapshot())
	assert.Equal(t, GraphTypeProgrammatic, restored.GraphType())
	assert.Equal(t, kg.Entities(), restored.Entities())
	assert.Equal(t, kg.Relationships(), restored.Relationships())
}
