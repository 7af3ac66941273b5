package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/athapong/kgalign/pkg/graph"
)

func buildGraph(t *testing.T, edges [][2]string) *graph.KnowledgeGraph {
	t.Helper()
	kg := graph.New(graph.GraphTypeBusiness)
	seen := map[string]bool{}
	addNode := func(id string) {
		if !seen[id] {
			require.True(t, kg.AddEntity(id, graph.Entity{Text: id, Type: "NODE"}))
			seen[id] = true
		}
	}
	for i, edge := range edges {
		addNode(edge[0])
		addNode(edge[1])
		require.True(t, kg.AddRelationship(
			"r"+string(rune('a'+i)), edge[0], edge[1],
			graph.Relationship{Relation: "links"}))
	}
	return kg
}

func TestCentralityStar(t *testing.T) {
	kg := buildGraph(t, [][2]string{
		{"center", "leaf1"},
		{"center", "leaf2"},
		{"center", "leaf3"},
	})

	measures := Centrality(kg)
	assert.InDelta(t, 1.0, measures.Degree["center"], 1e-9)
	assert.InDelta(t, 1.0/3.0, measures.Degree["leaf1"], 1e-9)
	assert.InDelta(t, 1.0, measures.Betweenness["center"], 1e-9,
		"every leaf pair routes through the center")
	assert.InDelta(t, 0.0, measures.Betweenness["leaf1"], 1e-9)
	assert.Greater(t, measures.Closeness["center"], measures.Closeness["leaf1"])
}

func TestCentralityDegenerate(t *testing.T) {
	empty := graph.New(graph.GraphTypeBusiness)
	measures := Centrality(empty)
	assert.Empty(t, measures.Degree)

	single := graph.New(graph.GraphTypeBusiness)
	require.True(t, single.AddEntity("only", graph.Entity{Text: "only", Type: "NODE"}))
	measures = Centrality(single)
	assert.InDelta(t, 0.0, measures.Degree["only"], 1e-9)
}

func TestCommunitiesComponents(t *testing.T) {
	kg := buildGraph(t, [][2]string{
		{"a", "b"},
		{"b", "c"},
		{"x", "y"},
	})

	communities := Communities(kg)
	require.Len(t, communities, 2)
	assert.Equal(t, []string{"a", "b", "c"}, communities[0])
	assert.Equal(t, []string{"x", "y"}, communities[1])
}

func TestCommunitiesEmptyGraph(t *testing.T) {
	assert.Nil(t, Communities(graph.New(graph.GraphTypeBusiness)))
}

func TestShortestPath(t *testing.T) {
	kg := buildGraph(t, [][2]string{
		{"a", "b"},
		{"b", "c"},
		{"c", "d"},
		{"x", "y"},
	})

	path, ok := ShortestPath(kg, "a", "d")
	require.True(t, ok)
	assert.Equal(t, []string{"a", "b", "c", "d"}, path)

	// Traversal is undirected.
	path, ok = ShortestPath(kg, "d", "a")
	require.True(t, ok)
	assert.Equal(t, []string{"d", "c", "b", "a"}, path)

	_, ok = ShortestPath(kg, "a", "x")
	assert.False(t, ok, "no path between components")

	_, ok = ShortestPath(kg, "a", "missing")
	assert.False(t, ok)

	path, ok = ShortestPath(kg, "a", "a")
	require.True(t, ok)
	assert.Equal(t, []string{"a"}, path)
}
