package storage

import (
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/athapong/kgalign/pkg/graph"
)

func sampleGraph(t *testing.T) *graph.KnowledgeGraph {
	t.Helper()
	kg := graph.New(graph.GraphTypeBusiness)
	require.True(t, kg.AddEntity("org", graph.Entity{
		Text: "Acme Corporation", Type: "ORGANIZATION",
		Properties: map[string]interface{}{"role": "landlord"},
	}))
	require.True(t, kg.AddEntity("rent", graph.Entity{Text: "$1,500", Type: "MONEY", Confidence: 0.8}))
	require.True(t, kg.AddRelationship("r1", "org", "rent", graph.Relationship{Relation: "pays"}))
	return kg
}

func TestJSONGraphStoreRoundTrip(t *testing.T) {
	store := NewJSONGraphStore(t.TempDir())
	ctx := context.Background()

	original := sampleGraph(t)
	require.NoError(t, store.StoreGraph(ctx, "lease", original))

	loaded, err := store.LoadGraph(ctx, "lease")
	require.NoError(t, err)

	assert.Equal(t, graph.GraphTypeBusiness, loaded.GraphType())
	assert.Equal(t, original.Entities(), loaded.Entities())
	assert.Equal(t, original.Relationships(), loaded.Relationships())
}

func TestLoadGraphMissing(t *testing.T) {
	store := NewJSONGraphStore(t.TempDir())
	_, err := store.LoadGraph(context.Background(), "nope")
	assert.Error(t, err)
}

func TestImportJSONTolerance(t *testing.T) {
	doc := []byte(`{
		"graph_type": "business",
		"unknown_key": 42,
		"entities": {
			"ok":      {"text": "rent", "type": "MONEY", "confidence": 0.5},
			"invalid": {"text": "", "type": "MONEY"}
		},
		"relationships": {
			"good":     {"source": "ok", "target": "ok", "relation": "self"},
			"dangling": {"source": "ok", "target": "missing", "relation": "pays"}
		}
	}`)

	kg, err := ImportJSON(doc)
	require.NoError(t, err)
	assert.Equal(t, 1, kg.EntityCount(), "invalid entity is skipped")
	assert.Equal(t, 1, kg.RelationshipCount(), "dangling relationship is skipped")

	e, ok := kg.GetEntity("ok")
	require.True(t, ok)
	assert.Equal(t, 0.5, e.Confidence)
}

func TestImportJSONInvalidDocument(t *testing.T) {
	_, err := ImportJSON([]byte("{not json"))
	assert.Error(t, err)
}

func TestExportAll(t *testing.T) {
	dir := t.TempDir()
	written := ExportAll(sampleGraph(t), dir, "lease")

	require.Len(t, written, 3)
	for format, path := range written {
		info, err := os.Stat(path)
		require.NoError(t, err, "format %s", format)
		assert.Greater(t, info.Size(), int64(0))
	}

	f, err := os.Open(filepath.Join(dir, "lease.csv"))
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"source_id", "source_text", "relation", "target_id", "target_text"}, rows[0])
	assert.Equal(t, []string{"org", "Acme Corporation", "pays", "rent", "$1,500"}, rows[1])
}
