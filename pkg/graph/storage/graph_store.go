// Package storage persists knowledge graphs. The JSON document form is the
// canonical snapshot format; CSV and GraphML exports and the Neo4j backend
// are ancillary and fail independently of the store.
package storage

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/tidwall/gjson"

	"github.com/athapong/kgalign/pkg/graph"
)

// GraphStore stores and retrieves knowledge graphs by name.
type GraphStore interface {
	StoreGraph(ctx context.Context, name string, kg *graph.KnowledgeGraph) error
	LoadGraph(ctx context.Context, name string) (*graph.KnowledgeGraph, error)
}

// JSONGraphStore keeps each graph as an indented JSON document under a base
// directory.
type JSONGraphStore struct {
	baseDir string
	logger  *logrus.Logger
}

// NewJSONGraphStore creates a store rooted at baseDir. The directory is
// created on first write.
func NewJSONGraphStore(baseDir string) *JSONGraphStore {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	return &JSONGraphStore{
		baseDir: baseDir,
		logger:  logger,
	}
}

// StoreGraph writes the snapshot of kg to <baseDir>/<name>.json.
func (s *JSONGraphStore) StoreGraph(ctx context.Context, name string, kg *graph.KnowledgeGraph) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.MkdirAll(s.baseDir, 0o755); err != nil {
		return errors.Wrap(err, "failed to create graph store directory")
	}

	data, err := json.MarshalIndent(kg.Snapshot(), "", "  ")
	if err != nil {
		return errors.Wrap(err, "failed to marshal graph")
	}

	path := s.graphPath(name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrapf(err, "failed to write graph to %s", path)
	}

	s.logger.WithFields(logrus.Fields{
		"graph":    name,
		"path":     path,
		"entities": kg.EntityCount(),
	}).Info("Stored graph snapshot")
	return nil
}

// LoadGraph reads <baseDir>/<name>.json and rebuilds the graph through the
// validating import path.
func (s *JSONGraphStore) LoadGraph(ctx context.Context, name string) (*graph.KnowledgeGraph, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	path := s.graphPath(name)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read graph from %s", path)
	}
	return ImportJSON(data)
}

func (s *JSONGraphStore) graphPath(name string) string {
	return filepath.Join(s.baseDir, name+".json")
}

// ImportJSON rebuilds a graph from a snapshot document. Parsing is tolerant:
// unknown keys are ignored and elements that fail store validation are
// skipped rather than aborting the import.
func ImportJSON(data []byte) (*graph.KnowledgeGraph, error) {
	if !gjson.ValidBytes(data) {
		return nil, errors.New("invalid JSON graph document")
	}
	doc := gjson.ParseBytes(data)

	kg := graph.New(doc.Get("graph_type").String())

	doc.Get("entities").ForEach(func(key, value gjson.Result) bool {
		kg.AddEntity(key.String(), graph.Entity{
			Text:       value.Get("text").String(),
			Type:       value.Get("type").String(),
			Confidence: value.Get("confidence").Float(),
			Properties: importProperties(value.Get("properties")),
		})
		return true
	})

	doc.Get("relationships").ForEach(func(key, value gjson.Result) bool {
		kg.AddRelationship(
			key.String(),
			value.Get("source").String(),
			value.Get("target").String(),
			graph.Relationship{
				Relation:   value.Get("relation").String(),
				Confidence: value.Get("confidence").Float(),
				Properties: importProperties(value.Get("properties")),
			},
		)
		return true
	})

	return kg, nil
}

func importProperties(props gjson.Result) map[string]interface{} {
	if !props.IsObject() {
		return nil
	}
	out := make(map[string]interface{})
	props.ForEach(func(k, v gjson.Result) bool {
		out[k.String()] = v.Value()
		return true
	})
	return out
}
