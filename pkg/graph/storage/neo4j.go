package storage

import (
	"context"

	"github.com/neo4j/neo4j-go-driver/v4/neo4j"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/athapong/kgalign/pkg/graph"
)

// Neo4jStore persists graphs into a Neo4j database. Each stored graph is
// namespaced by name so multiple snapshots can coexist.
type Neo4jStore struct {
	driver neo4j.Driver
	logger *logrus.Logger
}

// NewNeo4jStore connects to the database at uri and verifies connectivity.
func NewNeo4jStore(uri, username, password string) (*Neo4jStore, error) {
	driver, err := neo4j.NewDriver(uri, neo4j.BasicAuth(username, password, ""))
	if err != nil {
		return nil, errors.Wrap(err, "failed to create Neo4j driver")
	}
	if err := driver.VerifyConnectivity(); err != nil {
		return nil, errors.Wrap(err, "failed to connect to Neo4j")
	}

	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	return &Neo4jStore{driver: driver, logger: logger}, nil
}

// Close releases the underlying driver.
func (s *Neo4jStore) Close() error {
	return s.driver.Close()
}

// StoreGraph replaces the stored graph under name with the contents of kg.
func (s *Neo4jStore) StoreGraph(ctx context.Context, name string, kg *graph.KnowledgeGraph) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	session := s.driver.NewSession(neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close()

	if _, err := session.Run(
		`MATCH (n:Entity {graph: $graph}) DETACH DELETE n`,
		map[string]interface{}{"graph": name},
	); err != nil {
		return errors.Wrap(err, "failed to clear existing graph")
	}

	for _, e := range kg.Entities() {
		if _, err := session.Run(
			`CREATE (n:Entity {graph: $graph, id: $id, text: $text, type: $type, confidence: $confidence})`,
			map[string]interface{}{
				"graph":      name,
				"id":         e.ID,
				"text":       e.Text,
				"type":       e.Type,
				"confidence": e.Confidence,
			},
		); err != nil {
			return errors.Wrapf(err, "failed to store entity %s", e.ID)
		}
	}

	for _, r := range kg.Relationships() {
		if _, err := session.Run(
			`MATCH (a:Entity {graph: $graph, id: $source}), (b:Entity {graph: $graph, id: $target})
			 CREATE (a)-[:RELATES {graph: $graph, id: $id, relation: $relation, confidence: $confidence}]->(b)`,
			map[string]interface{}{
				"graph":      name,
				"id":         r.ID,
				"source":     r.SourceID,
				"target":     r.TargetID,
				"relation":   r.Relation,
				"confidence": r.Confidence,
			},
		); err != nil {
			return errors.Wrapf(err, "failed to store relationship %s", r.ID)
		}
	}

	s.logger.WithFields(logrus.Fields{
		"graph":         name,
		"entities":      kg.EntityCount(),
		"relationships": kg.RelationshipCount(),
	}).Info("Stored graph in Neo4j")
	return nil
}

// LoadGraph rebuilds the graph stored under name. The graph type tag is
// recorded on load as the store name.
func (s *Neo4jStore) LoadGraph(ctx context.Context, name string) (*graph.KnowledgeGraph, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	session := s.driver.NewSession(neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close()

	kg := graph.New(name)

	nodes, err := session.Run(
		`MATCH (n:Entity {graph: $graph}) RETURN n.id AS id, n.text AS text, n.type AS type, n.confidence AS confidence`,
		map[string]interface{}{"graph": name},
	)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query entities")
	}
	for nodes.Next() {
		record := nodes.Record()
		id, _ := record.Get("id")
		text, _ := record.Get("text")
		entityType, _ := record.Get("type")
		confidence, _ := record.Get("confidence")
		kg.AddEntity(asString(id), graph.Entity{
			Text:       asString(text),
			Type:       asString(entityType),
			Confidence: asFloat(confidence),
		})
	}
	if err := nodes.Err(); err != nil {
		return nil, errors.Wrap(err, "failed to read entities")
	}

	edges, err := session.Run(
		`MATCH (a:Entity {graph: $graph})-[r:RELATES {graph: $graph}]->(b:Entity {graph: $graph})
		 RETURN r.id AS id, a.id AS source, b.id AS target, r.relation AS relation, r.confidence AS confidence`,
		map[string]interface{}{"graph": name},
	)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query relationships")
	}
	for edges.Next() {
		record := edges.Record()
		id, _ := record.Get("id")
		source, _ := record.Get("source")
		target, _ := record.Get("target")
		relation, _ := record.Get("relation")
		confidence, _ := record.Get("confidence")
		kg.AddRelationship(asString(id), asString(source), asString(target), graph.Relationship{
			Relation:   asString(relation),
			Confidence: asFloat(confidence),
		})
	}
	if err := edges.Err(); err != nil {
		return nil, errors.Wrap(err, "failed to read relationships")
	}

	return kg, nil
}

func asString(v interface{}) string {
	s, _ := v.(string)
	return s
}

func asFloat(v interface{}) float64 {
	f, _ := v.(float64)
	return f
}
