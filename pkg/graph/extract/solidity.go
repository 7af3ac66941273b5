package extract

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/athapong/kgalign/pkg/graph"
)

var (
	contractPattern = regexp.MustCompile(`(?m)^\s*contract\s+(\w+)`)
	statePattern    = regexp.MustCompile(`(?m)^\s*(uint\d*|int\d*|address|bool|string|bytes\d*|mapping\s*\([^)]*\))\s+(?:public|private|internal|constant|immutable|\s)*\s*(\w+)\s*[;=]`)
	functionPattern = regexp.MustCompile(`(?m)function\s+(\w+)\s*\(`)
	eventPattern    = regexp.MustCompile(`(?m)event\s+(\w+)\s*\(`)
	modifierPattern = regexp.MustCompile(`(?m)modifier\s+(\w+)`)
)

// SolidityExtractor builds a programmatic knowledge graph from Solidity
// source using lightweight pattern analysis. It recognizes contract
// declarations, state variables, functions, events and modifiers, and links
// each member to its declaring contract.
type SolidityExtractor struct {
	logger *logrus.Logger
}

// NewSolidityExtractor creates an extractor.
func NewSolidityExtractor() *SolidityExtractor {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	return &SolidityExtractor{logger: logger}
}

// Extract parses source and returns a populated programmatic graph.
func (x *SolidityExtractor) Extract(source string) *graph.KnowledgeGraph {
	kg := graph.New(graph.GraphTypeProgrammatic)

	contractID := ""
	if m := contractPattern.FindStringSubmatch(source); m != nil {
		contractID = "contract_" + m[1]
		kg.AddEntity(contractID, graph.Entity{Text: m[1], Type: "CONTRACT"})
	}

	counter := 0
	add := func(text, entityType, relation string, props map[string]interface{}) {
		counter++
		id := fmt.Sprintf("%s_%d_%s", strings.ToLower(entityType), counter, text)
		if !kg.AddEntity(id, graph.Entity{Text: text, Type: entityType, Properties: props}) {
			return
		}
		if contractID != "" {
			kg.AddRelationship(fmt.Sprintf("rel_%d", counter), contractID, id,
				graph.Relationship{Relation: relation})
		}
	}

	for _, m := range statePattern.FindAllStringSubmatch(source, -1) {
		add(m[2], "STATE_VARIABLE", "contains", map[string]interface{}{"solidity_type": m[1]})
	}
	for _, m := range functionPattern.FindAllStringSubmatch(source, -1) {
		add(m[1], "FUNCTION", "contains", nil)
	}
	for _, m := range eventPattern.FindAllStringSubmatch(source, -1) {
		add(m[1], "EVENT", "contains", nil)
	}
	for _, m := range modifierPattern.FindAllStringSubmatch(source, -1) {
		add(m[1], "MODIFIER", "contains", nil)
	}

	x.logger.WithFields(logrus.Fields{
		"entities":      kg.EntityCount(),
		"relationships": kg.RelationshipCount(),
	}).Info("Extracted programmatic graph")
	return kg
}
