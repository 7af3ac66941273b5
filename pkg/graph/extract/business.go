// Package extract provides convenience producers that populate knowledge
// graphs from raw contract sources. The comparison core does not depend on
// this package; any producer emitting the graph shapes works as well.
package extract

import (
	"regexp"
	"strings"

	"github.com/google/uuid"
	"github.com/jdkato/prose/v2"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/athapong/kgalign/pkg/graph"
)

var (
	moneyPattern = regexp.MustCompile(`\$[\d,]+(?:\.\d+)?`)
	datePattern  = regexp.MustCompile(`(?i)(?:january|february|march|april|may|june|july|august|september|october|november|december)\s+\d{1,2},?\s+\d{4}`)
)

// BusinessExtractor builds a business knowledge graph from natural-language
// contract text using NLP named-entity recognition plus pattern rules for
// amounts, dates and obligation clauses.
type BusinessExtractor struct {
	logger *logrus.Logger
}

// NewBusinessExtractor creates an extractor.
func NewBusinessExtractor() *BusinessExtractor {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	return &BusinessExtractor{logger: logger}
}

// Extract parses text and returns a populated business graph.
func (x *BusinessExtractor) Extract(text string) (*graph.KnowledgeGraph, error) {
	doc, err := prose.NewDocument(text)
	if err != nil {
		return nil, errors.Wrap(err, "failed to analyze document")
	}

	kg := graph.New(graph.GraphTypeBusiness)
	byText := make(map[string]string)

	addOnce := func(entityText, entityType string, props map[string]interface{}) string {
		key := strings.ToLower(entityText) + "|" + entityType
		if id, ok := byText[key]; ok {
			return id
		}
		id := uuid.New().String()
		if kg.AddEntity(id, graph.Entity{Text: entityText, Type: entityType, Properties: props}) {
			byText[key] = id
			return id
		}
		return ""
	}

	for _, ent := range doc.Entities() {
		switch ent.Label {
		case "PERSON":
			addOnce(ent.Text, "PERSON", nil)
		case "GPE", "ORG", "ORGANIZATION":
			addOnce(ent.Text, "ORGANIZATION", nil)
		}
	}

	for _, m := range moneyPattern.FindAllString(text, -1) {
		addOnce(m, "MONEY", nil)
	}
	for _, m := range datePattern.FindAllString(text, -1) {
		addOnce(m, "DATE", nil)
	}

	// Sentence-level pass: obligation clauses and the edges tying parties
	// to what they owe.
	for _, sent := range doc.Sentences() {
		lower := strings.ToLower(sent.Text)
		if !strings.Contains(lower, "shall") && !strings.Contains(lower, "must") {
			continue
		}
		obligationID := addOnce(strings.TrimSpace(sent.Text), "OBLIGATION",
			map[string]interface{}{"clause": "obligation"})
		if obligationID == "" {
			continue
		}
		for key, entityID := range byText {
			if entityID == obligationID {
				continue
			}
			entityText := strings.SplitN(key, "|", 2)[0]
			if !strings.Contains(lower, entityText) {
				continue
			}
			e, _ := kg.GetEntity(entityID)
			relation := "related_to"
			switch e.Type {
			case "PERSON", "ORGANIZATION":
				relation = "has_obligation"
			case "MONEY":
				relation = "pays"
			case "DATE":
				relation = "due_on"
			}
			if relation == "has_obligation" {
				kg.AddRelationship(uuid.New().String(), entityID, obligationID,
					graph.Relationship{Relation: relation})
			} else {
				kg.AddRelationship(uuid.New().String(), obligationID, entityID,
					graph.Relationship{Relation: relation})
			}
		}
	}

	x.logger.WithFields(logrus.Fields{
		"entities":      kg.EntityCount(),
		"relationships": kg.RelationshipCount(),
	}).Info("Extracted business graph")
	return kg, nil
}
