package compare

import (
	"time"

	"github.com/sirupsen/logrus"

	"github.com/athapong/kgalign/pkg/graph"
)

// Comparator runs the full alignment pipeline: entity matching, relationship
// matching, then metric aggregation. A comparison is a pure function of its
// two graph snapshots; neither input is mutated and no state is carried
// between runs.
type Comparator struct {
	config    MatcherConfig
	entities  *EntityMatcher
	relations *RelationshipMatcher
	logger    *logrus.Logger
}

// NewComparator creates a comparator with the given thresholds.
func NewComparator(config MatcherConfig) *Comparator {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	return &Comparator{
		config:    config,
		entities:  NewEntityMatcher(config),
		relations: NewRelationshipMatcher(config),
		logger:    logger,
	}
}

// Compare matches source against target and aggregates the result into a
// report. Empty graphs are a defined boundary case, not an error.
func (c *Comparator) Compare(source, target *graph.KnowledgeGraph) Report {
	started := time.Now()

	entityMatches := c.entities.Match(source, target)
	relationMatches := c.relations.Match(source, target)

	sourceEntities := source.EntityCount()
	targetEntities := target.EntityCount()
	sourceRelations := source.RelationshipCount()
	targetRelations := target.RelationshipCount()

	entityPreservation := preservation(len(entityMatches), sourceEntities, targetEntities)
	relationPreservation := preservation(len(relationMatches), sourceRelations, targetRelations)
	overall := (entityPreservation + relationPreservation) / 2

	entityScores := make([]float64, len(entityMatches))
	matchedEntityIDs := make(map[string]struct{}, len(entityMatches))
	for i, m := range entityMatches {
		entityScores[i] = m.Score
		matchedEntityIDs[m.SourceEntity.ID] = struct{}{}
	}
	relationScores := make([]float64, len(relationMatches))
	matchedRelationIDs := make(map[string]struct{}, len(relationMatches))
	for i, m := range relationMatches {
		relationScores[i] = m.Score
		matchedRelationIDs[m.SourceRelation.ID] = struct{}{}
	}

	report := Report{
		ComparisonID:             "comparison_" + started.Format("20060102_150405"),
		GeneratedAt:              started,
		EntityMatches:            entityMatches,
		RelationshipMatches:      relationMatches,
		EntityPreservation:       entityPreservation,
		RelationshipPreservation: relationPreservation,
		OverallSimilarity:        overall,
		Summary: Summary{
			SourceEntityCount:            sourceEntities,
			TargetEntityCount:            targetEntities,
			SourceRelationshipCount:      sourceRelations,
			TargetRelationshipCount:      targetRelations,
			EntityMatchCount:             len(entityMatches),
			RelationshipMatchCount:       len(relationMatches),
			EntityCoveragePercent:        coveragePercent(len(entityMatches), targetEntities),
			RelationshipCoveragePercent:  coveragePercent(len(relationMatches), targetRelations),
			UnmatchedSourceEntities:      unmatchedEntityIDs(source, matchedEntityIDs),
			UnmatchedSourceRelationships: unmatchedRelationIDs(source, matchedRelationIDs),
		},
		EntityAnalysis:       MatchAnalysis{MatchQualityDistribution: qualityDistribution(entityScores)},
		RelationshipAnalysis: MatchAnalysis{MatchQualityDistribution: qualityDistribution(relationScores)},
		Compliance:           assessCompliance(overall, entityPreservation, relationPreservation),
		Recommendations:      buildRecommendations(overall, len(entityMatches), len(relationMatches)),
	}

	elapsed := time.Since(started)
	comparisonsTotal.Inc()
	comparisonDuration.Observe(elapsed.Seconds())
	entityMatchesFound.Add(float64(len(entityMatches)))
	relationshipMatchesFound.Add(float64(len(relationMatches)))

	c.logger.WithFields(logrus.Fields{
		"comparison_id":         report.ComparisonID,
		"entity_matches":        len(entityMatches),
		"relationship_matches":  len(relationMatches),
		"overall_similarity":    overall,
		"compliance_level":      report.Compliance.ComplianceLevel,
		"duration_milliseconds": elapsed.Milliseconds(),
	}).Info("Graph comparison completed")

	return report
}

func unmatchedEntityIDs(source *graph.KnowledgeGraph, matched map[string]struct{}) []string {
	var unmatched []string
	for _, e := range source.Entities() {
		if _, ok := matched[e.ID]; !ok {
			unmatched = append(unmatched, e.ID)
		}
	}
	return unmatched
}

func unmatchedRelationIDs(source *graph.KnowledgeGraph, matched map[string]struct{}) []string {
	var unmatched []string
	for _, r := range source.Relationships() {
		if _, ok := matched[r.ID]; !ok {
			unmatched = append(unmatched, r.ID)
		}
	}
	return unmatched
}
