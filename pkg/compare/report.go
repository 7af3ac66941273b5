package compare

import (
	"time"
)

// Quality bucket labels for the match-quality distribution.
const (
	QualityHigh   = "high_quality"
	QualityMedium = "medium_quality"
	QualityLow    = "low_quality"
)

// Compliance levels for the report verdict.
const (
	ComplianceHigh   = "High"
	ComplianceMedium = "Medium"
	ComplianceLow    = "Low"
)

// Report is the full outcome of one comparison run.
type Report struct {
	ComparisonID             string               `json:"comparison_id"`
	GeneratedAt              time.Time            `json:"generated_at"`
	EntityMatches            []EntityMatch        `json:"entity_matches"`
	RelationshipMatches      []RelationshipMatch  `json:"relationship_matches"`
	EntityPreservation       float64              `json:"entity_preservation_percentage"`
	RelationshipPreservation float64              `json:"relationship_preservation_percentage"`
	OverallSimilarity        float64              `json:"overall_similarity_score"`
	Summary                  Summary              `json:"summary"`
	EntityAnalysis           MatchAnalysis        `json:"entity_analysis"`
	RelationshipAnalysis     MatchAnalysis        `json:"relationship_analysis"`
	Compliance               ComplianceAssessment `json:"compliance_assessment"`
	Recommendations          []string             `json:"recommendations"`
}

// Summary carries the aggregate counts and target-side coverage percentages.
// Coverage is reported separately from preservation: the greedy matcher is
// many-to-one, so the two perspectives differ.
type Summary struct {
	SourceEntityCount            int      `json:"source_entity_count"`
	TargetEntityCount            int      `json:"target_entity_count"`
	SourceRelationshipCount      int      `json:"source_relationship_count"`
	TargetRelationshipCount      int      `json:"target_relationship_count"`
	EntityMatchCount             int      `json:"entity_match_count"`
	RelationshipMatchCount       int      `json:"relationship_match_count"`
	EntityCoveragePercent        float64  `json:"entity_coverage_percent"`
	RelationshipCoveragePercent  float64  `json:"relationship_coverage_percent"`
	UnmatchedSourceEntities      []string `json:"unmatched_source_entities,omitempty"`
	UnmatchedSourceRelationships []string `json:"unmatched_source_relationships,omitempty"`
}

// MatchAnalysis buckets matches by score quality.
type MatchAnalysis struct {
	MatchQualityDistribution map[string]int `json:"match_quality_distribution"`
}

// ComplianceAssessment is the derived verdict on how faithfully the
// programmatic contract implements the business contract.
type ComplianceAssessment struct {
	OverallComplianceScore float64  `json:"overall_compliance_score"`
	ComplianceLevel        string   `json:"compliance_level"`
	IsCompliant            bool     `json:"is_compliant"`
	ComplianceIssues       []string `json:"compliance_issues"`
}

// preservation applies the empty-graph conventions: an empty source is fully
// preserved only by an empty target.
func preservation(matchCount, sourceCount, targetCount int) float64 {
	if sourceCount == 0 {
		if targetCount == 0 {
			return 1.0
		}
		return 0.0
	}
	return float64(matchCount) / float64(sourceCount)
}

// coveragePercent is the target-side view: how much of the target graph was
// claimed by at least one match, as a percentage.
func coveragePercent(matchCount, targetCount int) float64 {
	if targetCount == 0 {
		return 0
	}
	return float64(matchCount) / float64(targetCount) * 100
}

func qualityDistribution(scores []float64) map[string]int {
	dist := map[string]int{
		QualityHigh:   0,
		QualityMedium: 0,
		QualityLow:    0,
	}
	for _, s := range scores {
		switch {
		case s > 0.7:
			dist[QualityHigh]++
		case s > 0.4:
			dist[QualityMedium]++
		default:
			dist[QualityLow]++
		}
	}
	return dist
}

func assessCompliance(overall, entityPreservation, relationPreservation float64) ComplianceAssessment {
	assessment := ComplianceAssessment{
		OverallComplianceScore: overall,
		IsCompliant:            overall > 0.6,
		ComplianceIssues:       []string{},
	}
	switch {
	case overall > 0.8:
		assessment.ComplianceLevel = ComplianceHigh
	case overall > 0.5:
		assessment.ComplianceLevel = ComplianceMedium
	default:
		assessment.ComplianceLevel = ComplianceLow
	}

	if overall < 0.5 {
		assessment.ComplianceIssues = append(assessment.ComplianceIssues,
			"Low overall similarity between business and technical contracts")
	}
	if entityPreservation < 0.7 {
		assessment.ComplianceIssues = append(assessment.ComplianceIssues,
			"Significant business entities are not represented in the technical contract")
	}
	if relationPreservation < 0.4 {
		assessment.ComplianceIssues = append(assessment.ComplianceIssues,
			"Business relationships are poorly reflected in the technical contract structure")
	}
	return assessment
}

// buildRecommendations applies the deterministic rule list; every applicable
// rule fires.
func buildRecommendations(overall float64, entityMatches, relationMatches int) []string {
	var recs []string
	if overall < 0.3 {
		recs = append(recs,
			"Consider redesigning the technical contract to better reflect business requirements")
	}
	if entityMatches < 10 {
		recs = append(recs,
			"Map more business entities to technical contract elements")
	}
	if relationMatches < 20 {
		recs = append(recs,
			"Model more business relationships in the technical contract")
	}
	if overall > 0.7 {
		recs = append(recs,
			"Good alignment between business and technical contracts")
	}
	return recs
}
