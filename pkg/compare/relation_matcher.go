package compare

import (
	"strings"

	mapset "github.com/deckarep/golang-set/v2"

	"github.com/athapong/kgalign/pkg/graph"
)

// RelationshipMatch pairs a source relationship with its best-scoring
// counterpart in the target graph.
type RelationshipMatch struct {
	SourceRelation graph.Relationship `json:"source_relation"`
	TargetRelation graph.Relationship `json:"target_relation"`
	Score          float64            `json:"similarity_score"`
	MatchType      string             `json:"match_type"`
}

// RelationshipMatcher scores cross-domain relationship pairs. Endpoint types
// are resolved through the owning graphs, so a relationship is judged by
// what it connects, not only by its label.
type RelationshipMatcher struct {
	config MatcherConfig
}

// NewRelationshipMatcher creates a matcher with the given thresholds.
func NewRelationshipMatcher(config MatcherConfig) *RelationshipMatcher {
	return &RelationshipMatcher{config: config}
}

// Match finds, for each relationship of source, the highest-scoring
// relationship of target. Pairs scoring at or below the relationship
// threshold are dropped. Iteration is id-ordered for determinism.
func (m *RelationshipMatcher) Match(source, target *graph.KnowledgeGraph) []RelationshipMatch {
	targets := target.Relationships()
	if len(targets) == 0 {
		return nil
	}

	var matches []RelationshipMatch
	for _, sr := range source.Relationships() {
		best := -1.0
		var bestTarget graph.Relationship
		for _, tr := range targets {
			score := m.Score(sr, source, tr, target)
			if score > best {
				best = score
				bestTarget = tr
			}
		}
		if best > m.config.RelationshipThreshold {
			matches = append(matches, RelationshipMatch{
				SourceRelation: sr,
				TargetRelation: bestTarget,
				Score:          best,
				MatchType:      classifyRelationMatch(sr, bestTarget, best),
			})
		}
	}
	return matches
}

// Score computes the weighted similarity of one relationship pair, resolving
// endpoint entities through sourceGraph and targetGraph. The result is
// always within [0, 1].
func (m *RelationshipMatcher) Score(sr graph.Relationship, sourceGraph *graph.KnowledgeGraph, tr graph.Relationship, targetGraph *graph.KnowledgeGraph) float64 {
	score := relationMappingScore(sr.Relation, tr.Relation) * 0.4

	srcLabel := strings.ToLower(sr.Relation)
	tgtLabel := strings.ToLower(tr.Relation)
	if srcLabel == tgtLabel {
		score += 0.3
	} else if relationsCompatible(srcLabel, tgtLabel) {
		score += 0.2
	}

	score += endpointScore(sr.SourceID, sourceGraph, tr.SourceID, targetGraph)
	score += endpointScore(sr.TargetID, sourceGraph, tr.TargetID, targetGraph)

	score += jaccard(relationCategories(sr), relationCategories(tr)) * 0.1

	if score > 1.0 {
		score = 1.0
	}
	return score
}

// relationMappingScore evaluates the declarative edge-label rules: 0.8 when
// both labels hit the same category, 0.6 when only the business side hits
// and the technical label is generic.
func relationMappingScore(business, technical string) float64 {
	biz := strings.ToLower(business)
	tech := strings.ToLower(technical)

	best := 0.0
	for _, rule := range relationMappingRules {
		if !containsAny(biz, rule.BusinessPatterns) {
			continue
		}
		if containsAny(tech, rule.TechnicalVocabulary) {
			if best < 0.8 {
				best = 0.8
			}
		} else if genericTechnicalRelations[tech] && best < 0.6 {
			best = 0.6
		}
	}
	return best
}

// endpointScore compares the entity types at one end of each relationship:
// 0.1 for an explicit compatibility pair or equal types, 0.06 for a shared
// domain group. Unresolvable endpoints contribute nothing.
func endpointScore(srcID string, sourceGraph *graph.KnowledgeGraph, tgtID string, targetGraph *graph.KnowledgeGraph) float64 {
	se, okS := sourceGraph.GetEntity(srcID)
	te, okT := targetGraph.GetEntity(tgtID)
	if !okS || !okT {
		return 0
	}
	if typesCompatible(se.Type, te.Type) {
		return 0.1
	}
	if sameDomainGroup(se.Type, te.Type) {
		return 0.06
	}
	return 0
}

// relationCategories derives the semantic category set from a relationship's
// label and its string property values.
func relationCategories(r graph.Relationship) mapset.Set[string] {
	categories := mapset.NewSet[string]()
	corpus := strings.ToLower(r.Relation)
	for _, v := range r.Properties {
		if s, ok := v.(string); ok {
			corpus += " " + strings.ToLower(s)
		}
	}
	for category, keywords := range relationSemanticGroups {
		if containsAny(corpus, keywords) {
			categories.Add(category)
		}
	}
	return categories
}

func classifyRelationMatch(sr, tr graph.Relationship, score float64) string {
	if strings.EqualFold(sr.Relation, tr.Relation) {
		return MatchTypeExact
	}
	switch {
	case score > 0.7:
		return MatchTypeSemantic
	case score > 0.4:
		return MatchTypePartial
	default:
		return MatchTypeWeak
	}
}
