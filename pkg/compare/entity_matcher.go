package compare

import (
	"strings"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/athapong/kgalign/pkg/graph"
)

// Match type labels, ordered from strongest to weakest.
const (
	MatchTypeExact    = "exact_match"
	MatchTypePartial  = "partial_match"
	MatchTypeSemantic = "semantic_match"
	MatchTypeWeak     = "weak_match"
)

// MatcherConfig carries the acceptance thresholds for both matchers.
type MatcherConfig struct {
	EntityThreshold       float64
	RelationshipThreshold float64
}

// DefaultMatcherConfig returns the calibrated default thresholds.
func DefaultMatcherConfig() MatcherConfig {
	return MatcherConfig{
		EntityThreshold:       0.15,
		RelationshipThreshold: 0.2,
	}
}

// EntityMatch pairs a source entity with its best-scoring counterpart in the
// target graph.
type EntityMatch struct {
	SourceEntity graph.Entity `json:"source_entity"`
	TargetEntity graph.Entity `json:"target_entity"`
	Score        float64      `json:"similarity_score"`
	MatchType    string       `json:"match_type"`
}

// EntityMatcher scores cross-domain entity pairs and selects, for every
// source entity, the single best target above the acceptance threshold.
// Several source entities may share one target; the assignment is
// many-to-one.
type EntityMatcher struct {
	config MatcherConfig
	dmp    *diffmatchpatch.DiffMatchPatch
}

// NewEntityMatcher creates a matcher with the given thresholds.
func NewEntityMatcher(config MatcherConfig) *EntityMatcher {
	return &EntityMatcher{
		config: config,
		dmp:    diffmatchpatch.New(),
	}
}

// Match finds, for each entity of source, the highest-scoring entity of
// target. Pairs scoring at or below the entity threshold are dropped.
// Iteration is id-ordered so results are deterministic.
func (m *EntityMatcher) Match(source, target *graph.KnowledgeGraph) []EntityMatch {
	targets := target.Entities()
	if len(targets) == 0 {
		return nil
	}

	var matches []EntityMatch
	for _, se := range source.Entities() {
		best := -1.0
		var bestTarget graph.Entity
		for _, te := range targets {
			score := m.Score(se, te)
			if score > best {
				best = score
				bestTarget = te
			}
		}
		if best > m.config.EntityThreshold {
			matches = append(matches, EntityMatch{
				SourceEntity: se,
				TargetEntity: bestTarget,
				Score:        best,
				MatchType:    classifyEntityMatch(se, bestTarget),
			})
		}
	}
	return matches
}

// Score computes the weighted similarity of one entity pair. The result is
// always within [0, 1].
func (m *EntityMatcher) Score(source, target graph.Entity) float64 {
	score := mappingScore(source, target) * 0.5

	if typesCompatible(source.Type, target.Type) {
		score += 0.3
	} else if sameDomainGroup(source.Type, target.Type) {
		score += 0.2
	}

	score += m.textSimilarity(source.Text, target.Text) * 0.15
	score += jaccard(entityCategories(source), entityCategories(target)) * 0.25

	if score > 1.0 {
		score = 1.0
	}
	return score
}

// mappingScore evaluates the declarative cross-domain rules. It returns the
// strongest applicable level: 0.9 when both sides hit the same category, 0.8
// for the typed financial/party special cases, 0.6 when only the business
// side hits a category and the target type is generic.
func mappingScore(source, target graph.Entity) float64 {
	bizText := strings.ToLower(source.Text)
	techText := strings.ToLower(target.Text)
	genericTarget := genericTechnicalTypes[strings.ToUpper(target.Type)]

	best := 0.0
	for _, rule := range entityMappingRules {
		if !containsAny(bizText, rule.BusinessPatterns) {
			continue
		}
		if containsAny(techText, rule.TechnicalVocabulary) {
			if best < 0.9 {
				best = 0.9
			}
		} else if genericTarget && best < 0.6 {
			best = 0.6
		}
	}

	// Typed special cases, both limited to variable targets: a financial
	// source whose counterpart names an amount, and a party source whose
	// counterpart names an actor.
	if best < 0.8 && variableTargetTypes[strings.ToUpper(target.Type)] {
		switch strings.ToUpper(source.Type) {
		case "MONEY", "FINANCIAL", "CURRENCY":
			if containsAny(techText, financialIndicators) {
				best = 0.8
			}
		case "PERSON", "ORGANIZATION":
			if containsAny(techText, partyIndicators) {
				best = 0.8
			}
		}
	}
	return best
}

func containsAny(text string, patterns []string) bool {
	for _, p := range patterns {
		if strings.Contains(text, p) {
			return true
		}
	}
	return false
}

// textSimilarity is the maximum of the Levenshtein-normalized sequence ratio
// and the substring containment ratio, both case-insensitive.
func (m *EntityMatcher) textSimilarity(a, b string) float64 {
	a = strings.ToLower(strings.TrimSpace(a))
	b = strings.ToLower(strings.TrimSpace(b))
	if a == "" || b == "" {
		return 0
	}
	if a == b {
		return 1.0
	}

	longest := len(a)
	if len(b) > longest {
		longest = len(b)
	}

	diffs := m.dmp.DiffMain(a, b, false)
	distance := m.dmp.DiffLevenshtein(diffs)
	ratio := 1.0 - float64(distance)/float64(longest)
	if ratio < 0 {
		ratio = 0
	}

	if strings.Contains(a, b) || strings.Contains(b, a) {
		shortest := len(a)
		if len(b) < shortest {
			shortest = len(b)
		}
		containment := float64(shortest) / float64(longest)
		if containment > ratio {
			ratio = containment
		}
	}
	return ratio
}

// entityCategories derives the semantic category set from an entity's text
// and its string property values.
func entityCategories(e graph.Entity) mapset.Set[string] {
	categories := mapset.NewSet[string]()
	corpus := strings.ToLower(e.Text)
	for _, v := range e.Properties {
		if s, ok := v.(string); ok {
			corpus += " " + strings.ToLower(s)
		}
	}
	for category, keywords := range entitySemanticGroups {
		if containsAny(corpus, keywords) {
			categories.Add(category)
		}
	}
	return categories
}

// jaccard returns |a∩b| / |a∪b|, or 0 when both sets are empty.
func jaccard(a, b mapset.Set[string]) float64 {
	union := a.Union(b).Cardinality()
	if union == 0 {
		return 0
	}
	return float64(a.Intersect(b).Cardinality()) / float64(union)
}

// classifyEntityMatch labels a pair by the strongest structural evidence:
// identical normalized text, containment, compatible types, or none.
func classifyEntityMatch(source, target graph.Entity) string {
	a := strings.ToLower(strings.TrimSpace(source.Text))
	b := strings.ToLower(strings.TrimSpace(target.Text))
	switch {
	case a == b:
		return MatchTypeExact
	case a != "" && b != "" && (strings.Contains(a, b) || strings.Contains(b, a)):
		return MatchTypePartial
	case typesCompatible(source.Type, target.Type):
		return MatchTypeSemantic
	default:
		return MatchTypeWeak
	}
}
