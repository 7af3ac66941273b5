package graph

import (
	"sort"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
)

// KnowledgeGraph is an in-memory annotated graph of contract elements. All
// mutating and reading operations are safe for concurrent use.
type KnowledgeGraph struct {
	mu            sync.RWMutex
	graphType     string
	entities      map[string]Entity
	relationships map[string]Relationship
	logger        *logrus.Logger
}

// New creates an empty knowledge graph tagged with graphType
// (GraphTypeBusiness or GraphTypeProgrammatic for the comparison pipeline,
// any label otherwise).
func New(graphType string) *KnowledgeGraph {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	return &KnowledgeGraph{
		graphType:     graphType,
		entities:      make(map[string]Entity),
		relationships: make(map[string]Relationship),
		logger:        logger,
	}
}

// GraphType returns the label the graph was created with.
func (kg *KnowledgeGraph) GraphType() string {
	return kg.graphType
}

// AddEntity inserts or replaces an entity under id. It returns false and
// leaves the graph unchanged when Text or Type is empty. A zero Confidence
// defaults to 1.0. Properties are copied so callers cannot mutate stored
// state afterwards.
func (kg *KnowledgeGraph) AddEntity(id string, e Entity) bool {
	if id == "" || e.Text == "" || e.Type == "" {
		kg.logger.WithFields(logrus.Fields{
			"entity_id": id,
			"text":      e.Text,
			"type":      e.Type,
		}).Warn("Rejected entity with missing id, text or type")
		return false
	}

	e.ID = id
	if e.Confidence == 0 {
		e.Confidence = 1.0
	}
	e.Properties = copyProperties(e.Properties)

	kg.mu.Lock()
	kg.entities[id] = e
	kg.mu.Unlock()
	return true
}

// AddRelationship inserts or replaces a relationship under id. Both endpoints
// must already exist as entities; on any validation failure the graph is left
// unchanged and false is returned.
func (kg *KnowledgeGraph) AddRelationship(id, sourceID, targetID string, r Relationship) bool {
	if id == "" || r.Relation == "" {
		kg.logger.WithField("relationship_id", id).Warn("Rejected relationship with missing id or relation")
		return false
	}

	kg.mu.Lock()
	defer kg.mu.Unlock()

	if _, ok := kg.entities[sourceID]; !ok {
		kg.logger.WithFields(logrus.Fields{
			"relationship_id": id,
			"source_id":       sourceID,
		}).Warn("Rejected relationship with unknown source entity")
		return false
	}
	if _, ok := kg.entities[targetID]; !ok {
		kg.logger.WithFields(logrus.Fields{
			"relationship_id": id,
			"target_id":       targetID,
		}).Warn("Rejected relationship with unknown target entity")
		return false
	}

	r.ID = id
	r.SourceID = sourceID
	r.TargetID = targetID
	if r.Confidence == 0 {
		r.Confidence = 1.0
	}
	r.Properties = copyProperties(r.Properties)

	kg.relationships[id] = r
	return true
}

// GetEntity returns the entity stored under id.
func (kg *KnowledgeGraph) GetEntity(id string) (Entity, bool) {
	kg.mu.RLock()
	defer kg.mu.RUnlock()
	e, ok := kg.entities[id]
	return e, ok
}

// GetRelationship returns the relationship stored under id.
func (kg *KnowledgeGraph) GetRelationship(id string) (Relationship, bool) {
	kg.mu.RLock()
	defer kg.mu.RUnlock()
	r, ok := kg.relationships[id]
	return r, ok
}

// GetEntitiesByType returns all entities whose Type equals entityType,
// sorted by id.
func (kg *KnowledgeGraph) GetEntitiesByType(entityType string) []Entity {
	kg.mu.RLock()
	defer kg.mu.RUnlock()

	var out []Entity
	for _, e := range kg.entities {
		if e.Type == entityType {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// GetRelationshipsByType returns all relationships whose Relation equals
// relation, sorted by id.
func (kg *KnowledgeGraph) GetRelationshipsByType(relation string) []Relationship {
	kg.mu.RLock()
	defer kg.mu.RUnlock()

	var out []Relationship
	for _, r := range kg.relationships {
		if r.Relation == relation {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// GetNeighbors returns entities adjacent to id following edges in the given
// direction, sorted by id. An unknown id yields an empty slice.
func (kg *KnowledgeGraph) GetNeighbors(id string, direction Direction) []Entity {
	kg.mu.RLock()
	defer kg.mu.RUnlock()

	if _, ok := kg.entities[id]; !ok {
		return nil
	}

	neighborIDs := make(map[string]struct{})
	for _, r := range kg.relationships {
		if (direction == DirectionOut || direction == DirectionBoth) && r.SourceID == id {
			neighborIDs[r.TargetID] = struct{}{}
		}
		if (direction == DirectionIn || direction == DirectionBoth) && r.TargetID == id {
			neighborIDs[r.SourceID] = struct{}{}
		}
	}

	out := make([]Entity, 0, len(neighborIDs))
	for nid := range neighborIDs {
		if e, ok := kg.entities[nid]; ok {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// SearchEntities performs a case-insensitive search over the given entity
// fields ("text", "type", or property names). An exact field match scores 10,
// a substring match 5, summed over fields. Results are ranked by score
// descending with ties broken by id.
func (kg *KnowledgeGraph) SearchEntities(query string, fields ...string) []SearchResult {
	if query == "" {
		return nil
	}
	if len(fields) == 0 {
		fields = []string{"text", "type"}
	}
	q := strings.ToLower(query)

	kg.mu.RLock()
	defer kg.mu.RUnlock()

	var results []SearchResult
	for _, e := range kg.entities {
		score := 0
		for _, field := range fields {
			value := ""
			switch field {
			case "text":
				value = e.Text
			case "type":
				value = e.Type
			default:
				if v, ok := e.Properties[field]; ok {
					if s, isStr := v.(string); isStr {
						value = s
					}
				}
			}
			if value == "" {
				continue
			}
			v := strings.ToLower(value)
			if v == q {
				score += 10
			} else if strings.Contains(v, q) {
				score += 5
			}
		}
		if score > 0 {
			results = append(results, SearchResult{Entity: e, RelevanceScore: score})
		}
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].RelevanceScore != results[j].RelevanceScore {
			return results[i].RelevanceScore > results[j].RelevanceScore
		}
		return results[i].Entity.ID < results[j].Entity.ID
	})
	return results
}

// Subgraph builds a new graph containing the requested entities and every
// relationship whose endpoints are both included. The result shares no
// mutable state with the receiver.
func (kg *KnowledgeGraph) Subgraph(ids []string) *KnowledgeGraph {
	sub := New(kg.graphType)

	kg.mu.RLock()
	defer kg.mu.RUnlock()

	keep := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if e, ok := kg.entities[id]; ok {
			keep[id] = struct{}{}
			sub.entities[id] = Entity{
				ID:         e.ID,
				Text:       e.Text,
				Type:       e.Type,
				Confidence: e.Confidence,
				Properties: copyProperties(e.Properties),
			}
		}
	}
	for rid, r := range kg.relationships {
		if _, okS := keep[r.SourceID]; !okS {
			continue
		}
		if _, okT := keep[r.TargetID]; !okT {
			continue
		}
		r.Properties = copyProperties(r.Properties)
		sub.relationships[rid] = r
	}
	return sub
}

// Entities returns a copy of all entities sorted by id.
func (kg *KnowledgeGraph) Entities() []Entity {
	kg.mu.RLock()
	defer kg.mu.RUnlock()

	out := make([]Entity, 0, len(kg.entities))
	for _, e := range kg.entities {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Relationships returns a copy of all relationships sorted by id.
func (kg *KnowledgeGraph) Relationships() []Relationship {
	kg.mu.RLock()
	defer kg.mu.RUnlock()

	out := make([]Relationship, 0, len(kg.relationships))
	for _, r := range kg.relationships {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// EntityCount returns the number of stored entities.
func (kg *KnowledgeGraph) EntityCount() int {
	kg.mu.RLock()
	defer kg.mu.RUnlock()
	return len(kg.entities)
}

// RelationshipCount returns the number of stored relationships.
func (kg *KnowledgeGraph) RelationshipCount() int {
	kg.mu.RLock()
	defer kg.mu.RUnlock()
	return len(kg.relationships)
}

// Metadata recomputes type counters from the current collections.
func (kg *KnowledgeGraph) Metadata() Metadata {
	kg.mu.RLock()
	defer kg.mu.RUnlock()
	return kg.metadataLocked()
}

func (kg *KnowledgeGraph) metadataLocked() Metadata {
	md := Metadata{
		TotalEntities:          len(kg.entities),
		TotalRelationships:     len(kg.relationships),
		EntityTypeCounts:       make(map[string]int),
		RelationshipTypeCounts: make(map[string]int),
	}
	for _, e := range kg.entities {
		md.EntityTypeCounts[e.Type]++
	}
	for _, r := range kg.relationships {
		md.RelationshipTypeCounts[r.Relation]++
	}
	return md
}

// Snapshot returns the serializable form of the graph with copied maps.
func (kg *KnowledgeGraph) Snapshot() GraphData {
	kg.mu.RLock()
	defer kg.mu.RUnlock()

	data := GraphData{
		GraphType:     kg.graphType,
		Entities:      make(map[string]Entity, len(kg.entities)),
		Relationships: make(map[string]Relationship, len(kg.relationships)),
		Metadata:      kg.metadataLocked(),
	}
	for id, e := range kg.entities {
		e.Properties = copyProperties(e.Properties)
		data.Entities[id] = e
	}
	for id, r := range kg.relationships {
		r.Properties = copyProperties(r.Properties)
		data.Relationships[id] = r
	}
	return data
}

// Statistics computes structural measures over the current graph. Density
// and connectivity treat edges as undirected.
func (kg *KnowledgeGraph) Statistics() Statistics {
	kg.mu.RLock()
	defer kg.mu.RUnlock()

	md := kg.metadataLocked()
	stats := Statistics{
		TotalEntities:      md.TotalEntities,
		TotalRelationships: md.TotalRelationships,
		EntityTypes:        md.EntityTypeCounts,
		RelationshipTypes:  md.RelationshipTypeCounts,
	}
	n := len(kg.entities)
	if n == 0 {
		return stats
	}

	degrees := make(map[string]int, n)
	adjacency := make(map[string][]string, n)
	for id := range kg.entities {
		degrees[id] = 0
	}
	for _, r := range kg.relationships {
		degrees[r.SourceID]++
		degrees[r.TargetID]++
		adjacency[r.SourceID] = append(adjacency[r.SourceID], r.TargetID)
		adjacency[r.TargetID] = append(adjacency[r.TargetID], r.SourceID)
	}

	total := 0
	stats.MinDegree = -1
	for _, d := range degrees {
		total += d
		if d > stats.MaxDegree {
			stats.MaxDegree = d
		}
		if stats.MinDegree < 0 || d < stats.MinDegree {
			stats.MinDegree = d
		}
	}
	if stats.MinDegree < 0 {
		stats.MinDegree = 0
	}
	stats.AverageDegree = float64(total) / float64(n)
	if n > 1 {
		stats.GraphDensity = float64(len(kg.relationships)) / float64(n*(n-1))
	}

	visited := make(map[string]bool, n)
	for id := range kg.entities {
		if visited[id] {
			continue
		}
		size := 0
		queue := []string{id}
		visited[id] = true
		for len(queue) > 0 {
			cur := queue[0]
			queue = queue[1:]
			size++
			for _, next := range adjacency[cur] {
				if !visited[next] {
					visited[next] = true
					queue = append(queue, next)
				}
			}
		}
		stats.NumberOfComponents++
		if size > stats.LargestComponentSize {
			stats.LargestComponentSize = size
		}
	}
	stats.IsConnected = stats.NumberOfComponents == 1
	return stats
}

// FromSnapshot reconstructs a graph from its serialized form, revalidating
// every element through the normal insertion path. Elements that fail
// validation are skipped.
func FromSnapshot(data GraphData) *KnowledgeGraph {
	kg := New(data.GraphType)
	for id, e := range data.Entities {
		kg.AddEntity(id, e)
	}
	for id, r := range data.Relationships {
		kg.AddRelationship(id, r.SourceID, r.TargetID, r)
	}
	return kg
}

func copyProperties(props map[string]interface{}) map[string]interface{} {
	if props == nil {
		return nil
	}
	out := make(map[string]interface{}, len(props))
	for k, v := range props {
		out[k] = v
	}
	return out
}
