package graph

// Entity is a typed, text-bearing node extracted from a contract. It can
// represent a business concept (party, amount, date, obligation) or a code
// element (state variable, function, event).
type Entity struct {
	ID         string                 `json:"id"`
	Text       string                 `json:"text"`
	Type       string                 `json:"type"`
	Confidence float64                `json:"confidence"`
	Properties map[string]interface{} `json:"properties,omitempty"`
}

// Relationship is a directed, typed edge between two entities of the same
// graph. Both endpoints must exist before the edge is accepted.
type Relationship struct {
	ID         string                 `json:"id"`
	SourceID   string                 `json:"source"`
	TargetID   string                 `json:"target"`
	Relation   string                 `json:"relation"`
	Confidence float64                `json:"confidence"`
	Properties map[string]interface{} `json:"properties,omitempty"`
}

// Direction selects edge orientation for adjacency queries.
type Direction string

const (
	DirectionIn   Direction = "in"
	DirectionOut  Direction = "out"
	DirectionBoth Direction = "both"
)

// Graph type tags used by the comparison pipeline.
const (
	GraphTypeBusiness     = "business"
	GraphTypeProgrammatic = "programmatic"
)

// Metadata holds derived type counters. It is recomputed from the current
// entity and relationship collections on every call rather than mutated
// incrementally, so it cannot drift from the stored data.
type Metadata struct {
	TotalEntities          int            `json:"total_entities"`
	TotalRelationships     int            `json:"total_relationships"`
	EntityTypeCounts       map[string]int `json:"entity_type_counts"`
	RelationshipTypeCounts map[string]int `json:"relationship_type_counts"`
}

// GraphData is the serializable snapshot form of a knowledge graph, used for
// JSON persistence and visualization.
type GraphData struct {
	GraphType     string                  `json:"graph_type"`
	Entities      map[string]Entity       `json:"entities"`
	Relationships map[string]Relationship `json:"relationships"`
	Metadata      Metadata                `json:"metadata"`
}

// SearchResult is one ranked hit from SearchEntities.
type SearchResult struct {
	Entity         Entity `json:"entity"`
	RelevanceScore int    `json:"relevance_score"`
}

// Statistics summarizes the structure of a graph.
type Statistics struct {
	TotalEntities        int            `json:"total_entities"`
	TotalRelationships   int            `json:"total_relationships"`
	GraphDensity         float64        `json:"graph_density"`
	IsConnected          bool           `json:"is_connected"`
	EntityTypes          map[string]int `json:"entity_types"`
	RelationshipTypes    map[string]int `json:"relationship_types"`
	AverageDegree        float64        `json:"average_degree"`
	MaxDegree            int            `json:"max_degree"`
	MinDegree            int            `json:"min_degree"`
	NumberOfComponents   int            `json:"number_of_components"`
	LargestComponentSize int            `json:"largest_component_size"`
}
