// Package analytics provides structural measures layered on the graph
// store. All functions treat edges as undirected and tolerate degenerate
// graphs by returning empty results.
package analytics

import (
	"sort"

	"github.com/athapong/kgalign/pkg/graph"
)

// CentralityMeasures bundles the per-entity centrality scores.
type CentralityMeasures struct {
	Degree      map[string]float64 `json:"degree_centrality"`
	Closeness   map[string]float64 `json:"closeness_centrality"`
	Betweenness map[string]float64 `json:"betweenness_centrality"`
}

// Centrality computes degree, closeness and betweenness centrality for every
// entity. Graphs with fewer than two entities yield zeroed maps.
func Centrality(kg *graph.KnowledgeGraph) CentralityMeasures {
	adj := adjacency(kg)
	n := len(adj)

	measures := CentralityMeasures{
		Degree:      make(map[string]float64, n),
		Closeness:   make(map[string]float64, n),
		Betweenness: make(map[string]float64, n),
	}
	for id := range adj {
		measures.Degree[id] = 0
		measures.Closeness[id] = 0
		measures.Betweenness[id] = 0
	}
	if n < 2 {
		return measures
	}

	for id, neighbors := range adj {
		measures.Degree[id] = float64(len(neighbors)) / float64(n-1)
	}

	ids := sortedIDs(adj)
	for _, source := range ids {
		dist, order, sigma, pred := brandesBFS(source, adj)

		reachable := 0
		total := 0
		for _, d := range dist {
			if d > 0 {
				reachable++
				total += d
			}
		}
		if total > 0 {
			// Scaled closeness so disconnected graphs stay comparable.
			measures.Closeness[source] = float64(reachable) / float64(total) *
				float64(reachable) / float64(n-1)
		}

		delta := make(map[string]float64, len(order))
		for i := len(order) - 1; i >= 0; i-- {
			w := order[i]
			for _, v := range pred[w] {
				delta[v] += sigma[v] / sigma[w] * (1 + delta[w])
			}
			if w != source {
				measures.Betweenness[w] += delta[w]
			}
		}
	}

	// Undirected normalization.
	if n > 2 {
		scale := 1.0 / float64((n-1)*(n-2))
		for id := range measures.Betweenness {
			measures.Betweenness[id] *= scale
		}
	}
	return measures
}

func brandesBFS(source string, adj map[string][]string) (map[string]int, []string, map[string]float64, map[string][]string) {
	dist := map[string]int{source: 0}
	sigma := map[string]float64{source: 1}
	pred := make(map[string][]string)
	var order []string

	queue := []string{source}
	for len(queue) > 0 {
		v := queue[0]
		queue = queue[1:]
		order = append(order, v)
		for _, w := range adj[v] {
			if _, seen := dist[w]; !seen {
				dist[w] = dist[v] + 1
				queue = append(queue, w)
			}
			if dist[w] == dist[v]+1 {
				sigma[w] += sigma[v]
				pred[w] = append(pred[w], v)
			}
		}
	}
	return dist, order, sigma, pred
}

// adjacency builds the undirected neighbor lists, deduplicated and sorted
// for deterministic traversal.
func adjacency(kg *graph.KnowledgeGraph) map[string][]string {
	adj := make(map[string][]string)
	for _, e := range kg.Entities() {
		adj[e.ID] = nil
	}
	seen := make(map[[2]string]bool)
	for _, r := range kg.Relationships() {
		if r.SourceID == r.TargetID {
			continue
		}
		key := [2]string{r.SourceID, r.TargetID}
		if key[0] > key[1] {
			key[0], key[1] = key[1], key[0]
		}
		if seen[key] {
			continue
		}
		seen[key] = true
		adj[r.SourceID] = append(adj[r.SourceID], r.TargetID)
		adj[r.TargetID] = append(adj[r.TargetID], r.SourceID)
	}
	for id := range adj {
		sort.Strings(adj[id])
	}
	return adj
}

func sortedIDs(adj map[string][]string) []string {
	ids := make([]string, 0, len(adj))
	for id := range adj {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
