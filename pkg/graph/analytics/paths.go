package analytics

import (
	"github.com/athapong/kgalign/pkg/graph"
)

// ShortestPath returns the entity ids along an undirected shortest path from
// fromID to toID, inclusive of both endpoints. The second result is false
// when either endpoint is unknown or no path exists.
func ShortestPath(kg *graph.KnowledgeGraph, fromID, toID string) ([]string, bool) {
	adj := adjacency(kg)
	if _, ok := adj[fromID]; !ok {
		return nil, false
	}
	if _, ok := adj[toID]; !ok {
		return nil, false
	}
	if fromID == toID {
		return []string{fromID}, true
	}

	parent := map[string]string{fromID: ""}
	queue := []string{fromID}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, next := range adj[cur] {
			if _, seen := parent[next]; seen {
				continue
			}
			parent[next] = cur
			if next == toID {
				var path []string
				for at := toID; at != ""; at = parent[at] {
					path = append([]string{at}, path...)
				}
				return path, true
			}
			queue = append(queue, next)
		}
	}
	return nil, false
}
