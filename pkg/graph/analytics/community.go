package analytics

import (
	"sort"

	"github.com/athapong/kgalign/pkg/graph"
)

// Components above this size get a label-propagation refinement pass;
// smaller ones are communities on their own.
const minComponentSplit = 6

const labelPropagationRounds = 10

// Communities returns groups of related entity ids. Connected components
// form the base partition; large components are further split by label
// propagation. Results are sorted by size descending, then by first member,
// so repeated runs on the same graph agree.
func Communities(kg *graph.KnowledgeGraph) [][]string {
	adj := adjacency(kg)
	if len(adj) == 0 {
		return nil
	}

	var communities [][]string
	for _, component := range connectedComponents(adj) {
		if len(component) <= minComponentSplit {
			communities = append(communities, component)
			continue
		}
		communities = append(communities, propagateLabels(component, adj)...)
	}

	sort.Slice(communities, func(i, j int) bool {
		if len(communities[i]) != len(communities[j]) {
			return len(communities[i]) > len(communities[j])
		}
		return communities[i][0] < communities[j][0]
	})
	return communities
}

func connectedComponents(adj map[string][]string) [][]string {
	visited := make(map[string]bool, len(adj))
	var components [][]string

	for _, start := range sortedIDs(adj) {
		if visited[start] {
			continue
		}
		var component []string
		queue := []string{start}
		visited[start] = true
		for len(queue) > 0 {
			cur := queue[0]
			queue = queue[1:]
			component = append(component, cur)
			for _, next := range adj[cur] {
				if !visited[next] {
					visited[next] = true
					queue = append(queue, next)
				}
			}
		}
		sort.Strings(component)
		components = append(components, component)
	}
	return components
}

// propagateLabels runs synchronous label propagation within one component.
// Every node starts labeled by its own id; each round it adopts the most
// common label among its neighbors, ties resolved toward the smallest label
// so the process is deterministic.
func propagateLabels(component []string, adj map[string][]string) [][]string {
	labels := make(map[string]string, len(component))
	for _, id := range component {
		labels[id] = id
	}

	for round := 0; round < labelPropagationRounds; round++ {
		changed := false
		next := make(map[string]string, len(labels))
		for _, id := range component {
			counts := make(map[string]int)
			for _, neighbor := range adj[id] {
				counts[labels[neighbor]]++
			}
			best := labels[id]
			bestCount := 0
			for label, count := range counts {
				if count > bestCount || (count == bestCount && label < best) {
					best = label
					bestCount = count
				}
			}
			next[id] = best
			if best != labels[id] {
				changed = true
			}
		}
		labels = next
		if !changed {
			break
		}
	}

	byLabel := make(map[string][]string)
	for _, id := range component {
		byLabel[labels[id]] = append(byLabel[labels[id]], id)
	}
	var groups [][]string
	for _, members := range byLabel {
		sort.Strings(members)
		groups = append(groups, members)
	}
	sort.Slice(groups, func(i, j int) bool { return groups[i][0] < groups[j][0] })
	return groups
}
