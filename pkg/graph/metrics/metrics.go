// Package metrics exposes Prometheus gauges describing the graphs currently
// held by the process.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/athapong/kgalign/pkg/graph"
)

var (
	graphEntities = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "kgalign_graph_entities",
		Help: "Number of entities in a loaded graph, by graph type",
	}, []string{"graph_type"})

	graphRelationships = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "kgalign_graph_relationships",
		Help: "Number of relationships in a loaded graph, by graph type",
	}, []string{"graph_type"})

	graphDensity = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "kgalign_graph_density",
		Help: "Edge density of a loaded graph, by graph type",
	}, []string{"graph_type"})
)

func init() {
	prometheus.MustRegister(graphEntities)
	prometheus.MustRegister(graphRelationships)
	prometheus.MustRegister(graphDensity)
}

// Record publishes the current structural measures of kg.
func Record(kg *graph.KnowledgeGraph) {
	stats := kg.Statistics()
	graphEntities.WithLabelValues(kg.GraphType()).Set(float64(stats.TotalEntities))
	graphRelationships.WithLabelValues(kg.GraphType()).Set(float64(stats.TotalRelationships))
	graphDensity.WithLabelValues(kg.GraphType()).Set(stats.GraphDensity)
}
