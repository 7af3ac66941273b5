package compare

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	comparisonsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "kgalign_comparisons_total",
		Help: "Total number of graph comparisons performed",
	})

	comparisonDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "kgalign_comparison_duration_seconds",
		Help:    "Duration of graph comparison runs",
		Buckets: prometheus.DefBuckets,
	})

	entityMatchesFound = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "kgalign_entity_matches_total",
		Help: "Total number of accepted entity matches",
	})

	relationshipMatchesFound = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "kgalign_relationship_matches_total",
		Help: "Total number of accepted relationship matches",
	})
)

func init() {
	prometheus.MustRegister(comparisonsTotal)
	prometheus.MustRegister(comparisonDuration)
	prometheus.MustRegister(entityMatchesFound)
	prometheus.MustRegister(relationshipMatchesFound)
}
