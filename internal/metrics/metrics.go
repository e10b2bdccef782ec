// Package metrics holds the Prometheus collectors for inventory generation.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	Generations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "topogen_generations_total",
		Help: "Number of inventory generations by result.",
	}, []string{"result"})

	GenerationDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "topogen_generation_duration_seconds",
		Help:    "Duration of inventory generations.",
		Buckets: prometheus.ExponentialBuckets(.001, 4, 8),
	})

	HostsResolved = promauto.NewCounter(prometheus.CounterOpts{
		Name: "topogen_hosts_resolved_total",
		Help: "Number of hosts resolved across all generations.",
	})

	CatalogLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "topogen_catalog_lookups_total",
		Help: "Number of device catalog lookups by result.",
	}, []string{"result"})
)

func init() {
	for _, r := range []string{"ok", "error"} {
		Generations.WithLabelValues(r)
	}
	for _, r := range []string{"hit", "miss", "error"} {
		CatalogLookups.WithLabelValues(r)
	}
}
