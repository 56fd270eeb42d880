package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initBufferMetrics() {
	r.RelationsAddedTotal = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "relbuf_relations_added_total",
			Help: "Total number of relations appended to added-relation buffers",
		},
	)

	r.RelationsRemovedTotal = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "relbuf_relations_removed_total",
			Help: "Total number of removal requests recorded by added-relation buffers",
		},
	)

	r.CompactionsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "relbuf_compactions_total",
			Help: "Total number of buffer compactions by trigger",
		},
		[]string{"trigger"},
	)

	r.CompactionDuration = promauto.With(r.registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "relbuf_compaction_duration_seconds",
			Help:    "Buffer compaction duration in seconds",
			Buckets: []float64{0.000001, 0.00001, 0.0001, 0.001, 0.01, 0.1},
		},
		[]string{"trigger"},
	)

	r.CompactionDiscarded = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "relbuf_compaction_discarded_relations",
			Help:    "Relations dropped from the added sequence per compaction",
			Buckets: prometheus.ExponentialBuckets(1, 4, 8),
		},
	)

	r.CompactionPending = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "relbuf_compaction_pending_removals",
			Help:    "Size of the pending-removal set applied per compaction",
			Buckets: []float64{1, 5, 10, 25, 50, 51, 100},
		},
	)
}
