package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Registry holds all metrics for the application
type Registry struct {
	// Buffer metrics
	RelationsAddedTotal   prometheus.Counter
	RelationsRemovedTotal prometheus.Counter
	CompactionsTotal      *prometheus.CounterVec
	CompactionDuration    *prometheus.HistogramVec
	CompactionDiscarded   prometheus.Histogram
	CompactionPending     prometheus.Histogram

	// Replay metrics
	ReplaySessionsTotal *prometheus.CounterVec
	ReplayDuration      prometheus.Histogram
	ReplayStepsTotal    *prometheus.CounterVec

	registry *prometheus.Registry
}
