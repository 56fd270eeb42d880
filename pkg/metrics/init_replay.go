package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initReplayMetrics() {
	r.ReplaySessionsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "relbuf_replay_sessions_total",
			Help: "Total number of replayed scripts by outcome",
		},
		[]string{"status"},
	)

	r.ReplayDuration = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "relbuf_replay_duration_seconds",
			Help:    "Wall time of a full script replay in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	r.ReplayStepsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "relbuf_replay_steps_total",
			Help: "Total number of replayed script steps by operation",
		},
		[]string{"op"},
	)
}
