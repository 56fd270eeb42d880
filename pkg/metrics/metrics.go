package metrics

import (
	"fmt"
	"io"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
)

// NewRegistry creates a new metrics registry with all metrics initialized
func NewRegistry() *Registry {
	r := &Registry{
		registry: prometheus.NewRegistry(),
	}

	r.initBufferMetrics()
	r.initReplayMetrics()

	return r
}

// RecordAdd counts one relation appended to a buffer
func (r *Registry) RecordAdd() {
	r.RelationsAddedTotal.Inc()
}

// RecordRemove counts one removal request recorded by a buffer
func (r *Registry) RecordRemove() {
	r.RelationsRemovedTotal.Inc()
}

// RecordCompaction records a buffer compaction. pending is the size of the
// removal set that was applied and discarded the number of relations that
// left the added sequence.
func (r *Registry) RecordCompaction(trigger string, pending, discarded int, duration time.Duration) {
	r.CompactionsTotal.WithLabelValues(trigger).Inc()
	r.CompactionDuration.WithLabelValues(trigger).Observe(duration.Seconds())
	r.CompactionPending.Observe(float64(pending))
	r.CompactionDiscarded.Observe(float64(discarded))
}

// RecordReplayStep counts a replayed script step by operation
func (r *Registry) RecordReplayStep(op string) {
	r.ReplayStepsTotal.WithLabelValues(op).Inc()
}

// RecordReplay records a finished replay session
func (r *Registry) RecordReplay(status string, duration time.Duration) {
	r.ReplaySessionsTotal.WithLabelValues(status).Inc()
	r.ReplayDuration.Observe(duration.Seconds())
}

// WriteText writes every gathered metric family in the Prometheus text
// exposition format.
func (r *Registry) WriteText(w io.Writer) error {
	families, err := r.registry.Gather()
	if err != nil {
		return fmt.Errorf("gather metrics: %w", err)
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return fmt.Errorf("write metric family %s: %w", mf.GetName(), err)
		}
	}
	return nil
}
