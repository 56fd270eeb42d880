package addedrelations

import (
	"time"

	"github.com/dd0wney/cluso-relbuf/pkg/logging"
)

// Trigger records why a compaction ran
type Trigger string

const (
	// TriggerThreshold: Remove pushed the pending set past MaxDeletedSize
	TriggerThreshold Trigger = "threshold"
	// TriggerRead: IsEmpty, View or All needed a reconciled sequence
	TriggerRead Trigger = "read"
)

// compact applies the pending removals to the added sequence and releases
// the pending set. It is a no-op when nothing is pending.
func (b *Buffer[R]) compact(trigger Trigger) {
	if len(b.deleted) == 0 {
		return
	}

	observed := b.metrics != nil || b.logger != nil
	var start time.Time
	if observed {
		start = time.Now()
	}

	removed := b.deleted
	pending := len(removed)
	b.deleted = nil

	before := len(b.added)
	// capacity is only a hint; append grows past it
	kept := make([]R, 0, max(0, before-pending/2))
	for _, r := range b.added {
		if _, gone := removed[r]; !gone {
			kept = append(kept, r)
		}
	}
	if len(kept) == 0 {
		kept = nil
	}
	b.added = kept

	discarded := before - len(kept)
	b.stats.Compactions++
	b.stats.Discarded += discarded

	if !observed {
		return
	}
	elapsed := time.Since(start)
	if b.metrics != nil {
		b.metrics.RecordCompaction(string(trigger), pending, discarded, elapsed)
	}
	if b.logger != nil && b.logger.Enabled(logging.DebugLevel) {
		b.logger.Debug("compacted added relations",
			logging.Trigger(string(trigger)),
			logging.Pending(pending),
			logging.Relations(len(kept)),
			logging.Int("discarded", discarded),
			logging.Latency(elapsed),
		)
	}
}
