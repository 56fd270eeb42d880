package addedrelations

import (
	"github.com/dd0wney/cluso-relbuf/pkg/logging"
	"github.com/dd0wney/cluso-relbuf/pkg/metrics"
	"github.com/dd0wney/cluso-relbuf/pkg/validation"
)

// Buffer is the added-relations container of a single transaction.
//
// Both backing containers are allocated on first write and released by
// compaction, so a transaction that never adds or removes pays nothing. The
// zero value is ready to use with the default Config.
type Buffer[R comparable] struct {
	added   []R
	deleted map[R]struct{}

	cfg     Config
	metrics *metrics.Registry
	logger  logging.Logger
	stats   Stats
}

// Stats counts buffer activity since creation
type Stats struct {
	Added       int
	Removed     int
	Compactions int
	// Discarded is the number of added relations dropped by compactions
	Discarded int
}

// New creates a buffer with the given configuration
func New[R comparable](cfg Config) *Buffer[R] {
	return &Buffer[R]{cfg: cfg.withDefaults()}
}

// NewDefault creates a buffer with DefaultConfig
func NewDefault[R comparable]() *Buffer[R] {
	return New[R](DefaultConfig())
}

// WithMetrics reports adds, removals and compactions to reg
func (b *Buffer[R]) WithMetrics(reg *metrics.Registry) *Buffer[R] {
	b.metrics = reg
	return b
}

// WithLogger logs compactions at debug level
func (b *Buffer[R]) WithLogger(logger logging.Logger) *Buffer[R] {
	b.logger = logger.With(logging.Component("addedrelations"))
	return b
}

// Add appends r to the added sequence. It always returns true.
func (b *Buffer[R]) Add(r R) bool {
	if b.added == nil {
		b.added = make([]R, 0, validation.DefaultOrInt(b.cfg.InitialAddedSize, DefaultInitialAddedSize))
	}
	b.added = append(b.added, r)
	b.stats.Added++
	if b.metrics != nil {
		b.metrics.RecordAdd()
	}
	return true
}

// Remove records r for removal. Every relation equal to r leaves the buffer
// at the next compaction, which runs immediately once more than
// MaxDeletedSize distinct removals are pending. It always returns true;
// repeated requests for the same relation are absorbed by the set.
func (b *Buffer[R]) Remove(r R) bool {
	if b.deleted == nil {
		b.deleted = make(map[R]struct{}, validation.DefaultOrInt(b.cfg.InitialDeletedSize, DefaultInitialDeletedSize))
	}
	b.deleted[r] = struct{}{}
	b.stats.Removed++
	if b.metrics != nil {
		b.metrics.RecordRemove()
	}
	if len(b.deleted) > validation.DefaultOrInt(b.cfg.MaxDeletedSize, DefaultMaxDeletedSize) {
		b.compact(TriggerThreshold)
	}
	return true
}

// IsEmpty reports whether any added relation survives pending removals
func (b *Buffer[R]) IsEmpty() bool {
	b.compact(TriggerRead)
	return len(b.added) == 0
}

// View returns a new slice holding the relations accepted by filter, in
// add order. Later changes to the buffer do not affect it.
func (b *Buffer[R]) View(filter func(R) bool) []R {
	b.compact(TriggerRead)
	result := make([]R, 0)
	for _, r := range b.added {
		if filter(r) {
			result = append(result, r)
		}
	}
	return result
}

// All returns the buffer's own added sequence after applying pending
// removals. The slice must not be modified and is only valid until the next
// Add or Remove.
func (b *Buffer[R]) All() []R {
	b.compact(TriggerRead)
	return b.added
}

// Len returns the length of the added sequence without compacting, so it
// may still count relations that are pending removal.
func (b *Buffer[R]) Len() int {
	return len(b.added)
}

// Pending returns the number of distinct relations awaiting removal
func (b *Buffer[R]) Pending() int {
	return len(b.deleted)
}

// Stats returns activity counters
func (b *Buffer[R]) Stats() Stats {
	return b.stats
}
