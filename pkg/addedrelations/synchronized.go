package addedrelations

import (
	"sync"
)

// Synchronized guards a Buffer with a mutex for transactions that are driven
// from more than one goroutine.
type Synchronized[R comparable] struct {
	mu  sync.Mutex
	buf *Buffer[R]
}

// NewSynchronized wraps buf. A nil buf gets a default buffer.
func NewSynchronized[R comparable](buf *Buffer[R]) *Synchronized[R] {
	if buf == nil {
		buf = NewDefault[R]()
	}
	return &Synchronized[R]{buf: buf}
}

// Add appends r under the lock
func (s *Synchronized[R]) Add(r R) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buf.Add(r)
}

// Remove marks r for removal under the lock, compacting past the threshold
func (s *Synchronized[R]) Remove(r R) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buf.Remove(r)
}

// IsEmpty compacts and reports whether any relation survives
func (s *Synchronized[R]) IsEmpty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buf.IsEmpty()
}

// View runs filter while holding the lock; filter must not call back into s.
func (s *Synchronized[R]) View(filter func(R) bool) []R {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buf.View(filter)
}

// All returns a copy of the relations, unlike Buffer.All.
func (s *Synchronized[R]) All() []R {
	s.mu.Lock()
	defer s.mu.Unlock()
	all := s.buf.All()
	if all == nil {
		return nil
	}
	return append(make([]R, 0, len(all)), all...)
}

// Stats returns the wrapped buffer's counters
func (s *Synchronized[R]) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buf.Stats()
}
