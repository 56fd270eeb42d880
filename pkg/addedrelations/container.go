// Package addedrelations buffers the relations a transaction creates.
//
// Removals are not applied to the added sequence one at a time. They are
// recorded in a pending set and folded in by a compaction that runs when the
// set grows past a threshold or just before anything reads the buffer. A
// buffer belongs to one transaction and is not safe for concurrent use; see
// Synchronized for the locked variant.
package addedrelations

// Container is the set of relations added in a transaction and not since
// removed. Relations are compared with ==.
type Container[R comparable] interface {
	// Add appends a relation and reports whether the container changed.
	Add(r R) bool
	// Remove marks every relation equal to r as removed and reports whether
	// the request was recorded.
	Remove(r R) bool
	IsEmpty() bool
	// View returns a new slice of the relations accepted by filter, in the
	// order they were added.
	View(filter func(R) bool) []R
	// All returns the current relations. The slice may be shared with the
	// container and must not be modified.
	All() []R
}

// Empty is the container of a read-only transaction. It never holds
// anything and ignores Add and Remove.
type Empty[R comparable] struct{}

func (Empty[R]) Add(R) bool            { return false }
func (Empty[R]) Remove(R) bool         { return false }
func (Empty[R]) IsEmpty() bool         { return true }
func (Empty[R]) View(func(R) bool) []R { return []R{} }
func (Empty[R]) All() []R              { return nil }

var (
	_ Container[int] = (*Buffer[int])(nil)
	_ Container[int] = (*Synchronized[int])(nil)
	_ Container[int] = Empty[int]{}
)
