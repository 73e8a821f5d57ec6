// Package mailbox provides a single-slot buffer where the latest value wins.
// The retention manager uses it to coalesce sweep requests: a burst of rolls
// produces many requests but at most one pending sweep.
package mailbox

import "sync"

// Mailbox holds at most one pending value. Put overwrites any existing
// value; it never blocks and never queues.
type Mailbox[T any] struct {
	mu      sync.Mutex
	pending *T
}

// New creates an empty mailbox.
func New[T any]() *Mailbox[T] {
	return &Mailbox[T]{}
}

// Put stores v, replacing any pending value. It reports whether the slot
// was previously empty, letting the caller schedule exactly one consumer
// per batch of puts.
func (m *Mailbox[T]) Put(v T) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	wasEmpty := m.pending == nil
	m.pending = &v
	return wasEmpty
}

// TryTake returns the pending value and clears the slot, or nil if empty.
// It never blocks.
func (m *Mailbox[T]) TryTake() *T {
	m.mu.Lock()
	defer m.mu.Unlock()

	v := m.pending
	m.pending = nil
	return v
}

// HasPending reports whether a value is currently waiting.
func (m *Mailbox[T]) HasPending() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.pending != nil
}
