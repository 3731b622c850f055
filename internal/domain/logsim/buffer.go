package logsim

import "sync"

// Buffer is a bounded, insertion-ordered window of entries. Once full, each
// push evicts the oldest entry.
type Buffer struct {
	mu      sync.RWMutex
	entries []Entry
	cap     int
}

// NewBuffer builds a buffer holding at most capacity entries (minimum 1).
func NewBuffer(capacity int) *Buffer {
	if capacity < 1 {
		capacity = 1
	}
	return &Buffer{cap: capacity, entries: make([]Entry, 0, capacity)}
}

// Push keeps the newest cap-1 entries, appends e and returns what was evicted,
// oldest first.
func (b *Buffer) Push(e Entry) []Entry {
	b.mu.Lock()
	defer b.mu.Unlock()

	var evicted []Entry
	if keep := b.cap - 1; len(b.entries) > keep {
		drop := len(b.entries) - keep
		evicted = append(evicted, b.entries[:drop]...)
		remaining := make([]Entry, keep, b.cap)
		copy(remaining, b.entries[drop:])
		b.entries = remaining
	}
	b.entries = append(b.entries, e)
	return evicted
}

// Snapshot returns a copy of the entries, oldest first.
func (b *Buffer) Snapshot() []Entry {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make([]Entry, len(b.entries))
	copy(out, b.entries)
	return out
}

// Len returns the number of buffered entries.
func (b *Buffer) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.entries)
}

// Cap returns the capacity bound.
func (b *Buffer) Cap() int {
	return b.cap
}
