// Package streamlog maintains the bounded, ordered message log backing a
// display surface.
package streamlog

import (
	"fmt"

	"github.com/crimson-sun/wisp/internal/model"
	"github.com/crimson-sun/wisp/internal/render"
)

// Log is an ordered sequence of messages with a fixed capacity. Appending
// past capacity evicts the oldest entries first. Length never exceeds the
// capacity at any observable point. Not safe for concurrent use — the
// owning client serializes all mutation.
type Log struct {
	entries  []model.Message
	capacity int
	renderer render.Renderer
}

// New creates a Log with the given capacity. Capacity must be >= 1.
func New(capacity int, r render.Renderer) (*Log, error) {
	if capacity < 1 {
		return nil, fmt.Errorf("streamlog: capacity must be >= 1, got %d", capacity)
	}
	if r == nil {
		r = render.Nop{}
	}
	return &Log{capacity: capacity, renderer: r}, nil
}

// Append inserts the message at the end, evicts overflow from the front,
// and notifies the renderer: first of the append, then of each eviction in
// eviction order.
func (l *Log) Append(msg model.Message) {
	l.entries = append(l.entries, msg)
	var evicted []model.Message
	if n := len(l.entries) - l.capacity; n > 0 {
		evicted = make([]model.Message, n)
		copy(evicted, l.entries[:n])
		l.entries = l.entries[:copy(l.entries, l.entries[n:])]
	}

	l.renderer.MessageAppended(msg)
	for _, old := range evicted {
		l.renderer.MessageEvicted(old)
	}
}

// Clear removes all entries and notifies the renderer of the reset.
func (l *Log) Clear() {
	l.entries = l.entries[:0]
	l.renderer.LogCleared()
}

// Len returns the current number of entries.
func (l *Log) Len() int {
	return len(l.entries)
}

// Capacity returns the fixed maximum number of entries.
func (l *Log) Capacity() int {
	return l.capacity
}

// Entries returns a copy of the retained messages in insertion order.
func (l *Log) Entries() []model.Message {
	cp := make([]model.Message, len(l.entries))
	copy(cp, l.entries)
	return cp
}
