// internal/store/memory.go
//
// In-memory implementation of the Store interface.
// Used when no database path is configured, and by controller tests.
//
// Characteristics:
//   - Records are kept in insertion order in a slice.
//   - IDs come from a counter that Clear rewinds, like SQLite's sequence.
//   - Concurrency-safe via RWMutex (concurrent reads allowed, writes exclusive).
//   - State is lost when the process restarts.
//   - After Close every call fails with ErrStorage.

package store

import (
	"context"
	"sync"
)

// memory is a slice-backed Store implementation.
type memory struct {
	mu      sync.RWMutex // guards everything below
	records []Record
	lastID  int64
	closed  bool
}

// NewMemoryStore constructs a new in-memory Store.
func NewMemoryStore() Store {
	return &memory{}
}

// Append assigns the next ID and keeps a copy of the record.
func (m *memory) Append(ctx context.Context, r Record) (Record, error) {
	r, err := validate(r)
	if err != nil {
		return Record{}, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return Record{}, storageErr("append", errClosed)
	}
	m.lastID++
	r.ID = m.lastID
	m.records = append(m.records, r)
	return r, nil
}

// List returns a copy of all records in ID order.
func (m *memory) List(ctx context.Context) ([]Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.closed {
		return nil, storageErr("list", errClosed)
	}
	out := make([]Record, len(m.records))
	copy(out, m.records)
	return out, nil
}

// Clear drops every record and rewinds the ID counter.
func (m *memory) Clear(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return storageErr("clear", errClosed)
	}
	m.records = nil
	m.lastID = 0
	return nil
}

// Close marks the store unusable.
func (m *memory) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}
