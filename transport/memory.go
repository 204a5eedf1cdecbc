package transport

import (
	"sync"

	"github.com/kbukum/catlog/record"
)

// Memory keeps every record it receives. It is meant for tests and for
// exposing recent activity in debug endpoints.
type Memory struct {
	mu      sync.RWMutex
	records []record.Record
	limit   int
	// next is the slot the next Write overwrites once the ring is full.
	next int
}

// NewMemory creates a Memory that keeps at most limit records, evicting
// the oldest first. A limit <= 0 keeps everything.
func NewMemory(limit int) *Memory {
	m := &Memory{limit: limit}
	if limit > 0 {
		m.records = make([]record.Record, 0, limit)
	}
	return m
}

func (m *Memory) Write(rec record.Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.limit <= 0 || len(m.records) < m.limit {
		m.records = append(m.records, rec)
		return nil
	}
	m.records[m.next] = rec
	m.next = (m.next + 1) % m.limit
	return nil
}

// Records returns a copy of the stored records, oldest first.
func (m *Memory) Records() []record.Record {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]record.Record, 0, len(m.records))
	out = append(out, m.records[m.next:]...)
	return append(out, m.records[:m.next]...)
}

// Len returns the number of stored records.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.records)
}

// Reset drops all stored records.
func (m *Memory) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	clear(m.records)
	m.records = m.records[:0]
	m.next = 0
}
