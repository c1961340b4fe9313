package rules

import "sync"

// MemoryCounters is an in-process Counters implementation.
type MemoryCounters struct {
	mu     sync.Mutex
	values map[string]int
	writes int
}

// NewMemoryCounters returns an empty counter set.
func NewMemoryCounters() *MemoryCounters {
	return &MemoryCounters{values: make(map[string]int)}
}

func (m *MemoryCounters) ReadInt(key string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.values[key]
}

func (m *MemoryCounters) WriteInt(key string, value int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	m.writes++
}

// Writes returns how many writes have happened.
func (m *MemoryCounters) Writes() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.writes
}
