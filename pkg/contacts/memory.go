package contacts

import (
	"context"
	"fmt"
	"sync"
)

// MemoryConfig configures an in-memory source.
type MemoryConfig struct {
	// Records are served in this order.
	Records []Record
}

// MemorySource serves records held in memory. Replace swaps the whole set,
// which is how tests and the interactive CLI simulate a contact change.
type MemorySource struct {
	mu      sync.RWMutex
	records []Record
	closed  bool
}

// NewMemorySource creates a source serving records in the given order.
func NewMemorySource(records []Record) *MemorySource {
	m := &MemorySource{}
	m.Replace(records)
	return m
}

// NewMemoryFactory implements Factory for MemoryConfig.
func NewMemoryFactory(config interface{}) (Source, error) {
	switch cfg := config.(type) {
	case MemoryConfig:
		return NewMemorySource(cfg.Records), nil
	case nil:
		return NewMemorySource(nil), nil
	default:
		return nil, fmt.Errorf("%w: memory source expects contacts.MemoryConfig, got %T", ErrInvalidConfig, config)
	}
}

// Replace swaps the served records for a copy of records.
func (m *MemorySource) Replace(records []Record) {
	cp := make([]Record, len(records))
	copy(cp, records)
	m.mu.Lock()
	m.records = cp
	m.mu.Unlock()
}

// Len returns how many records are held.
func (m *MemorySource) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.records)
}

// Scan implements Source.
func (m *MemorySource) Scan(ctx context.Context, fn func(Record) error) error {
	m.mu.RLock()
	if m.closed {
		m.mu.RUnlock()
		return fmt.Errorf("%w: memory source closed", ErrSourceUnavailable)
	}
	records := m.records
	m.mu.RUnlock()

	for _, r := range records {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := fn(r); err != nil {
			return err
		}
	}
	return nil
}

// Close implements Source.
func (m *MemorySource) Close() error {
	m.mu.Lock()
	m.closed = true
	m.mu.Unlock()
	return nil
}
