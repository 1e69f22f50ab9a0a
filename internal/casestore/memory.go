package casestore

import (
	"context"
	"sort"
	"sync"

	"offboard/internal/record"
)

var (
	_ Store  = (*MemoryStore)(nil)
	_ Lister = (*MemoryStore)(nil)
)

// MemoryStore is an in-memory [Store]. Safe for concurrent access. Records
// are cloned on the way in and out so callers never share state with it.
type MemoryStore struct {
	mu    sync.RWMutex
	cases map[string]record.Record

	// FailSave, when set, is returned by Save instead of storing.
	FailSave error
}

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{cases: make(map[string]record.Record)}
}

// Load returns a copy of the stored record.
func (m *MemoryStore) Load(_ context.Context, employeeID string) (record.Record, error) {
	if err := ValidateEmployeeID(employeeID); err != nil {
		return record.Record{}, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	rec, ok := m.cases[employeeID]
	if !ok {
		return record.Record{}, ErrNotFound
	}
	return rec.Clone(), nil
}

// Save stores a copy of rec.
func (m *MemoryStore) Save(_ context.Context, employeeID string, rec record.Record) error {
	if err := ValidateEmployeeID(employeeID); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.FailSave != nil {
		return m.FailSave
	}
	m.cases[employeeID] = rec.Clone()
	return nil
}

// Remove deletes the stored record.
func (m *MemoryStore) Remove(_ context.Context, employeeID string) error {
	if err := ValidateEmployeeID(employeeID); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.cases, employeeID)
	return nil
}

// List returns the stored employee identifiers, sorted.
func (m *MemoryStore) List(_ context.Context) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	ids := make([]string, 0, len(m.cases))
	for id := range m.cases {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}
