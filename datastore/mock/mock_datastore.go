/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Package mock provides an in-memory implementation of datastore.Store for tests and for
// the process-wide standard store
package mock

import (
	"sort"
	"sync"

	"github.com/suparena/slotstore/datastore"
)

// Op identifies a recorded store mutation
type Op string

const (
	OpSet    Op = "set"
	OpRemove Op = "remove"
)

// Mutation is a recorded Set or Remove call
type Mutation struct {
	Op    Op
	Key   string
	Value any
}

// Store is a thread-safe in-memory datastore.Store that records every mutation
type Store struct {
	mu         sync.RWMutex
	data       map[string]any
	mutations  []Mutation
	maxNesting int
	onSet      func(key string, value any)
}

var (
	_ datastore.Store          = (*Store)(nil)
	_ datastore.NestingLimiter = (*Store)(nil)
	_ datastore.Lister         = (*Store)(nil)
)

// New creates a new empty Store
func New() *Store {
	return &Store{
		data: make(map[string]any),
	}
}

// WithMaxNesting makes the store declare a collection depth limit
func (m *Store) WithMaxNesting(n int) *Store {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.maxNesting = n
	return m
}

// WithOnSet registers a callback invoked after every Set
func (m *Store) WithOnSet(f func(key string, value any)) *Store {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onSet = f
	return m
}

func (m *Store) MaxNesting() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.maxNesting
}

func (m *Store) Integer(key string) int64         { return datastore.Integer(m.Object(key)) }
func (m *Store) Double(key string) float64        { return datastore.Double(m.Object(key)) }
func (m *Store) Float(key string) float32         { return datastore.Float(m.Object(key)) }
func (m *Store) Bool(key string) bool             { return datastore.Bool(m.Object(key)) }
func (m *Store) String(key string) (string, bool) { return datastore.String(m.Object(key)) }
func (m *Store) Bytes(key string) ([]byte, bool)  { return datastore.Bytes(m.Object(key)) }
func (m *Store) Array(key string) ([]any, bool)   { return datastore.Array(m.Object(key)) }
func (m *Store) Map(key string) (map[string]any, bool) {
	return datastore.Map(m.Object(key))
}

// Object returns the raw record for key
func (m *Store) Object(key string) (any, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	v, exists := m.data[key]
	return v, exists
}

// Set stores value under key. Plain Go numbers are folded into their canonical form and a
// nil value removes the key.
func (m *Store) Set(key string, value any) {
	if value == nil {
		m.Remove(key)
		return
	}
	if n, ok := datastore.Normalize(value); ok {
		value = n
	}

	m.mu.Lock()
	m.data[key] = value
	m.mutations = append(m.mutations, Mutation{Op: OpSet, Key: key, Value: value})
	onSet := m.onSet
	m.mu.Unlock()

	if onSet != nil {
		onSet(key, value)
	}
}

// Remove deletes key. Removing a missing key is recorded but otherwise a no-op.
func (m *Store) Remove(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.data, key)
	m.mutations = append(m.mutations, Mutation{Op: OpRemove, Key: key})
}

// Keys returns the stored keys in sorted order
func (m *Store) Keys() ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	keys := make([]string, 0, len(m.data))
	for k := range m.data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}

// Helper methods for testing

// SetData directly replaces the stored records, bypassing normalization and recording
func (m *Store) SetData(data map[string]any) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.data = make(map[string]any, len(data))
	for k, v := range data {
		m.data[k] = v
	}
}

// GetData returns a copy of the stored records
func (m *Store) GetData() map[string]any {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make(map[string]any, len(m.data))
	for k, v := range m.data {
		result[k] = v
	}
	return result
}

// Mutations returns the recorded Set and Remove calls in order
func (m *Store) Mutations() []Mutation {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return append([]Mutation(nil), m.mutations...)
}

// Count returns the number of stored records
func (m *Store) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.data)
}

// Clear removes all records and forgets recorded mutations
func (m *Store) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.data = make(map[string]any)
	m.mutations = nil
}
