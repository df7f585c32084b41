/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package slotstore

import (
	"sort"
	"sync"

	"github.com/suparena/slotstore/datastore"
	"github.com/suparena/slotstore/datastore/mock"
	"github.com/suparena/slotstore/errors"
)

// Suites is a thread-safe set of named stores, so that independent parts of a program can
// share a store by name instead of by reference.
type Suites struct {
	mu     sync.RWMutex
	stores map[string]datastore.Store
}

// NewSuites creates an empty set of named stores.
func NewSuites() *Suites {
	return &Suites{
		stores: make(map[string]datastore.Store),
	}
}

// Register stores ds under name.
func (s *Suites) Register(name string, ds datastore.Store) error {
	if ds == nil {
		return errors.NewValidationError("store", "must not be nil")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.stores[name]; exists {
		return errors.NewAlreadyExistsError("suite", name)
	}
	s.stores[name] = ds
	return nil
}

// Lookup returns the store registered under name.
func (s *Suites) Lookup(name string) (datastore.Store, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ds, exists := s.stores[name]
	if !exists {
		return nil, errors.NewNotFoundError("suite", name)
	}
	return ds, nil
}

// Remove unregisters name. The store itself is left as is.
func (s *Suites) Remove(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.stores[name]; !exists {
		return errors.NewNotFoundError("suite", name)
	}
	delete(s.stores, name)
	return nil
}

// Names returns the registered names in sorted order.
func (s *Suites) Names() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.stores))
	for name := range s.stores {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

var (
	standardOnce  sync.Once
	standardStore *mock.Store
)

// Standard returns the process-wide in-memory store used by slots built without one.
func Standard() datastore.Store {
	standardOnce.Do(func() {
		standardStore = mock.New()
	})
	return standardStore
}
