/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package slotstore

import (
	"reflect"
	"sync"
	"time"

	"github.com/suparena/slotstore/registry"
)

var (
	timeType = reflect.TypeOf(time.Time{})
)

// resolution is a classified type. depth counts collection levels, of the wrapped type
// for optionals, so stores with limited nesting can demote deep collections.
type resolution struct {
	strategy Strategy
	depth    int
}

// Classify returns the storage strategy for T.
func Classify[T any]() Strategy {
	return ClassifyType(typeOf[T]())
}

// ClassifyType returns the storage strategy for t, assuming a store with unlimited
// collection nesting.
func ClassifyType(t reflect.Type) Strategy {
	if t == nil {
		return Opaque
	}
	return strategies.lookup(t).strategy
}

// classifyFor resolves t against a store that supports maxNesting collection levels
// (0 for unlimited). Collections deeper than that are stored opaquely.
func classifyFor(t reflect.Type, maxNesting int) Strategy {
	r := strategies.lookup(t)
	if maxNesting <= 0 || r.depth <= maxNesting {
		return r.strategy
	}
	switch r.strategy {
	case Collection:
		return Opaque
	case OptionalNative:
		return OptionalOpaque
	}
	return r.strategy
}

func typeOf[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

// classify applies the rules in precedence order: optional, native primitive,
// collection, opaque.
func classify(t reflect.Type) resolution {
	if t.Kind() == reflect.Pointer {
		inner := classify(t.Elem())
		if inner.strategy == Native || inner.strategy == Collection {
			return resolution{strategy: OptionalNative, depth: inner.depth}
		}
		return resolution{strategy: OptionalOpaque}
	}

	if isNative(t) {
		return resolution{strategy: Native}
	}

	switch t.Kind() {
	case reflect.Slice, reflect.Array:
		if elem, ok := collectionElem(t.Elem()); ok {
			return resolution{strategy: Collection, depth: elem.depth + 1}
		}
	case reflect.Map:
		if t.Key().Kind() != reflect.String {
			break
		}
		if elem, ok := collectionElem(t.Elem()); ok {
			return resolution{strategy: Collection, depth: elem.depth + 1}
		}
	}

	return resolution{strategy: Opaque}
}

func collectionElem(t reflect.Type) (resolution, bool) {
	r := classify(t)
	return r, r.strategy == Native || r.strategy == Collection
}

// isNative reports whether t maps directly onto a store primitive.
func isNative(t reflect.Type) bool {
	if _, ok := registry.LookupNative(t); ok {
		return true
	}
	if implementsNative(t) || t == timeType || isBytes(t) {
		return true
	}
	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Float32, reflect.Float64, reflect.Bool, reflect.String:
		return true
	}
	return false
}

func isBytes(t reflect.Type) bool {
	return t.Kind() == reflect.Slice && t.Elem().Kind() == reflect.Uint8
}

// strategyCache memoizes classification per type. Entries are dropped when the native
// registry changes.
type strategyCache struct {
	mu         sync.RWMutex
	generation uint64
	entries    map[reflect.Type]resolution
}

var strategies = &strategyCache{
	entries: make(map[reflect.Type]resolution),
}

func (c *strategyCache) lookup(t reflect.Type) resolution {
	gen := registry.Generation()

	c.mu.RLock()
	r, ok := c.entries[t]
	fresh := c.generation == gen
	c.mu.RUnlock()
	if ok && fresh {
		return r
	}

	r = classify(t)

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.generation != gen {
		c.entries = make(map[reflect.Type]resolution)
		c.generation = gen
	}
	c.entries[t] = r
	return r
}

// Len returns the number of cached classifications.
func (c *strategyCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
