/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package registry

import (
	"fmt"
	"reflect"
	"sync"
)

// Converter maps values of a registered Go type onto canonical store records and back.
type Converter struct {
	// ToStore returns the canonical record for v, which holds the registered type.
	ToStore func(v any) (any, bool)
	// FromStore rebuilds a value of the registered type from a record. nested is true for
	// collection elements, where stores may have lost the exact record shape.
	FromStore func(record any, nested bool) (any, bool)
}

var (
	natives    = make(map[reflect.Type]Converter)
	generation uint64
	mu         sync.RWMutex
)

// RegisterNative marks T as natively storable using the given converter.
// Registering the same type twice panics to prevent accidental overrides.
func RegisterNative[T any](c Converter) {
	RegisterNativeType(reflect.TypeOf((*T)(nil)).Elem(), c)
}

// RegisterNativeType is the reflect.Type form of RegisterNative.
func RegisterNativeType(t reflect.Type, c Converter) {
	if c.ToStore == nil || c.FromStore == nil {
		panic(fmt.Sprintf("native registry: converter for %v is incomplete", t))
	}

	mu.Lock()
	defer mu.Unlock()
	if _, exists := natives[t]; exists {
		panic(fmt.Sprintf("native registry: type %v already registered", t))
	}
	natives[t] = c
	generation++
}

// LookupNative returns the converter registered for t, if any.
func LookupNative(t reflect.Type) (Converter, bool) {
	mu.RLock()
	defer mu.RUnlock()
	c, ok := natives[t]
	return c, ok
}

// Generation changes every time a type is registered. Callers caching decisions derived
// from the registry compare it to detect staleness.
func Generation() uint64 {
	mu.RLock()
	defer mu.RUnlock()
	return generation
}
