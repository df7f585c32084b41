/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package datastore

// Store is the minimal key-value surface a typed slot needs from a backend.
//
// Typed getters return the zero value (or false) when the key is absent or the record
// has a different shape. Object reports whether any record exists, whatever its shape.
type Store interface {
	Integer(key string) int64
	Double(key string) float64
	Float(key string) float32
	Bool(key string) bool
	String(key string) (string, bool)
	Bytes(key string) ([]byte, bool)
	Array(key string) ([]any, bool)
	Map(key string) (map[string]any, bool)

	// Object returns the raw record for key.
	Object(key string) (any, bool)

	// Set replaces the record for key. A nil value removes it.
	Set(key string, value any)

	Remove(key string)
}

// NestingLimiter is implemented by stores that can only hold native collections up to
// a fixed depth. A return value of 0 means unlimited.
type NestingLimiter interface {
	MaxNesting() int
}

// Lister is implemented by stores that can enumerate their keys.
type Lister interface {
	Keys() ([]string, error)
}

// MaxNesting returns the collection depth supported by s, 0 when unlimited.
func MaxNesting(s Store) int {
	if l, ok := s.(NestingLimiter); ok {
		return l.MaxNesting()
	}
	return 0
}
