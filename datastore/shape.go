/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package datastore

import (
	"math"
	"time"
)

// Kind names the shape of a canonical record value.
type Kind string

const (
	KindInteger   Kind = "integer"
	KindDouble    Kind = "double"
	KindFloat     Kind = "float"
	KindBool      Kind = "bool"
	KindString    Kind = "string"
	KindBytes     Kind = "bytes"
	KindTimestamp Kind = "timestamp"
	KindArray     Kind = "array"
	KindMapping   Kind = "mapping"
	KindUnknown   Kind = "unknown"
)

// KindOf reports the shape of a canonical record value.
func KindOf(v any) Kind {
	switch v.(type) {
	case int64:
		return KindInteger
	case float64:
		return KindDouble
	case float32:
		return KindFloat
	case bool:
		return KindBool
	case string:
		return KindString
	case []byte:
		return KindBytes
	case time.Time:
		return KindTimestamp
	case []any:
		return KindArray
	case map[string]any:
		return KindMapping
	default:
		return KindUnknown
	}
}

// The helpers below implement the typed getters of Store on top of Object, so a
// backend only has to produce canonical records:
//
//	func (s *KVStore) Integer(key string) int64 { return datastore.Integer(s.Object(key)) }

// Integer returns v as an int64, or 0 when absent or of another shape.
func Integer(v any, ok bool) int64 {
	if !ok {
		return 0
	}
	i, _ := v.(int64)
	return i
}

// Double returns v as a float64, or 0 when absent or of another shape.
func Double(v any, ok bool) float64 {
	if !ok {
		return 0
	}
	f, _ := v.(float64)
	return f
}

// Float returns v as a float32, or 0 when absent or of another shape.
func Float(v any, ok bool) float32 {
	if !ok {
		return 0
	}
	f, _ := v.(float32)
	return f
}

// Bool returns v as a bool, or false when absent or of another shape.
func Bool(v any, ok bool) bool {
	if !ok {
		return false
	}
	b, _ := v.(bool)
	return b
}

func String(v any, ok bool) (string, bool) {
	if !ok {
		return "", false
	}
	s, isString := v.(string)
	return s, isString
}

func Bytes(v any, ok bool) ([]byte, bool) {
	if !ok {
		return nil, false
	}
	b, isBytes := v.([]byte)
	return b, isBytes
}

func Array(v any, ok bool) ([]any, bool) {
	if !ok {
		return nil, false
	}
	a, isArray := v.([]any)
	return a, isArray
}

func Map(v any, ok bool) (map[string]any, bool) {
	if !ok {
		return nil, false
	}
	m, isMap := v.(map[string]any)
	return m, isMap
}

// Normalize converts a loosely typed value, as produced by decoders, into its canonical
// record form. Unsigned integers that fit are folded into int64 and plain ints widened.
// It reports false for values that have no canonical form.
func Normalize(v any) (any, bool) {
	switch tv := v.(type) {
	case int64, float64, float32, bool, string, time.Time:
		return tv, true
	case []byte:
		return tv, true
	case int:
		return int64(tv), true
	case int8:
		return int64(tv), true
	case int16:
		return int64(tv), true
	case int32:
		return int64(tv), true
	case uint:
		return normalizeUnsigned(uint64(tv))
	case uint8:
		return int64(tv), true
	case uint16:
		return int64(tv), true
	case uint32:
		return int64(tv), true
	case uint64:
		return normalizeUnsigned(tv)
	case []any:
		out := make([]any, len(tv))
		for i, e := range tv {
			n, ok := Normalize(e)
			if !ok {
				return nil, false
			}
			out[i] = n
		}
		return out, true
	case map[string]any:
		out := make(map[string]any, len(tv))
		for k, e := range tv {
			n, ok := Normalize(e)
			if !ok {
				return nil, false
			}
			out[k] = n
		}
		return out, true
	default:
		return nil, false
	}
}

func normalizeUnsigned(u uint64) (any, bool) {
	if u > math.MaxInt64 {
		return nil, false
	}
	return int64(u), true
}
