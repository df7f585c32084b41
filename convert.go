/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package slotstore

import (
	"fmt"
	"math"
	"reflect"
	"time"

	"github.com/suparena/slotstore/datastore"
	"github.com/suparena/slotstore/registry"
)

// toRecord converts a Native or Collection value into its canonical store record.
func toRecord(v reflect.Value) (any, error) {
	t := v.Type()

	if c, ok := registry.LookupNative(t); ok {
		rec, ok := c.ToStore(v.Interface())
		if !ok {
			return nil, fmt.Errorf("native converter for %v rejected the value", t)
		}
		return canonical(rec), nil
	}
	if implementsNative(t) {
		return canonical(nativeOf(v).StoreValue()), nil
	}
	if t == timeType {
		return v.Interface().(time.Time), nil
	}

	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int(), nil
	case reflect.Float64:
		return v.Float(), nil
	case reflect.Float32:
		return float32(v.Float()), nil
	case reflect.Bool:
		return v.Bool(), nil
	case reflect.String:
		return v.String(), nil
	case reflect.Slice:
		if isBytes(t) {
			b := make([]byte, v.Len())
			for i := range b {
				b[i] = byte(v.Index(i).Uint())
			}
			return b, nil
		}
		return listRecord(v)
	case reflect.Array:
		return listRecord(v)
	case reflect.Map:
		out := make(map[string]any, v.Len())
		iter := v.MapRange()
		for iter.Next() {
			rec, err := toRecord(iter.Value())
			if err != nil {
				return nil, err
			}
			out[iter.Key().String()] = rec
		}
		return out, nil
	}

	return nil, fmt.Errorf("%v has no native record form", t)
}

// canonical folds plain Go numbers and containers returned by custom natives into
// record form, leaving anything else for the store to deal with.
func canonical(rec any) any {
	if n, ok := datastore.Normalize(rec); ok {
		return n
	}
	return rec
}

func listRecord(v reflect.Value) (any, error) {
	out := make([]any, v.Len())
	for i := range out {
		rec, err := toRecord(v.Index(i))
		if err != nil {
			return nil, err
		}
		out[i] = rec
	}
	return out, nil
}

// fromRecord rebuilds a value of type t from a canonical record. Top-level scalars must
// match exactly; below the top level numbers may widen and timestamps may be RFC 3339
// text, since not every store keeps those distinctions inside collections.
func fromRecord(t reflect.Type, rec any, nested bool) (reflect.Value, bool) {
	if c, ok := registry.LookupNative(t); ok {
		v, ok := c.FromStore(rec, nested)
		if !ok {
			return reflect.Value{}, false
		}
		return assignable(t, v)
	}
	if implementsNative(t) {
		v, ok := nativeOf(reflect.New(t).Elem()).LoadValue(rec)
		if !ok {
			return reflect.Value{}, false
		}
		return assignable(t, v)
	}
	if t == timeType {
		return timeFromRecord(rec, nested)
	}

	out := reflect.New(t).Elem()
	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		i, ok := rec.(int64)
		if !ok || out.OverflowInt(i) {
			return reflect.Value{}, false
		}
		out.SetInt(i)
	case reflect.Float64, reflect.Float32:
		f, ok := floatFromRecord(t.Kind(), rec, nested)
		if !ok || out.OverflowFloat(f) {
			return reflect.Value{}, false
		}
		out.SetFloat(f)
	case reflect.Bool:
		b, ok := rec.(bool)
		if !ok {
			return reflect.Value{}, false
		}
		out.SetBool(b)
	case reflect.String:
		s, ok := rec.(string)
		if !ok {
			return reflect.Value{}, false
		}
		out.SetString(s)
	case reflect.Slice:
		if isBytes(t) {
			b, ok := rec.([]byte)
			if !ok {
				return reflect.Value{}, false
			}
			out = reflect.MakeSlice(t, len(b), len(b))
			for i, c := range b {
				out.Index(i).SetUint(uint64(c))
			}
			return out, true
		}
		list, ok := rec.([]any)
		if !ok {
			return reflect.Value{}, false
		}
		out = reflect.MakeSlice(t, len(list), len(list))
		if !fillList(out, list) {
			return reflect.Value{}, false
		}
	case reflect.Array:
		list, ok := rec.([]any)
		if !ok || len(list) != t.Len() {
			return reflect.Value{}, false
		}
		if !fillList(out, list) {
			return reflect.Value{}, false
		}
	case reflect.Map:
		m, ok := rec.(map[string]any)
		if !ok {
			return reflect.Value{}, false
		}
		out = reflect.MakeMapWithSize(t, len(m))
		for k, e := range m {
			ev, ok := fromRecord(t.Elem(), e, true)
			if !ok {
				return reflect.Value{}, false
			}
			out.SetMapIndex(reflect.ValueOf(k).Convert(t.Key()), ev)
		}
	default:
		return reflect.Value{}, false
	}
	return out, true
}

func fillList(dst reflect.Value, list []any) bool {
	elem := dst.Type().Elem()
	for i, e := range list {
		ev, ok := fromRecord(elem, e, true)
		if !ok {
			return false
		}
		dst.Index(i).Set(ev)
	}
	return true
}

func floatFromRecord(kind reflect.Kind, rec any, nested bool) (float64, bool) {
	switch f := rec.(type) {
	case float64:
		return f, nested || kind == reflect.Float64
	case float32:
		return float64(f), nested || kind == reflect.Float32
	case int64:
		return float64(f), nested && math.Abs(float64(f)) < 1<<53
	}
	return 0, false
}

func timeFromRecord(rec any, nested bool) (reflect.Value, bool) {
	switch v := rec.(type) {
	case time.Time:
		return reflect.ValueOf(v), true
	case string:
		if !nested {
			return reflect.Value{}, false
		}
		t, err := time.Parse(time.RFC3339Nano, v)
		if err != nil {
			return reflect.Value{}, false
		}
		return reflect.ValueOf(t), true
	}
	return reflect.Value{}, false
}

// assignable coerces a converter result to t.
func assignable(t reflect.Type, v any) (reflect.Value, bool) {
	rv := reflect.ValueOf(v)
	if !rv.IsValid() {
		return reflect.Value{}, false
	}
	if rv.Type() == t {
		return rv, true
	}
	if rv.Type().ConvertibleTo(t) {
		return rv.Convert(t), true
	}
	return reflect.Value{}, false
}

// describe names the record shape a type is stored as, for mismatch reports.
func describe(t reflect.Type) string {
	switch {
	case t == timeType:
		return string(datastore.KindTimestamp)
	case isBytes(t):
		return string(datastore.KindBytes)
	}
	if _, ok := registry.LookupNative(t); ok || implementsNative(t) {
		return t.String()
	}
	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return string(datastore.KindInteger)
	case reflect.Float64:
		return string(datastore.KindDouble)
	case reflect.Float32:
		return string(datastore.KindFloat)
	case reflect.Bool:
		return string(datastore.KindBool)
	case reflect.String:
		return string(datastore.KindString)
	case reflect.Slice, reflect.Array:
		return string(datastore.KindArray)
	case reflect.Map:
		return string(datastore.KindMapping)
	}
	return t.String()
}
