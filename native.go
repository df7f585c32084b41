/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package slotstore

import "reflect"

// NativeValue is implemented by types that persist themselves as a native store record
// instead of going through the byte codec.
//
// LoadValue is called on a zero value and returns a new value of the implementing type
// built from record, or false when the record has the wrong shape.
type NativeValue interface {
	StoreValue() any
	LoadValue(record any) (any, bool)
}

var nativeValueType = reflect.TypeOf((*NativeValue)(nil)).Elem()

// implementsNative reports whether t, or a pointer to t, implements NativeValue.
func implementsNative(t reflect.Type) bool {
	if t.Kind() == reflect.Interface || t.Kind() == reflect.Pointer {
		return false
	}
	return t.Implements(nativeValueType) || reflect.PointerTo(t).Implements(nativeValueType)
}

// nativeOf returns v as a NativeValue, addressing a copy so pointer receivers work.
func nativeOf(v reflect.Value) NativeValue {
	p := reflect.New(v.Type())
	p.Elem().Set(v)
	if nv, ok := p.Elem().Interface().(NativeValue); ok {
		return nv
	}
	return p.Interface().(NativeValue)
}
