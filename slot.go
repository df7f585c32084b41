/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package slotstore

import (
	"fmt"
	"reflect"
	"time"

	"github.com/suparena/slotstore/codec"
	"github.com/suparena/slotstore/datastore"
	"github.com/suparena/slotstore/errors"
)

// Slot is a typed view of a single store key. Reads never fail: a missing record, a record
// of another shape, or undecodable bytes all yield the slot's default. Writes never fail
// either; a value the codec cannot encode leaves the store untouched.
//
// The storage strategy is resolved once, when the slot is built. Native collections do not
// distinguish nil from empty, so a nil slice or map reads back empty. Optional slots return
// a fresh copy of a non-nil default on every fallback.
type Slot[T any] struct {
	key      string
	def      T
	store    datastore.Store
	strategy Strategy
	// typ is T, or the pointed-to type for optional strategies
	typ      reflect.Type
	codec    codec.Codec[T]
	observer Observer
}

// New returns a slot for key in store that reads def when nothing usable is stored. A nil
// store means the process-wide Standard store.
func New[T any](key string, def T, store datastore.Store, opts ...Option) *Slot[T] {
	o := options{observer: NoOpObserver{}}
	for _, opt := range opts {
		opt(&o)
	}

	if store == nil {
		store = Standard()
	}

	c := codec.Codec[T](codec.JSON[T]{})
	if o.codec != nil {
		typed, ok := o.codec.(codec.Codec[T])
		if !ok {
			panic(fmt.Sprintf("slotstore: codec %T cannot encode %v", o.codec, typeOf[T]()))
		}
		c = typed
	}

	t := typeOf[T]()
	strategy := classifyFor(t, datastore.MaxNesting(store))
	if strategy.Optional() {
		t = t.Elem()
	}

	return &Slot[T]{
		key:      key,
		def:      def,
		store:    store,
		strategy: strategy,
		typ:      t,
		codec:    c,
		observer: o.observer,
	}
}

// NewStandard returns a slot backed by the Standard store.
func NewStandard[T any](key string, def T, opts ...Option) *Slot[T] {
	return New(key, def, Standard(), opts...)
}

// Key returns the store key the slot reads and writes.
func (s *Slot[T]) Key() string { return s.key }

// Default returns the value Get falls back to.
func (s *Slot[T]) Default() T { return s.def }

// Strategy returns the storage strategy resolved for T.
func (s *Slot[T]) Strategy() Strategy { return s.strategy }

// Exists reports whether the store holds any record for the key, whatever its shape.
func (s *Slot[T]) Exists() bool {
	_, ok := s.store.Object(s.key)
	return ok
}

// Reset removes the record, so subsequent reads return the default.
func (s *Slot[T]) Reset() {
	s.store.Remove(s.key)
	s.emit(EventRemoved, nil)
}

// Get returns the stored value, or the default when there is nothing usable.
func (s *Slot[T]) Get() T {
	rec, ok := s.store.Object(s.key)
	if !ok {
		s.emit(EventAbsent, errors.NewNotFoundError("record", s.key))
		return s.fallback()
	}

	switch s.strategy {
	case Native, Collection:
		v, ok := s.readNative(rec)
		if !ok {
			return s.fallback()
		}
		return v.Interface().(T)

	case OptionalNative:
		v, ok := s.readNative(rec)
		if !ok {
			return s.fallback()
		}
		p := reflect.New(s.typ)
		p.Elem().Set(v)
		return p.Interface().(T)

	default:
		data, ok := s.store.Bytes(s.key)
		if !ok {
			s.emit(EventShapeMismatch, errors.NewShapeMismatchError(s.key, string(datastore.KindBytes), string(datastore.KindOf(rec))))
			return s.fallback()
		}
		v, err := s.codec.Decode(data)
		if err != nil {
			s.emit(EventDecodeFailure, errors.NewDecodeError(s.key, err))
			return s.fallback()
		}
		return v
	}
}

// fallback returns the default. Optional defaults are copied one level deep so callers
// cannot reach the slot's own value through the returned pointer.
func (s *Slot[T]) fallback() T {
	if !s.strategy.Optional() {
		return s.def
	}
	def := reflect.ValueOf(&s.def).Elem()
	if def.IsNil() {
		return s.def
	}
	p := reflect.New(s.typ)
	p.Elem().Set(def.Elem())
	return p.Interface().(T)
}

// readNative fetches the record through the typed getter matching s.typ and rebuilds
// the value. rec is the raw record already returned by Object.
func (s *Slot[T]) readNative(rec any) (reflect.Value, bool) {
	want := datastore.Kind(describe(s.typ))
	got := datastore.KindOf(rec)

	raw, ok := rec, true
	switch want {
	case datastore.KindInteger:
		if ok = got == want; ok {
			raw = s.store.Integer(s.key)
		}
	case datastore.KindDouble:
		if ok = got == want; ok {
			raw = s.store.Double(s.key)
		}
	case datastore.KindFloat:
		if ok = got == want; ok {
			raw = s.store.Float(s.key)
		}
	case datastore.KindBool:
		if ok = got == want; ok {
			raw = s.store.Bool(s.key)
		}
	case datastore.KindString:
		raw, ok = s.store.String(s.key)
	case datastore.KindBytes:
		raw, ok = s.store.Bytes(s.key)
	case datastore.KindArray:
		raw, ok = s.store.Array(s.key)
	case datastore.KindMapping:
		raw, ok = s.store.Map(s.key)
	}

	var v reflect.Value
	if ok {
		v, ok = fromRecord(s.typ, raw, false)
	}
	if !ok {
		s.emit(EventShapeMismatch, errors.NewShapeMismatchError(s.key, string(want), string(got)))
	}
	return v, ok
}

// Set stores v. A nil value in an optional slot removes the record.
func (s *Slot[T]) Set(v T) {
	rv := reflect.ValueOf(&v).Elem()

	if s.strategy.Optional() && rv.IsNil() {
		s.store.Remove(s.key)
		s.emit(EventRemoved, nil)
		return
	}

	switch s.strategy {
	case Native, Collection, OptionalNative:
		if s.strategy == OptionalNative {
			rv = rv.Elem()
		}
		rec, err := toRecord(rv)
		if err != nil {
			s.emit(EventEncodeFailure, errors.NewEncodeError(s.key, err))
			return
		}
		s.store.Set(s.key, rec)

	default:
		data, err := s.codec.Encode(v)
		if err != nil {
			s.emit(EventEncodeFailure, errors.NewEncodeError(s.key, err))
			return
		}
		if data == nil {
			data = []byte{}
		}
		s.store.Set(s.key, data)
	}
}

func (s *Slot[T]) emit(kind EventType, err error) {
	s.observer.OnEvent(Event{
		Type:      kind,
		Key:       s.key,
		Strategy:  s.strategy,
		Err:       err,
		Timestamp: time.Now(),
	})
}
