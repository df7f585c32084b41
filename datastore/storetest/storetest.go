/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Package storetest provides a conformance suite that store adapters run against their
// own backend, exercising every slot strategy end to end.
package storetest

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"

	"github.com/suparena/slotstore"
	"github.com/suparena/slotstore/datastore"
)

type profile struct {
	Name string            `json:"name"`
	Tags map[string]string `json:"tags"`
}

// SlotConformance checks that typed slots behave the same over store as over memory.
// The store must start empty.
func SlotConformance(store datastore.Store) func(t *testing.T) {
	return func(t *testing.T) {
		t.Run("native scenario", func(t *testing.T) {
			slot := slotstore.New("native.string", "default", store)
			if got := slot.Get(); got != "default" {
				t.Fatalf("unwritten read = %q, want default", got)
			}
			slot.Set("newValue")
			if got := slot.Get(); got != "newValue" {
				t.Fatalf("read = %q, want newValue", got)
			}
		})

		t.Run("default is not the store zero value", func(t *testing.T) {
			if got := slotstore.New("native.unwritten", 10, store).Get(); got != 10 {
				t.Fatalf("read = %d, want 10", got)
			}
			if got := store.Integer("native.unwritten"); got != 0 {
				t.Fatalf("store zero value = %d, want 0", got)
			}
		})

		t.Run("native shapes", func(t *testing.T) {
			when := time.Date(2025, 5, 17, 8, 30, 0, 123000000, time.UTC)
			id := uuid.MustParse("f47ac10b-58cc-4372-a567-0e02b2c3d479")

			checkRoundTrip(t, store, "shape.int", 0, -9000)
			checkRoundTrip(t, store, "shape.int8", int8(0), int8(100))
			checkRoundTrip(t, store, "shape.double", 0.0, 6.02e23)
			checkRoundTrip(t, store, "shape.float", float32(0), float32(-2.5))
			checkRoundTrip(t, store, "shape.bool", false, true)
			checkRoundTrip(t, store, "shape.bytes", []byte(nil), []byte{0xde, 0xad, 0xbe, 0xef})
			checkRoundTrip(t, store, "shape.time", time.Time{}, when)
			checkRoundTrip(t, store, "shape.duration", time.Duration(0), 36*time.Hour)
			checkRoundTrip(t, store, "shape.uuid", uuid.Nil, id)
		})

		t.Run("unrelated type reads default", func(t *testing.T) {
			slotstore.New("mixed", "", store).Set("text")

			if got := slotstore.New("mixed", 42, store).Get(); got != 42 {
				t.Fatalf("int over string = %d, want 42", got)
			}
			if got := slotstore.New("mixed", 1.5, store).Get(); got != 1.5 {
				t.Fatalf("double over string = %v, want 1.5", got)
			}
			if got := slotstore.New("mixed", "", store).Get(); got != "text" {
				t.Fatalf("original record lost: %q", got)
			}
		})

		t.Run("optional nil removes", func(t *testing.T) {
			def := 10
			slot := slotstore.New("optional.int", &def, store)

			slot.Set(nil)
			ten := 10
			slot.Set(&ten)
			if got := slot.Get(); got == nil || *got != 10 {
				t.Fatalf("read = %v, want 10", got)
			}
			slot.Set(nil)
			if _, ok := store.Object("optional.int"); ok {
				t.Fatal("Expected no record after nil write")
			}
		})

		t.Run("nested collections", func(t *testing.T) {
			checkRoundTrip(t, store, "nested.ints", []int(nil), []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10})
			checkRoundTrip(t, store, "nested.cube", [][][]int(nil), [][][]int{{{1, 2}, {3}}, {{}, {4}}})
			checkRoundTrip(t, store, "nested.maps", map[string]map[string]int(nil), map[string]map[string]int{"a": {"x": 1}, "b": {}})
			checkRoundTrip(t, store, "nested.mixed", []map[string][]string(nil), []map[string][]string{{"k": {"v"}}, {}})
			checkRoundTrip(t, store, "nested.floats", []float64(nil), []float64{0.5, 2, -3.25})
			checkRoundTrip(t, store, "nested.times", []time.Time(nil), []time.Time{time.Date(2024, 12, 31, 23, 59, 59, 0, time.UTC)})
			checkRoundTrip(t, store, "nested.empty", []string{"d"}, []string{})
		})

		t.Run("opaque", func(t *testing.T) {
			value := profile{Name: "mody", Tags: map[string]string{"role": "admin"}}
			checkRoundTrip(t, store, "opaque.profile", profile{}, value)

			if _, ok := store.Bytes("opaque.profile"); !ok {
				t.Fatal("Expected opaque record to be a byte blob")
			}

			p := &profile{Name: "ptr"}
			checkRoundTrip(t, store, "opaque.optional", (*profile)(nil), p)
		})

		t.Run("reset", func(t *testing.T) {
			slot := slotstore.New("reset.me", "d", store)
			slot.Set("x")
			slot.Reset()
			if slot.Exists() || slot.Get() != "d" {
				t.Fatal("Expected reset slot to read default")
			}
		})
	}
}

func checkRoundTrip[T any](t *testing.T, store datastore.Store, key string, def, value T) {
	t.Helper()

	slotstore.New(key, def, store).Set(value)
	got := slotstore.New(key, def, store).Get()
	if diff := cmp.Diff(value, got); diff != "" {
		t.Fatalf("%s: round trip mismatch (-want +got):\n%s", key, diff)
	}
}
