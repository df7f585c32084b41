/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package slotstore

import (
	"reflect"
	"testing"
	"time"

	"github.com/go-openapi/strfmt"
	"github.com/google/go-cmp/cmp"

	"github.com/suparena/slotstore/datastore/mock"
)

func TestNativeValueRoundTrip(t *testing.T) {
	store := mock.New()
	slot := New("origin", point{}, store)

	if slot.Strategy() != Native {
		t.Fatalf("strategy = %v", slot.Strategy())
	}

	slot.Set(point{X: 3, Y: -4})
	rec, ok := store.Map("origin")
	if !ok {
		t.Fatal("Expected a native mapping record")
	}
	if diff := cmp.Diff(map[string]any{"x": int64(3), "y": int64(-4)}, rec); diff != "" {
		t.Fatalf("record mismatch (-want +got):\n%s", diff)
	}

	before := pointLoads
	if got := slot.Get(); got != (point{X: 3, Y: -4}) {
		t.Fatalf("Get = %+v", got)
	}
	if pointLoads != before+1 {
		t.Fatalf("Expected exactly one LoadValue call, got %d", pointLoads-before)
	}
}

func TestNativeValueRejectedRecord(t *testing.T) {
	store := mock.New()
	store.Set("origin", "not a point")

	def := point{X: 1}
	if got := New("origin", def, store).Get(); got != def {
		t.Fatalf("Get = %+v, want default", got)
	}
}

func TestNativeValueInCollections(t *testing.T) {
	store := mock.New()
	slot := New[map[string]point]("points", nil, store)

	want := map[string]point{"a": {X: 1, Y: 2}, "b": {}}
	slot.Set(want)
	if diff := cmp.Diff(want, slot.Get()); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
}

func TestRegisteredStrfmtTypes(t *testing.T) {
	store := mock.New()
	when := time.Date(2025, 7, 4, 9, 30, 0, 0, time.UTC)

	dt := New("dt", strfmt.DateTime{}, store)
	dt.Set(strfmt.DateTime(when))
	if rec, _ := store.Object("dt"); rec != when {
		t.Fatalf("record = %#v, want native timestamp", rec)
	}
	if got := time.Time(dt.Get()); !got.Equal(when) {
		t.Fatalf("Get = %v", got)
	}

	store.Set("dates", []any{"2025-07-04T00:00:00Z"})
	dates := New[[]strfmt.Date]("dates", nil, store).Get()
	if len(dates) != 1 || !time.Time(dates[0]).Equal(time.Date(2025, 7, 4, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("dates = %v", dates)
	}
}

func TestToRecord(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  any
	}{
		{"int", 5, int64(5)},
		{"int16", int16(-3), int64(-3)},
		{"float32", float32(0.25), float32(0.25)},
		{"named string", color("red"), "red"},
		{"named bytes", []uint8{1, 2}, []byte{1, 2}},
		{"nil slice", []int(nil), []any{}},
		{"array", [2]bool{true, false}, []any{true, false}},
		{"map", map[color][]int{"k": {1}}, map[string]any{"k": []any{int64(1)}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := toRecord(reflect.ValueOf(tt.value))
			if err != nil {
				t.Fatalf("toRecord failed: %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Fatalf("mismatch (-want +got):\n%s", diff)
			}
		})
	}

	if _, err := toRecord(reflect.ValueOf(pair{})); err == nil {
		t.Fatal("Expected an error for a struct")
	}
}

func TestFromRecord(t *testing.T) {
	if _, ok := fromRecord(typeOf[[2]int](), []any{int64(1)}, false); ok {
		t.Fatal("Expected array length mismatch to fail")
	}
	if _, ok := fromRecord(typeOf[float64](), int64(1), false); ok {
		t.Fatal("Expected top-level integer to not widen")
	}
	if v, ok := fromRecord(typeOf[float64](), int64(1), true); !ok || v.Float() != 1 {
		t.Fatal("Expected nested integer to widen")
	}
	if _, ok := fromRecord(typeOf[float32](), 1e300, true); ok {
		t.Fatal("Expected float32 overflow to fail")
	}
	if _, ok := fromRecord(typeOf[int64](), int64(1<<60), true); !ok {
		t.Fatal("Expected int64 to accept large integers")
	}
	v, ok := fromRecord(typeOf[map[color]int](), map[string]any{"red": int64(1)}, false)
	if !ok {
		t.Fatal("Expected named key map to decode")
	}
	if diff := cmp.Diff(map[color]int{"red": 1}, v.Interface()); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
}
