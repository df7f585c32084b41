/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package registry

import (
	"reflect"
	"testing"
	"time"

	"github.com/go-openapi/strfmt"
	"github.com/google/uuid"
)

type celsius struct{ degrees float64 }

func TestRegisterNative(t *testing.T) {
	before := Generation()

	RegisterNative[celsius](Converter{
		ToStore:   func(v any) (any, bool) { return v.(celsius).degrees, true },
		FromStore: func(r any, _ bool) (any, bool) { f, ok := r.(float64); return celsius{f}, ok },
	})

	if Generation() == before {
		t.Fatal("Expected generation to change after registration")
	}

	c, ok := LookupNative(reflect.TypeOf(celsius{}))
	if !ok {
		t.Fatal("Expected celsius to be registered")
	}

	rec, ok := c.ToStore(celsius{21.5})
	if !ok || rec != 21.5 {
		t.Fatalf("ToStore = %v, %v", rec, ok)
	}

	v, ok := c.FromStore(21.5, false)
	if !ok || v.(celsius).degrees != 21.5 {
		t.Fatalf("FromStore = %v, %v", v, ok)
	}

	t.Run("DuplicatePanics", func(t *testing.T) {
		defer func() {
			if recover() == nil {
				t.Fatal("Expected duplicate registration to panic")
			}
		}()
		RegisterNative[celsius](c)
	})

	t.Run("IncompletePanics", func(t *testing.T) {
		defer func() {
			if recover() == nil {
				t.Fatal("Expected incomplete converter to panic")
			}
		}()
		RegisterNative[struct{ x int }](Converter{})
	})
}

func TestDefaultNatives(t *testing.T) {
	t.Run("UUID", func(t *testing.T) {
		c, ok := LookupNative(reflect.TypeOf(uuid.UUID{}))
		if !ok {
			t.Fatal("uuid.UUID should be registered")
		}

		id := uuid.New()
		rec, ok := c.ToStore(id)
		if !ok || rec != id.String() {
			t.Fatalf("ToStore = %v, %v", rec, ok)
		}

		back, ok := c.FromStore(rec, false)
		if !ok || back.(uuid.UUID) != id {
			t.Fatalf("FromStore = %v, %v", back, ok)
		}

		if _, ok := c.FromStore("not-a-uuid", false); ok {
			t.Fatal("Expected invalid uuid string to be rejected")
		}
		if _, ok := c.FromStore(int64(1), false); ok {
			t.Fatal("Expected integer record to be rejected")
		}
	})

	t.Run("DateTime", func(t *testing.T) {
		c, ok := LookupNative(reflect.TypeOf(strfmt.DateTime{}))
		if !ok {
			t.Fatal("strfmt.DateTime should be registered")
		}

		now := time.Date(2025, 4, 17, 9, 30, 0, 0, time.UTC)
		rec, ok := c.ToStore(strfmt.DateTime(now))
		if !ok {
			t.Fatal("ToStore failed")
		}
		if _, isTime := rec.(time.Time); !isTime {
			t.Fatalf("Expected timestamp record, got %T", rec)
		}

		back, ok := c.FromStore(now.Format(time.RFC3339Nano), true)
		if !ok || !time.Time(back.(strfmt.DateTime)).Equal(now) {
			t.Fatalf("FromStore(nested string) = %v, %v", back, ok)
		}

		if _, ok := c.FromStore(now.Format(time.RFC3339Nano), false); ok {
			t.Fatal("Expected top-level string record to be rejected")
		}
	})

	t.Run("Date", func(t *testing.T) {
		c, ok := LookupNative(reflect.TypeOf(strfmt.Date{}))
		if !ok {
			t.Fatal("strfmt.Date should be registered")
		}

		day := time.Date(2025, 4, 17, 0, 0, 0, 0, time.UTC)
		back, ok := c.FromStore(day, false)
		if !ok || !time.Time(back.(strfmt.Date)).Equal(day) {
			t.Fatalf("FromStore = %v, %v", back, ok)
		}

		if _, ok := c.FromStore("2025-04-17T00:00:00Z", false); ok {
			t.Fatal("Expected top-level string record to be rejected")
		}
	})
}
