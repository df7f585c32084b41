/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package slotstore

import (
	"fmt"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/suparena/slotstore/datastore/mock"
	"github.com/suparena/slotstore/errors"
)

func TestSuites(t *testing.T) {
	t.Run("RegisterAndLookup", func(t *testing.T) {
		suites := NewSuites()
		prefs := mock.New()

		if err := suites.Register("prefs", prefs); err != nil {
			t.Fatalf("Register failed: %v", err)
		}

		got, err := suites.Lookup("prefs")
		if err != nil {
			t.Fatalf("Lookup failed: %v", err)
		}
		if got != prefs {
			t.Fatal("Lookup returned a different store")
		}

		New("k", 0, got).Set(3)
		if prefs.Integer("k") != 3 {
			t.Fatal("Expected slot to write through the registered store")
		}
	})

	t.Run("DuplicateRegistration", func(t *testing.T) {
		suites := NewSuites()
		_ = suites.Register("prefs", mock.New())

		err := suites.Register("prefs", mock.New())
		if !errors.IsAlreadyExists(err) {
			t.Fatalf("Expected already exists error, got %v", err)
		}
	})

	t.Run("NilStore", func(t *testing.T) {
		if err := NewSuites().Register("nil", nil); !errors.IsValidationError(err) {
			t.Fatalf("Expected validation error, got %v", err)
		}
	})

	t.Run("LookupMissing", func(t *testing.T) {
		_, err := NewSuites().Lookup("missing")
		if !errors.IsNotFound(err) {
			t.Fatalf("Expected not found error, got %v", err)
		}
	})

	t.Run("RemoveAndNames", func(t *testing.T) {
		suites := NewSuites()
		for _, name := range []string{"b", "c", "a"} {
			_ = suites.Register(name, mock.New())
		}

		if diff := cmp.Diff([]string{"a", "b", "c"}, suites.Names()); diff != "" {
			t.Fatalf("Names mismatch (-want +got):\n%s", diff)
		}
		if err := suites.Remove("b"); err != nil {
			t.Fatalf("Remove failed: %v", err)
		}
		if err := suites.Remove("b"); !errors.IsNotFound(err) {
			t.Fatalf("Expected not found error, got %v", err)
		}
		if diff := cmp.Diff([]string{"a", "c"}, suites.Names()); diff != "" {
			t.Fatalf("Names mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("ConcurrentAccess", func(t *testing.T) {
		suites := NewSuites()
		var wg sync.WaitGroup
		for i := 0; i < 20; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				name := fmt.Sprintf("suite-%d", i)
				_ = suites.Register(name, mock.New())
				_, _ = suites.Lookup(name)
				_ = suites.Names()
			}(i)
		}
		wg.Wait()

		if len(suites.Names()) != 20 {
			t.Fatalf("Expected 20 suites, got %d", len(suites.Names()))
		}
	})
}

func TestStandardIsShared(t *testing.T) {
	if Standard() != Standard() {
		t.Fatal("Expected a single standard store")
	}
}

func TestGetVersionInfo(t *testing.T) {
	info := GetVersionInfo()
	if info.Version != Version || info.GoVersion == "" {
		t.Fatalf("unexpected version info %+v", info)
	}
}
