/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package mock_test

import (
	"fmt"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/suparena/slotstore/datastore"
	"github.com/suparena/slotstore/datastore/mock"
)

func TestMockStore(t *testing.T) {
	t.Run("BasicOperations", func(t *testing.T) {
		store := mock.New()

		store.Set("answer", 42)
		if got := store.Integer("answer"); got != 42 {
			t.Fatalf("Integer = %d, want 42", got)
		}
		v, ok := store.Object("answer")
		if !ok {
			t.Fatal("Expected record to exist")
		}
		if _, isInt64 := v.(int64); !isInt64 {
			t.Fatalf("Expected normalized int64, got %T", v)
		}

		store.Remove("answer")
		if _, ok := store.Object("answer"); ok {
			t.Fatal("Expected record to be removed")
		}
	})

	t.Run("TypedGettersRejectOtherShapes", func(t *testing.T) {
		store := mock.New()
		store.Set("name", "mody")

		if got := store.Integer("name"); got != 0 {
			t.Fatalf("Integer of a string = %d, want 0", got)
		}
		if _, ok := store.Bytes("name"); ok {
			t.Fatal("Bytes of a string should report false")
		}
		if s, ok := store.String("name"); !ok || s != "mody" {
			t.Fatalf("String = %q, %v", s, ok)
		}
	})

	t.Run("NilSetRemoves", func(t *testing.T) {
		store := mock.New()
		store.Set("k", "v")
		store.Set("k", nil)
		if store.Count() != 0 {
			t.Fatalf("Expected empty store, got %d records", store.Count())
		}
	})

	t.Run("Recording", func(t *testing.T) {
		var seen []string
		store := mock.New().WithOnSet(func(key string, _ any) { seen = append(seen, key) })

		store.Set("a", true)
		store.Set("b", []byte("x"))
		store.Remove("a")

		want := []mock.Mutation{
			{Op: mock.OpSet, Key: "a", Value: true},
			{Op: mock.OpSet, Key: "b", Value: []byte("x")},
			{Op: mock.OpRemove, Key: "a"},
		}
		if diff := cmp.Diff(want, store.Mutations()); diff != "" {
			t.Fatalf("Mutations mismatch (-want +got):\n%s", diff)
		}
		if diff := cmp.Diff([]string{"a", "b"}, seen); diff != "" {
			t.Fatalf("OnSet mismatch (-want +got):\n%s", diff)
		}

		store.Clear()
		if len(store.Mutations()) != 0 || store.Count() != 0 {
			t.Fatal("Expected Clear to reset data and mutations")
		}
	})

	t.Run("KeysAndNesting", func(t *testing.T) {
		store := mock.New().WithMaxNesting(2)
		store.SetData(map[string]any{"b": int64(1), "a": int64(2)})

		keys, err := store.Keys()
		if err != nil {
			t.Fatalf("Keys failed: %v", err)
		}
		if diff := cmp.Diff([]string{"a", "b"}, keys); diff != "" {
			t.Fatalf("Keys mismatch (-want +got):\n%s", diff)
		}
		if got := datastore.MaxNesting(store); got != 2 {
			t.Fatalf("MaxNesting = %d, want 2", got)
		}
		if got := store.GetData(); len(got) != 2 {
			t.Fatalf("GetData returned %d records", len(got))
		}
	})
	t.Run("ConcurrentConfiguration", func(t *testing.T) {
		store := mock.New()

		var wg sync.WaitGroup
		for i := 0; i < 8; i++ {
			wg.Add(2)
			go func(i int) {
				defer wg.Done()
				store.Set(fmt.Sprintf("key%d", i), int64(i))
			}(i)
			go func(i int) {
				defer wg.Done()
				store.WithOnSet(func(string, any) {}).WithMaxNesting(i)
				_ = store.MaxNesting()
			}(i)
		}
		wg.Wait()

		if got := store.Count(); got != 8 {
			t.Fatalf("Count = %d, want 8", got)
		}
	})
}
