/*
Package slotstore provides typed slots over an untyped key-value store.

A slot binds a key, a default value and a store. The static type of the slot decides how
values are persisted, without the caller saying so:
  - Native: integers, floats, booleans, strings, byte slices, timestamps and types that
    implement NativeValue or are registered with registry.RegisterNative are stored as
    store primitives
  - Collection: slices, arrays and string-keyed maps of natives or collections are stored
    as native arrays and mappings, to any depth the store supports
  - Optional: pointers to any of the above, where nil means "no record"
  - Opaque: everything else is encoded with the slot's codec (JSON by default) and stored
    as a byte blob

Reads never fail. A missing record, a record of another shape or bytes that do not decode
all yield the default, and an Observer can be attached to see why.

Basic Usage:

	store := bolt.NewStore(bolt.Config{Path: "prefs.db"})
	if err := store.Open(ctx); err != nil {
		return err
	}
	defer store.Close()

	volume := slotstore.New("volume", 10, store)
	volume.Get() // 10
	volume.Set(7)
	volume.Get() // 7

	last := slotstore.New[*time.Time]("lastSync", nil, store)
	last.Set(nil) // removes the record

Slots built with NewStandard share a process-wide in-memory store, and Suites names stores
so that unrelated packages can find the same one.
*/
package slotstore
