/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Package record encodes canonical store records as self-describing MessagePack, for
// backends that persist plain bytes.
//
// MessagePack keeps the distinctions a slot relies on at the top level: integers, doubles
// and floats are separate types, binary is not text, and timestamps have their own
// extension type. Decoding yields canonical values again, with timestamps in UTC and empty
// binary as a non-nil empty slice.
package record

import (
	"fmt"
	"time"

	"github.com/tinylib/msgp/msgp"

	"github.com/suparena/slotstore/datastore"
)

// Encode serializes a canonical record value.
func Encode(v any) ([]byte, error) {
	if err := check(v); err != nil {
		return nil, err
	}
	return msgp.AppendIntf(nil, v)
}

// Decode parses bytes written by Encode back into a canonical record value.
func Decode(data []byte) (any, error) {
	v, rest, err := msgp.ReadIntfBytes(data)
	if err != nil {
		return nil, fmt.Errorf("record: %w", err)
	}
	if len(rest) != 0 {
		return nil, fmt.Errorf("record: %d trailing bytes", len(rest))
	}

	n, ok := datastore.Normalize(v)
	if !ok {
		return nil, fmt.Errorf("record: unsupported value of type %T", v)
	}
	return restore(n), nil
}

// check rejects values outside the canonical record shapes.
func check(v any) error {
	switch tv := v.(type) {
	case []any:
		for _, e := range tv {
			if err := check(e); err != nil {
				return err
			}
		}
		return nil
	case map[string]any:
		for _, e := range tv {
			if err := check(e); err != nil {
				return err
			}
		}
		return nil
	}
	if datastore.KindOf(v) == datastore.KindUnknown {
		return fmt.Errorf("record: unsupported value of type %T", v)
	}
	return nil
}

// restore undoes the decoder's lossy spots: timestamps come back in local time and empty
// binary comes back nil.
func restore(v any) any {
	switch tv := v.(type) {
	case time.Time:
		return tv.UTC()
	case []byte:
		if tv == nil {
			return []byte{}
		}
	case []any:
		for i, e := range tv {
			tv[i] = restore(e)
		}
	case map[string]any:
		for k, e := range tv {
			tv[k] = restore(e)
		}
	}
	return v
}
