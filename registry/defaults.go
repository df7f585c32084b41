/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package registry

import (
	"time"

	"github.com/go-openapi/strfmt"
	"github.com/google/uuid"
)

func init() {
	RegisterNative[uuid.UUID](Converter{
		ToStore: func(v any) (any, bool) {
			u, ok := v.(uuid.UUID)
			if !ok {
				return nil, false
			}
			return u.String(), true
		},
		FromStore: func(record any, _ bool) (any, bool) {
			s, ok := record.(string)
			if !ok {
				return nil, false
			}
			u, err := uuid.Parse(s)
			if err != nil {
				return nil, false
			}
			return u, true
		},
	})

	RegisterNative[strfmt.DateTime](Converter{
		ToStore: func(v any) (any, bool) {
			dt, ok := v.(strfmt.DateTime)
			if !ok {
				return nil, false
			}
			return time.Time(dt), true
		},
		FromStore: func(record any, nested bool) (any, bool) {
			t, ok := timestamp(record, nested)
			if !ok {
				return nil, false
			}
			return strfmt.DateTime(t), true
		},
	})

	RegisterNative[strfmt.Date](Converter{
		ToStore: func(v any) (any, bool) {
			d, ok := v.(strfmt.Date)
			if !ok {
				return nil, false
			}
			return time.Time(d), true
		},
		FromStore: func(record any, nested bool) (any, bool) {
			t, ok := timestamp(record, nested)
			if !ok {
				return nil, false
			}
			return strfmt.Date(t), true
		},
	})
}

// timestamp accepts a native timestamp record. Collection elements may also be RFC 3339
// text, which is how stores without a timestamp type keep nested timestamps.
func timestamp(record any, nested bool) (time.Time, bool) {
	switch v := record.(type) {
	case time.Time:
		return v, true
	case string:
		if !nested {
			return time.Time{}, false
		}
		t, err := time.Parse(time.RFC3339Nano, v)
		if err != nil {
			return time.Time{}, false
		}
		return t, true
	default:
		return time.Time{}, false
	}
}
