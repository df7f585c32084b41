/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package slotstore

import "github.com/suparena/slotstore/codec"

// Option configures a slot at construction.
type Option func(*options)

type options struct {
	codec    any
	observer Observer
}

// WithCodec replaces the JSON codec used for opaque values. The codec's type parameter
// must match the slot's; New panics otherwise.
func WithCodec[T any](c codec.Codec[T]) Option {
	return func(o *options) {
		o.codec = c
	}
}

// WithObserver reports fallbacks and removals to obs.
func WithObserver(obs Observer) Option {
	return func(o *options) {
		if obs != nil {
			o.observer = obs
		}
	}
}
