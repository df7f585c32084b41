/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package slotstore

// Strategy is the storage approach resolved for a static type.
type Strategy uint8

const (
	// Opaque values are serialized to a byte blob with the slot's codec.
	Opaque Strategy = iota
	// Native values map directly onto a store primitive.
	Native
	// OptionalNative is a pointer to a Native or Collection type.
	OptionalNative
	// OptionalOpaque is a pointer to any other type.
	OptionalOpaque
	// Collection is a slice, array or string-keyed map of Native or Collection values.
	Collection
)

func (s Strategy) String() string {
	switch s {
	case Opaque:
		return "opaque"
	case Native:
		return "native"
	case OptionalNative:
		return "optional-native"
	case OptionalOpaque:
		return "optional-opaque"
	case Collection:
		return "collection"
	default:
		return "unknown"
	}
}

// Optional reports whether the strategy wraps a pointer type, where nil means "no record".
func (s Strategy) Optional() bool {
	return s == OptionalNative || s == OptionalOpaque
}
