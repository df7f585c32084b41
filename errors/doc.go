/*
Package errors provides semantic error types for the slotstore library.

Typed slots never return errors to their callers; these types describe why a slot fell
back to its default or skipped a write, and are delivered to slot observers. Registries
and store configuration return them directly.

Common Errors:

	var (
	    ErrNotFound      = errors.New("record not found")
	    ErrShapeMismatch = errors.New("record shape mismatch")
	    ErrDecode        = errors.New("decode failed")
	    ErrEncode        = errors.New("encode failed")
	    ErrAlreadyExists = errors.New("already exists")
	    ErrInvalidInput  = errors.New("invalid input")
	)

Usage:

	slot := slotstore.New("theme", Theme{}, store, slotstore.WithObserver(
	    slotstore.ObserverFunc(func(e slotstore.Event) {
	        if errors.IsDecode(e.Err) {
	            log.Printf("stored theme is corrupt: %v", e.Err)
	        }
	    }),
	))

	// Create typed errors
	err := errors.NewShapeMismatchError("volume", "integer", "string")
	err := errors.NewDecodeError("theme", cause)

The error types implement the error interface and support wrapping,
making them compatible with Go's standard error handling patterns.
*/
package errors
