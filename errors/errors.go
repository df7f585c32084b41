/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package errors

import (
	"errors"
	"fmt"
)

// Common sentinel errors
var (
	// ErrNotFound is returned when a key has no record
	ErrNotFound = errors.New("record not found")

	// ErrShapeMismatch is returned when a record exists but has an unexpected shape
	ErrShapeMismatch = errors.New("record shape mismatch")

	// ErrDecode is returned when stored bytes cannot be decoded into the slot type
	ErrDecode = errors.New("decode failed")

	// ErrEncode is returned when a value cannot be encoded for storage
	ErrEncode = errors.New("encode failed")

	// ErrAlreadyExists is returned when registering a name or type twice
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidInput is returned when input validation fails
	ErrInvalidInput = errors.New("invalid input")
)

// NotFoundError represents a missing record or registration
type NotFoundError struct {
	Type string
	Key  string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with key %q not found", e.Type, e.Key)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// ShapeMismatchError represents a record whose shape does not match what a slot expects
type ShapeMismatchError struct {
	Key  string
	Want string
	Got  string
}

func (e *ShapeMismatchError) Error() string {
	return fmt.Sprintf("record %q: want %s, got %s", e.Key, e.Want, e.Got)
}

func (e *ShapeMismatchError) Is(target error) bool {
	return target == ErrShapeMismatch
}

// CodecError represents a failure of the byte codec on the opaque path
type CodecError struct {
	Op  string // "encode" or "decode"
	Key string
	Err error
}

func (e *CodecError) Error() string {
	return fmt.Sprintf("%s record %q: %v", e.Op, e.Key, e.Err)
}

func (e *CodecError) Is(target error) bool {
	switch e.Op {
	case "encode":
		return target == ErrEncode
	case "decode":
		return target == ErrDecode
	}
	return false
}

func (e *CodecError) Unwrap() error {
	return e.Err
}

// AlreadyExistsError represents a duplicate registration
type AlreadyExistsError struct {
	Type string
	Key  string
}

func (e *AlreadyExistsError) Error() string {
	return fmt.Sprintf("%s with key %q already exists", e.Type, e.Key)
}

func (e *AlreadyExistsError) Is(target error) bool {
	return target == ErrAlreadyExists
}

// ValidationError represents an input validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for field %q: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// Helper functions for creating errors

// NewNotFoundError creates a new NotFoundError
func NewNotFoundError(kind, key string) error {
	return &NotFoundError{Type: kind, Key: key}
}

// NewShapeMismatchError creates a new ShapeMismatchError
func NewShapeMismatchError(key, want, got string) error {
	return &ShapeMismatchError{Key: key, Want: want, Got: got}
}

// NewDecodeError wraps a codec decode failure for key
func NewDecodeError(key string, err error) error {
	return &CodecError{Op: "decode", Key: key, Err: err}
}

// NewEncodeError wraps a codec encode failure for key
func NewEncodeError(key string, err error) error {
	return &CodecError{Op: "encode", Key: key, Err: err}
}

// NewAlreadyExistsError creates a new AlreadyExistsError
func NewAlreadyExistsError(kind, key string) error {
	return &AlreadyExistsError{Type: kind, Key: key}
}

// NewValidationError creates a new ValidationError
func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// IsNotFound checks if an error is a not found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsShapeMismatch checks if an error is a shape mismatch error
func IsShapeMismatch(err error) bool {
	return errors.Is(err, ErrShapeMismatch)
}

// IsDecode checks if an error is a codec decode error
func IsDecode(err error) bool {
	return errors.Is(err, ErrDecode)
}

// IsEncode checks if an error is a codec encode error
func IsEncode(err error) bool {
	return errors.Is(err, ErrEncode)
}

// IsAlreadyExists checks if an error is an already exists error
func IsAlreadyExists(err error) bool {
	return errors.Is(err, ErrAlreadyExists)
}

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}
