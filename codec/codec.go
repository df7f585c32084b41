/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Package codec provides the byte codecs typed slots use for values the store cannot
// hold natively.
package codec

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Codec encodes and decodes a value of type T to and from a byte slice.
// Implementations must return an error on malformed input and have no side effects.
type Codec[T any] interface {
	Encode(T) ([]byte, error)
	Decode([]byte) (T, error)
}

// JSON is the default codec: a human-readable structured text encoding.
type JSON[T any] struct{}

func (JSON[T]) Encode(v T) ([]byte, error) {
	return json.Marshal(v)
}

func (JSON[T]) Decode(data []byte) (T, error) {
	var v T
	dec := json.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&v); err != nil {
		var zero T
		return zero, err
	}
	if dec.More() {
		var zero T
		return zero, fmt.Errorf("codec: trailing data after JSON value")
	}
	return v, nil
}

// YAML encodes values as YAML documents.
type YAML[T any] struct{}

func (YAML[T]) Encode(v T) ([]byte, error) {
	return yaml.Marshal(v)
}

func (YAML[T]) Decode(data []byte) (T, error) {
	var v T
	if err := yaml.Unmarshal(data, &v); err != nil {
		var zero T
		return zero, err
	}
	return v, nil
}

// Funcs adapts a pair of functions to Codec.
type Funcs[T any] struct {
	EncodeFunc func(T) ([]byte, error)
	DecodeFunc func([]byte) (T, error)
}

func (f Funcs[T]) Encode(v T) ([]byte, error) {
	if f.EncodeFunc == nil {
		return nil, fmt.Errorf("codec: no encode func")
	}
	return f.EncodeFunc(v)
}

func (f Funcs[T]) Decode(data []byte) (T, error) {
	if f.DecodeFunc == nil {
		var zero T
		return zero, fmt.Errorf("codec: no decode func")
	}
	return f.DecodeFunc(data)
}
