/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package codec

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

type profile struct {
	Name  string            `json:"name" yaml:"name"`
	Tags  []string          `json:"tags" yaml:"tags"`
	Attrs map[int]string    `json:"attrs" yaml:"attrs"`
	Next  *profile          `json:"next,omitempty" yaml:"next,omitempty"`
	Meta  map[string]string `json:"meta,omitempty" yaml:"meta,omitempty"`
}

func TestCodecs(t *testing.T) {
	value := profile{
		Name:  "mody",
		Tags:  []string{"a", "b"},
		Attrs: map[int]string{1: "one", 2: "two"},
		Next:  &profile{Name: "nested"},
	}

	codecs := map[string]Codec[profile]{
		"json": JSON[profile]{},
		"yaml": YAML[profile]{},
	}

	for name, c := range codecs {
		t.Run(name, func(t *testing.T) {
			data, err := c.Encode(value)
			if err != nil {
				t.Fatalf("Encode failed: %v", err)
			}

			got, err := c.Decode(data)
			if err != nil {
				t.Fatalf("Decode failed: %v", err)
			}
			if diff := cmp.Diff(value, got, cmpopts.EquateEmpty()); diff != "" {
				t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestJSONDecodeFailures(t *testing.T) {
	c := JSON[profile]{}

	tests := map[string]string{
		"corrupt":       `{"name":`,
		"wrong shape":   `{"name": 10}`,
		"trailing data": `{"name":"a"} {"name":"b"}`,
		"empty":         ``,
	}

	for name, input := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := c.Decode([]byte(input)); err == nil {
				t.Fatalf("Expected decode of %q to fail", input)
			}
		})
	}
}

func TestJSONEncodeFailure(t *testing.T) {
	c := JSON[chan int]{}
	if _, err := c.Encode(make(chan int)); err == nil {
		t.Fatal("Expected channel encoding to fail")
	}
}

func TestFuncs(t *testing.T) {
	boom := errors.New("boom")
	c := Funcs[int]{
		EncodeFunc: func(int) ([]byte, error) { return nil, boom },
		DecodeFunc: func([]byte) (int, error) { return 7, nil },
	}

	if _, err := c.Encode(1); !errors.Is(err, boom) {
		t.Fatalf("Expected boom, got %v", err)
	}
	if v, err := c.Decode(nil); err != nil || v != 7 {
		t.Fatalf("Decode = %v, %v", v, err)
	}

	var empty Funcs[int]
	if _, err := empty.Encode(1); err == nil {
		t.Fatal("Expected error without encode func")
	}
	if _, err := empty.Decode(nil); err == nil {
		t.Fatal("Expected error without decode func")
	}
}
