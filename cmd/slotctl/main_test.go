/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/suparena/slotstore/errors"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, stderr bytes.Buffer
	cmd := newRootCommand()
	cmd.SetOut(&out)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return strings.TrimSpace(out.String()), err
}

func TestSetGetRoundTrip(t *testing.T) {
	cases := []struct {
		typ   string
		value string
		want  string
	}{
		{"string", "dark", "dark"},
		{"int", "42", "42"},
		{"double", "2.5", "2.5"},
		{"float", "0.25", "0.25"},
		{"bool", "true", "true"},
		{"bytes", "AQID", "AQID"},
		{"time", "2025-03-01T12:00:00Z", "2025-03-01T12:00:00Z"},
		{"strings", "a,b,c", "a,b,c"},
		{"json", `{"theme":"dark"}`, `{"theme":"dark"}`},
	}

	for _, tc := range cases {
		t.Run(tc.typ, func(t *testing.T) {
			key := "slotctl.roundtrip." + tc.typ
			_, err := run(t, "--backend", "memory", "set", key, tc.value, "--type", tc.typ)
			require.NoError(t, err)

			out, err := run(t, "--backend", "memory", "get", key, "--type", tc.typ)
			require.NoError(t, err)
			require.Equal(t, tc.want, out)
		})
	}
}

func TestGetMissingKey(t *testing.T) {
	_, err := run(t, "--backend", "memory", "get", "slotctl.missing")
	require.True(t, errors.IsNotFound(err))
}

func TestGetOtherShapeFallsBack(t *testing.T) {
	_, err := run(t, "--backend", "memory", "set", "slotctl.shape", "hello")
	require.NoError(t, err)

	out, err := run(t, "--backend", "memory", "get", "slotctl.shape", "--type", "int")
	require.NoError(t, err)
	require.Equal(t, "0", out)
}

func TestInvalidInput(t *testing.T) {
	_, err := run(t, "--backend", "memory", "set", "slotctl.bad", "nope", "--type", "int")
	require.True(t, errors.IsValidationError(err))

	_, err = run(t, "--backend", "memory", "set", "slotctl.bad", "x", "--type", "uuid")
	require.True(t, errors.IsValidationError(err))

	_, err = run(t, "--backend", "nosuch", "get", "slotctl.bad")
	require.Error(t, err)
}

func TestBoltRemoveAndList(t *testing.T) {
	path := filepath.Join(t.TempDir(), "slots.db")
	base := []string{"--backend", "bolt", "--path", path}

	_, err := run(t, append(base, "set", "volume", "7", "--type", "int")...)
	require.NoError(t, err)
	_, err = run(t, append(base, "set", "theme", "dark")...)
	require.NoError(t, err)

	out, err := run(t, append(base, "ls")...)
	require.NoError(t, err)
	require.Equal(t, "theme\tstring\nvolume\tinteger", out)

	_, err = run(t, append(base, "rm", "theme")...)
	require.NoError(t, err)

	out, err = run(t, append(base, "ls")...)
	require.NoError(t, err)
	require.Equal(t, "volume\tinteger", out)
}

func TestSQLiteBackend(t *testing.T) {
	path := filepath.Join(t.TempDir(), "slots.sqlite")
	base := []string{"--backend", "sqlite", "--path", path}

	_, err := run(t, append(base, "set", "tags", "x,y", "--type", "strings")...)
	require.NoError(t, err)

	out, err := run(t, append(base, "get", "tags", "--type", "strings")...)
	require.NoError(t, err)
	require.Equal(t, "x,y", out)
}

func TestVersionCommand(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	require.Contains(t, out, "slotctl version")
}
