// Zaparoo LiveSplit
// Copyright (c) 2026 The Zaparoo Project Contributors.
// SPDX-License-Identifier: GPL-3.0-or-later
//
// This file is part of Zaparoo LiveSplit.
//
// Zaparoo LiveSplit is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Zaparoo LiveSplit is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Zaparoo LiveSplit.  If not, see <http://www.gnu.org/licenses/>.

//nolint:revive // custom validation tags (envvar, wasm, etc.) are unknown to revive
package validation

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateRange(t *testing.T) {
	t.Parallel()

	type testStruct struct {
		Width int `validate:"min=10,max=8200"`
	}

	v := NewValidator()
	require.NoError(t, v.Validate(&testStruct{Width: 300}))
	require.NoError(t, v.Validate(&testStruct{Width: 10}))

	err := v.Validate(&testStruct{Width: 9})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "width must be at least 10")

	err = v.Validate(&testStruct{Width: 9000})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "width must be at most 8200")
}

func TestValidateEnvVar(t *testing.T) {
	t.Parallel()

	type testStruct struct {
		Env []string `validate:"dive,envvar"`
	}

	tests := []struct {
		name      string
		env       []string
		wantError bool
	}{
		{name: "empty list", env: nil},
		{name: "simple", env: []string{"FOO=bar"}},
		{name: "empty value", env: []string{"FOO="}},
		{name: "value with equals", env: []string{"OPTS=a=b"}},
		{name: "missing equals", env: []string{"FOO"}, wantError: true},
		{name: "empty key", env: []string{"=bar"}, wantError: true},
		{name: "space in key", env: []string{"MY VAR=1"}, wantError: true},
	}

	v := NewValidator()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := v.Validate(&testStruct{Env: tt.env})
			if tt.wantError {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "must be KEY=VALUE")
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestParseEnvVar(t *testing.T) {
	t.Parallel()

	k, val, ok := ParseEnvVar("OPTS=a=b")
	assert.True(t, ok)
	assert.Equal(t, "OPTS", k)
	assert.Equal(t, "a=b", val)

	_, _, ok = ParseEnvVar("novalue")
	assert.False(t, ok)
}

func TestValidateModulePath(t *testing.T) {
	t.Parallel()

	type testStruct struct {
		Module string `validate:"wasm"`
	}

	v := NewValidator()
	require.NoError(t, v.Validate(&testStruct{}))
	require.NoError(t, v.Validate(&testStruct{Module: "/m/x.WASM"}))

	err := v.Validate(&testStruct{Module: "/m/x.asl"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), ".wasm")
}

func TestValidateCommand(t *testing.T) {
	t.Parallel()

	type testStruct struct {
		Command string `validate:"required,command"`
	}

	v := NewValidator()
	vctx := NewContext([]string{"split", "reset"})

	require.NoError(t, v.ValidateCtx(context.Background(), &testStruct{Command: "split"}, vctx))

	err := v.ValidateCtx(context.Background(), &testStruct{Command: "explode"}, vctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `command "explode" not found`)

	// without context any command passes
	require.NoError(t, v.Validate(&testStruct{Command: "explode"}))

	err = v.Validate(&testStruct{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "command is required")
}

func TestValidateAndUnmarshal(t *testing.T) {
	t.Parallel()

	type params struct {
		Module string `json:"module" validate:"wasm"`
	}

	var p params
	require.ErrorIs(t, ValidateAndUnmarshal(nil, &p), ErrMissingParams)
	require.ErrorIs(t, ValidateAndUnmarshal(json.RawMessage(`{`), &p), ErrInvalidParams)

	err := ValidateAndUnmarshal(json.RawMessage(`{"module":"x.asl"}`), &p)
	var verr *Error
	require.ErrorAs(t, err, &verr)
	require.Len(t, verr.Fields, 1)
	assert.Equal(t, "wasm", verr.Fields[0].Tag)

	require.NoError(t, ValidateAndUnmarshal(json.RawMessage(`{"module":"x.wasm"}`), &p))
	assert.Equal(t, "x.wasm", p.Module)
}
