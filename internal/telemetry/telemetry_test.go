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

package telemetry

import (
	"testing"

	"github.com/ZaparooProject/zaparoo-livesplit/pkg/config"
	"github.com/getsentry/sentry-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScrubPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "empty", input: "", expected: ""},
		{name: "no user dir", input: "/opt/livesplit/run.lss", expected: "/opt/livesplit/run.lss"},
		{
			name:     "linux splits",
			input:    "/home/runner/splits/foo.lss",
			expected: "/home/<user>/splits/foo.lss",
		},
		{
			name:     "macos modules",
			input:    "/Users/Runner/Library/Application Support/zaparoo-livesplit/auto-splitters/foo.wasm",
			expected: "/Users/<user>/Library/Application Support/zaparoo-livesplit/auto-splitters/foo.wasm",
		},
		{
			name:     "windows other drive",
			input:    `D:\Users\runner\Games\foo.exe`,
			expected: `C:\Users\<user>\Games\foo.exe`,
		},
		{
			name:     "embedded in message",
			input:    "open /home/a/x.lss: denied, fallback /home/b/y.lss",
			expected: "open /home/<user>/x.lss: denied, fallback /home/<user>/y.lss",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, scrubPath(tt.input))
		})
	}
}

func TestScrubEvent(t *testing.T) {
	t.Parallel()

	event := &sentry.Event{
		ServerName: "my-pc",
		Message:    "failed to save /home/alice/run.lss",
		Extra:      map[string]any{"path": "/Users/alice/run.lss", "count": 2},
		Exception: []sentry.Exception{{
			Value: "open /home/alice/x.wasm",
			Stacktrace: &sentry.Stacktrace{Frames: []sentry.Frame{{
				AbsPath:  "/home/alice/src/timer.go",
				Filename: "/home/alice/src/timer.go",
			}}},
		}, {Value: "no stack"}},
	}

	out := scrubEvent(event)
	require.NotNil(t, out)
	assert.Empty(t, out.ServerName)
	assert.Equal(t, "failed to save /home/<user>/run.lss", out.Message)
	assert.Equal(t, "/Users/<user>/run.lss", out.Extra["path"])
	assert.Equal(t, 2, out.Extra["count"])
	assert.Equal(t, "open /home/<user>/x.wasm", out.Exception[0].Value)
	assert.Equal(t, "/home/<user>/src/timer.go", out.Exception[0].Stacktrace.Frames[0].AbsPath)
}

func TestInitDisabled(t *testing.T) {
	t.Setenv(config.CfgEnv, "")
	cfg, err := config.NewConfig(t.TempDir(), config.BaseDefaults)
	require.NoError(t, err)

	require.NoError(t, Init(cfg))
	assert.False(t, Enabled())

	// no-ops while disabled
	Close()
}
