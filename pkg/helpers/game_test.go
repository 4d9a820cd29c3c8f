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

package helpers

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/ZaparooProject/zaparoo-livesplit/pkg/helpers/command"
	"github.com/ZaparooProject/zaparoo-livesplit/pkg/testing/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func fakeGame(t *testing.T) (gamePath, dir string) {
	t.Helper()
	dir = t.TempDir()
	gamePath = filepath.Join(dir, "celeste")
	require.NoError(t, os.WriteFile(gamePath, []byte("#!/bin/sh\n"), 0o600))
	return gamePath, dir
}

func TestStartGame(t *testing.T) {
	t.Parallel()

	gamePath, dir := fakeGame(t)

	tests := []struct {
		name     string
		game     GameLaunch
		wantOpts command.StartOptions
		wantArgs []string
	}{
		{
			name: "no_arguments",
			game: GameLaunch{Path: gamePath},
		},
		{
			name: "arguments_ignored_when_disabled",
			game: GameLaunch{
				Path:             gamePath,
				Arguments:        "-fullscreen",
				Env:              []string{"FOO=bar"},
				WorkingDirectory: dir,
			},
		},
		{
			name: "quoted_arguments",
			game: GameLaunch{
				Path:         gamePath,
				Arguments:    `-save "slot one" --speed=2`,
				UseArguments: true,
			},
			wantArgs: []string{"-save", "slot one", "--speed=2"},
		},
		{
			name: "whitespace_arguments",
			game: GameLaunch{Path: gamePath, Arguments: "   ", UseArguments: true},
		},
		{
			name: "dir_and_env",
			game: GameLaunch{
				Path:             gamePath,
				WorkingDirectory: dir,
				Env:              []string{"FOO=bar"},
				UseArguments:     true,
			},
			wantOpts: command.StartOptions{Dir: dir, Env: []string{"FOO=bar"}},
		},
		{
			name: "missing_dir_ignored",
			game: GameLaunch{
				Path:             gamePath,
				WorkingDirectory: filepath.Join(dir, "nope"),
				UseArguments:     true,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			exec := &mocks.MockCommandExecutor{}
			exec.On("Start", mock.Anything, tt.wantOpts, gamePath, tt.wantArgs).Return(nil)

			require.NoError(t, StartGame(context.Background(), exec, tt.game))
			exec.AssertExpectations(t)
		})
	}
}

func TestStartGameErrors(t *testing.T) {
	t.Parallel()

	gamePath, _ := fakeGame(t)
	exec := &mocks.MockCommandExecutor{}

	err := StartGame(context.Background(), exec, GameLaunch{})
	require.ErrorIs(t, err, ErrGameNotFound)

	err = StartGame(context.Background(), exec, GameLaunch{Path: "/definitely/not/here"})
	require.ErrorIs(t, err, ErrGameNotFound)

	err = StartGame(context.Background(), exec, GameLaunch{
		Path:         gamePath,
		Arguments:    `"unterminated`,
		UseArguments: true,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse game arguments")
	exec.AssertNotCalled(t, "Start")
}
