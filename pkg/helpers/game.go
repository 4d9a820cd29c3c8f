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
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/ZaparooProject/zaparoo-livesplit/pkg/helpers/command"
	"github.com/google/shlex"
	"github.com/rs/zerolog/log"
)

var ErrGameNotFound = errors.New("game path does not exist")

// GameLaunch describes how to start the game associated with an overlay.
type GameLaunch struct {
	Path             string
	Arguments        string
	WorkingDirectory string
	Env              []string
	UseArguments     bool
}

// StartGame launches the game without waiting for it to exit. Arguments,
// environment and working directory are only applied when UseArguments is
// set. Arguments are split with shell quoting rules and a working directory
// that does not exist is ignored.
func StartGame(ctx context.Context, exec command.Executor, game GameLaunch) error {
	if game.Path == "" {
		return ErrGameNotFound
	}
	if _, err := os.Stat(game.Path); err != nil {
		return fmt.Errorf("%w: %s", ErrGameNotFound, game.Path)
	}

	var args []string
	var opts command.StartOptions
	if game.UseArguments {
		if strings.TrimSpace(game.Arguments) != "" {
			split, err := shlex.Split(game.Arguments)
			if err != nil {
				return fmt.Errorf("failed to parse game arguments: %w", err)
			}
			args = split
		}

		opts.Env = game.Env

		switch {
		case game.WorkingDirectory == "":
			log.Info().Msg("no working directory provided, using the default one")
		case dirExists(game.WorkingDirectory):
			opts.Dir = game.WorkingDirectory
		default:
			log.Warn().Str("dir", game.WorkingDirectory).
				Msg("working directory not found, using the default one")
		}
	}

	log.Info().
		Str("path", game.Path).
		Strs("args", args).
		Str("dir", opts.Dir).
		Int("env", len(opts.Env)).
		Msg("starting game")

	if err := exec.Start(ctx, opts, game.Path, args...); err != nil {
		return fmt.Errorf("failed to start game: %w", err)
	}
	return nil
}

func dirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
