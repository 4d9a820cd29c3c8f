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

// Package command provides an abstraction over exec.Command for testability.
package command

import (
	"context"
	"fmt"
	"os"
	"os/exec"

	"github.com/rs/zerolog/log"
)

// StartOptions configures how a detached process is started.
type StartOptions struct {
	// Dir is the working directory. Empty uses the current one.
	Dir string
	// Env is appended to the current process environment as KEY=VALUE pairs.
	Env []string
}

// Executor starts external programs. The overlay only ever starts processes
// it does not wait on (games, browsers), so that is the whole surface.
type Executor interface {
	// Start launches a command and returns once it is running. The exit
	// status is collected in the background and logged.
	Start(ctx context.Context, opts StartOptions, name string, args ...string) error
}

// RealExecutor uses exec.Command to start system commands.
type RealExecutor struct{}

// Start launches the command detached from ctx's lifetime. The context is
// only checked before the process is spawned, since a game must outlive the
// request that started it.
func (*RealExecutor) Start(ctx context.Context, opts StartOptions, name string, args ...string) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("start %s: %w", name, err)
	}

	cmd := exec.Command(name, args...) //nolint:gosec,noctx // user configured executable
	if opts.Dir != "" {
		cmd.Dir = opts.Dir
	}
	if len(opts.Env) > 0 {
		cmd.Env = append(os.Environ(), opts.Env...)
	}

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start %s: %w", name, err)
	}

	// reap the child so it never lingers as a zombie while the host runs
	go func() {
		if err := cmd.Wait(); err != nil {
			log.Warn().Err(err).Str("cmd", name).Msg("process exited with error")
			return
		}
		log.Info().Str("cmd", name).Msg("process exited")
	}()

	return nil
}
