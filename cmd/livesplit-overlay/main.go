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

package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/ZaparooProject/zaparoo-livesplit/internal/telemetry"
	"github.com/ZaparooProject/zaparoo-livesplit/pkg/cli"
	"github.com/ZaparooProject/zaparoo-livesplit/pkg/config"
	"github.com/ZaparooProject/zaparoo-livesplit/pkg/helpers"
)

func main() {
	if err := run(); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

func run() error {
	flags := cli.SetupFlags()
	quiet := flag.Bool(
		"quiet",
		false,
		"only log to the log file",
	)
	flags.Pre()

	var logWriters []io.Writer
	if !*quiet {
		logWriters = []io.Writer{helpers.ConsoleWriter()}
	}

	cfg := cli.Setup(config.BaseDefaults, logWriters)
	defer telemetry.Close()

	flags.Post(cfg)

	return cli.Run(cfg)
}
