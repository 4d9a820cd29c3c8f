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

// Package cli holds the flags and start-up steps shared by the overlay host
// binaries.
package cli

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/ZaparooProject/zaparoo-livesplit/internal/telemetry"
	"github.com/ZaparooProject/zaparoo-livesplit/pkg/api/client"
	"github.com/ZaparooProject/zaparoo-livesplit/pkg/api/models"
	"github.com/ZaparooProject/zaparoo-livesplit/pkg/config"
	"github.com/ZaparooProject/zaparoo-livesplit/pkg/helpers"
	"github.com/ZaparooProject/zaparoo-livesplit/pkg/service"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var ErrMissingOverlay = errors.New("command flag requires an overlay id")

type Flags struct {
	API     *string
	Command *string
	Overlay *string
	Wait    *string
	Timeout *time.Duration
	Version *bool
	Reload  *bool
}

// SetupFlags defines the common flags on the default flag set.
func SetupFlags() *Flags {
	return &Flags{
		API: flag.String(
			"api",
			"",
			"send method and params to API and print response (method:params)",
		),
		Command: flag.String(
			"command",
			"",
			"run an overlay command, such as split or reset, on a running host",
		),
		Overlay: flag.String(
			"overlay",
			"",
			"overlay id the command flag targets",
		),
		Wait: flag.String(
			"wait",
			"",
			"print the params of the next notification with this method",
		),
		Timeout: flag.Duration(
			"timeout",
			config.APIRequestTimeout,
			"how long the wait flag waits",
		),
		Version: flag.Bool(
			"version",
			false,
			"print version and exit",
		),
		Reload: flag.Bool(
			"reload",
			false,
			"reload the auto splitter list on a running host",
		),
	}
}

// Pre parses flags and handles the ones that need no environment. Add any
// custom flags before calling it.
func (f *Flags) Pre() {
	flag.Parse()

	if *f.Version {
		_, _ = fmt.Printf("Zaparoo LiveSplit v%s\n", config.AppVersion)
		os.Exit(0)
	}
}

// Post handles the client flags against the host on this machine and exits
// if one was given.
func (f *Flags) Post(cfg *config.Instance) {
	handled, err := f.runClient(context.Background(), client.LocalURL(cfg), os.Stdout)
	if !handled {
		return
	}
	if err != nil {
		log.Error().Err(err).Msg("error calling API")
		_, _ = fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	os.Exit(0)
}

func (f *Flags) runClient(ctx context.Context, url string, out io.Writer) (bool, error) {
	var (
		method string
		params string
	)

	switch {
	case *f.API != "":
		ps := strings.SplitN(*f.API, ":", 2)
		method = ps[0]
		if len(ps) > 1 {
			params = ps[1]
		}
	case *f.Command != "":
		if *f.Overlay == "" {
			return true, ErrMissingOverlay
		}
		data, err := json.Marshal(models.OverlayCommandParams{
			ID:      *f.Overlay,
			Command: *f.Command,
		})
		if err != nil {
			return true, fmt.Errorf("error encoding params: %w", err)
		}
		method, params = models.MethodOverlaysCommand, string(data)
	case *f.Reload:
		method = models.MethodAutoSplittersReload
	case *f.Wait != "":
		res, err := client.WaitNotification(ctx, *f.Timeout, url, *f.Wait)
		if err != nil {
			return true, fmt.Errorf("error waiting for notification: %w", err)
		}
		_, _ = fmt.Fprintln(out, res)
		return true, nil
	default:
		return false, nil
	}

	res, err := client.Call(ctx, url, method, params)
	if err != nil {
		return true, fmt.Errorf("error calling %s: %w", method, err)
	}
	_, _ = fmt.Fprintln(out, res)
	return true, nil
}

// Setup creates the directories, logging and config. Errors are fatal.
//
//nolint:gocritic // config struct copied for immutability
func Setup(defaults config.Values, writers []io.Writer) *config.Instance {
	configDir, logDir := helpers.ConfigDir(), helpers.LogDir()
	if err := helpers.EnsureDirectories(configDir, logDir); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Error creating directories: %v\n", err)
		os.Exit(1)
	}

	if err := helpers.InitLogging(logDir, writers); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Error initializing logging: %v\n", err)
		os.Exit(1)
	}

	cfg, err := config.NewConfig(configDir, defaults)
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	if cfg.DebugLogging() {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	if err := telemetry.Init(cfg); err != nil {
		log.Warn().Err(err).Msg("failed to initialize error reporting")
	}

	return cfg
}

// Run starts the host and blocks until a signal arrives or the host stops
// by itself.
func Run(cfg *config.Instance) (returnErr error) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Msgf("panic recovered: %v", r)
			returnErr = fmt.Errorf("panic: %v", r)
		}
	}()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigs)

	stop, done, err := service.Start(cfg, service.Options{})
	if err != nil {
		return fmt.Errorf("error starting service: %w", err)
	}

	select {
	case sig := <-sigs:
		log.Info().Stringer("signal", sig).Msg("shutting down")
	case <-done:
		log.Info().Msg("service shut down internally")
	}

	if err := stop(); err != nil {
		return fmt.Errorf("error stopping service: %w", err)
	}
	return nil
}
