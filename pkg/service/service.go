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

// Package service runs the headless overlay host: the auto splitter
// catalog, the shared timers, the overlays listed in the config and the
// control API.
package service

import (
	"context"
	"fmt"
	"net"
	"path/filepath"

	"github.com/ZaparooProject/zaparoo-livesplit/pkg/api"
	"github.com/ZaparooProject/zaparoo-livesplit/pkg/api/models"
	"github.com/ZaparooProject/zaparoo-livesplit/pkg/api/models/requests"
	"github.com/ZaparooProject/zaparoo-livesplit/pkg/autosplitters"
	"github.com/ZaparooProject/zaparoo-livesplit/pkg/config"
	"github.com/ZaparooProject/zaparoo-livesplit/pkg/helpers"
	"github.com/ZaparooProject/zaparoo-livesplit/pkg/overlay"
	"github.com/ZaparooProject/zaparoo-livesplit/pkg/service/broker"
	"github.com/ZaparooProject/zaparoo-livesplit/pkg/service/discovery"
	"github.com/ZaparooProject/zaparoo-livesplit/pkg/shared/httpclient"
	"github.com/ZaparooProject/zaparoo-livesplit/pkg/timers"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
	"golang.org/x/sync/errgroup"
)

const (
	notificationQueueSize = 100
	subscriberQueueSize   = 100
)

type Options struct {
	Fs afero.Fs
	// Listener replaces the configured API listen address.
	Listener net.Listener
	// NewRuntime builds the auto splitter runtime of each shared timer.
	NewRuntime func() timers.SplitterRuntime
	// ConfigDir defaults to the directory of the config file.
	ConfigDir string
}

func newSplitters(cfg *config.Instance, fs afero.Fs, configDir string) *autosplitters.Manager {
	client := httpclient.NewClientFromConfig(cfg)
	return autosplitters.NewManager(autosplitters.ManagerOptions{
		Fs:         fs,
		Fetcher:    autosplitters.NewFetcher(client, fs, cfg.AutoSplitterListURL()),
		Downloader: autosplitters.NewDownloader(client, fs),
		CacheDir:   configDir,
		ModulesDir: helpers.AutoSplittersDir(configDir),
	})
}

func logNotifications(ch <-chan models.Notification) {
	for n := range ch {
		log.Debug().Str("method", n.Method).Interface("params", n.Params).Msg("notification")
	}
}

// Start brings the host up and returns once the API is listening. The
// returned stop function shuts everything down and waits for it; done is
// closed when the host has stopped for any reason.
func Start(cfg *config.Instance, opts Options) (stop func() error, done <-chan struct{}, err error) {
	log.Info().Msgf("version: %s", config.AppVersion)

	if opts.Fs == nil {
		opts.Fs = afero.NewOsFs()
	}
	if opts.ConfigDir == "" {
		opts.ConfigDir = filepath.Dir(cfg.ConfigPath())
	}
	if err := opts.Fs.MkdirAll(helpers.AutoSplittersDir(opts.ConfigDir), 0o750); err != nil {
		return nil, nil, fmt.Errorf("failed to create auto splitter directory: %w", err)
	}

	ln := opts.Listener
	if ln == nil {
		var lc net.ListenConfig
		ln, err = lc.Listen(context.Background(), "tcp", cfg.APIListen())
		if err != nil {
			return nil, nil, fmt.Errorf("failed to listen on %s: %w", cfg.APIListen(), err)
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	g, gctx := errgroup.WithContext(ctx)
	ns := make(chan models.Notification, notificationQueueSize)

	deps := overlay.Deps{
		Registry: timers.NewRegistry(timers.Options{Fs: opts.Fs, NewRuntime: opts.NewRuntime}),
	}
	var splitters *autosplitters.Manager
	if cfg.AutoSplittersEnabled() {
		splitters = newSplitters(cfg, opts.Fs, opts.ConfigDir)
		deps.Splitters = splitters
		g.Go(func() error {
			if err := splitters.SetUp(gctx); err != nil {
				log.Error().Err(err).Msg("auto splitter list unavailable")
			}
			return nil
		})
	} else {
		log.Info().Msg("auto splitters disabled by configuration")
	}

	overlays := overlay.NewSet()
	sources := newSourceSync(overlays, deps, ns)
	log.Info().Msg("creating configured overlays")
	sources.apply(cfg.Sources())

	b := broker.New(ns)
	apiNotifications, _ := b.Subscribe(subscriberQueueSize)
	debugNotifications, _ := b.Subscribe(subscriberQueueSize)
	g.Go(func() error {
		b.Run(gctx)
		return nil
	})
	g.Go(func() error {
		logNotifications(debugNotifications)
		return nil
	})

	g.Go(func() error {
		err := cfg.Watch(gctx, func(c *config.Instance) {
			sources.apply(c.Sources())
		})
		if err != nil {
			log.Error().Err(err).Msg("config watcher stopped, changes need a restart")
		}
		return nil
	})

	log.Info().Msg("starting mDNS discovery service")
	disc := discovery.New(cfg)
	if err := disc.Start(); err != nil {
		log.Error().Err(err).Msg("mDNS discovery failed to start")
	}

	server := api.NewServer(api.ServerOptions{
		Env: requests.RequestEnv{
			Overlays:      overlays,
			Splitters:     splitters,
			Notifications: ns,
			Deps:          deps,
		},
		AllowedOrigins: cfg.AllowedOrigins(),
	})
	g.Go(func() error {
		return server.Serve(gctx, ln, apiNotifications)
	})

	doneCh := make(chan struct{})
	var runErr error
	go func() {
		runErr = g.Wait()
		cancel()
		log.Info().Msg("service stopping, running cleanup")

		disc.Stop()
		overlays.Close()

		log.Info().Msg("service cleanup completed")
		close(doneCh)
	}()

	stop = func() error {
		cancel()
		<-doneCh
		return runErr
	}
	return stop, doneCh, nil
}
