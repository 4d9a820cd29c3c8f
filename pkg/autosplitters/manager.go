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

package autosplitters

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
	"golang.org/x/sync/singleflight"
)

// Manager owns the current catalog and the downloader. Catalogs are
// immutable and swapped atomically, so readers never need a lock.
type Manager struct {
	fs          afero.Fs
	fetcher     *Fetcher
	downloader  *Downloader
	catalog     atomic.Pointer[Catalog]
	status      atomic.Pointer[Status]
	cacheDir    string
	modulesDir  string
	reloadGroup singleflight.Group
}

type ManagerOptions struct {
	Fs         afero.Fs
	Fetcher    *Fetcher
	Downloader *Downloader
	// CacheDir holds the cached copy of the list.
	CacheDir string
	// ModulesDir receives downloaded module files.
	ModulesDir string
}

func NewManager(opts ManagerOptions) *Manager {
	m := &Manager{
		fs:         opts.Fs,
		fetcher:    opts.Fetcher,
		downloader: opts.Downloader,
		cacheDir:   opts.CacheDir,
		modulesDir: opts.ModulesDir,
	}
	m.catalog.Store(Empty())
	m.status.Store(&Status{})
	return m
}

// Status describes the catalog currently served.
type Status struct {
	Entries int
	Source  Source
	Loaded  bool
}

func (m *Manager) Status() Status {
	return *m.status.Load()
}

// Catalog returns the current catalog. It is never nil.
func (m *Manager) Catalog() *Catalog {
	return m.catalog.Load()
}

func (m *Manager) ModulesDir() string {
	return m.modulesDir
}

// SetUp fetches the catalog for the first time. Failure is not fatal: the
// manager keeps serving the empty catalog and overlays stay usable for
// manual timing.
func (m *Manager) SetUp(ctx context.Context) error {
	if err := m.fs.MkdirAll(m.cacheDir, 0o750); err != nil {
		log.Error().Err(err).Str("dir", m.cacheDir).Msg("failed to create auto splitter cache directory")
	}
	_, err := m.load(ctx)
	return err
}

// Reload fetches the catalog again. Concurrent calls share one fetch.
func (m *Manager) Reload(ctx context.Context) (*Catalog, error) {
	v, err, shared := m.reloadGroup.Do("reload", func() (any, error) {
		return m.load(ctx)
	})
	if shared {
		log.Debug().Msg("joined in-flight auto splitter list reload")
	}
	if err != nil {
		return m.Catalog(), err
	}
	catalog, ok := v.(*Catalog)
	if !ok {
		return m.Catalog(), errors.New("unexpected reload result")
	}
	return catalog, nil
}

func (m *Manager) load(ctx context.Context) (*Catalog, error) {
	res, err := m.fetcher.Fetch(ctx, m.cacheDir)
	if err != nil {
		var fetchErr *FetchError
		if errors.As(err, &fetchErr) {
			log.Error().Err(fetchErr.Remote).Msg("failed to download the auto splitter list")
			log.Error().Err(fetchErr.Local).Msg("failed to load the cached auto splitter list")
		}
		return nil, fmt.Errorf("auto splitter list unavailable: %w", err)
	}

	switch res.Source {
	case SourceRemote:
		if err := res.Catalog.SaveToDisk(m.fs, m.cacheDir); err != nil {
			log.Warn().Err(err).Msg("failed to cache the auto splitter list")
		}
	case SourceCache:
		log.Warn().Err(res.RemoteErr).Msg("using cached auto splitter list")
	}

	m.catalog.Store(res.Catalog)
	m.status.Store(&Status{Entries: res.Catalog.Len(), Source: res.Source, Loaded: true})
	log.Info().
		Int("entries", res.Catalog.Len()).
		Stringer("source", res.Source).
		Msg("loaded auto splitter list")
	return res.Catalog, nil
}

// Lookup describes what the catalog offers for a game.
type Lookup struct {
	Entry       *Entry
	Suggestions []string
}

// Lookup finds the entry for game in the current catalog. When nothing
// matches, near-miss names are included to explain why.
func (m *Manager) Lookup(game string) Lookup {
	catalog := m.Catalog()
	entry, ok := catalog.FindForGame(game)
	if !ok {
		return Lookup{Suggestions: catalog.Suggest(game, 3)}
	}
	return Lookup{Entry: &entry}
}

// AcquireForGame downloads the module for game into the modules directory.
func (m *Manager) AcquireForGame(ctx context.Context, game string) (string, bool) {
	return m.downloader.AcquireForGame(ctx, m.Catalog(), game, m.modulesDir)
}
