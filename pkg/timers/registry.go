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

// Package timers deduplicates live timers by splits file path.
//
// Every overlay that points at the same splits path shares one timer. The
// registry stores timers in an arena of reference counted slots; each entry
// remembers the slot index and the slot generation it was created for, so an
// entry whose slot has since been freed (or reused) is detected and pruned
// instead of handing out a stale timer.
package timers

import (
	"github.com/ZaparooProject/zaparoo-livesplit/pkg/helpers/syncutil"
	"github.com/ZaparooProject/zaparoo-livesplit/pkg/splits"
	"github.com/ZaparooProject/zaparoo-livesplit/pkg/timer"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
)

// Loader produces the initial run for a path and whether the result may be
// saved back to that path. It must not fail; on error it returns a default
// run and false.
type Loader func(path string) (*splits.Run, bool)

type Options struct {
	Fs         afero.Fs
	Clock      clockwork.Clock
	NewRuntime func() SplitterRuntime
}

type slot struct {
	shared *Shared
	refs   int
	gen    uint64
}

type entry struct {
	path string
	idx  int
	gen  uint64
}

type Registry struct {
	opts    Options
	slots   []slot
	free    []int
	entries []entry
	mu      syncutil.Mutex
}

func NewRegistry(opts Options) *Registry {
	if opts.Fs == nil {
		opts.Fs = afero.NewOsFs()
	}
	if opts.Clock == nil {
		opts.Clock = clockwork.NewRealClock()
	}
	if opts.NewRuntime == nil {
		opts.NewRuntime = func() SplitterRuntime { return noopRuntime{} }
	}
	return &Registry{opts: opts}
}

// DefaultLoader reads splits from the registry's filesystem.
func (r *Registry) DefaultLoader() Loader {
	return splits.NewLoader(r.opts.Fs)
}

// upgradable reports whether e still points at a live slot. Caller must
// hold mu.
func (r *Registry) upgradable(e entry) bool {
	if e.idx < 0 || e.idx >= len(r.slots) {
		return false
	}
	s := &r.slots[e.idx]
	return s.gen == e.gen && s.refs > 0
}

// pruneLocked drops entries whose slot has been released. Caller must hold mu.
func (r *Registry) pruneLocked() {
	live := r.entries[:0]
	for _, e := range r.entries {
		if r.upgradable(e) {
			live = append(live, e)
		}
	}
	clear(r.entries[len(live):])
	r.entries = live
}

// GetOrCreate returns a handle to the timer for path, creating it with
// loader when no live timer exists. Paths are compared exactly, without any
// filesystem canonicalisation. The registry lock is held while loader runs,
// so creation of timers for different paths is serialised.
//
// The caller owns the returned handle and must Release it.
func (r *Registry) GetOrCreate(path string, loader Loader) *Handle {
	if loader == nil {
		loader = r.DefaultLoader()
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.pruneLocked()

	for _, e := range r.entries {
		if e.path != path {
			continue
		}
		s := &r.slots[e.idx]
		s.refs++
		log.Debug().Str("path", path).Int("holders", s.refs).Msg("reusing shared timer")
		return &Handle{reg: r, shared: s.shared, idx: e.idx, gen: e.gen}
	}

	shared := r.newShared(path, loader)

	var idx int
	if n := len(r.free); n > 0 {
		idx = r.free[n-1]
		r.free = r.free[:n-1]
	} else {
		r.slots = append(r.slots, slot{})
		idx = len(r.slots) - 1
	}
	s := &r.slots[idx]
	s.shared = shared
	s.refs = 1

	r.entries = append(r.entries, entry{path: path, idx: idx, gen: s.gen})
	log.Debug().Str("path", path).Bool("can_save", shared.canSave).Msg("storing shared timer")

	return &Handle{reg: r, shared: shared, idx: idx, gen: s.gen}
}

func (r *Registry) newShared(path string, loader Loader) *Shared {
	run, canSave := loader(path)
	t, err := timer.New(run, r.opts.Clock)
	if err != nil {
		log.Warn().Err(err).Str("path", path).Msg("loader returned unusable run, using default")
		t, err = timer.New(splits.Default(), r.opts.Clock)
		if err != nil {
			// splits.Default always has one segment
			panic(err)
		}
		canSave = false
	}
	return &Shared{
		timer:   t,
		fs:      r.opts.Fs,
		runtime: r.opts.NewRuntime(),
		path:    path,
		canSave: canSave,
	}
}

// acquire adds a holder to a live slot. Returns false if the slot has
// already been freed.
func (r *Registry) acquire(idx int, gen uint64) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.upgradable(entry{idx: idx, gen: gen}) {
		return false
	}
	r.slots[idx].refs++
	return true
}

func (r *Registry) release(idx int, gen uint64) {
	r.mu.Lock()
	s := &r.slots[idx]
	if s.gen != gen || s.refs == 0 {
		r.mu.Unlock()
		return
	}
	s.refs--
	if s.refs > 0 {
		r.mu.Unlock()
		return
	}

	shared := s.shared
	s.shared = nil
	s.gen++
	r.free = append(r.free, idx)
	r.mu.Unlock()

	log.Debug().Str("path", shared.path).Msg("last holder released shared timer")
	shared.UnloadAutoSplitter()
}

// Len returns the number of live timers.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pruneLocked()
	return len(r.entries)
}

// Holders returns how many handles currently hold the timer for path.
func (r *Registry) Holders(path string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.entries {
		if e.path == path && r.upgradable(e) {
			return r.slots[e.idx].refs
		}
	}
	return 0
}
