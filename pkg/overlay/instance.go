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

// Package overlay implements one timer overlay: its settings, the shared
// timer it renders and the commands a host can send it.
package overlay

import (
	"context"

	"github.com/ZaparooProject/zaparoo-livesplit/pkg/autosplitters"
	"github.com/ZaparooProject/zaparoo-livesplit/pkg/helpers/command"
	"github.com/ZaparooProject/zaparoo-livesplit/pkg/helpers/syncutil"
	"github.com/ZaparooProject/zaparoo-livesplit/pkg/settings"
	"github.com/ZaparooProject/zaparoo-livesplit/pkg/timer"
	"github.com/ZaparooProject/zaparoo-livesplit/pkg/timers"
	"github.com/rs/zerolog/log"
)

// Splitters is the auto splitter catalog as seen by an overlay.
type Splitters interface {
	Lookup(game string) autosplitters.Lookup
	AcquireForGame(ctx context.Context, game string) (string, bool)
}

// Deps are the process wide services every overlay shares. Splitters may
// be nil when auto splitters are disabled.
type Deps struct {
	Registry  *timers.Registry
	Splitters Splitters
	Exec      command.Executor
}

type Instance struct {
	deps      Deps
	handle    *timers.Handle
	settings  settings.Settings
	mu        syncutil.Mutex
	activated bool
}

// New creates an overlay from its settings store. The overlay starts
// deactivated. Bad settings never stop an overlay from being created; see
// settings.Parse.
func New(deps Deps, store settings.Store) *Instance {
	if deps.Exec == nil {
		deps.Exec = &command.RealExecutor{}
	}

	s := settings.Parse(store)

	log.Debug().Str("splits", s.SplitsPath).Msg("loading overlay settings")
	handle := deps.Registry.GetOrCreate(s.SplitsPath, deps.Registry.DefaultLoader())
	handle.Shared().SetAutoSave(s.AutoSave)

	if path, ok := s.LocalModule(); ok {
		// failures are logged and leave the activation flag cleared
		_ = handle.Shared().LoadAutoSplitter(path)
	}

	return &Instance{
		deps:     deps,
		handle:   handle,
		settings: s,
	}
}

// Update applies new settings. Changing the splits path moves the overlay
// onto the timer for the new path; changing the local auto splitter
// reloads it.
func (i *Instance) Update(store settings.Store) {
	s := settings.Parse(store)

	i.mu.Lock()
	defer i.mu.Unlock()

	i.switchSplitsLocked(s.SplitsPath)
	shared := i.handle.Shared()
	shared.SetAutoSave(s.AutoSave)

	oldPath, oldOK := i.settings.LocalModule()
	newPath, newOK := s.LocalModule()
	if oldOK != newOK || oldPath != newPath {
		shared.UnloadAutoSplitter()
		if newOK {
			_ = shared.LoadAutoSplitter(newPath)
		}
	}

	i.settings = s
}

// switchSplitsLocked acquires the timer for path before dropping the old
// one, so an unchanged path keeps its timer alive. Caller must hold mu.
func (i *Instance) switchSplitsLocked(path string) {
	if i.handle != nil && i.handle.Shared().Path() == path {
		return
	}
	next := i.deps.Registry.GetOrCreate(path, i.deps.Registry.DefaultLoader())
	if i.handle != nil {
		i.handle.Release()
	}
	i.handle = next
	i.settings.SplitsPath = path
}

// Destroy releases the overlay's timer. It is safe to call more than once.
func (i *Instance) Destroy() {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.handle.Release()
}

// Activate marks the overlay as shown, enabling hotkeys.
func (i *Instance) Activate() {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.activated = true
}

func (i *Instance) Deactivate() {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.activated = false
}

func (i *Instance) Activated() bool {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.activated
}

func (i *Instance) Settings() settings.Settings {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.settings
}

// Shared returns the shared timer the overlay currently renders.
func (i *Instance) Shared() *timers.Shared {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.handle.Shared()
}

func (i *Instance) Snapshot() timer.Snapshot {
	return i.Shared().Timer().Snapshot()
}

// Size is the overlay's render size in pixels.
func (i *Instance) Size() (width, height int) {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.settings.Width, i.settings.Height
}

func (i *Instance) lookupLocked() autosplitters.Lookup {
	if i.deps.Splitters == nil {
		return autosplitters.Lookup{}
	}
	return i.deps.Splitters.Lookup(i.handle.Timer().GameName())
}

// Properties is the full properties view: visibility of the optional
// fields, the auto splitter info and the activation label.
func (i *Instance) Properties() Patch {
	i.mu.Lock()
	defer i.mu.Unlock()

	p := AutoSplitterInfo(i.lookupLocked())
	p.Changed = true

	useArgs := i.settings.GameUseArguments
	p.setVisible(PropGameArguments, useArgs)
	p.setVisible(PropGameWorkingDirectory, useArgs)
	p.setVisible(PropGameEnvironmentList, useArgs)

	_, local := i.settings.LocalModule()
	p.setVisible(PropAutoSplitterInfo, !local)
	p.setVisible(PropAutoSplitterActivate, !local)
	p.setVisible(PropAutoSplitterWebsite, !local)
	p.setVisible(PropLocalAutoSplitterPath, local)

	p.setDescription(PropAutoSplitterActivate,
		activationLabel(i.handle.Shared().AutoSplitterEnabled()))
	return p
}
