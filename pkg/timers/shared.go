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

package timers

import (
	"fmt"
	"sync/atomic"

	"github.com/ZaparooProject/zaparoo-livesplit/pkg/helpers/syncutil"
	"github.com/ZaparooProject/zaparoo-livesplit/pkg/splits"
	"github.com/ZaparooProject/zaparoo-livesplit/pkg/timer"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
)

// Shared is the state every holder of a path sees: the timer, where it was
// loaded from and its save and auto splitter flags.
type Shared struct {
	fs         afero.Fs
	runtime    SplitterRuntime
	timer      *timer.Timer
	path       string
	saveMu     syncutil.Mutex
	splitterMu syncutil.Mutex
	canSave    bool
	autoSave   atomic.Bool
	splitterOn atomic.Bool
}

func (s *Shared) Timer() *timer.Timer {
	return s.timer
}

func (s *Shared) Path() string {
	return s.path
}

// CanSave is false when the splits file could not be parsed and a default
// run was substituted.
func (s *Shared) CanSave() bool {
	return s.canSave
}

func (s *Shared) AutoSave() bool {
	return s.autoSave.Load()
}

func (s *Shared) SetAutoSave(enabled bool) {
	s.autoSave.Store(enabled)
}

// Save writes the run back to the splits file. It does nothing when the
// timer is not save capable.
func (s *Shared) Save() error {
	if !s.canSave {
		log.Debug().Str("path", s.path).Msg("splits not save capable, skipping save")
		return nil
	}

	s.saveMu.Lock()
	defer s.saveMu.Unlock()

	if err := splits.Save(s.fs, s.path, s.timer.Run()); err != nil {
		return fmt.Errorf("failed to save splits to %s: %w", s.path, err)
	}
	return nil
}

// Reset resets the timer, updating personal bests, then saves when auto
// save is on. Save failures are logged, not returned.
func (s *Shared) Reset(updateSplits bool) error {
	if s.timer.Phase() == timer.NotRunning {
		return nil
	}
	if err := s.timer.Reset(updateSplits); err != nil {
		return fmt.Errorf("failed to reset timer: %w", err)
	}
	if s.autoSave.Load() {
		if err := s.Save(); err != nil {
			log.Error().Err(err).Msg("auto save failed")
		}
	}
	return nil
}

func (s *Shared) AutoSplitterEnabled() bool {
	return s.splitterOn.Load()
}

// ToggleAutoSplitter flips the activation flag and returns the new value.
func (s *Shared) ToggleAutoSplitter() bool {
	for {
		old := s.splitterOn.Load()
		if s.splitterOn.CompareAndSwap(old, !old) {
			return !old
		}
	}
}

// SetAutoSplitterEnabled overrides the activation flag, e.g. after a failed
// download.
func (s *Shared) SetAutoSplitterEnabled(enabled bool) {
	s.splitterOn.Store(enabled)
}

// LoadAutoSplitter loads the module at path into the splitter runtime. The
// activation flag reflects whether loading succeeded.
func (s *Shared) LoadAutoSplitter(path string) error {
	s.splitterMu.Lock()
	defer s.splitterMu.Unlock()

	err := s.runtime.Load(path, s.timer)
	s.splitterOn.Store(err == nil)
	if err != nil {
		log.Warn().Err(err).Str("module", path).Msg("auto splitter could not be loaded")
		return fmt.Errorf("failed to load auto splitter: %w", err)
	}
	log.Info().Str("module", path).Str("splits", s.path).Msg("loaded auto splitter")
	return nil
}

func (s *Shared) UnloadAutoSplitter() {
	s.splitterMu.Lock()
	defer s.splitterMu.Unlock()

	if err := s.runtime.Unload(); err != nil {
		log.Debug().Err(err).Msg("auto splitter unload")
	}
	s.splitterOn.Store(false)
}
