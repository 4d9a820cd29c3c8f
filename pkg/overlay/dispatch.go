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

package overlay

import (
	"context"
	"errors"
	"fmt"

	"github.com/ZaparooProject/zaparoo-livesplit/pkg/helpers"
	"github.com/ZaparooProject/zaparoo-livesplit/pkg/settings"
	"github.com/rs/zerolog/log"
)

var (
	ErrUnknownCommand = errors.New("unknown command")
	ErrNoWebsite      = errors.New("auto splitter has no website")
	ErrNoDownload     = errors.New("couldn't download the auto splitter files")
)

type handlerFunc func(ctx context.Context, i *Instance, store settings.Store) (Patch, error)

var commandTable = map[Command]handlerFunc{
	CmdSplit:              timerCmd(func(i *Instance) error { return i.handle.Timer().SplitOrStart() }),
	CmdReset:              timerCmd(func(i *Instance) error { return i.handle.Shared().Reset(true) }),
	CmdUndo:               timerCmd(func(i *Instance) error { return i.handle.Timer().UndoSplit() }),
	CmdSkip:               timerCmd(func(i *Instance) error { return i.handle.Timer().SkipSplit() }),
	CmdPause:              timerCmd(func(i *Instance) error { return i.handle.Timer().TogglePauseOrStart() }),
	CmdUndoAllPauses:      timerCmd(func(i *Instance) error { return i.handle.Timer().UndoAllPauses() }),
	CmdPreviousComparison: timerCmd(previousComparison),
	CmdNextComparison:     timerCmd(nextComparison),
	CmdToggleTimingMethod: timerCmd(toggleTimingMethod),

	CmdSaveSplits:           saveSplits,
	CmdStartGame:            startGame,
	CmdAutoSplitterActivate: activateAutoSplitter,
	CmdAutoSplitterWebsite:  openWebsite,

	CmdSplitsPathModified:        splitsPathModified,
	CmdUseGameArgumentsModified:  useGameArgumentsModified,
	CmdLocalAutoSplitterModified: localAutoSplitterModified,

	CmdMediaPlay:     timerCmd(func(i *Instance) error { return i.mediaPlayPause(false) }),
	CmdMediaPause:    timerCmd(func(i *Instance) error { return i.mediaPlayPause(true) }),
	CmdMediaRestart:  timerCmd(mediaRestart),
	CmdMediaStop:     timerCmd(func(i *Instance) error { return i.handle.Shared().Reset(true) }),
	CmdMediaNext:     timerCmd(func(i *Instance) error { return i.handle.Timer().Split() }),
	CmdMediaPrevious: timerCmd(func(i *Instance) error { return i.handle.Timer().UndoSplit() }),
}

// Dispatch runs cmd against the overlay. store carries the pending
// property values for the modified callbacks and may be nil for other
// commands. Hotkeys are ignored while the overlay is not activated.
func (i *Instance) Dispatch(ctx context.Context, cmd Command, store settings.Store) (Patch, error) {
	handler, ok := commandTable[cmd]
	if !ok {
		return Patch{}, fmt.Errorf("%w: %s", ErrUnknownCommand, cmd)
	}

	i.mu.Lock()
	defer i.mu.Unlock()

	if cmd.IsHotkey() && !i.activated {
		log.Debug().Str("command", string(cmd)).Msg("overlay not activated, ignoring hotkey")
		return Patch{}, nil
	}

	log.Debug().Str("command", string(cmd)).Msg("running overlay command")
	p, err := handler(ctx, i, store)
	if err != nil {
		return Patch{}, fmt.Errorf("%s: %w", cmd, err)
	}
	return p, nil
}

func timerCmd(fn func(i *Instance) error) handlerFunc {
	return func(_ context.Context, i *Instance, _ settings.Store) (Patch, error) {
		return Patch{}, fn(i)
	}
}

func previousComparison(i *Instance) error {
	i.handle.Timer().SwitchToPreviousComparison()
	return nil
}

func nextComparison(i *Instance) error {
	i.handle.Timer().SwitchToNextComparison()
	return nil
}

func toggleTimingMethod(i *Instance) error {
	i.handle.Timer().ToggleTimingMethod()
	return nil
}

func saveSplits(_ context.Context, i *Instance, _ settings.Store) (Patch, error) {
	if err := i.handle.Shared().Save(); err != nil {
		return Patch{}, err
	}
	return Patch{}, nil
}

func startGame(ctx context.Context, i *Instance, _ settings.Store) (Patch, error) {
	s := i.settings
	err := helpers.StartGame(ctx, i.deps.Exec, helpers.GameLaunch{
		Path:             s.GamePath,
		Arguments:        s.GameArguments,
		WorkingDirectory: s.GameWorkingDirectory,
		Env:              s.GameEnvironment,
		UseArguments:     s.GameUseArguments,
	})
	if err != nil {
		return Patch{}, fmt.Errorf("failed to start game: %w", err)
	}
	return Patch{}, nil
}

// activateAutoSplitter flips activation. Turning it on downloads the
// catalog module for the current game and loads it; if the download fails
// the flag is cleared again.
func activateAutoSplitter(ctx context.Context, i *Instance, _ settings.Store) (Patch, error) {
	shared := i.handle.Shared()
	var err error

	if shared.ToggleAutoSplitter() {
		game := i.handle.Timer().GameName()
		path, ok := "", false
		if i.deps.Splitters != nil {
			path, ok = i.deps.Splitters.AcquireForGame(ctx, game)
		}
		if ok {
			err = shared.LoadAutoSplitter(path)
		} else {
			log.Error().Str("game", game).Msg("couldn't download the auto splitter files")
			shared.SetAutoSplitterEnabled(false)
			err = ErrNoDownload
		}
	} else {
		shared.UnloadAutoSplitter()
	}

	p := Patch{Changed: true}
	p.setDescription(PropAutoSplitterActivate, activationLabel(shared.AutoSplitterEnabled()))
	return p, err
}

func openWebsite(ctx context.Context, i *Instance, _ settings.Store) (Patch, error) {
	entry := i.lookupLocked().Entry
	if entry == nil || entry.Website == "" {
		log.Warn().Msg("this auto splitter does not have a website")
		return Patch{}, ErrNoWebsite
	}

	log.Info().Str("url", entry.Website).Msg("opening auto splitter website")
	if err := helpers.OpenBrowser(ctx, i.deps.Exec, entry.Website); err != nil {
		return Patch{}, fmt.Errorf("could not open website: %w", err)
	}
	return Patch{}, nil
}

func splitsPathModified(_ context.Context, i *Instance, store settings.Store) (Patch, error) {
	if store == nil {
		return Patch{}, nil
	}
	i.switchSplitsLocked(store.String(settings.KeySplitsPath))

	p := AutoSplitterInfo(i.lookupLocked())
	p.Changed = true
	p.setDescription(PropAutoSplitterActivate,
		activationLabel(i.handle.Shared().AutoSplitterEnabled()))
	return p, nil
}

func useGameArgumentsModified(_ context.Context, i *Instance, store settings.Store) (Patch, error) {
	if store == nil {
		return Patch{}, nil
	}
	use := store.Bool(settings.KeyGameUseArguments)
	if use == i.settings.GameUseArguments {
		return Patch{}, nil
	}

	p := Patch{Changed: true}
	p.setVisible(PropGameArguments, use)
	p.setVisible(PropGameWorkingDirectory, use)
	p.setVisible(PropGameEnvironmentList, use)
	return p, nil
}

func localAutoSplitterModified(_ context.Context, i *Instance, store settings.Store) (Patch, error) {
	if store == nil {
		return Patch{}, nil
	}
	use := store.Bool(settings.KeyLocalAutoSplitter)
	if _, current := i.settings.LocalModule(); current == use {
		return Patch{}, nil
	}

	p := Patch{Changed: true}
	p.setVisible(PropAutoSplitterInfo, !use)
	p.setVisible(PropAutoSplitterActivate, !use)
	p.setVisible(PropAutoSplitterWebsite, !use)
	p.setVisible(PropLocalAutoSplitterPath, use)
	p.merge(AutoSplitterInfo(i.lookupLocked()))
	p.setDescription(PropAutoSplitterActivate, LabelActivate)
	return p, nil
}
