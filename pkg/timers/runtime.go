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
	"errors"

	"github.com/ZaparooProject/zaparoo-livesplit/pkg/timer"
	"github.com/rs/zerolog/log"
)

// ErrNoRuntime is returned by the default runtime, which cannot execute
// auto splitter modules.
var ErrNoRuntime = errors.New("no auto splitter runtime available")

// SplitterRuntime executes an auto splitter module against a timer. One
// runtime belongs to each shared timer.
type SplitterRuntime interface {
	Load(modulePath string, t *timer.Timer) error
	Unload() error
}

type noopRuntime struct{}

func (noopRuntime) Load(modulePath string, _ *timer.Timer) error {
	log.Warn().Str("module", modulePath).Msg("auto splitter runtime not available")
	return ErrNoRuntime
}

func (noopRuntime) Unload() error {
	return nil
}
