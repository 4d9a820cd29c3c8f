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

// Package settings is the per-overlay settings surface: the key/value store
// a host hands to an overlay and its decoding into typed, validated values.
package settings

const (
	KeyWidth                 = "width"
	KeyHeight                = "height"
	KeySplitsPath            = "splits_path"
	KeyAutoSave              = "auto_save"
	KeyLayoutPath            = "layout_path"
	KeyLocalAutoSplitter     = "local_auto_splitter"
	KeyLocalAutoSplitterPath = "local_auto_splitter_path"
	KeyGamePath              = "game_path"
	KeyGameUseArguments      = "game_use_arguments"
	KeyGameArguments         = "game_arguments"
	KeyGameWorkingDirectory  = "game_working_directory"
	KeyGameEnvironmentList   = "game_environment_list"
)

const (
	DefaultWidth    = 300
	DefaultHeight   = 500
	DefaultAutoSave = false

	// MinSize and MaxSize bound the overlay width and height.
	MinSize = 10
	MaxSize = 8200
)

// Defaults returns the values a fresh overlay starts with.
func Defaults() map[string]any {
	return map[string]any{
		KeyWidth:    DefaultWidth,
		KeyHeight:   DefaultHeight,
		KeyAutoSave: DefaultAutoSave,
	}
}
