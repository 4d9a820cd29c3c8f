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

import "slices"

// Command names an action an overlay can be asked to perform: a hotkey, a
// property button, a property modified callback or a media control.
type Command string

// Hotkeys. These only take effect while the overlay is activated.
const (
	CmdSplit              Command = "split"
	CmdReset              Command = "reset"
	CmdUndo               Command = "undo"
	CmdSkip               Command = "skip"
	CmdPause              Command = "pause"
	CmdUndoAllPauses      Command = "undo_all_pauses"
	CmdPreviousComparison Command = "previous_comparison"
	CmdNextComparison     Command = "next_comparison"
	CmdToggleTimingMethod Command = "toggle_timing_method"
)

// Property buttons.
const (
	CmdSaveSplits           Command = "save_splits"
	CmdStartGame            Command = "start_game"
	CmdAutoSplitterActivate Command = "auto_splitter_activate"
	CmdAutoSplitterWebsite  Command = "auto_splitter_website"
)

// Property modified callbacks. They read the pending value from the
// settings store passed to Dispatch.
const (
	CmdSplitsPathModified        Command = "splits_path_modified"
	CmdUseGameArgumentsModified  Command = "use_game_arguments_modified"
	CmdLocalAutoSplitterModified Command = "local_auto_splitter_modified"
)

// Media controls.
const (
	CmdMediaPlay     Command = "media_play"
	CmdMediaPause    Command = "media_pause"
	CmdMediaRestart  Command = "media_restart"
	CmdMediaStop     Command = "media_stop"
	CmdMediaNext     Command = "media_next"
	CmdMediaPrevious Command = "media_previous"
)

var hotkeys = map[Command]struct{}{
	CmdSplit:              {},
	CmdReset:              {},
	CmdUndo:               {},
	CmdSkip:               {},
	CmdPause:              {},
	CmdUndoAllPauses:      {},
	CmdPreviousComparison: {},
	CmdNextComparison:     {},
	CmdToggleTimingMethod: {},
}

// IsHotkey reports whether cmd is gated on the overlay being activated.
func (c Command) IsHotkey() bool {
	_, ok := hotkeys[c]
	return ok
}

// Commands lists every command Dispatch understands, sorted.
func Commands() []string {
	names := make([]string, 0, len(commandTable))
	for cmd := range commandTable {
		names = append(names, string(cmd))
	}
	slices.Sort(names)
	return names
}
