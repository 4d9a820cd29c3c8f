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

import "github.com/ZaparooProject/zaparoo-livesplit/pkg/autosplitters"

// Property ids, matching the settings keys where a property edits one.
const (
	PropAutoSplitterInfo      = "auto_splitter_info"
	PropAutoSplitterActivate  = "auto_splitter_activate"
	PropAutoSplitterWebsite   = "auto_splitter_website"
	PropLocalAutoSplitterPath = "local_auto_splitter_path"
	PropGameArguments         = "game_arguments"
	PropGameWorkingDirectory  = "game_working_directory"
	PropGameEnvironmentList   = "game_environment_list"
)

const (
	LabelActivate   = "Activate"
	LabelDeactivate = "Deactivate"

	InfoNoAutoSplitter = "No auto splitter available for this game."
	InfoIncompatible   = "This game's auto splitter is incompatible with LiveSplit One."
)

// Patch is the set of property changes a command asks the host to apply.
// Changed tells the host to refresh the properties view.
type Patch struct {
	Visible      map[string]bool   `json:"visible,omitempty"`
	Enabled      map[string]bool   `json:"enabled,omitempty"`
	Descriptions map[string]string `json:"descriptions,omitempty"`
	Changed      bool              `json:"changed"`
}

func (p *Patch) setVisible(id string, v bool) {
	if p.Visible == nil {
		p.Visible = make(map[string]bool)
	}
	p.Visible[id] = v
}

func (p *Patch) setEnabled(id string, v bool) {
	if p.Enabled == nil {
		p.Enabled = make(map[string]bool)
	}
	p.Enabled[id] = v
}

func (p *Patch) setDescription(id, text string) {
	if p.Descriptions == nil {
		p.Descriptions = make(map[string]string)
	}
	p.Descriptions[id] = text
}

// merge copies other's entries over p.
func (p *Patch) merge(other Patch) {
	for id, v := range other.Visible {
		p.setVisible(id, v)
	}
	for id, v := range other.Enabled {
		p.setEnabled(id, v)
	}
	for id, text := range other.Descriptions {
		p.setDescription(id, text)
	}
	p.Changed = p.Changed || other.Changed
}

// AutoSplitterInfo describes the auto splitter properties for a catalog
// lookup: the info text and whether activation and the website button are
// available.
func AutoSplitterInfo(lookup autosplitters.Lookup) Patch {
	var p Patch
	entry := lookup.Entry
	switch {
	case entry == nil:
		p.setEnabled(PropAutoSplitterActivate, false)
		p.setEnabled(PropAutoSplitterWebsite, false)
		p.setDescription(PropAutoSplitterInfo, InfoNoAutoSplitter)
	case !entry.IsCompatible():
		p.setEnabled(PropAutoSplitterWebsite, entry.Website != "")
		p.setEnabled(PropAutoSplitterActivate, false)
		p.setDescription(PropAutoSplitterInfo, InfoIncompatible)
	default:
		p.setEnabled(PropAutoSplitterWebsite, entry.Website != "")
		p.setEnabled(PropAutoSplitterActivate, true)
		p.setDescription(PropAutoSplitterInfo, entry.Description)
	}
	return p
}

func activationLabel(enabled bool) string {
	if enabled {
		return LabelDeactivate
	}
	return LabelActivate
}
