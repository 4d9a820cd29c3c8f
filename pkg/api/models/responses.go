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

package models

import (
	"github.com/ZaparooProject/zaparoo-livesplit/pkg/autosplitters"
	"github.com/ZaparooProject/zaparoo-livesplit/pkg/overlay"
	"github.com/ZaparooProject/zaparoo-livesplit/pkg/timer"
)

type VersionResponse struct {
	Version string `json:"version"`
}

type CommandsResponse struct {
	Commands []string `json:"commands"`
}

type OverlayResponse struct {
	ID         string             `json:"id"`
	SplitsPath string             `json:"splitsPath"`
	MediaState overlay.MediaState `json:"mediaState"`
	Timer      timer.Snapshot     `json:"timer"`
	Width      int                `json:"width"`
	Height     int                `json:"height"`
	Activated  bool               `json:"activated"`
	AutoSave   bool               `json:"autoSave"`
	CanSave    bool               `json:"canSave"`
	Splitter   bool               `json:"autoSplitterEnabled"`
}

type OverlaysResponse struct {
	Overlays []OverlayResponse `json:"overlays"`
}

type OverlayNewResponse struct {
	ID         string        `json:"id"`
	Properties overlay.Patch `json:"properties"`
}

type MediaResponse struct {
	State      overlay.MediaState `json:"state"`
	TimeMs     int64              `json:"timeMs"`
	DurationMs int64              `json:"durationMs"`
}

type AutoSplittersResponse struct {
	Source  string `json:"source"`
	Entries int    `json:"entries"`
	Enabled bool   `json:"enabled"`
}

type AutoSplitterLookupResponse struct {
	Entry       *autosplitters.Entry `json:"entry,omitempty"`
	Suggestions []string             `json:"suggestions,omitempty"`
	Compatible  bool                 `json:"compatible"`
}

// OverlayChangedParams is sent after a command touched an overlay's timer
// or properties.
type OverlayChangedParams struct {
	Patch   *overlay.Patch `json:"patch,omitempty"`
	ID      string         `json:"id"`
	Command string         `json:"command"`
	Timer   timer.Snapshot `json:"timer"`
}
