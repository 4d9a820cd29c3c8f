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

type OverlayNewParams struct {
	Settings map[string]any `json:"settings"`
	ID       string         `json:"id" validate:"omitempty,max=64"`
}

type OverlayUpdateParams struct {
	Settings map[string]any `json:"settings"`
	ID       string         `json:"id" validate:"required"`
}

type OverlayIDParams struct {
	ID string `json:"id" validate:"required"`
}

// OverlayCommandParams runs a command. Settings carries the pending
// property values for the *_modified commands.
type OverlayCommandParams struct {
	Settings map[string]any `json:"settings"`
	ID       string         `json:"id" validate:"required"`
	Command  string         `json:"command" validate:"required,command"`
}

type AutoSplitterLookupParams struct {
	Game string `json:"game" validate:"required"`
}
