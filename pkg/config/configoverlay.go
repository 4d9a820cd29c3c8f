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

package config

import "maps"

// Overlay lists the overlay sources the headless host creates on start-up.
// Each source carries the same settings blob a host plugin runtime would
// hand to an instance on create.
type Overlay struct {
	Sources []Source `toml:"source,omitempty"`
}

type Source struct {
	Settings map[string]any `toml:"settings,omitempty"`
	ID       string         `toml:"id"`
}

// Sources returns a deep enough copy that callers can hand each settings map
// to a settings store without sharing it with the config.
func (c *Instance) Sources() []Source {
	c.mu.RLock()
	defer c.mu.RUnlock()

	sources := make([]Source, 0, len(c.vals.Overlay.Sources))
	for _, src := range c.vals.Overlay.Sources {
		sources = append(sources, Source{
			ID:       src.ID,
			Settings: maps.Clone(src.Settings),
		})
	}
	return sources
}
