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

import "time"

const (
	DefaultAutoSplitterListURL = "https://raw.githubusercontent.com/LiveSplit/" +
		"LiveSplit.AutoSplitters/master/LiveSplit.AutoSplitters.xml"
	DefaultDownloadTimeout = 30
)

type AutoSplitters struct {
	Enabled         *bool  `toml:"enabled,omitempty"`
	ListURL         string `toml:"list_url,omitempty"`
	DownloadTimeout int    `toml:"download_timeout,omitempty"`
}

func (c *Instance) AutoSplittersEnabled() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.vals.AutoSplitters.Enabled == nil {
		return true
	}
	return *c.vals.AutoSplitters.Enabled
}

func (c *Instance) AutoSplitterListURL() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.vals.AutoSplitters.ListURL == "" {
		return DefaultAutoSplitterListURL
	}
	return c.vals.AutoSplitters.ListURL
}

// DownloadTimeout is the per-request timeout applied to catalog and module
// downloads. Non-positive values fall back to the default.
func (c *Instance) DownloadTimeout() time.Duration {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.vals.AutoSplitters.DownloadTimeout <= 0 {
		return DefaultDownloadTimeout * time.Second
	}
	return time.Duration(c.vals.AutoSplitters.DownloadTimeout) * time.Second
}
