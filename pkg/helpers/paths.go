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

package helpers

import (
	"os"
	"path/filepath"

	"github.com/ZaparooProject/zaparoo-livesplit/pkg/config"
	"github.com/adrg/xdg"
)

// ConfigDir holds the config file, the cached auto splitter list and the
// downloaded auto splitter modules.
func ConfigDir() string {
	return filepath.Join(xdg.ConfigHome, config.AppName)
}

func LogDir() string {
	return filepath.Join(xdg.StateHome, config.AppName, "logs")
}

// AutoSplittersDir is where downloaded auto splitter modules are stored.
func AutoSplittersDir(configDir string) string {
	return filepath.Join(configDir, config.AutoSplittersDir)
}

// EnsureDirectories creates every directory the service writes to.
func EnsureDirectories(configDir, logDir string) error {
	for _, dir := range []string{configDir, AutoSplittersDir(configDir), logDir} {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return err
		}
	}
	return nil
}
