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

package splits

import (
	"bytes"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
)

// NewLoader returns a loader that never fails: any problem reading or
// parsing the file yields the default run with saving disabled.
func NewLoader(fs afero.Fs) func(path string) (*Run, bool) {
	return func(path string) (*Run, bool) {
		run, err := Load(fs, path)
		if err != nil {
			log.Warn().Err(err).Str("path", path).Msg("using default run")
			return Default(), false
		}
		return run, true
	}
}

var ErrNoPath = errors.New("no splits path configured")

// Load reads and parses a run file.
func Load(fs afero.Fs, path string) (*Run, error) {
	if path == "" {
		return nil, ErrNoPath
	}
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read splits: %w", err)
	}
	return Parse(bytes.NewReader(data))
}

// Save writes run to path through a temporary file so a failed write never
// leaves a truncated splits file behind.
func Save(fs afero.Fs, path string, run *Run) error {
	var buf bytes.Buffer
	if err := Write(&buf, run); err != nil {
		return err
	}

	tmp := filepath.Join(filepath.Dir(path), "."+filepath.Base(path)+".tmp")
	if err := afero.WriteFile(fs, tmp, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to write splits: %w", err)
	}
	if err := fs.Rename(tmp, path); err != nil {
		if rmErr := fs.Remove(tmp); rmErr != nil {
			log.Warn().Err(rmErr).Str("path", tmp).Msg("error removing temp splits file")
		}
		return fmt.Errorf("failed to replace splits: %w", err)
	}

	log.Info().Str("path", path).Msg("saved splits")
	return nil
}
