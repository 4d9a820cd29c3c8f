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
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoaderParsesFile(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/runs/celeste.lss", []byte(celesteLSS), 0o644))

	run, canSave := NewLoader(fs)("/runs/celeste.lss")
	assert.True(t, canSave)
	assert.Equal(t, "Celeste", run.GameName)
	assert.Len(t, run.Segments, 2)
}

func TestLoaderFallsBackToDefault(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/runs/broken.lss", []byte("<Run><Segm"), 0o644))
	require.NoError(t, afero.WriteFile(fs, "/runs/empty.lss", []byte("<Run/>"), 0o644))

	load := NewLoader(fs)
	for _, path := range []string{"", "/runs/missing.lss", "/runs/broken.lss", "/runs/empty.lss"} {
		run, canSave := load(path)
		assert.False(t, canSave, path)
		require.Len(t, run.Segments, 1, path)
		assert.Equal(t, DefaultSegmentName, run.Segments[0].Name)
	}
}

func TestSave(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	run := Default()
	run.GameName = "Celeste"

	require.NoError(t, Save(fs, "/runs/out.lss", run))

	loaded, err := Load(fs, "/runs/out.lss")
	require.NoError(t, err)
	assert.Equal(t, "Celeste", loaded.GameName)

	exists, err := afero.Exists(fs, "/runs/.out.lss.tmp")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestSaveKeepsLiveSplitHistory(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/runs/full.lss", []byte(fullLSS), 0o644))

	run, canSave := NewLoader(fs)("/runs/full.lss")
	require.True(t, canSave)
	require.NoError(t, Save(fs, "/runs/full.lss", run))

	data, err := afero.ReadFile(fs, "/runs/full.lss")
	require.NoError(t, err)
	for _, want := range []string{
		"<AttemptHistory>",
		"<SegmentHistory>",
		"<GameTime>00:02:09.0000000</GameTime>",
		`<SplitTime name="Sum of Best">`,
		"<Metadata>",
		"<AutoSplitterSettings>",
	} {
		assert.Contains(t, string(data), want)
	}
}

func TestSaveReadOnlyFs(t *testing.T) {
	t.Parallel()

	fs := afero.NewReadOnlyFs(afero.NewMemMapFs())
	err := Save(fs, "/runs/out.lss", Default())
	require.Error(t, err)
}
