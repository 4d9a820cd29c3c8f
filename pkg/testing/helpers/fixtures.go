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

// Package helpers has fixtures shared by tests across packages.
package helpers

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ZaparooProject/zaparoo-livesplit/pkg/splits"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
)

// WriteRun saves a splits file for game with the named segments, or two
// default segments when none are given.
func WriteRun(t *testing.T, fs afero.Fs, path, game string, segments ...string) *splits.Run {
	t.Helper()

	if len(segments) == 0 {
		segments = []string{"A", "B"}
	}
	run := &splits.Run{
		GameName:     game,
		CategoryName: "Any%",
	}
	for _, name := range segments {
		run.Segments = append(run.Segments, splits.Segment{Name: name})
	}
	require.NoError(t, splits.Save(fs, path, run))
	return run
}

// ListEntry is one auto splitter in a generated list.
type ListEntry struct {
	Game        string
	URL         string
	Description string
	Website     string
	// Script marks a legacy script entry the runtime cannot load.
	Script bool
}

// AutoSplitterList renders entries in the public auto splitter list format.
func AutoSplitterList(entries ...ListEntry) string {
	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="utf-8"?>` + "\n<AutoSplitters>\n")
	for _, e := range entries {
		b.WriteString("  <AutoSplitter>\n")
		fmt.Fprintf(&b, "    <Games><Game>%s</Game></Games>\n", e.Game)
		fmt.Fprintf(&b, "    <URLs><URL>%s</URL></URLs>\n", e.URL)
		if e.Script {
			b.WriteString("    <Type>Script</Type>\n")
		} else {
			b.WriteString("    <ScriptType>AutoSplittingRuntime</ScriptType>\n")
		}
		fmt.Fprintf(&b, "    <Description>%s</Description>\n", e.Description)
		if e.Website != "" {
			fmt.Fprintf(&b, "    <Website>%s</Website>\n", e.Website)
		}
		b.WriteString("  </AutoSplitter>\n")
	}
	b.WriteString("</AutoSplitters>\n")
	return b.String()
}

// ListServer serves body for every request and is closed with the test.
func ListServer(t *testing.T, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}
