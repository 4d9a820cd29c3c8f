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

// Package autosplitters loads the community auto splitter list and downloads
// the modules it references.
package autosplitters

import (
	"encoding/xml"
	"fmt"
	"path/filepath"
	"slices"
	"sort"

	"github.com/hbollon/go-edlib"
	"github.com/spf13/afero"
)

const (
	// ListFileName is the name of the list both upstream and in the cache
	// directory.
	ListFileName = "LiveSplit.AutoSplitters.xml"
	// ScriptTypeRuntime marks entries built for the auto splitting runtime.
	// Everything else is a legacy script the overlay cannot run.
	ScriptTypeRuntime = "AutoSplittingRuntime"
	// ModuleExt is the extension of a loadable auto splitter module.
	ModuleExt = ".wasm"
	// suggestMinSimilarity is the Jaro-Winkler floor for Suggest.
	suggestMinSimilarity = 0.85
)

type Entry struct {
	ScriptType  string   `xml:"ScriptType"`
	Type        string   `xml:"Type"`
	Description string   `xml:"Description"`
	Website     string   `xml:"Website"`
	Games       []string `xml:"Games>Game"`
	URLs        []string `xml:"URLs>URL"`
}

// IsCompatible reports whether the entry can be loaded by the runtime.
func (e *Entry) IsCompatible() bool {
	return e.ScriptType == ScriptTypeRuntime
}

type catalogDoc struct {
	XMLName xml.Name `xml:"AutoSplitters"`
	Entries []Entry  `xml:"AutoSplitter"`
}

// Catalog is an immutable, parsed auto splitter list together with the
// document it was parsed from.
type Catalog struct {
	source  string
	entries []Entry
}

// Empty is the catalog used before (or instead of) a successful fetch.
func Empty() *Catalog {
	return &Catalog{}
}

func Parse(source string) (*Catalog, error) {
	var doc catalogDoc
	if err := xml.Unmarshal([]byte(source), &doc); err != nil {
		return nil, fmt.Errorf("failed to parse auto splitter list: %w", err)
	}
	return &Catalog{source: source, entries: doc.Entries}, nil
}

// Source returns the document exactly as it was fetched.
func (c *Catalog) Source() string {
	return c.source
}

func (c *Catalog) Len() int {
	return len(c.entries)
}

func (c *Catalog) Entries() []Entry {
	return slices.Clone(c.entries)
}

// FindForGame returns the first entry listing name. Matching is exact and
// case sensitive.
func (c *Catalog) FindForGame(name string) (Entry, bool) {
	for i := range c.entries {
		if slices.Contains(c.entries[i].Games, name) {
			return c.entries[i], true
		}
	}
	return Entry{}, false
}

// WebsiteForGame returns the website of the entry for name, if it has one.
func (c *Catalog) WebsiteForGame(name string) (string, bool) {
	e, ok := c.FindForGame(name)
	if !ok || e.Website == "" {
		return "", false
	}
	return e.Website, true
}

// SaveToDisk writes the source document to dir/ListFileName.
func (c *Catalog) SaveToDisk(fs afero.Fs, dir string) error {
	path := filepath.Join(dir, ListFileName)
	if err := afero.WriteFile(fs, path, []byte(c.source), 0o600); err != nil {
		return fmt.Errorf("failed to write auto splitter list: %w", err)
	}
	return nil
}

// Suggest returns up to limit game names that are close to, but not exactly,
// name. It is only used to explain a failed lookup in logs and the API.
func (c *Catalog) Suggest(name string, limit int) []string {
	type scored struct {
		name  string
		score float32
	}
	seen := make(map[string]struct{})
	var matches []scored
	for i := range c.entries {
		for _, game := range c.entries[i].Games {
			if game == name {
				continue
			}
			if _, ok := seen[game]; ok {
				continue
			}
			seen[game] = struct{}{}
			sim := edlib.JaroWinklerSimilarity(name, game)
			if sim >= suggestMinSimilarity {
				matches = append(matches, scored{name: game, score: sim})
			}
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].score > matches[j].score
	})
	if limit > 0 && len(matches) > limit {
		matches = matches[:limit]
	}

	names := make([]string, 0, len(matches))
	for _, m := range matches {
		names = append(names, m.name)
	}
	return names
}
