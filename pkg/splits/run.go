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

// Package splits reads and writes LiveSplit run files.
package splits

import "time"

const (
	// PersonalBest is the comparison name LiveSplit stores split times under.
	PersonalBest = "Personal Best"
	// DefaultSegmentName names the only segment of the fallback run.
	DefaultSegmentName = "Time"
)

// Segment is one split of a run. Zero durations mean "no time recorded".
type Segment struct {
	Name         string
	PersonalBest time.Duration
	BestSegment  time.Duration
}

// Run is the subset of a LiveSplit run the overlay needs.
type Run struct {
	GameName     string
	CategoryName string
	Segments     []Segment
	AttemptCount int

	// doc is the parsed file, kept so saving does not drop what the run
	// model does not carry. Shared between clones and never modified.
	doc *lssRun
}

// Default returns the run substituted when a splits file is missing or
// cannot be parsed: a single segment and nothing else.
func Default() *Run {
	return &Run{
		Segments: []Segment{{Name: DefaultSegmentName}},
	}
}

func (r *Run) Clone() *Run {
	if r == nil {
		return nil
	}
	c := *r
	c.Segments = append([]Segment(nil), r.Segments...)
	return &c
}

// Len returns the number of segments.
func (r *Run) Len() int {
	return len(r.Segments)
}

// FinalTime is the personal best split time of the last segment.
func (r *Run) FinalTime() time.Duration {
	if len(r.Segments) == 0 {
		return 0
	}
	return r.Segments[len(r.Segments)-1].PersonalBest
}
