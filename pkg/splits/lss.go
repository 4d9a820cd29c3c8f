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
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"
)

const lssVersion = "1.7.0"

var (
	ErrNoSegments  = errors.New("run has no segments")
	ErrInvalidTime = errors.New("invalid time")
)

// lssElement is an element the run model does not own. It is written back
// as it was read.
type lssElement struct {
	XMLName xml.Name
	Attrs   []xml.Attr `xml:",any,attr"`
	Inner   string     `xml:",innerxml"`
}

type lssTime struct {
	Attrs    []xml.Attr   `xml:",any,attr"`
	RealTime string       `xml:"RealTime,omitempty"`
	GameTime string       `xml:"GameTime,omitempty"`
	Extra    []lssElement `xml:",any"`
}

type lssSplitTime struct {
	Name     string       `xml:"name,attr"`
	RealTime string       `xml:"RealTime,omitempty"`
	GameTime string       `xml:"GameTime,omitempty"`
	Extra    []lssElement `xml:",any"`
}

type lssSegment struct {
	Name            string         `xml:"Name"`
	SplitTimes      []lssSplitTime `xml:"SplitTimes>SplitTime"`
	BestSegmentTime lssTime        `xml:"BestSegmentTime"`
	Extra           []lssElement   `xml:",any"`
}

type lssRun struct {
	XMLName      xml.Name     `xml:"Run"`
	Version      string       `xml:"version,attr,omitempty"`
	Attrs        []xml.Attr   `xml:",any,attr"`
	GameName     string       `xml:"GameName"`
	CategoryName string       `xml:"CategoryName"`
	Segments     []lssSegment `xml:"Segments>Segment"`
	AttemptCount int          `xml:"AttemptCount"`
	Extra        []lssElement `xml:",any"`
}

// clone copies the parts of the document Write modifies. Unowned elements
// are never modified and stay shared.
func (d *lssRun) clone() *lssRun {
	c := *d
	c.Segments = make([]lssSegment, len(d.Segments))
	for i, s := range d.Segments {
		s.SplitTimes = append([]lssSplitTime(nil), s.SplitTimes...)
		c.Segments[i] = s
	}
	return &c
}

// Parse decodes a LiveSplit .lss document. A run without segments is an
// error because the timer cannot operate on it. Elements outside the run
// model are kept so Write can put them back.
func Parse(r io.Reader) (*Run, error) {
	var doc lssRun
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to decode run: %w", err)
	}
	if len(doc.Segments) == 0 {
		return nil, ErrNoSegments
	}

	run := &Run{
		GameName:     doc.GameName,
		CategoryName: doc.CategoryName,
		AttemptCount: doc.AttemptCount,
		Segments:     make([]Segment, 0, len(doc.Segments)),
		doc:          &doc,
	}
	for i, s := range doc.Segments {
		seg := Segment{Name: s.Name}
		for _, st := range s.SplitTimes {
			if st.Name != PersonalBest || st.RealTime == "" {
				continue
			}
			d, err := ParseTime(st.RealTime)
			if err != nil {
				return nil, fmt.Errorf("segment %d split time: %w", i, err)
			}
			seg.PersonalBest = d
		}
		if s.BestSegmentTime.RealTime != "" {
			d, err := ParseTime(s.BestSegmentTime.RealTime)
			if err != nil {
				return nil, fmt.Errorf("segment %d best segment: %w", i, err)
			}
			seg.BestSegment = d
		}
		run.Segments = append(run.Segments, seg)
	}
	return run, nil
}

func formatOptional(d time.Duration) string {
	if d <= 0 {
		return ""
	}
	return FormatTime(d)
}

// setPersonalBest updates the Personal Best split time, adding it when the
// segment has none. A changed real time makes the stored game time stale.
func (s *lssSegment) setPersonalBest(d time.Duration) {
	formatted := formatOptional(d)
	for i := range s.SplitTimes {
		st := &s.SplitTimes[i]
		if st.Name != PersonalBest {
			continue
		}
		if !sameTime(st.RealTime, d) {
			st.RealTime = formatted
			st.GameTime = ""
		}
		return
	}
	s.SplitTimes = append(s.SplitTimes, lssSplitTime{Name: PersonalBest, RealTime: formatted})
}

func (s *lssSegment) setBestSegment(d time.Duration) {
	if !sameTime(s.BestSegmentTime.RealTime, d) {
		s.BestSegmentTime.RealTime = formatOptional(d)
		s.BestSegmentTime.GameTime = ""
	}
}

// sameTime compares a stored time against d without caring how the stored
// value was formatted.
func sameTime(stored string, d time.Duration) bool {
	if stored == "" {
		return d <= 0
	}
	parsed, err := ParseTime(stored)
	return err == nil && parsed == d
}

// document merges the run into the document it was parsed from, or into a
// fresh one for runs built in memory.
func (r *Run) document() *lssRun {
	var doc *lssRun
	if r.doc != nil {
		doc = r.doc.clone()
	} else {
		doc = &lssRun{}
	}
	if doc.Version == "" {
		doc.Version = lssVersion
	}
	doc.GameName = r.GameName
	doc.CategoryName = r.CategoryName
	doc.AttemptCount = r.AttemptCount

	segs := make([]lssSegment, len(r.Segments))
	for i, s := range r.Segments {
		if i < len(doc.Segments) {
			segs[i] = doc.Segments[i]
		}
		segs[i].Name = s.Name
		segs[i].setPersonalBest(s.PersonalBest)
		segs[i].setBestSegment(s.BestSegment)
	}
	doc.Segments = segs
	return doc
}

// Write encodes run as a LiveSplit .lss document. Only the fields of the
// run model are rewritten; everything else read by Parse is kept.
func Write(w io.Writer, run *Run) error {
	doc := run.document()

	if _, err := io.WriteString(w, xml.Header); err != nil {
		return fmt.Errorf("failed to write run: %w", err)
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("failed to encode run: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("failed to encode run: %w", err)
	}
	return nil
}

// ParseTime reads a .NET TimeSpan style time: [-][d.]hh:mm:ss[.fffffff].
func ParseTime(s string) (time.Duration, error) {
	orig := s
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")

	parts := strings.Split(s, ":")
	if len(parts) != 3 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTime, orig)
	}

	var days int64
	hourPart := parts[0]
	if dayStr, h, ok := strings.Cut(hourPart, "."); ok {
		d, err := strconv.ParseInt(dayStr, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %q", ErrInvalidTime, orig)
		}
		days = d
		hourPart = h
	}

	hours, err := strconv.ParseInt(hourPart, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTime, orig)
	}
	minutes, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil || minutes > 59 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTime, orig)
	}

	secStr, fracStr, _ := strings.Cut(parts[2], ".")
	seconds, err := strconv.ParseInt(secStr, 10, 64)
	if err != nil || seconds > 59 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTime, orig)
	}

	var nanos int64
	if fracStr != "" {
		if len(fracStr) > 9 {
			fracStr = fracStr[:9]
		}
		f, err := strconv.ParseInt(fracStr, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %q", ErrInvalidTime, orig)
		}
		for i := len(fracStr); i < 9; i++ {
			f *= 10
		}
		nanos = f
	}

	d := time.Duration(days)*24*time.Hour +
		time.Duration(hours)*time.Hour +
		time.Duration(minutes)*time.Minute +
		time.Duration(seconds)*time.Second +
		time.Duration(nanos)
	if neg {
		d = -d
	}
	return d, nil
}

// FormatTime writes d in the form ParseTime reads, with 100ns precision.
func FormatTime(d time.Duration) string {
	sign := ""
	if d < 0 {
		sign = "-"
		d = -d
	}
	ticks := int64(d / 100)
	frac := ticks % 10_000_000
	total := ticks / 10_000_000
	secs := total % 60
	mins := (total / 60) % 60
	hours := total / 3600
	return fmt.Sprintf("%s%02d:%02d:%02d.%07d", sign, hours, mins, secs, frac)
}
