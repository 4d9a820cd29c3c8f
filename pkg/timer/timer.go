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

// Package timer is the speedrun timer engine shared between overlays. It
// owns its own read/write lock so any number of holders may drive it.
package timer

import (
	"errors"
	"time"

	"github.com/ZaparooProject/zaparoo-livesplit/pkg/helpers/syncutil"
	"github.com/ZaparooProject/zaparoo-livesplit/pkg/splits"
	"github.com/jonboulle/clockwork"
)

type Phase int

const (
	NotRunning Phase = iota
	Running
	Paused
	Ended
)

func (p Phase) String() string {
	switch p {
	case NotRunning:
		return "not_running"
	case Running:
		return "running"
	case Paused:
		return "paused"
	case Ended:
		return "ended"
	default:
		return "unknown"
	}
}

type TimingMethod int

const (
	RealTime TimingMethod = iota
	GameTime
)

func (m TimingMethod) String() string {
	if m == GameTime {
		return "game_time"
	}
	return "real_time"
}

const (
	ComparisonPersonalBest = splits.PersonalBest
	ComparisonBestSegments = "Best Segments"
)

var comparisons = []string{ComparisonPersonalBest, ComparisonBestSegments}

var (
	ErrEmptyRun     = errors.New("run has no segments")
	ErrInvalidPhase = errors.New("command not valid in current timer phase")
	ErrNoSplit      = errors.New("no split to undo")
	ErrLastSplit    = errors.New("cannot skip the last split")
)

type Timer struct {
	clock        clockwork.Clock
	startTime    time.Time
	pauseStart   time.Time
	run          *splits.Run
	splitTimes   []time.Duration
	pausedTotal  time.Duration
	gameTime     time.Duration
	mu           syncutil.RWMutex
	phase        Phase
	currentSplit int
	comparison   int
	method       TimingMethod
	gameTimeSet  bool
}

// New creates a timer for run. The run is copied.
func New(run *splits.Run, clock clockwork.Clock) (*Timer, error) {
	if run == nil || run.Len() == 0 {
		return nil, ErrEmptyRun
	}
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Timer{
		clock:        clock,
		run:          run.Clone(),
		splitTimes:   make([]time.Duration, run.Len()),
		currentSplit: -1,
	}, nil
}

// elapsedLocked is the real time of the current attempt. Caller must hold mu.
func (t *Timer) elapsedLocked() time.Duration {
	switch t.phase {
	case NotRunning:
		return 0
	case Paused:
		return t.pauseStart.Sub(t.startTime) - t.pausedTotal
	case Ended:
		return t.splitTimes[len(t.splitTimes)-1]
	default:
		return t.clock.Since(t.startTime) - t.pausedTotal
	}
}

func (t *Timer) currentTimeLocked() time.Duration {
	if t.method == GameTime && t.gameTimeSet {
		return t.gameTime
	}
	return t.elapsedLocked()
}

func (t *Timer) Start() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.startLocked()
}

func (t *Timer) startLocked() error {
	if t.phase != NotRunning {
		return ErrInvalidPhase
	}
	t.phase = Running
	t.startTime = t.clock.Now()
	t.pausedTotal = 0
	t.gameTime = 0
	t.gameTimeSet = false
	t.currentSplit = 0
	clear(t.splitTimes)
	t.run.AttemptCount++
	return nil
}

func (t *Timer) Split() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.splitLocked()
}

func (t *Timer) splitLocked() error {
	if t.phase != Running {
		return ErrInvalidPhase
	}
	t.splitTimes[t.currentSplit] = t.currentTimeLocked()
	t.currentSplit++
	if t.currentSplit == len(t.splitTimes) {
		t.phase = Ended
	}
	return nil
}

func (t *Timer) SplitOrStart() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.phase == NotRunning {
		return t.startLocked()
	}
	return t.splitLocked()
}

// Reset ends the current attempt. With updateSplits set, a finished attempt
// that beats the personal best replaces it and faster segments replace the
// best segment times. Resetting a timer that is not running does nothing.
func (t *Timer) Reset(updateSplits bool) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.phase == NotRunning {
		return nil
	}
	if updateSplits {
		t.updateRunLocked()
	}

	t.phase = NotRunning
	t.currentSplit = -1
	t.pausedTotal = 0
	t.gameTime = 0
	t.gameTimeSet = false
	clear(t.splitTimes)
	return nil
}

func (t *Timer) updateRunLocked() {
	var prev time.Duration
	for i, split := range t.splitTimes {
		if split == 0 {
			// skipped segment, the next segment time spans both
			continue
		}
		seg := split - prev
		if i == 0 || t.splitTimes[i-1] != 0 {
			best := t.run.Segments[i].BestSegment
			if best == 0 || seg < best {
				t.run.Segments[i].BestSegment = seg
			}
		}
		prev = split
	}

	if t.phase != Ended {
		return
	}
	final := t.splitTimes[len(t.splitTimes)-1]
	pb := t.run.FinalTime()
	if pb == 0 || final < pb {
		for i, split := range t.splitTimes {
			t.run.Segments[i].PersonalBest = split
		}
	}
}

func (t *Timer) UndoSplit() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.phase == NotRunning || t.phase == Paused {
		return ErrInvalidPhase
	}
	if t.currentSplit <= 0 {
		return ErrNoSplit
	}
	if t.phase == Ended {
		t.phase = Running
		// resume the clock from where the last split stopped it
		t.pausedTotal = t.clock.Since(t.startTime) - t.splitTimes[len(t.splitTimes)-1]
	}
	t.currentSplit--
	t.splitTimes[t.currentSplit] = 0
	return nil
}

func (t *Timer) SkipSplit() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.phase != Running && t.phase != Paused {
		return ErrInvalidPhase
	}
	if t.currentSplit >= len(t.splitTimes)-1 {
		return ErrLastSplit
	}
	t.splitTimes[t.currentSplit] = 0
	t.currentSplit++
	return nil
}

func (t *Timer) Pause() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.pauseLocked()
}

func (t *Timer) pauseLocked() error {
	if t.phase != Running {
		return ErrInvalidPhase
	}
	t.phase = Paused
	t.pauseStart = t.clock.Now()
	return nil
}

func (t *Timer) Resume() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.resumeLocked()
}

func (t *Timer) resumeLocked() error {
	if t.phase != Paused {
		return ErrInvalidPhase
	}
	t.pausedTotal += t.clock.Since(t.pauseStart)
	t.phase = Running
	return nil
}

func (t *Timer) TogglePauseOrStart() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	switch t.phase {
	case NotRunning:
		return t.startLocked()
	case Running:
		return t.pauseLocked()
	case Paused:
		return t.resumeLocked()
	default:
		return ErrInvalidPhase
	}
}

// UndoAllPauses resumes a paused timer and adds every paused interval back
// onto the clock.
func (t *Timer) UndoAllPauses() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	switch t.phase {
	case Paused:
		t.phase = Running
	case Running:
	default:
		return ErrInvalidPhase
	}
	t.pausedTotal = 0
	return nil
}

func (t *Timer) SwitchToPreviousComparison() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.comparison = (t.comparison + len(comparisons) - 1) % len(comparisons)
}

func (t *Timer) SwitchToNextComparison() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.comparison = (t.comparison + 1) % len(comparisons)
}

func (t *Timer) ToggleTimingMethod() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.method == RealTime {
		t.method = GameTime
	} else {
		t.method = RealTime
	}
}

// SetGameTime is how an auto splitter reports in-game time.
func (t *Timer) SetGameTime(d time.Duration) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.gameTime = d
	t.gameTimeSet = true
}

func (t *Timer) Phase() Phase {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.phase
}

func (t *Timer) CurrentTime() time.Duration {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.currentTimeLocked()
}

func (t *Timer) Comparison() string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return comparisons[t.comparison]
}

func (t *Timer) TimingMethod() TimingMethod {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.method
}

// Run returns a copy of the run including any updated personal bests.
func (t *Timer) Run() *splits.Run {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.run.Clone()
}

// GameName is the game name stored in the run.
func (t *Timer) GameName() string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.run.GameName
}

type SegmentSnapshot struct {
	Name         string        `json:"name"`
	SplitTime    time.Duration `json:"splitTime"`
	PersonalBest time.Duration `json:"personalBest"`
	BestSegment  time.Duration `json:"bestSegment"`
}

// Snapshot is a consistent read of the timer state for rendering.
type Snapshot struct {
	GameName     string            `json:"gameName"`
	CategoryName string            `json:"categoryName"`
	Comparison   string            `json:"comparison"`
	Phase        string            `json:"phase"`
	TimingMethod string            `json:"timingMethod"`
	Segments     []SegmentSnapshot `json:"segments"`
	CurrentTime  time.Duration     `json:"currentTime"`
	CurrentSplit int               `json:"currentSplit"`
	Attempts     int               `json:"attempts"`
}

func (t *Timer) Snapshot() Snapshot {
	t.mu.RLock()
	defer t.mu.RUnlock()

	segs := make([]SegmentSnapshot, len(t.run.Segments))
	for i, s := range t.run.Segments {
		segs[i] = SegmentSnapshot{
			Name:         s.Name,
			SplitTime:    t.splitTimes[i],
			PersonalBest: s.PersonalBest,
			BestSegment:  s.BestSegment,
		}
	}
	return Snapshot{
		GameName:     t.run.GameName,
		CategoryName: t.run.CategoryName,
		Comparison:   comparisons[t.comparison],
		Phase:        t.phase.String(),
		TimingMethod: t.method.String(),
		Segments:     segs,
		CurrentTime:  t.currentTimeLocked(),
		CurrentSplit: t.currentSplit,
		Attempts:     t.run.AttemptCount,
	}
}
