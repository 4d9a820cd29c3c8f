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

package overlay

import (
	"time"

	"github.com/ZaparooProject/zaparoo-livesplit/pkg/timer"
)

// MediaState is the timer phase expressed as a media player state.
type MediaState string

const (
	MediaStopped MediaState = "stopped"
	MediaPlaying MediaState = "playing"
	MediaPaused  MediaState = "paused"
	MediaEnded   MediaState = "ended"
)

func mediaState(p timer.Phase) MediaState {
	switch p {
	case timer.Running:
		return MediaPlaying
	case timer.Paused:
		return MediaPaused
	case timer.Ended:
		return MediaEnded
	default:
		return MediaStopped
	}
}

func (i *Instance) MediaState() MediaState {
	return mediaState(i.Shared().Timer().Phase())
}

// MediaTime is the current timer time, truncated to milliseconds.
func (i *Instance) MediaTime() time.Duration {
	return i.Shared().Timer().CurrentTime().Truncate(time.Millisecond)
}

// MediaDuration is the personal best time of the run.
func (i *Instance) MediaDuration() time.Duration {
	return i.Shared().Timer().Run().FinalTime().Truncate(time.Millisecond)
}

// mediaPlayPause starts, pauses or resumes depending on the phase. Play on
// a finished run does nothing. Caller must hold mu.
func (i *Instance) mediaPlayPause(pause bool) error {
	t := i.handle.Timer()
	switch t.Phase() {
	case timer.NotRunning:
		if !pause {
			return t.Start()
		}
	case timer.Running:
		if pause {
			return t.Pause()
		}
	case timer.Paused:
		if !pause {
			return t.Resume()
		}
	case timer.Ended:
	}
	return nil
}

// mediaRestart resets whatever attempt is in progress and starts a new one.
func mediaRestart(i *Instance) error {
	if err := i.handle.Shared().Reset(true); err != nil {
		return err
	}
	return i.handle.Timer().Start()
}
