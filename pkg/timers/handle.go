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

package timers

import (
	"sync/atomic"

	"github.com/ZaparooProject/zaparoo-livesplit/pkg/timer"
)

// Handle is one holder's reference to a shared timer. Handles are not
// shared between holders; use Clone to hand a reference to someone else.
type Handle struct {
	reg      *Registry
	shared   *Shared
	idx      int
	gen      uint64
	released atomic.Bool
}

func (h *Handle) Shared() *Shared {
	return h.shared
}

func (h *Handle) Timer() *timer.Timer {
	return h.shared.timer
}

// Clone returns a new handle holding the same timer, or nil if h has been
// released.
func (h *Handle) Clone() *Handle {
	if h.released.Load() {
		return nil
	}
	if !h.reg.acquire(h.idx, h.gen) {
		return nil
	}
	return &Handle{reg: h.reg, shared: h.shared, idx: h.idx, gen: h.gen}
}

// Release drops this holder. Releasing twice is a no-op. When the last
// holder releases, the timer is evicted and its auto splitter unloaded.
func (h *Handle) Release() {
	if !h.released.CompareAndSwap(false, true) {
		return
	}
	h.reg.release(h.idx, h.gen)
}

// Released reports whether Release has been called on this handle.
func (h *Handle) Released() bool {
	return h.released.Load()
}
