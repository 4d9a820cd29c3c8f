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

package requests

import (
	"context"
	"encoding/json"

	"github.com/ZaparooProject/zaparoo-livesplit/pkg/api/models"
	"github.com/ZaparooProject/zaparoo-livesplit/pkg/autosplitters"
	"github.com/ZaparooProject/zaparoo-livesplit/pkg/overlay"
)

// RequestEnv is everything a method handler can reach. Splitters is nil
// when auto splitters are disabled.
type RequestEnv struct {
	Context       context.Context
	Overlays      *overlay.Set
	Splitters     *autosplitters.Manager
	Notifications chan<- models.Notification
	Deps          overlay.Deps
	Params        json.RawMessage
	ID            models.RPCID
	IsLocal       bool
}
