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

// Package notifications queues server to client notifications. Sends never
// block; a full queue drops the notification.
package notifications

import (
	"github.com/ZaparooProject/zaparoo-livesplit/pkg/api/models"
	"github.com/rs/zerolog/log"
)

func send(ns chan<- models.Notification, n models.Notification) {
	if ns == nil {
		return
	}
	select {
	case ns <- n:
	default:
		log.Warn().Str("method", n.Method).Msg("notification queue full, dropping notification")
	}
}

func OverlaysAdded(ns chan<- models.Notification, id string) {
	send(ns, models.Notification{
		Method: models.NotificationOverlaysAdded,
		Params: id,
	})
}

func OverlaysRemoved(ns chan<- models.Notification, id string) {
	send(ns, models.Notification{
		Method: models.NotificationOverlaysRemoved,
		Params: id,
	})
}

func OverlaysChanged(ns chan<- models.Notification, payload models.OverlayChangedParams) {
	send(ns, models.Notification{
		Method: models.NotificationOverlaysChanged,
		Params: payload,
	})
}

func AutoSplittersReloaded(ns chan<- models.Notification, payload models.AutoSplittersResponse) {
	send(ns, models.Notification{
		Method: models.NotificationAutoSplittersReloaded,
		Params: payload,
	})
}
