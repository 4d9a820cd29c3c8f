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

package service

import (
	"github.com/ZaparooProject/zaparoo-livesplit/pkg/api/models"
	"github.com/ZaparooProject/zaparoo-livesplit/pkg/api/notifications"
	"github.com/ZaparooProject/zaparoo-livesplit/pkg/config"
	"github.com/ZaparooProject/zaparoo-livesplit/pkg/helpers/syncutil"
	"github.com/ZaparooProject/zaparoo-livesplit/pkg/overlay"
	"github.com/ZaparooProject/zaparoo-livesplit/pkg/settings"
	"github.com/rs/zerolog/log"
)

// sourceSync keeps the overlays declared in the config in step with it.
// Overlays created through the API are never touched.
type sourceSync struct {
	overlays *overlay.Set
	ns       chan<- models.Notification
	owned    map[string]struct{}
	deps     overlay.Deps
	mu       syncutil.Mutex
}

func newSourceSync(overlays *overlay.Set, deps overlay.Deps, ns chan<- models.Notification) *sourceSync {
	return &sourceSync{
		overlays: overlays,
		deps:     deps,
		ns:       ns,
		owned:    make(map[string]struct{}),
	}
}

// apply creates, updates and removes config owned overlays so they match
// sources.
func (s *sourceSync) apply(sources []config.Source) {
	s.mu.Lock()
	defer s.mu.Unlock()

	seen := make(map[string]struct{}, len(sources))
	for _, src := range sources {
		seen[src.ID] = struct{}{}
		store := settings.NewMapStore(src.Settings)

		if _, ok := s.owned[src.ID]; ok {
			if inst, ok := s.overlays.Get(src.ID); ok {
				inst.Update(store)
				notifications.OverlaysChanged(s.ns, models.OverlayChangedParams{
					ID:    src.ID,
					Timer: inst.Snapshot(),
				})
				continue
			}
			// deleted through the API, the config brings it back
			delete(s.owned, src.ID)
		}

		inst := overlay.New(s.deps, store)
		if _, ok := s.overlays.Add(src.ID, inst); !ok {
			inst.Destroy()
			log.Warn().Str("id", src.ID).Msg("overlay id already in use, skipping source")
			continue
		}
		s.owned[src.ID] = struct{}{}
		log.Info().Str("id", src.ID).Msg("created overlay from config")
		notifications.OverlaysAdded(s.ns, src.ID)
	}

	for id := range s.owned {
		if _, ok := seen[id]; ok {
			continue
		}
		delete(s.owned, id)
		if s.overlays.Remove(id) {
			log.Info().Str("id", id).Msg("removed overlay dropped from config")
			notifications.OverlaysRemoved(s.ns, id)
		}
	}
}
