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

package methods

import (
	"github.com/ZaparooProject/zaparoo-livesplit/pkg/api/models"
	"github.com/ZaparooProject/zaparoo-livesplit/pkg/api/models/requests"
	"github.com/ZaparooProject/zaparoo-livesplit/pkg/api/notifications"
	"github.com/ZaparooProject/zaparoo-livesplit/pkg/api/validation"
	"github.com/ZaparooProject/zaparoo-livesplit/pkg/overlay"
	"github.com/ZaparooProject/zaparoo-livesplit/pkg/settings"
	"github.com/rs/zerolog/log"
)

func overlayResponse(id string, inst *overlay.Instance) models.OverlayResponse {
	s := inst.Settings()
	shared := inst.Shared()
	return models.OverlayResponse{
		ID:         id,
		SplitsPath: s.SplitsPath,
		Width:      s.Width,
		Height:     s.Height,
		Activated:  inst.Activated(),
		AutoSave:   shared.AutoSave(),
		CanSave:    shared.CanSave(),
		Splitter:   shared.AutoSplitterEnabled(),
		MediaState: inst.MediaState(),
		Timer:      shared.Timer().Snapshot(),
	}
}

func HandleOverlays(env requests.RequestEnv) (any, error) { //nolint:gocritic // single-use parameter in API handler
	resp := models.OverlaysResponse{Overlays: make([]models.OverlayResponse, 0)}
	for _, id := range env.Overlays.IDs() {
		inst, ok := env.Overlays.Get(id)
		if !ok {
			continue
		}
		resp.Overlays = append(resp.Overlays, overlayResponse(id, inst))
	}
	return resp, nil
}

//nolint:gocritic // single-use parameter in API handler
func HandleOverlaysNew(env requests.RequestEnv) (any, error) {
	var params models.OverlayNewParams
	if len(env.Params) > 0 {
		if err := validation.ValidateAndUnmarshal(env.Params, &params); err != nil {
			return nil, err
		}
	}

	inst := overlay.New(env.Deps, settings.NewMapStore(params.Settings))

	id, ok := env.Overlays.Add(params.ID, inst)
	if !ok {
		inst.Destroy()
		return nil, ErrOverlayExists
	}
	log.Info().Str("id", id).Msg("created overlay")
	notifications.OverlaysAdded(env.Notifications, id)

	return models.OverlayNewResponse{ID: id, Properties: inst.Properties()}, nil
}

// HandleOverlaysUpdate replaces an overlay's settings. Keys missing from
// the request fall back to their defaults.
//
//nolint:gocritic // single-use parameter in API handler
func HandleOverlaysUpdate(env requests.RequestEnv) (any, error) {
	var params models.OverlayUpdateParams
	if err := validation.ValidateAndUnmarshal(env.Params, &params); err != nil {
		return nil, err
	}

	inst, err := getOverlay(env, params.ID)
	if err != nil {
		return nil, err
	}
	inst.Update(settings.NewMapStore(params.Settings))
	return overlayResponse(params.ID, inst), nil
}

//nolint:gocritic // single-use parameter in API handler
func HandleOverlaysDelete(env requests.RequestEnv) (any, error) {
	var params models.OverlayIDParams
	if err := validation.ValidateAndUnmarshal(env.Params, &params); err != nil {
		return nil, err
	}
	if !env.Overlays.Remove(params.ID) {
		return nil, ErrOverlayNotFound
	}
	log.Info().Str("id", params.ID).Msg("removed overlay")
	notifications.OverlaysRemoved(env.Notifications, params.ID)
	return NoContent{}, nil
}

//nolint:gocritic // single-use parameter in API handler
func HandleOverlaysActivate(env requests.RequestEnv) (any, error) {
	return setActivated(env, true)
}

//nolint:gocritic // single-use parameter in API handler
func HandleOverlaysDeactivate(env requests.RequestEnv) (any, error) {
	return setActivated(env, false)
}

//nolint:gocritic // single-use parameter in API handler
func setActivated(env requests.RequestEnv, active bool) (any, error) {
	var params models.OverlayIDParams
	if err := validation.ValidateAndUnmarshal(env.Params, &params); err != nil {
		return nil, err
	}
	inst, err := getOverlay(env, params.ID)
	if err != nil {
		return nil, err
	}
	if active {
		inst.Activate()
	} else {
		inst.Deactivate()
	}
	return NoContent{}, nil
}

//nolint:gocritic // single-use parameter in API handler
func HandleOverlaysCommand(env requests.RequestEnv) (any, error) {
	var params models.OverlayCommandParams
	vctx := validation.NewContext(overlay.Commands())
	if err := validation.ValidateAndUnmarshalCtx(env.Context, env.Params, &params, vctx); err != nil {
		return nil, err
	}

	inst, err := getOverlay(env, params.ID)
	if err != nil {
		return nil, err
	}

	var store settings.Store
	if params.Settings != nil {
		store = settings.NewMapStore(params.Settings)
	}

	patch, err := inst.Dispatch(env.Context, overlay.Command(params.Command), store)
	if err != nil {
		return nil, err
	}

	changed := models.OverlayChangedParams{
		ID:      params.ID,
		Command: params.Command,
		Timer:   inst.Snapshot(),
	}
	if patch.Changed {
		changed.Patch = &patch
	}
	notifications.OverlaysChanged(env.Notifications, changed)

	return patch, nil
}

//nolint:gocritic // single-use parameter in API handler
func HandleOverlaysProperties(env requests.RequestEnv) (any, error) {
	var params models.OverlayIDParams
	if err := validation.ValidateAndUnmarshal(env.Params, &params); err != nil {
		return nil, err
	}
	inst, err := getOverlay(env, params.ID)
	if err != nil {
		return nil, err
	}
	return inst.Properties(), nil
}

//nolint:gocritic // single-use parameter in API handler
func HandleOverlaysMedia(env requests.RequestEnv) (any, error) {
	var params models.OverlayIDParams
	if err := validation.ValidateAndUnmarshal(env.Params, &params); err != nil {
		return nil, err
	}
	inst, err := getOverlay(env, params.ID)
	if err != nil {
		return nil, err
	}
	return models.MediaResponse{
		State:      inst.MediaState(),
		TimeMs:     inst.MediaTime().Milliseconds(),
		DurationMs: inst.MediaDuration().Milliseconds(),
	}, nil
}
