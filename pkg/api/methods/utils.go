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
	"errors"

	"github.com/ZaparooProject/zaparoo-livesplit/pkg/api/models"
	"github.com/ZaparooProject/zaparoo-livesplit/pkg/api/models/requests"
	"github.com/ZaparooProject/zaparoo-livesplit/pkg/config"
	"github.com/ZaparooProject/zaparoo-livesplit/pkg/overlay"
	"github.com/rs/zerolog/log"
)

var (
	ErrOverlayNotFound       = errors.New("overlay not found")
	ErrOverlayExists         = errors.New("overlay id already in use")
	ErrAutoSplittersDisabled = errors.New("auto splitters are disabled")
)

// NoContent is returned by handlers with nothing to report.
type NoContent struct{}

func HandleVersion(_ requests.RequestEnv) (any, error) { //nolint:gocritic // single-use parameter in API handler
	log.Info().Msg("received version request")
	return models.VersionResponse{Version: config.AppVersion}, nil
}

func HandleCommands(_ requests.RequestEnv) (any, error) { //nolint:gocritic // single-use parameter in API handler
	return models.CommandsResponse{Commands: overlay.Commands()}, nil
}

//nolint:gocritic // single-use parameter in API handler
func getOverlay(env requests.RequestEnv, id string) (*overlay.Instance, error) {
	inst, ok := env.Overlays.Get(id)
	if !ok {
		return nil, ErrOverlayNotFound
	}
	return inst, nil
}
