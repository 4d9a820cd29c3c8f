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
	"fmt"

	"github.com/ZaparooProject/zaparoo-livesplit/pkg/api/models"
	"github.com/ZaparooProject/zaparoo-livesplit/pkg/api/models/requests"
	"github.com/ZaparooProject/zaparoo-livesplit/pkg/api/notifications"
	"github.com/ZaparooProject/zaparoo-livesplit/pkg/api/validation"
	"github.com/ZaparooProject/zaparoo-livesplit/pkg/autosplitters"
	"github.com/rs/zerolog/log"
)

//nolint:gocritic // single-use parameter in API handler
func HandleAutoSplitters(env requests.RequestEnv) (any, error) {
	if env.Splitters == nil {
		return models.AutoSplittersResponse{}, nil
	}
	return statusResponse(env.Splitters.Status()), nil
}

func statusResponse(status autosplitters.Status) models.AutoSplittersResponse {
	resp := models.AutoSplittersResponse{Enabled: true, Entries: status.Entries}
	if status.Loaded {
		resp.Source = status.Source.String()
	}
	return resp
}

//nolint:gocritic // single-use parameter in API handler
func HandleAutoSplittersLookup(env requests.RequestEnv) (any, error) {
	var params models.AutoSplitterLookupParams
	if err := validation.ValidateAndUnmarshal(env.Params, &params); err != nil {
		return nil, err
	}
	if env.Splitters == nil {
		return nil, ErrAutoSplittersDisabled
	}

	lookup := env.Splitters.Lookup(params.Game)
	return models.AutoSplitterLookupResponse{
		Entry:       lookup.Entry,
		Suggestions: lookup.Suggestions,
		Compatible:  lookup.Entry != nil && lookup.Entry.IsCompatible(),
	}, nil
}

//nolint:gocritic // single-use parameter in API handler
func HandleAutoSplittersReload(env requests.RequestEnv) (any, error) {
	log.Info().Msg("received auto splitter reload request")
	if env.Splitters == nil {
		return nil, ErrAutoSplittersDisabled
	}

	if _, err := env.Splitters.Reload(env.Context); err != nil {
		return nil, fmt.Errorf("error reloading auto splitter list: %w", err)
	}

	resp := statusResponse(env.Splitters.Status())
	notifications.AutoSplittersReloaded(env.Notifications, resp)
	return resp, nil
}
