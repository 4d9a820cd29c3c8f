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

package settings

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/ZaparooProject/zaparoo-livesplit/pkg/api/validation"
	"github.com/go-viper/mapstructure/v2"
	"github.com/rs/zerolog/log"
)

// Settings is the decoded form of a Store.
type Settings struct {
	SplitsPath            string   `mapstructure:"splits_path"`
	LayoutPath            string   `mapstructure:"layout_path"`
	LocalAutoSplitterPath string   `mapstructure:"local_auto_splitter_path" validate:"wasm"`
	GamePath              string   `mapstructure:"game_path"`
	GameArguments         string   `mapstructure:"game_arguments"`
	GameWorkingDirectory  string   `mapstructure:"game_working_directory"`
	GameEnvironment       []string `mapstructure:"-" validate:"dive,envvar"`
	Width                 int      `mapstructure:"width" validate:"min=10,max=8200"`
	Height                int      `mapstructure:"height" validate:"min=10,max=8200"`
	AutoSave              bool     `mapstructure:"auto_save"`
	LocalAutoSplitter     bool     `mapstructure:"local_auto_splitter"`
	GameUseArguments      bool     `mapstructure:"game_use_arguments"`
}

// LocalModule returns the local auto splitter path when one is in use.
func (s *Settings) LocalModule() (string, bool) {
	if !s.LocalAutoSplitter {
		return "", false
	}
	return s.LocalAutoSplitterPath, true
}

// editableListEntry is one item of a host editable list.
type editableListEntry struct {
	Value    string `json:"value"`
	Selected bool   `json:"selected"`
	Hidden   bool   `json:"hidden"`
}

// Parse decodes a settings store. It never fails: values that cannot be
// decoded or do not validate are replaced with usable ones and logged, so
// an overlay can always be created for manual timing.
func Parse(store Store) Settings {
	var s Settings

	snapshot := store.Snapshot()
	delete(snapshot, KeyGameEnvironmentList)

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &s,
		WeaklyTypedInput: true,
	})
	if err == nil {
		err = decoder.Decode(snapshot)
	}
	if err != nil {
		// fields that did decode are kept, the rest are repaired below
		log.Warn().Err(err).Msg("couldn't decode some overlay settings")
	}

	s.GameEnvironment = EnvironmentList(store.List(KeyGameEnvironmentList))

	err = validation.DefaultValidator.Validate(&s)
	var verr *validation.Error
	if errors.As(err, &verr) {
		for _, fe := range verr.Fields {
			s.repair(fe)
		}
	}
	return s
}

// repair replaces the value of a field that failed validation.
func (s *Settings) repair(fe validation.FieldError) {
	switch fe.Field {
	case "Width":
		s.Width = clampSize(s.Width, DefaultWidth)
		log.Warn().Int("width", s.Width).Msg(fe.Message + ", using a valid width")
	case "Height":
		s.Height = clampSize(s.Height, DefaultHeight)
		log.Warn().Int("height", s.Height).Msg(fe.Message + ", using a valid height")
	case "LocalAutoSplitterPath":
		// the path only matters while the local auto splitter is in use
		if s.LocalAutoSplitter {
			s.LocalAutoSplitter = false
			log.Warn().Str("path", s.LocalAutoSplitterPath).
				Msg(fe.Message + ", local auto splitter disabled")
		}
	default:
		log.Warn().Str("field", fe.Field).Msg(fe.Message)
	}
}

// clampSize brings a render size into range. Sizes that were never set, or
// failed to decode, fall back to def.
func clampSize(v, def int) int {
	switch {
	case v <= 0:
		return def
	case v < MinSize:
		return MinSize
	case v > MaxSize:
		return MaxSize
	default:
		return v
	}
}

// EnvironmentList turns editable list items into KEY=VALUE entries. Items
// may be plain strings, decoded objects or JSON text with a "value" field.
// Items that cannot be read or are not KEY=VALUE are skipped.
func EnvironmentList(items []any) []string {
	env := make([]string, 0, len(items))
	for i, item := range items {
		value, ok := listItemValue(item)
		if !ok {
			log.Warn().Int("item", i).Msg("couldn't read environment list item")
			continue
		}
		key, val, ok := validation.ParseEnvVar(value)
		if !ok {
			log.Warn().Str("entry", value).Msg("invalid environment variable entry")
			continue
		}
		env = append(env, key+"="+val)
	}
	return env
}

func listItemValue(item any) (string, bool) {
	switch v := item.(type) {
	case string:
		trimmed := strings.TrimSpace(v)
		if !strings.HasPrefix(trimmed, "{") {
			return v, true
		}
		var entry editableListEntry
		if err := json.Unmarshal([]byte(trimmed), &entry); err != nil {
			return "", false
		}
		return entry.Value, true
	case map[string]any:
		value, ok := v["value"].(string)
		return value, ok
	default:
		return "", false
	}
}
