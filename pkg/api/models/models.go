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

// Package models holds the JSON-RPC envelope and the request and response
// payloads of the control API.
package models

import "encoding/json"

const (
	NotificationOverlaysAdded         = "overlays.added"
	NotificationOverlaysRemoved       = "overlays.removed"
	NotificationOverlaysChanged       = "overlays.changed"
	NotificationAutoSplittersReloaded = "autosplitters.reloaded"
)

const (
	MethodVersion             = "version"
	MethodCommands            = "commands"
	MethodOverlays            = "overlays"
	MethodOverlaysNew         = "overlays.new"
	MethodOverlaysUpdate      = "overlays.update"
	MethodOverlaysDelete      = "overlays.delete"
	MethodOverlaysActivate    = "overlays.activate"
	MethodOverlaysDeactivate  = "overlays.deactivate"
	MethodOverlaysCommand     = "overlays.command"
	MethodOverlaysProperties  = "overlays.properties"
	MethodOverlaysMedia       = "overlays.media"
	MethodAutoSplitters       = "autosplitters"
	MethodAutoSplittersLookup = "autosplitters.lookup"
	MethodAutoSplittersReload = "autosplitters.reload"
)

type Notification struct {
	Params any
	Method string
}

type RequestObject struct {
	ID      *RPCID          `json:"id,omitempty"`
	JSONRPC string          `json:"jsonrpc"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

// NotificationObject is a server to client notification: a request with
// no id.
type NotificationObject struct {
	Params  any    `json:"params,omitempty"`
	JSONRPC string `json:"jsonrpc"`
	Method  string `json:"method"`
}

type ErrorObject struct {
	Message string `json:"message"`
	Code    int    `json:"code"`
}

type ResponseObject struct {
	Result  any          `json:"result,omitempty"`
	Error   *ErrorObject `json:"error,omitempty"`
	JSONRPC string       `json:"jsonrpc"`
	ID      RPCID        `json:"id"`
}
