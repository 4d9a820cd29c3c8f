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

package api

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/ZaparooProject/zaparoo-livesplit/pkg/api/methods"
	"github.com/ZaparooProject/zaparoo-livesplit/pkg/api/models"
	"github.com/ZaparooProject/zaparoo-livesplit/pkg/api/models/requests"
	"github.com/ZaparooProject/zaparoo-livesplit/pkg/helpers/syncutil"
)

type MethodHandler func(requests.RequestEnv) (any, error)

var ErrMethodExists = errors.New("method already registered")

// MethodMap is the table of JSON-RPC methods the server answers.
type MethodMap struct {
	methods map[string]MethodHandler
	mu      syncutil.RWMutex
}

var defaultMethods = map[string]MethodHandler{
	models.MethodVersion:  methods.HandleVersion,
	models.MethodCommands: methods.HandleCommands,
	// overlays
	models.MethodOverlays:           methods.HandleOverlays,
	models.MethodOverlaysNew:        methods.HandleOverlaysNew,
	models.MethodOverlaysUpdate:     methods.HandleOverlaysUpdate,
	models.MethodOverlaysDelete:     methods.HandleOverlaysDelete,
	models.MethodOverlaysActivate:   methods.HandleOverlaysActivate,
	models.MethodOverlaysDeactivate: methods.HandleOverlaysDeactivate,
	models.MethodOverlaysCommand:    methods.HandleOverlaysCommand,
	models.MethodOverlaysProperties: methods.HandleOverlaysProperties,
	models.MethodOverlaysMedia:      methods.HandleOverlaysMedia,
	// auto splitters
	models.MethodAutoSplitters:       methods.HandleAutoSplitters,
	models.MethodAutoSplittersLookup: methods.HandleAutoSplittersLookup,
	models.MethodAutoSplittersReload: methods.HandleAutoSplittersReload,
}

// NewMethodMap returns a map holding every built-in method.
func NewMethodMap() *MethodMap {
	m := &MethodMap{methods: make(map[string]MethodHandler, len(defaultMethods))}
	for name, fn := range defaultMethods {
		m.methods[name] = fn
	}
	return m
}

func (m *MethodMap) AddMethod(name string, fn MethodHandler) error {
	name = strings.ToLower(name)

	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.methods[name]; ok {
		return fmt.Errorf("%w: %s", ErrMethodExists, name)
	}
	m.methods[name] = fn
	return nil
}

func (m *MethodMap) GetMethod(name string) (MethodHandler, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	fn, ok := m.methods[strings.ToLower(name)]
	return fn, ok
}

// ListMethods returns the registered method names, sorted.
func (m *MethodMap) ListMethods() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	names := make([]string, 0, len(m.methods))
	for name := range m.methods {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
