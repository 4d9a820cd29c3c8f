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

package overlay

import (
	"maps"
	"slices"

	"github.com/ZaparooProject/zaparoo-livesplit/pkg/helpers/syncutil"
	"github.com/google/uuid"
)

// Set tracks the live overlays of a host by id.
type Set struct {
	instances map[string]*Instance
	mu        syncutil.RWMutex
}

func NewSet() *Set {
	return &Set{instances: make(map[string]*Instance)}
}

// Add stores inst under id, generating a uuid when id is empty. It returns
// false if the id is taken.
func (s *Set) Add(id string, inst *Instance) (string, bool) {
	if id == "" {
		id = uuid.New().String()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.instances[id]; ok {
		return id, false
	}
	s.instances[id] = inst
	return id, true
}

func (s *Set) Get(id string) (*Instance, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	inst, ok := s.instances[id]
	return inst, ok
}

// Remove takes the overlay out of the set and destroys it.
func (s *Set) Remove(id string) bool {
	s.mu.Lock()
	inst, ok := s.instances[id]
	delete(s.instances, id)
	s.mu.Unlock()

	if ok {
		inst.Destroy()
	}
	return ok
}

// IDs returns the ids of all overlays, sorted.
func (s *Set) IDs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Sorted(maps.Keys(s.instances))
}

func (s *Set) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.instances)
}

// Close destroys every overlay.
func (s *Set) Close() {
	s.mu.Lock()
	instances := s.instances
	s.instances = make(map[string]*Instance)
	s.mu.Unlock()

	for _, inst := range instances {
		inst.Destroy()
	}
}
