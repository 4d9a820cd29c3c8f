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
	"maps"
	"strconv"

	"github.com/ZaparooProject/zaparoo-livesplit/pkg/helpers/syncutil"
)

// Store is the host settings surface. Getters return the zero value for
// missing or mistyped keys, the way host settings objects do.
type Store interface {
	String(key string) string
	Bool(key string) bool
	Int(key string) int
	List(key string) []any
	SetBool(key string, v bool)
	Snapshot() map[string]any
}

// MapStore is an in-memory Store layered over Defaults.
type MapStore struct {
	values map[string]any
	mu     syncutil.RWMutex
}

func NewMapStore(values map[string]any) *MapStore {
	merged := Defaults()
	maps.Copy(merged, values)
	return &MapStore{values: merged}
}

func (s *MapStore) get(key string) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[key]
	return v, ok
}

func (s *MapStore) String(key string) string {
	v, _ := s.get(key)
	str, _ := v.(string)
	return str
}

func (s *MapStore) Bool(key string) bool {
	v, _ := s.get(key)
	switch b := v.(type) {
	case bool:
		return b
	case string:
		parsed, err := strconv.ParseBool(b)
		return err == nil && parsed
	default:
		return false
	}
}

func (s *MapStore) Int(key string) int {
	v, _ := s.get(key)
	switch n := v.(type) {
	case int:
		return n
	case int64:
		return int(n)
	case float64:
		return int(n)
	case string:
		i, err := strconv.Atoi(n)
		if err != nil {
			return 0
		}
		return i
	default:
		return 0
	}
}

func (s *MapStore) List(key string) []any {
	v, _ := s.get(key)
	switch l := v.(type) {
	case []any:
		return append([]any(nil), l...)
	case []string:
		out := make([]any, len(l))
		for i, item := range l {
			out[i] = item
		}
		return out
	default:
		return nil
	}
}

func (s *MapStore) Set(key string, v any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = v
}

func (s *MapStore) SetBool(key string, v bool) {
	s.Set(key, v)
}

// Merge overwrites the given keys, leaving the rest untouched.
func (s *MapStore) Merge(values map[string]any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	maps.Copy(s.values, values)
}

func (s *MapStore) Snapshot() map[string]any {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return maps.Clone(s.values)
}
