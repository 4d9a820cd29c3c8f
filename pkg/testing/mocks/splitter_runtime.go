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

package mocks

import (
	"github.com/ZaparooProject/zaparoo-livesplit/pkg/timer"
	"github.com/stretchr/testify/mock"
)

// MockSplitterRuntime is a testify mock for timers.SplitterRuntime.
type MockSplitterRuntime struct {
	mock.Mock
}

func (m *MockSplitterRuntime) Load(modulePath string, t *timer.Timer) error {
	args := m.Called(modulePath, t)
	//nolint:wrapcheck // Mock returns are already wrapped by caller
	return args.Error(0)
}

func (m *MockSplitterRuntime) Unload() error {
	args := m.Called()
	//nolint:wrapcheck // Mock returns are already wrapped by caller
	return args.Error(0)
}
