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

package helpers

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/ZaparooProject/zaparoo-livesplit/pkg/helpers/command"
	"github.com/ZaparooProject/zaparoo-livesplit/pkg/testing/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestValidateBrowserURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		url     string
		errMsg  string
		wantErr bool
	}{
		{
			name: "valid_http_url",
			url:  "http://localhost:7498/",
		},
		{
			name: "valid_https_url",
			url:  "https://github.com/LiveSplit/LiveSplit.AutoSplitters",
		},
		{
			name: "valid_https_uppercase",
			url:  "HTTPS://example.com/",
		},
		{
			name:    "file_scheme",
			url:     "file:///etc/passwd",
			wantErr: true,
			errMsg:  "invalid URL scheme",
		},
		{
			name:    "empty",
			url:     "",
			wantErr: true,
			errMsg:  "invalid URL scheme",
		},
		{
			name:    "too_long",
			url:     "https://example.com/" + strings.Repeat("a", MaxURLLength),
			wantErr: true,
			errMsg:  "URL too long",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := ValidateBrowserURL(tt.url)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestBrowserCommand(t *testing.T) {
	t.Parallel()

	name, args := browserCommand("linux")
	assert.Equal(t, "xdg-open", name)
	assert.Empty(t, args)

	name, _ = browserCommand("darwin")
	assert.Equal(t, "open", name)

	name, args = browserCommand("windows")
	assert.Equal(t, "rundll32", name)
	assert.Equal(t, []string{"url.dll,FileProtocolHandler"}, args)
}

func TestOpenBrowser(t *testing.T) {
	t.Parallel()

	exec := &mocks.MockCommandExecutor{}
	exec.On("Start", mock.Anything, command.StartOptions{}, mock.AnythingOfType("string"),
		mock.MatchedBy(func(args []string) bool {
			return len(args) > 0 && args[len(args)-1] == "https://example.com/"
		})).Return(nil)

	require.NoError(t, OpenBrowser(context.Background(), exec, "https://example.com/"))
	exec.AssertExpectations(t)
}

func TestOpenBrowserRejectsBadURL(t *testing.T) {
	t.Parallel()

	exec := &mocks.MockCommandExecutor{}
	err := OpenBrowser(context.Background(), exec, "javascript:alert(1)")
	require.Error(t, err)
	exec.AssertNotCalled(t, "Start")
}

func TestOpenBrowserStartError(t *testing.T) {
	t.Parallel()

	exec := &mocks.MockCommandExecutor{}
	exec.On("Start", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(errors.New("boom"))

	err := OpenBrowser(context.Background(), exec, "https://example.com/")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to open browser")
}
