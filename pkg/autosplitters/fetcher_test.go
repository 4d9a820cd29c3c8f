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

package autosplitters

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/ZaparooProject/zaparoo-livesplit/pkg/shared/httpclient"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func listServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestFetchPrefersRemote(t *testing.T) {
	t.Parallel()

	srv := listServer(t, http.StatusOK, testList)
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, filepath.Join("/cache", ListFileName),
		[]byte(`<AutoSplitters></AutoSplitters>`), 0o600))

	res, err := NewFetcher(httpclient.NewClient(), fs, srv.URL).Fetch(context.Background(), "/cache")
	require.NoError(t, err)
	assert.Equal(t, SourceRemote, res.Source)
	assert.NoError(t, res.RemoteErr)
	assert.Equal(t, 3, res.Catalog.Len())
}

func TestFetchFallsBackToCache(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		status  int
		body    string
		wantErr error
	}{
		{name: "not_found", status: http.StatusNotFound, wantErr: ErrTransport},
		{name: "server_error", status: http.StatusInternalServerError, wantErr: ErrTransport},
		{name: "malformed", status: http.StatusOK, body: "<html>oops</html>", wantErr: ErrDecode},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			srv := listServer(t, tt.status, tt.body)
			fs := afero.NewMemMapFs()
			require.NoError(t, afero.WriteFile(fs, filepath.Join("/cache", ListFileName), []byte(testList), 0o600))

			res, err := NewFetcher(httpclient.NewClient(), fs, srv.URL).Fetch(context.Background(), "/cache")
			require.NoError(t, err)
			assert.Equal(t, SourceCache, res.Source)
			assert.Equal(t, 3, res.Catalog.Len())
			require.ErrorIs(t, res.RemoteErr, tt.wantErr)
		})
	}
}

func TestFetchUnreachableRemoteUsesCache(t *testing.T) {
	t.Parallel()

	srv := listServer(t, http.StatusOK, testList)
	url := srv.URL
	srv.Close()

	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, filepath.Join("/cache", ListFileName), []byte(testList), 0o600))

	res, err := NewFetcher(httpclient.NewClient(), fs, url).Fetch(context.Background(), "/cache")
	require.NoError(t, err)
	assert.Equal(t, SourceCache, res.Source)
	require.ErrorIs(t, res.RemoteErr, ErrTransport)
}

func TestFetchBothFail(t *testing.T) {
	t.Parallel()

	srv := listServer(t, http.StatusBadGateway, "")

	t.Run("missing_cache", func(t *testing.T) {
		t.Parallel()

		res, err := NewFetcher(httpclient.NewClient(), afero.NewMemMapFs(), srv.URL).
			Fetch(context.Background(), "/cache")
		require.Error(t, err)
		assert.Nil(t, res)

		var fetchErr *FetchError
		require.ErrorAs(t, err, &fetchErr)
		require.ErrorIs(t, fetchErr.Remote, ErrTransport)
		require.ErrorIs(t, fetchErr.Local, ErrLocalIO)
		require.ErrorIs(t, err, ErrTransport)
		require.ErrorIs(t, err, ErrLocalIO)
		assert.Contains(t, err.Error(), "remote:")
		assert.Contains(t, err.Error(), "local:")
	})

	t.Run("corrupt_cache", func(t *testing.T) {
		t.Parallel()

		fs := afero.NewMemMapFs()
		require.NoError(t, afero.WriteFile(fs, filepath.Join("/cache", ListFileName), []byte("garbage"), 0o600))

		_, err := NewFetcher(httpclient.NewClient(), fs, srv.URL).Fetch(context.Background(), "/cache")
		var fetchErr *FetchError
		require.ErrorAs(t, err, &fetchErr)
		require.ErrorIs(t, fetchErr.Local, ErrDecode)
		assert.False(t, errors.Is(fetchErr.Local, ErrLocalIO))
	})
}
