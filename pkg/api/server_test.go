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
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/ZaparooProject/zaparoo-livesplit/pkg/api/models"
	"github.com/ZaparooProject/zaparoo-livesplit/pkg/api/models/requests"
	"github.com/ZaparooProject/zaparoo-livesplit/pkg/autosplitters"
	"github.com/ZaparooProject/zaparoo-livesplit/pkg/config"
	"github.com/ZaparooProject/zaparoo-livesplit/pkg/overlay"
	"github.com/ZaparooProject/zaparoo-livesplit/pkg/settings"
	"github.com/ZaparooProject/zaparoo-livesplit/pkg/shared/httpclient"
	"github.com/ZaparooProject/zaparoo-livesplit/pkg/testing/helpers"
	"github.com/ZaparooProject/zaparoo-livesplit/pkg/timers"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testRunPath = "/runs/foo.lss"

type testServer struct {
	server        *Server
	overlays      *overlay.Set
	notifications chan models.Notification
}

func newTestServer(t *testing.T, splitters *autosplitters.Manager) *testServer {
	t.Helper()

	fs := afero.NewMemMapFs()
	helpers.WriteRun(t, fs, testRunPath, "Foo")

	deps := overlay.Deps{Registry: timers.NewRegistry(timers.Options{Fs: fs})}
	if splitters != nil {
		deps.Splitters = splitters
	}

	ts := &testServer{
		overlays:      overlay.NewSet(),
		notifications: make(chan models.Notification, 16),
	}
	t.Cleanup(ts.overlays.Close)

	ts.server = NewServer(ServerOptions{
		Env: requests.RequestEnv{
			Overlays:      ts.overlays,
			Splitters:     splitters,
			Notifications: ts.notifications,
			Deps:          deps,
		},
	})
	return ts
}

func (ts *testServer) call(t *testing.T, method string, params any) models.ResponseObject {
	t.Helper()

	req := map[string]any{"jsonrpc": "2.0", "id": 1, "method": method}
	if params != nil {
		req["params"] = params
	}
	msg, err := json.Marshal(req)
	require.NoError(t, err)

	data := ts.server.processMessage(context.Background(), msg, "127.0.0.1:5000")
	require.NotNil(t, data)

	var resp models.ResponseObject
	require.NoError(t, json.Unmarshal(data, &resp))
	assert.Equal(t, "2.0", resp.JSONRPC)
	return resp
}

func (ts *testServer) result(t *testing.T, method string, params, out any) {
	t.Helper()
	resp := ts.call(t, method, params)
	require.Nil(t, resp.Error, "unexpected error: %+v", resp.Error)
	b, err := json.Marshal(resp.Result)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(b, out))
}

func (ts *testServer) drain() []models.Notification {
	var ns []models.Notification
	for {
		select {
		case n := <-ts.notifications:
			ns = append(ns, n)
		default:
			return ns
		}
	}
}

func post(t *testing.T, h http.Handler, contentType, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api", strings.NewReader(body))
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestPostVersion(t *testing.T) {
	t.Parallel()
	ts := newTestServer(t, nil)

	rec := post(t, ts.server.Handler(), "application/json; charset=utf-8",
		`{"jsonrpc":"2.0","id":"a","method":"version"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var resp struct {
		Result models.VersionResponse `json:"result"`
		ID     string                 `json:"id"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "a", resp.ID)
	assert.Equal(t, config.AppVersion, resp.Result.Version)
}

func TestPostErrors(t *testing.T) {
	t.Parallel()
	ts := newTestServer(t, nil)
	h := ts.server.Handler()

	tests := []struct {
		name        string
		contentType string
		body        string
		wantStatus  int
		wantCode    int
	}{
		{
			name:        "wrong content type",
			contentType: "text/plain",
			body:        `{"jsonrpc":"2.0","id":1,"method":"version"}`,
			wantStatus:  http.StatusUnsupportedMediaType,
		},
		{
			name:        "invalid json",
			contentType: "application/json",
			body:        `{"jsonrpc":`,
			wantStatus:  http.StatusOK,
			wantCode:    JSONRPCErrorParseError.Code,
		},
		{
			name:        "wrong version",
			contentType: "application/json",
			body:        `{"jsonrpc":"1.0","id":1,"method":"version"}`,
			wantStatus:  http.StatusOK,
			wantCode:    JSONRPCErrorInvalidRequest.Code,
		},
		{
			name:        "object id",
			contentType: "application/json",
			body:        `{"jsonrpc":"2.0","id":{},"method":"version"}`,
			wantStatus:  http.StatusOK,
			wantCode:    JSONRPCErrorInvalidRequest.Code,
		},
		{
			name:        "unknown method",
			contentType: "application/json",
			body:        `{"jsonrpc":"2.0","id":1,"method":"explode"}`,
			wantStatus:  http.StatusOK,
			wantCode:    JSONRPCErrorMethodNotFound.Code,
		},
		{
			name:        "notification",
			contentType: "application/json",
			body:        `{"jsonrpc":"2.0","method":"version"}`,
			wantStatus:  http.StatusNoContent,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			rec := post(t, h, tt.contentType, tt.body)
			require.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantCode == 0 {
				return
			}
			var resp models.ResponseObject
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			require.NotNil(t, resp.Error)
			assert.Equal(t, tt.wantCode, resp.Error.Code)
		})
	}
}

func TestPostTooLarge(t *testing.T) {
	t.Parallel()
	ts := newTestServer(t, nil)

	body := `{"jsonrpc":"2.0","id":1,"method":"version","params":"` +
		strings.Repeat("x", MaxRequestSize) + `"}`
	rec := post(t, ts.server.Handler(), "application/json", body)
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}

func TestCommandsMethod(t *testing.T) {
	t.Parallel()
	ts := newTestServer(t, nil)

	var resp models.CommandsResponse
	ts.result(t, models.MethodCommands, nil, &resp)
	assert.Equal(t, overlay.Commands(), resp.Commands)
}

func TestOverlayLifecycle(t *testing.T) {
	t.Parallel()
	ts := newTestServer(t, nil)

	var created models.OverlayNewResponse
	ts.result(t, models.MethodOverlaysNew, map[string]any{
		"id":       "main",
		"settings": map[string]any{settings.KeySplitsPath: testRunPath},
	}, &created)
	assert.Equal(t, "main", created.ID)
	assert.Equal(t, overlay.InfoNoAutoSplitter, created.Properties.Descriptions[overlay.PropAutoSplitterInfo])

	ns := ts.drain()
	require.Len(t, ns, 1)
	assert.Equal(t, models.NotificationOverlaysAdded, ns[0].Method)

	// same id again
	resp := ts.call(t, models.MethodOverlaysNew, map[string]any{"id": "main"})
	require.NotNil(t, resp.Error)
	assert.Equal(t, JSONRPCErrorServerError.Code, resp.Error.Code)

	// hotkeys are ignored until the overlay is activated
	var patch overlay.Patch
	ts.result(t, models.MethodOverlaysCommand, map[string]any{"id": "main", "command": "split"}, &patch)
	var list models.OverlaysResponse
	ts.result(t, models.MethodOverlays, nil, &list)
	require.Len(t, list.Overlays, 1)
	assert.Equal(t, "not_running", list.Overlays[0].Timer.Phase)
	assert.False(t, list.Overlays[0].Activated)

	ts.drain()
	ts.result(t, models.MethodOverlaysActivate, map[string]any{"id": "main"}, &struct{}{})
	ts.result(t, models.MethodOverlaysCommand, map[string]any{"id": "main", "command": "split"}, &patch)

	ns = ts.drain()
	require.Len(t, ns, 1)
	assert.Equal(t, models.NotificationOverlaysChanged, ns[0].Method)
	changed, ok := ns[0].Params.(models.OverlayChangedParams)
	require.True(t, ok)
	assert.Equal(t, "main", changed.ID)
	assert.Equal(t, "split", changed.Command)
	assert.Equal(t, "running", changed.Timer.Phase)

	var media models.MediaResponse
	ts.result(t, models.MethodOverlaysMedia, map[string]any{"id": "main"}, &media)
	assert.Equal(t, overlay.MediaPlaying, media.State)

	var props overlay.Patch
	ts.result(t, models.MethodOverlaysProperties, map[string]any{"id": "main"}, &props)
	assert.Equal(t, overlay.LabelActivate, props.Descriptions[overlay.PropAutoSplitterActivate])

	var updated models.OverlayResponse
	ts.result(t, models.MethodOverlaysUpdate, map[string]any{
		"id":       "main",
		"settings": map[string]any{settings.KeySplitsPath: testRunPath, settings.KeyWidth: 400},
	}, &updated)
	assert.Equal(t, 400, updated.Width)
	assert.Equal(t, settings.DefaultHeight, updated.Height)

	ts.result(t, models.MethodOverlaysDeactivate, map[string]any{"id": "main"}, &struct{}{})
	ts.result(t, models.MethodOverlaysDelete, map[string]any{"id": "main"}, &struct{}{})
	assert.Zero(t, ts.overlays.Len())

	ns = ts.drain()
	require.Len(t, ns, 1)
	assert.Equal(t, models.NotificationOverlaysRemoved, ns[0].Method)

	resp = ts.call(t, models.MethodOverlaysDelete, map[string]any{"id": "main"})
	require.NotNil(t, resp.Error)
	assert.Equal(t, JSONRPCErrorNotFound.Code, resp.Error.Code)
}

func TestOverlayNewGeneratesID(t *testing.T) {
	t.Parallel()
	ts := newTestServer(t, nil)

	var created models.OverlayNewResponse
	ts.result(t, models.MethodOverlaysNew, nil, &created)
	assert.NotEmpty(t, created.ID)
	_, ok := ts.overlays.Get(created.ID)
	assert.True(t, ok)
}

func TestOverlayParamErrors(t *testing.T) {
	t.Parallel()
	ts := newTestServer(t, nil)
	ts.result(t, models.MethodOverlaysNew, map[string]any{"id": "main"}, &models.OverlayNewResponse{})

	tests := []struct {
		params   any
		name     string
		method   string
		wantCode int
	}{
		{
			name:     "unknown command",
			method:   models.MethodOverlaysCommand,
			params:   map[string]any{"id": "main", "command": "explode"},
			wantCode: JSONRPCErrorInvalidParams.Code,
		},
		{
			name:     "missing id",
			method:   models.MethodOverlaysActivate,
			params:   map[string]any{},
			wantCode: JSONRPCErrorInvalidParams.Code,
		},
		{
			name:     "missing params",
			method:   models.MethodOverlaysProperties,
			wantCode: JSONRPCErrorInvalidParams.Code,
		},
		{
			name:     "settings not an object",
			method:   models.MethodOverlaysNew,
			params:   map[string]any{"settings": "wide"},
			wantCode: JSONRPCErrorInvalidParams.Code,
		},
		{
			name:     "missing overlay",
			method:   models.MethodOverlaysMedia,
			params:   map[string]any{"id": "nope"},
			wantCode: JSONRPCErrorNotFound.Code,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := ts.call(t, tt.method, tt.params)
			require.NotNil(t, resp.Error)
			assert.Equal(t, tt.wantCode, resp.Error.Code)
			assert.NotEmpty(t, resp.Error.Message)
		})
	}
}

func TestAutoSplittersDisabled(t *testing.T) {
	t.Parallel()
	ts := newTestServer(t, nil)

	var status models.AutoSplittersResponse
	ts.result(t, models.MethodAutoSplitters, nil, &status)
	assert.False(t, status.Enabled)

	resp := ts.call(t, models.MethodAutoSplittersLookup, map[string]any{"game": "Foo"})
	require.NotNil(t, resp.Error)
	assert.Contains(t, resp.Error.Message, "disabled")

	resp = ts.call(t, models.MethodAutoSplittersReload, nil)
	require.NotNil(t, resp.Error)
}

func TestAutoSplittersLookupAndReload(t *testing.T) {
	t.Parallel()

	srv := helpers.ListServer(t, helpers.AutoSplitterList(helpers.ListEntry{
		Game:        "Foo",
		URL:         "https://example.com/foo.wasm",
		Description: "Autosplitter for Foo",
	}))

	fs := afero.NewMemMapFs()
	client := httpclient.NewClient()
	m := autosplitters.NewManager(autosplitters.ManagerOptions{
		Fs:         fs,
		Fetcher:    autosplitters.NewFetcher(client, fs, srv.URL),
		Downloader: autosplitters.NewDownloader(client, fs),
		CacheDir:   "/config",
		ModulesDir: "/config/auto-splitters",
	})
	ts := newTestServer(t, m)

	var status models.AutoSplittersResponse
	ts.result(t, models.MethodAutoSplitters, nil, &status)
	assert.True(t, status.Enabled)
	assert.Empty(t, status.Source)

	ts.result(t, models.MethodAutoSplittersReload, nil, &status)
	assert.Equal(t, 1, status.Entries)
	assert.Equal(t, autosplitters.SourceRemote.String(), status.Source)

	ns := ts.drain()
	require.Len(t, ns, 1)
	assert.Equal(t, models.NotificationAutoSplittersReloaded, ns[0].Method)

	var lookup models.AutoSplitterLookupResponse
	ts.result(t, models.MethodAutoSplittersLookup, map[string]any{"game": "Foo"}, &lookup)
	require.NotNil(t, lookup.Entry)
	assert.True(t, lookup.Compatible)

	// overlays created afterwards see the catalog
	var created models.OverlayNewResponse
	ts.result(t, models.MethodOverlaysNew, map[string]any{
		"settings": map[string]any{settings.KeySplitsPath: testRunPath},
	}, &created)
	assert.Equal(t, "Autosplitter for Foo", created.Properties.Descriptions[overlay.PropAutoSplitterInfo])
}

func TestMethodMap(t *testing.T) {
	t.Parallel()

	m := NewMethodMap()
	assert.Contains(t, m.ListMethods(), models.MethodOverlaysCommand)

	fn := func(requests.RequestEnv) (any, error) { return "ok", nil }
	require.NoError(t, m.AddMethod("Custom.Ping", fn))
	require.ErrorIs(t, m.AddMethod("custom.ping", fn), ErrMethodExists)
	require.ErrorIs(t, m.AddMethod(models.MethodVersion, fn), ErrMethodExists)

	_, ok := m.GetMethod("CUSTOM.PING")
	assert.True(t, ok)

	names := m.ListMethods()
	assert.IsNonDecreasing(t, names)
	assert.Len(t, names, len(defaultMethods)+1)
}

func TestNotificationIsNotAnswered(t *testing.T) {
	t.Parallel()
	ts := newTestServer(t, nil)

	msg := []byte(`{"jsonrpc":"2.0","method":"overlays.new","params":{"id":"quiet"}}`)
	assert.Nil(t, ts.server.processMessage(context.Background(), msg, "127.0.0.1:1"))
	_, ok := ts.overlays.Get("quiet")
	assert.True(t, ok)

	msg = []byte(`{"jsonrpc":"2.0","method":"nope"}`)
	assert.Nil(t, ts.server.processMessage(context.Background(), msg, "127.0.0.1:1"))
}

func TestServeShutsDownOnCancel(t *testing.T) {
	t.Parallel()
	ts := newTestServer(t, nil)

	srv := httptest.NewUnstartedServer(nil)
	ln := srv.Listener
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- ts.server.Serve(ctx, ln, ts.notifications)
	}()

	url := "http://" + ln.Addr().String() + "/api"
	var (
		resp *http.Response
		err  error
	)
	require.Eventually(t, func() bool {
		req, reqErr := http.NewRequestWithContext(context.Background(), http.MethodPost, url,
			bytes.NewBufferString(`{"jsonrpc":"2.0","id":1,"method":"version"}`))
		require.NoError(t, reqErr)
		req.Header.Set("Content-Type", "application/json")
		resp, err = http.DefaultClient.Do(req)
		return err == nil
	}, 2*time.Second, 20*time.Millisecond)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
