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

package client_test

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/ZaparooProject/zaparoo-livesplit/pkg/api"
	"github.com/ZaparooProject/zaparoo-livesplit/pkg/api/client"
	"github.com/ZaparooProject/zaparoo-livesplit/pkg/api/models"
	"github.com/ZaparooProject/zaparoo-livesplit/pkg/api/models/requests"
	"github.com/ZaparooProject/zaparoo-livesplit/pkg/config"
	"github.com/ZaparooProject/zaparoo-livesplit/pkg/overlay"
	"github.com/ZaparooProject/zaparoo-livesplit/pkg/timers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newWSServer(t *testing.T) (*api.Server, string) {
	t.Helper()

	overlays := overlay.NewSet()
	t.Cleanup(overlays.Close)

	s := api.NewServer(api.ServerOptions{
		Env: requests.RequestEnv{
			Overlays: overlays,
			Deps:     overlay.Deps{Registry: timers.NewRegistry(timers.Options{})},
		},
	})
	srv := httptest.NewServer(s.Handler())
	t.Cleanup(srv.Close)
	return s, "ws" + strings.TrimPrefix(srv.URL, "http") + client.APIPath
}

func TestCallVersion(t *testing.T) {
	t.Parallel()
	_, url := newWSServer(t)

	res, err := client.Call(context.Background(), url, models.MethodVersion, "")
	require.NoError(t, err)

	var v models.VersionResponse
	require.NoError(t, json.Unmarshal([]byte(res), &v))
	assert.Equal(t, config.AppVersion, v.Version)
}

func TestCallReturnsRPCError(t *testing.T) {
	t.Parallel()
	_, url := newWSServer(t)

	_, err := client.Call(context.Background(), url, models.MethodOverlaysMedia, `{"id":"missing"}`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "overlay not found")
}

func TestCallInvalidParams(t *testing.T) {
	t.Parallel()

	_, err := client.Call(context.Background(), "ws://127.0.0.1:1/api", models.MethodVersion, "{")
	require.ErrorIs(t, err, client.ErrInvalidParams)
}

func TestCallConnectFailure(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(nil)
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + client.APIPath
	srv.Close()

	_, err := client.Call(context.Background(), url, models.MethodVersion, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to connect")
}

func TestWaitNotification(t *testing.T) {
	t.Parallel()
	s, url := newWSServer(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// keep broadcasting until the waiter has connected and seen one
	go func() {
		ticker := time.NewTicker(20 * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				_ = s.Broadcast(models.Notification{Method: "other", Params: 1})
				_ = s.Broadcast(models.Notification{
					Method: models.NotificationOverlaysAdded,
					Params: "main",
				})
			}
		}
	}()

	params, err := client.WaitNotification(ctx, 5*time.Second, url, models.NotificationOverlaysAdded)
	require.NoError(t, err)
	assert.JSONEq(t, `"main"`, params)
}

func TestWaitNotificationTimeout(t *testing.T) {
	t.Parallel()
	_, url := newWSServer(t)

	_, err := client.WaitNotification(context.Background(), 50*time.Millisecond, url, "never")
	require.ErrorIs(t, err, client.ErrRequestTimeout)
}

func TestLocalURL(t *testing.T) {
	t.Setenv(config.CfgEnv, "")
	cfg, err := config.NewConfig(t.TempDir(), config.BaseDefaults)
	require.NoError(t, err)

	assert.Equal(t, "ws://localhost:7498/api", client.LocalURL(cfg))
}
