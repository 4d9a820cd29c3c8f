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

// Package client talks to a running overlay host over its WebSocket API.
package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/url"
	"strconv"
	"time"

	"github.com/ZaparooProject/zaparoo-livesplit/pkg/api/models"
	"github.com/ZaparooProject/zaparoo-livesplit/pkg/config"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

var (
	ErrRequestTimeout   = errors.New("request timed out")
	ErrInvalidParams    = errors.New("invalid params")
	ErrRequestCancelled = errors.New("request cancelled")
)

const APIPath = "/api"

// LocalURL is the WebSocket URL of the API on this machine.
func LocalURL(cfg *config.Instance) string {
	u := url.URL{
		Scheme: "ws",
		Host:   net.JoinHostPort("localhost", strconv.Itoa(cfg.APIPort())),
		Path:   APIPath,
	}
	return u.String()
}

func dial(ctx context.Context, wsURL string) (*websocket.Conn, error) {
	c, resp, err := websocket.DefaultDialer.DialContext(ctx, wsURL, nil)
	if resp != nil && resp.Body != nil {
		_ = resp.Body.Close()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", wsURL, err)
	}
	return c, nil
}

func closeConn(c *websocket.Conn) {
	if err := c.Close(); err != nil {
		log.Warn().Err(err).Msg("error closing websocket")
	}
}

// Call sends one request and waits for its response, returning the raw
// JSON result.
func Call(ctx context.Context, wsURL, method, params string) (string, error) {
	id := models.NewStringID(uuid.New().String())
	req := models.RequestObject{
		JSONRPC: "2.0",
		ID:      &id,
		Method:  method,
	}
	if params != "" {
		if !json.Valid([]byte(params)) {
			return "", ErrInvalidParams
		}
		req.Params = json.RawMessage(params)
	}

	c, err := dial(ctx, wsURL)
	if err != nil {
		return "", err
	}
	defer closeConn(c)

	done := make(chan *models.ResponseObject, 1)
	go func() {
		defer close(done)
		for {
			_, message, err := c.ReadMessage()
			if err != nil {
				log.Debug().Err(err).Msg("websocket read ended")
				return
			}

			var m models.ResponseObject
			if err := json.Unmarshal(message, &m); err != nil || m.JSONRPC != "2.0" {
				continue
			}
			if m.ID.String() != id.String() {
				continue
			}
			done <- &m
			return
		}
	}()

	if err := c.WriteJSON(req); err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}

	timer := time.NewTimer(config.APIRequestTimeout)
	defer timer.Stop()

	var resp *models.ResponseObject
	select {
	case resp = <-done:
	case <-timer.C:
		return "", ErrRequestTimeout
	case <-ctx.Done():
		return "", ErrRequestCancelled
	}

	if resp == nil {
		return "", ErrRequestTimeout
	}
	if resp.Error != nil {
		return "", errors.New(resp.Error.Message)
	}

	b, err := json.Marshal(resp.Result)
	if err != nil {
		return "", fmt.Errorf("failed to encode result: %w", err)
	}
	return string(b), nil
}

// WaitNotification blocks until a notification with the given method
// arrives and returns its raw params.
func WaitNotification(ctx context.Context, timeout time.Duration, wsURL, method string) (string, error) {
	c, err := dial(ctx, wsURL)
	if err != nil {
		return "", err
	}
	defer closeConn(c)

	done := make(chan json.RawMessage, 1)
	go func() {
		defer close(done)
		for {
			_, message, err := c.ReadMessage()
			if err != nil {
				return
			}

			var n struct {
				JSONRPC string          `json:"jsonrpc"`
				Method  string          `json:"method"`
				Params  json.RawMessage `json:"params"`
			}
			if err := json.Unmarshal(message, &n); err != nil || n.Method != method {
				continue
			}
			if n.Params == nil {
				n.Params = json.RawMessage("null")
			}
			done <- n.Params
			return
		}
	}()

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case params, ok := <-done:
		if !ok {
			return "", ErrRequestCancelled
		}
		return string(params), nil
	case <-timer.C:
		return "", ErrRequestTimeout
	case <-ctx.Done():
		return "", ErrRequestCancelled
	}
}
