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

// Package api is the local control surface of the overlay host: JSON-RPC
// 2.0 over WebSocket and HTTP POST, with notifications pushed to every
// WebSocket client.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net"
	"net/http"
	"time"

	"github.com/ZaparooProject/zaparoo-livesplit/pkg/api/methods"
	apimiddleware "github.com/ZaparooProject/zaparoo-livesplit/pkg/api/middleware"
	"github.com/ZaparooProject/zaparoo-livesplit/pkg/api/models"
	"github.com/ZaparooProject/zaparoo-livesplit/pkg/api/models/requests"
	"github.com/ZaparooProject/zaparoo-livesplit/pkg/api/validation"
	"github.com/ZaparooProject/zaparoo-livesplit/pkg/config"
	"github.com/ZaparooProject/zaparoo-livesplit/pkg/overlay"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/olahol/melody"
	"github.com/rs/zerolog/log"
)

const (
	// MaxRequestSize caps HTTP JSON-RPC bodies.
	MaxRequestSize  = 1 << 20
	shutdownTimeout = 5 * time.Second
)

var (
	JSONRPCErrorParseError = models.ErrorObject{
		Code:    -32700,
		Message: "Parse error",
	}
	JSONRPCErrorInvalidRequest = models.ErrorObject{
		Code:    -32600,
		Message: "Invalid Request",
	}
	JSONRPCErrorMethodNotFound = models.ErrorObject{
		Code:    -32601,
		Message: "Method not found",
	}
	JSONRPCErrorInvalidParams = models.ErrorObject{
		Code:    -32602,
		Message: "Invalid params",
	}
	JSONRPCErrorServerError = models.ErrorObject{
		Code:    -32000,
		Message: "Server error",
	}
	JSONRPCErrorNotFound = models.ErrorObject{
		Code:    -32001,
		Message: "Not found",
	}
)

var defaultAllowedOrigins = []string{"http://localhost*", "http://127.0.0.1*"}

// errorObject maps a handler error to a JSON-RPC error, keeping the
// handler's message.
func errorObject(err error) models.ErrorObject {
	var base models.ErrorObject
	var verr *validation.Error
	switch {
	case errors.As(err, &verr),
		errors.Is(err, validation.ErrMissingParams),
		errors.Is(err, validation.ErrInvalidParams):
		base = JSONRPCErrorInvalidParams
	case errors.Is(err, methods.ErrOverlayNotFound),
		errors.Is(err, overlay.ErrUnknownCommand):
		base = JSONRPCErrorNotFound
	default:
		base = JSONRPCErrorServerError
	}
	base.Message = err.Error()
	return base
}

// Server routes JSON-RPC requests to a MethodMap.
type Server struct {
	methods *MethodMap
	session *melody.Melody
	limiter *apimiddleware.IPRateLimiter
	env     requests.RequestEnv
	origins []string
}

type ServerOptions struct {
	Methods *MethodMap
	Limiter *apimiddleware.IPRateLimiter
	// Env is the template every request environment is copied from.
	Env            requests.RequestEnv
	AllowedOrigins []string
}

func NewServer(opts ServerOptions) *Server {
	if opts.Methods == nil {
		opts.Methods = NewMethodMap()
	}
	if opts.Limiter == nil {
		opts.Limiter = apimiddleware.NewIPRateLimiter(nil)
	}
	if len(opts.AllowedOrigins) == 0 {
		opts.AllowedOrigins = defaultAllowedOrigins
	}

	s := &Server{
		methods: opts.Methods,
		session: melody.New(),
		limiter: opts.Limiter,
		env:     opts.Env,
		origins: opts.AllowedOrigins,
	}
	s.session.Upgrader.CheckOrigin = func(*http.Request) bool { return true }
	s.session.HandleMessage(apimiddleware.WebSocketRateLimitHandler(s.limiter, s.handleWSMessage))
	return s
}

// processMessage handles one raw JSON-RPC message. It returns nil when the
// message was a notification and needs no reply.
func (s *Server) processMessage(ctx context.Context, msg []byte, remoteAddr string) []byte {
	if !json.Valid(msg) {
		log.Error().Msg("data not valid json")
		return s.marshalError(models.NullRPCID, JSONRPCErrorParseError)
	}

	var req models.RequestObject
	if err := json.Unmarshal(msg, &req); err != nil {
		log.Error().Err(err).Msg("message does not match known types")
		return s.marshalError(models.NullRPCID, JSONRPCErrorInvalidRequest)
	}

	id := models.NullRPCID
	if !req.ID.IsAbsent() {
		id = *req.ID
	}

	if req.JSONRPC != "2.0" {
		log.Error().Str("jsonrpc", req.JSONRPC).Msg("unsupported payload version")
		return s.marshalError(id, JSONRPCErrorInvalidRequest)
	}
	if req.Method == "" {
		return s.marshalError(id, JSONRPCErrorInvalidRequest)
	}

	fn, ok := s.methods.GetMethod(req.Method)
	if !ok {
		if req.ID.IsAbsent() {
			return nil
		}
		return s.marshalError(id, JSONRPCErrorMethodNotFound)
	}

	env := s.env
	env.Context = ctx
	env.Params = req.Params
	env.ID = id
	env.IsLocal = apimiddleware.IsLoopbackAddr(remoteAddr)

	log.Debug().Str("method", req.Method).Str("id", id.String()).Msg("received request")
	result, err := fn(env)
	if req.ID.IsAbsent() {
		if err != nil {
			log.Warn().Err(err).Str("method", req.Method).Msg("notification failed")
		}
		return nil
	}
	if err != nil {
		log.Warn().Err(err).Str("method", req.Method).Msg("request failed")
		return s.marshalError(id, errorObject(err))
	}

	data, err := json.Marshal(models.ResponseObject{JSONRPC: "2.0", ID: id, Result: result})
	if err != nil {
		log.Error().Err(err).Msg("error marshalling response")
		return s.marshalError(id, JSONRPCErrorServerError)
	}
	return data
}

func (*Server) marshalError(id models.RPCID, e models.ErrorObject) []byte {
	log.Debug().Int("code", e.Code).Str("message", e.Message).Msg("sending error")
	data, err := json.Marshal(models.ResponseObject{JSONRPC: "2.0", ID: id, Error: &e})
	if err != nil {
		log.Error().Err(err).Msg("error marshalling error response")
		return nil
	}
	return data
}

func (s *Server) handleWSMessage(session *melody.Session, msg []byte) {
	// heartbeat
	if bytes.Equal(msg, []byte("ping")) {
		if err := session.Write([]byte("pong")); err != nil {
			log.Error().Err(err).Msg("sending pong")
		}
		return
	}

	resp := s.processMessage(session.Request.Context(), msg, session.Request.RemoteAddr)
	if resp == nil {
		return
	}
	if err := session.Write(resp); err != nil {
		log.Error().Err(err).Msg("error sending response")
	}
}

func (s *Server) handlePostRequest(w http.ResponseWriter, r *http.Request) {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil || mediaType != "application/json" {
		http.Error(w, "Content-Type must be application/json", http.StatusUnsupportedMediaType)
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, MaxRequestSize))
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			http.Error(w, "Request Entity Too Large", http.StatusRequestEntityTooLarge)
			return
		}
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	resp := s.processMessage(r.Context(), body, r.RemoteAddr)
	if resp == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if _, err := w.Write(resp); err != nil {
		log.Error().Err(err).Msg("error writing response")
	}
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	if err := s.session.HandleRequest(w, r); err != nil {
		log.Error().Err(err).Msg("handling websocket request")
	}
}

// Handler returns the HTTP routes of the API.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(middleware.NoCache)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	r.Group(func(r chi.Router) {
		r.Use(apimiddleware.HTTPRateLimitMiddleware(s.limiter))
		r.Use(middleware.Timeout(config.APIRequestTimeout))
		r.Post("/api", s.handlePostRequest)
	})
	r.Get("/api", s.handleWebSocket)

	return r
}

// Broadcast sends a notification to every connected WebSocket client.
func (s *Server) Broadcast(n models.Notification) error {
	data, err := json.Marshal(models.NotificationObject{
		JSONRPC: "2.0",
		Method:  n.Method,
		Params:  n.Params,
	})
	if err != nil {
		return fmt.Errorf("marshalling notification: %w", err)
	}
	if err := s.session.Broadcast(data); err != nil {
		return fmt.Errorf("broadcasting notification: %w", err)
	}
	return nil
}

func (s *Server) broadcastNotifications(ctx context.Context, notifications <-chan models.Notification) {
	for {
		select {
		case <-ctx.Done():
			return
		case n, ok := <-notifications:
			if !ok {
				return
			}
			if err := s.Broadcast(n); err != nil {
				log.Error().Err(err).Str("method", n.Method).Msg("error sending notification")
			}
		}
	}
}

// Serve answers requests on ln until ctx is cancelled, then shuts the HTTP
// server down and disconnects WebSocket clients.
func (s *Server) Serve(ctx context.Context, ln net.Listener, notifications <-chan models.Notification) error {
	s.limiter.StartCleanup(ctx)
	go s.broadcastNotifications(ctx, notifications)

	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", ln.Addr().String()).Msg("api server listening")
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("api server stopped: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := s.session.Close(); err != nil {
		log.Debug().Err(err).Msg("closing websocket sessions")
	}
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("api server shutdown: %w", err)
	}
	return nil
}

// Start listens on the configured address and serves until ctx is done.
func Start(
	ctx context.Context,
	cfg *config.Instance,
	env requests.RequestEnv,
	notifications <-chan models.Notification,
) error {
	var lc net.ListenConfig
	ln, err := lc.Listen(ctx, "tcp", cfg.APIListen())
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", cfg.APIListen(), err)
	}

	s := NewServer(ServerOptions{
		Env:            env,
		AllowedOrigins: cfg.AllowedOrigins(),
	})
	return s.Serve(ctx, ln, notifications)
}
