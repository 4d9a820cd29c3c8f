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

// Package validation validates API requests and overlay settings using
// go-playground/validator with a few custom tags.
package validation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Common validation errors.
var (
	ErrMissingParams = errors.New("missing params")
	ErrInvalidParams = errors.New("invalid params")
)

// contextKey is an unexported type for context keys to avoid collisions.
type contextKey struct{}

// validateCtxKey is the context key for Context.
var validateCtxKey = contextKey{}

// Validator handles validation of API parameters and settings.
type Validator struct {
	validate *validator.Validate
}

// Context provides runtime context for validation.
type Context struct {
	Commands []string
}

// NewContext creates a Context from the list of dispatchable commands.
func NewContext(commands []string) *Context {
	return &Context{Commands: commands}
}

// NewValidator creates a new Validator with registered custom validators.
func NewValidator() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	_ = v.RegisterValidation("envvar", validateEnvVar)
	_ = v.RegisterValidation("wasm", validateModulePath)
	_ = v.RegisterValidationCtx("command", validateCommand)

	return &Validator{validate: v}
}

// DefaultValidator is a shared validator instance.
var DefaultValidator = NewValidator()

// Validate validates a struct and returns a formatted error if validation fails.
func (v *Validator) Validate(params any) error {
	return v.ValidateCtx(context.Background(), params, nil)
}

// ValidateCtx validates a struct with context and returns a formatted error.
func (v *Validator) ValidateCtx(ctx context.Context, params any, vctx *Context) error {
	ctxVal := context.WithValue(ctx, validateCtxKey, vctx)
	if err := v.validate.StructCtx(ctxVal, params); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			return NewError(validationErrors)
		}
		return fmt.Errorf("validation failed: %w", err)
	}
	return nil
}

// ValidateAndUnmarshal unmarshals JSON params and validates them.
// Returns ErrMissingParams if params is empty, ErrInvalidParams if unmarshal fails,
// or an Error if validation fails.
func ValidateAndUnmarshal[T any](params json.RawMessage, dest *T) error {
	return ValidateAndUnmarshalCtx(context.Background(), params, dest, nil)
}

// ValidateAndUnmarshalCtx unmarshals JSON params and validates them with context.
func ValidateAndUnmarshalCtx[T any](ctx context.Context, params json.RawMessage, dest *T, vctx *Context) error {
	if len(params) == 0 {
		return ErrMissingParams
	}
	if err := json.Unmarshal(params, dest); err != nil {
		return ErrInvalidParams
	}
	return DefaultValidator.ValidateCtx(ctx, dest, vctx)
}

// ParseEnvVar splits a KEY=VALUE entry. The key must be non-empty and the
// value may itself contain '='.
func ParseEnvVar(entry string) (key, value string, ok bool) {
	key, value, ok = strings.Cut(entry, "=")
	if !ok || strings.TrimSpace(key) == "" || strings.ContainsAny(key, " \t\x00") {
		return "", "", false
	}
	return key, value, true
}

// validateEnvVar checks KEY=VALUE format.
func validateEnvVar(fl validator.FieldLevel) bool {
	val := fl.Field().String()
	if val == "" {
		return true
	}
	_, _, ok := ParseEnvVar(val)
	return ok
}

// validateModulePath accepts empty paths and any path to a .wasm file.
func validateModulePath(fl validator.FieldLevel) bool {
	val := fl.Field().String()
	if val == "" {
		return true
	}
	return strings.EqualFold(filepath.Ext(val), ".wasm")
}

// validateCommand checks if the command exists (context-aware).
func validateCommand(ctx context.Context, fl validator.FieldLevel) bool {
	val := fl.Field().String()
	if val == "" {
		return true
	}
	vctx, ok := ctx.Value(validateCtxKey).(*Context)
	if !ok || vctx == nil {
		return true // No context means skip validation
	}
	for _, c := range vctx.Commands {
		if c == val {
			return true
		}
	}
	return false
}
