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
	"fmt"
	"runtime"
	"strings"

	"github.com/ZaparooProject/zaparoo-livesplit/pkg/helpers/command"
)

// MaxURLLength is the maximum allowed URL length for browser opening.
const MaxURLLength = 8192

// ValidateBrowserURL checks if the URL has a valid scheme for browser opening.
// Only http:// and https:// URLs are accepted.
func ValidateBrowserURL(url string) error {
	if len(url) > MaxURLLength {
		return fmt.Errorf("URL too long: %d bytes (max %d)", len(url), MaxURLLength)
	}
	lower := strings.ToLower(url)
	if !strings.HasPrefix(lower, "http://") && !strings.HasPrefix(lower, "https://") {
		return errors.New("invalid URL scheme: must be http:// or https://")
	}
	return nil
}

func browserCommand(goos string) (name string, args []string) {
	switch goos {
	case "darwin":
		return "open", nil
	case "windows":
		return "rundll32", []string{"url.dll,FileProtocolHandler"}
	default:
		return "xdg-open", nil
	}
}

// OpenBrowser opens the given URL in the default web browser. The browser
// process is started but not waited on.
func OpenBrowser(ctx context.Context, exec command.Executor, url string) error {
	if err := ValidateBrowserURL(url); err != nil {
		return err
	}
	name, args := browserCommand(runtime.GOOS)
	args = append(args, url)
	if err := exec.Start(ctx, command.StartOptions{}, name, args...); err != nil {
		return fmt.Errorf("failed to open browser: %w", err)
	}
	return nil
}
