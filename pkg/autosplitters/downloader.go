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
	"fmt"
	"mime"
	"net/url"
	"path"
	"path/filepath"
	"strings"

	"github.com/ZaparooProject/zaparoo-livesplit/pkg/shared/httpclient"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
)

// FallbackFileName is used when neither the response nor the URL names the
// file.
const FallbackFileName = "Unknown" + ModuleExt

type Downloader struct {
	client *httpclient.Client
	fs     afero.Fs
}

func NewDownloader(client *httpclient.Client, fs afero.Fs) *Downloader {
	return &Downloader{client: client, fs: fs}
}

// Acquire downloads every file of entry into destDir and returns the first
// one that is a loadable module. A failing URL is logged and skipped. Files
// are re-downloaded and overwritten on every call.
func (d *Downloader) Acquire(ctx context.Context, entry *Entry, destDir string) (string, bool) {
	if err := d.fs.MkdirAll(destDir, 0o750); err != nil {
		log.Error().Err(err).Str("dir", destDir).Msg("failed to create auto splitter directory")
		return "", false
	}

	written := make([]string, 0, len(entry.URLs))
	for _, u := range entry.URLs {
		p, err := d.downloadFile(ctx, u, destDir)
		if err != nil {
			log.Error().Err(err).Str("url", u).Msg("failed downloading auto splitter file")
			continue
		}
		written = append(written, p)
	}

	return FindModule(written)
}

// AcquireForGame looks up game in catalog and acquires its entry.
func (d *Downloader) AcquireForGame(
	ctx context.Context,
	catalog *Catalog,
	game string,
	destDir string,
) (string, bool) {
	entry, ok := catalog.FindForGame(game)
	if !ok {
		return "", false
	}
	return d.Acquire(ctx, &entry, destDir)
}

func (d *Downloader) downloadFile(ctx context.Context, rawURL, destDir string) (string, error) {
	resp, err := d.client.Fetch(ctx, rawURL)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrTransport, err)
	}

	name := FileName(resp.Header.Get("Content-Disposition"), rawURL)
	dest := filepath.Join(destDir, name)
	if err := afero.WriteFile(d.fs, dest, resp.Body, 0o644); err != nil {
		return "", fmt.Errorf("%w: %w", ErrLocalIO, err)
	}

	log.Info().Str("url", rawURL).Str("path", dest).Int("bytes", len(resp.Body)).
		Msg("downloaded auto splitter file")
	return dest, nil
}

// FileName picks the local name for a download: the attachment filename
// from the Content-Disposition header, then the last URL path segment, then
// FallbackFileName. The result is always a single path element.
func FileName(contentDisposition, rawURL string) string {
	if contentDisposition != "" {
		if _, params, err := mime.ParseMediaType(contentDisposition); err == nil {
			if name := sanitizeFileName(params["filename"]); name != "" {
				return name
			}
		}
	}

	if u, err := url.Parse(rawURL); err == nil {
		seg := path.Base(u.EscapedPath())
		if unescaped, err := url.PathUnescape(seg); err == nil {
			seg = unescaped
		}
		if name := sanitizeFileName(seg); name != "" {
			return name
		}
	}

	return FallbackFileName
}

// sanitizeFileName reduces name to its final element, rejecting anything
// that would resolve outside the destination directory.
func sanitizeFileName(name string) string {
	name = strings.ReplaceAll(name, "\\", "/")
	name = path.Base(name)
	switch name {
	case "", ".", "..", "/":
		return ""
	}
	return name
}

// FindModule returns the first path with the module extension.
func FindModule(paths []string) (string, bool) {
	for _, p := range paths {
		if filepath.Ext(p) == ModuleExt {
			return p, true
		}
	}
	return "", false
}
