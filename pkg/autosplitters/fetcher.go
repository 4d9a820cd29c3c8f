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
	"fmt"
	"path/filepath"

	"github.com/ZaparooProject/zaparoo-livesplit/pkg/shared/httpclient"
	"github.com/spf13/afero"
)

var (
	// ErrTransport covers unreachable servers, bad statuses and failed body
	// reads.
	ErrTransport = errors.New("transport error")
	// ErrDecode means a document was retrieved but is not a valid list.
	ErrDecode = errors.New("decode error")
	// ErrLocalIO means the cached list could not be read.
	ErrLocalIO = errors.New("local i/o error")
)

type Source int

const (
	SourceRemote Source = iota
	SourceCache
)

func (s Source) String() string {
	if s == SourceCache {
		return "cache"
	}
	return "remote"
}

// FetchResult is a successfully loaded catalog. When it came from the cache,
// RemoteErr holds the reason the remote fetch failed.
type FetchResult struct {
	Catalog   *Catalog
	RemoteErr error
	Source    Source
}

// FetchError carries both causes when neither the remote list nor the cached
// copy could be loaded.
type FetchError struct {
	Remote error
	Local  error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("remote: %v; local: %v", e.Remote, e.Local)
}

func (e *FetchError) Unwrap() []error {
	return []error{e.Remote, e.Local}
}

type Fetcher struct {
	client *httpclient.Client
	fs     afero.Fs
	url    string
}

func NewFetcher(client *httpclient.Client, fs afero.Fs, url string) *Fetcher {
	return &Fetcher{
		client: client,
		fs:     fs,
		url:    url,
	}
}

// Fetch loads the catalog from the remote URL, falling back to the cached
// copy in cacheDir. The remote result wins whenever it succeeds. Persisting
// a fresh remote copy is left to the caller.
func (f *Fetcher) Fetch(ctx context.Context, cacheDir string) (*FetchResult, error) {
	catalog, remoteErr := f.fetchRemote(ctx)
	if remoteErr == nil {
		return &FetchResult{Catalog: catalog, Source: SourceRemote}, nil
	}

	catalog, localErr := f.readCache(cacheDir)
	if localErr == nil {
		return &FetchResult{
			Catalog:   catalog,
			Source:    SourceCache,
			RemoteErr: remoteErr,
		}, nil
	}

	return nil, &FetchError{Remote: remoteErr, Local: localErr}
}

func (f *Fetcher) fetchRemote(ctx context.Context) (*Catalog, error) {
	resp, err := f.client.Fetch(ctx, f.url)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTransport, err)
	}
	catalog, err := Parse(string(resp.Body))
	if err != nil {
		return nil, fmt.Errorf("%w: remote list: %w", ErrDecode, err)
	}
	return catalog, nil
}

func (f *Fetcher) readCache(cacheDir string) (*Catalog, error) {
	path := filepath.Join(cacheDir, ListFileName)
	data, err := afero.ReadFile(f.fs, path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLocalIO, err)
	}
	catalog, err := Parse(string(data))
	if err != nil {
		return nil, fmt.Errorf("%w: cached list %s: %w", ErrDecode, path, err)
	}
	return catalog, nil
}
