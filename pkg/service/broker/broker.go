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

// Package broker fans the service's notification queue out to every
// consumer. A slow consumer loses notifications instead of stalling the
// others.
package broker

import (
	"context"

	"github.com/ZaparooProject/zaparoo-livesplit/pkg/api/models"
	"github.com/ZaparooProject/zaparoo-livesplit/pkg/helpers/syncutil"
	"github.com/rs/zerolog/log"
)

type Broker struct {
	source      <-chan models.Notification
	subscribers map[int]chan models.Notification
	mu          syncutil.RWMutex
	nextID      int
	closed      bool
}

func New(source <-chan models.Notification) *Broker {
	return &Broker{
		source:      source,
		subscribers: make(map[int]chan models.Notification),
	}
}

// Run forwards notifications until the source closes or ctx is cancelled,
// then closes every subscriber channel.
func (b *Broker) Run(ctx context.Context) {
	defer b.closeAll()
	for {
		select {
		case <-ctx.Done():
			return
		case n, ok := <-b.source:
			if !ok {
				log.Debug().Msg("notification source closed")
				return
			}
			b.publish(n)
		}
	}
}

func (b *Broker) publish(n models.Notification) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	for id, ch := range b.subscribers {
		select {
		case ch <- n:
		default:
			log.Warn().
				Int("subscriber", id).
				Str("method", n.Method).
				Msg("subscriber queue full, dropping notification")
		}
	}
}

// Subscribe registers a consumer with its own queue. Subscribing after the
// broker stopped returns an already closed channel.
func (b *Broker) Subscribe(size int) (ch <-chan models.Notification, id int) {
	b.mu.Lock()
	defer b.mu.Unlock()

	c := make(chan models.Notification, size)
	id = b.nextID
	b.nextID++
	if b.closed {
		close(c)
		return c, id
	}
	b.subscribers[id] = c
	return c, id
}

// Unsubscribe closes the consumer's channel. Unknown ids are ignored.
func (b *Broker) Unsubscribe(id int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if ch, ok := b.subscribers[id]; ok {
		delete(b.subscribers, id)
		close(ch)
	}
}

func (b *Broker) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subscribers)
}

func (b *Broker) closeAll() {
	b.mu.Lock()
	defer b.mu.Unlock()
	for id, ch := range b.subscribers {
		close(ch)
		delete(b.subscribers, id)
	}
	b.closed = true
}
