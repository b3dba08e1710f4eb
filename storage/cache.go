// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"time"

	cache "github.com/patrickmn/go-cache"
)

// what a batched write will do to a key when committed
type pendingOp int

const (
	opPut pendingOp = iota
	opDelete
)

type pendingWrite struct {
	op    pendingOp
	value []byte
}

// Overlay - view of the writes held in an uncommitted batch so that
// reads inside one consensus step see its own earlier writes
type Overlay interface {
	lookup(key []byte) (pendingWrite, bool)
	put(key []byte, value []byte)
	remove(key []byte)
	clear()
}

// entries never expire; the janitor only runs for items set with a
// lifetime, cleared explicitly at commit or abort
const overlayJanitor = 5 * time.Minute

type batchOverlay struct {
	writes *cache.Cache
}

func newOverlay() Overlay {
	return &batchOverlay{
		writes: cache.New(cache.NoExpiration, overlayJanitor),
	}
}

func (o *batchOverlay) lookup(key []byte) (pendingWrite, bool) {
	item, found := o.writes.Get(string(key))
	if !found {
		return pendingWrite{}, false
	}
	return item.(pendingWrite), true
}

func (o *batchOverlay) put(key []byte, value []byte) {
	o.writes.Set(string(key), pendingWrite{op: opPut, value: value}, cache.NoExpiration)
}

func (o *batchOverlay) remove(key []byte) {
	o.writes.Set(string(key), pendingWrite{op: opDelete}, cache.NoExpiration)
}

func (o *batchOverlay) clear() {
	o.writes.Flush()
}
