// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package dedup - identifiers already handed to consensus by this node
//
// the check and the insert are separate calls so that the caller can
// make the platform hand-off between them, the caller must hold the
// cache lock around the whole sequence
package dedup

import (
	"sync"
	"time"

	"github.com/bitmark-inc/logger"
	cache "github.com/patrickmn/go-cache"

	"github.com/bitmark-inc/txguard/transactionid"
)

const cleanupInterval = 30 * time.Second

// Cache - set of submitted identifiers with per entry expiry
type Cache struct {
	sync.Mutex

	log              *logger.L
	entries          *cache.Cache
	maxValidDuration time.Duration
	grace            time.Duration
	now              func() time.Time
}

// New - create a cache
//
// an entry lives until its transaction could no longer be submitted,
// i.e. valid start + maxValidDuration, plus the grace period
func New(maxValidDuration time.Duration, grace time.Duration) *Cache {
	return &Cache{
		log:              logger.New("dedup"),
		entries:          cache.New(maxValidDuration+grace, cleanupInterval),
		maxValidDuration: maxValidDuration,
		grace:            grace,
		now:              time.Now,
	}
}

// SetClock - replace the wall clock used to compute expiry
func (c *Cache) SetClock(now func() time.Time) {
	c.now = now
}

// Contains - true if id was already submitted
//
// caller must hold the lock
func (c *Cache) Contains(id transactionid.ID) bool {
	_, found := c.entries.Get(string(id.Key()))
	return found
}

// Add - mark id as submitted
//
// caller must hold the lock
func (c *Cache) Add(id transactionid.ID) {
	ttl := c.ttl(id)
	c.entries.Set(string(id.Key()), struct{}{}, ttl)
	c.log.Debugf("add: %s  ttl: %s", id, ttl)
}

// Record - mark an identifier observed from another node
func (c *Cache) Record(id transactionid.ID) {
	c.Lock()
	c.Add(id)
	c.Unlock()
}

// Size - number of entries, may include expired entries not yet cleaned up
func (c *Cache) Size() int {
	return c.entries.ItemCount()
}

func (c *Cache) ttl(id transactionid.ID) time.Duration {
	end := id.ValidStart.Time().Add(c.maxValidDuration)
	ttl := end.Sub(c.now()) + c.grace
	if ttl < c.grace {
		ttl = c.grace
	}
	return ttl
}
