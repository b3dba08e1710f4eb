// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package pending - short lived markers for transactions accepted but
// not yet through consensus
//
// an expired marker reads the same as one that never existed
package pending

import (
	"sync"
	"time"

	"github.com/bitmark-inc/logger"
	"github.com/dgraph-io/ristretto"
	"github.com/pkg/errors"

	"github.com/bitmark-inc/txguard/fault"
	"github.com/bitmark-inc/txguard/transactionid"
)

// ristretto counters per expected entry
const countersPerEntry = 10

// Cache - capacity bounded set of markers with a fixed time to live
//
// once closed every marker reads as absent and new markers are ignored
type Cache struct {
	sync.RWMutex
	log     *logger.L
	markers *ristretto.Cache
	ttl     time.Duration
	closed  bool
}

// New - create a cache holding at most capacity markers
func New(ttl time.Duration, capacity int64) (*Cache, error) {
	if capacity <= 0 || ttl <= 0 {
		return nil, fault.ErrInvalidCount
	}

	markers, err := ristretto.NewCache(&ristretto.Config{
		NumCounters:        capacity * countersPerEntry,
		MaxCost:            capacity,
		BufferItems:        64,
		IgnoreInternalCost: true,
	})
	if nil != err {
		return nil, errors.Wrap(err, "create pending receipt cache")
	}

	c := &Cache{
		log:     logger.New("pending"),
		markers: markers,
		ttl:     ttl,
	}
	return c, nil
}

// AddPreConsensus - mark id as seen and awaiting consensus
func (c *Cache) AddPreConsensus(id transactionid.ID) {
	c.RLock()
	defer c.RUnlock()
	if c.closed {
		return
	}
	if !c.markers.SetWithTTL(string(id.Key()), struct{}{}, 1, c.ttl) {
		c.log.Warnf("marker dropped: %s", id)
		return
	}
	c.markers.Wait()
	c.log.Debugf("pending: %s", id)
}

// IsPresent - true while a live marker exists for id
func (c *Cache) IsPresent(id transactionid.ID) bool {
	c.RLock()
	defer c.RUnlock()
	if c.closed {
		return false
	}
	_, found := c.markers.Get(string(id.Key()))
	return found
}

// Close - release the cache goroutines, further calls do nothing
func (c *Cache) Close() {
	c.Lock()
	defer c.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	c.markers.Close()
}
