// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package platform

import (
	"sync"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/txguard/fault"
)

// Queue - in process platform backed by a bounded channel
//
// a full queue rejects rather than blocks
type Queue struct {
	sync.RWMutex
	log    *logger.L
	items  chan []byte
	closed bool
}

// NewQueue - create a queue holding at most size transactions
func NewQueue(size int) (*Queue, error) {
	if size <= 0 {
		return nil, fault.ErrInvalidCount
	}
	return &Queue{
		log:   logger.New("platform"),
		items: make(chan []byte, size),
	}, nil
}

// CreateTransaction - enqueue without blocking
func (q *Queue) CreateTransaction(data []byte) bool {
	q.RLock()
	defer q.RUnlock()

	if q.closed {
		q.log.Debug("rejected: queue closed")
		return false
	}

	select {
	case q.items <- data:
		return true
	default:
		q.log.Warnf("rejected: queue full: %d", cap(q.items))
		return false
	}
}

// Transactions - channel the consumer reads, closed by Close
func (q *Queue) Transactions() <-chan []byte {
	return q.items
}

// Len - number of transactions waiting
func (q *Queue) Len() int {
	return len(q.items)
}

// Close - reject all further transactions
func (q *Queue) Close() {
	q.Lock()
	defer q.Unlock()

	if q.closed {
		return
	}
	q.closed = true
	close(q.items)
}
