// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package messagebus

import (
	"github.com/bitmark-inc/txguard/counter"
	"github.com/bitmark-inc/txguard/fault"
)

// Message - one queued item and its origin
type Message struct {
	From string
	Item interface{}
}

// Queue - bounded message queue
type Queue struct {
	queue   chan Message
	dropped counter.Counter
}

// New - create a queue holding up to size messages
func New(size int) (*Queue, error) {
	if size <= 0 {
		return nil, fault.ErrInvalidCount
	}
	return &Queue{
		queue: make(chan Message, size),
	}, nil
}

// Send - queue an item without blocking, false if the queue was full
func (q *Queue) Send(from string, item interface{}) bool {
	select {
	case q.queue <- Message{From: from, Item: item}:
		return true
	default:
		q.dropped.Increment()
		return false
	}
}

// Chan - channel to read from
func (q *Queue) Chan() <-chan Message {
	return q.queue
}

// Dropped - messages lost to a full queue
func (q *Queue) Dropped() uint64 {
	return q.dropped.Uint64()
}
