// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package handler

import (
	"time"

	"github.com/bitmark-inc/txguard/timestamp"
)

// Loopback - stands in for a consensus platform on a single node
//
// every transaction taken from the queue reaches consensus immediately,
// at the local time or the first usable time if that is later
type Loopback struct {
	handler      *Handler
	transactions <-chan []byte
	member       int64
	now          func() time.Time
}

// NewLoopback - consume transactions handed to an in-process queue
func NewLoopback(handler *Handler, transactions <-chan []byte, member int64) *Loopback {
	return &Loopback{
		handler:      handler,
		transactions: transactions,
		member:       member,
		now:          time.Now,
	}
}

// Run - handle transactions until shutdown or the queue is closed
func (l *Loopback) Run(args interface{}, shutdown <-chan struct{}) {
	log := l.handler.log

	log.Info("loopback starting…")
loop:
	for {
		select {
		case <-shutdown:
			break loop
		case tx, ok := <-l.transactions:
			if !ok {
				break loop
			}
			l.handle(tx)
		}
	}
	log.Info("loopback stopped")
}

func (l *Loopback) handle(tx []byte) {
	at := timestamp.FromTime(l.now())
	l.handler.Lock()
	first := l.handler.historian.Tracker().FirstUsableTime()
	started := l.handler.started
	l.handler.Unlock()
	if started && at.Before(first) {
		at = first
	}
	l.handler.Handle(Event{
		ConsensusTime:    at,
		SubmittingMember: l.member,
		Transaction:      tx,
	})
}
