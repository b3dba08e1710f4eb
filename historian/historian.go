// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package historian

import (
	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/txguard/account"
	"github.com/bitmark-inc/txguard/record"
	"github.com/bitmark-inc/txguard/responsecode"
	"github.com/bitmark-inc/txguard/timestamp"
	"github.com/bitmark-inc/txguard/transactionid"
)

// RecordCache - receives every finalised record
type RecordCache interface {
	SetPostConsensus(transactionid.ID, responsecode.Code, *record.Record)
}

// Creator - persists a finalised record, the returned record is the
// one that is cached
type Creator interface {
	SaveExpiringRecord(payer account.ID, rec *record.Record, consensusSecond int64, submittingMember int64) (*record.Record, error)
}

// TopLevel - the transaction whose consensus handling creates a context
type TopLevel struct {
	ConsensusTime    timestamp.Timestamp
	TransactionID    transactionid.ID
	EffectivePayer   account.ID
	SubmittingMember int64
	Record           *record.Builder
	Signed           []byte
}

// StreamObject - one finalised record in stream order
type StreamObject struct {
	Record      *record.Record
	Transaction []byte
	Timestamp   timestamp.Timestamp
	Sidecars    []record.Sidecar
}

// Result - all records produced for one top level transaction
type Result struct {
	TopLevel  StreamObject
	Preceding []StreamObject
	Following []StreamObject
}

// Historian - shared state across top level transactions
//
// only the consensus handling goroutine may use a historian
type Historian struct {
	log      *logger.L
	cache    RecordCache
	creator  Creator
	tracker  *TimeTracker
	throttle *ChildThrottle
}

// New - create a historian
func New(cache RecordCache, creator Creator, tracker *TimeTracker, throttle *ChildThrottle) *Historian {
	return &Historian{
		log:      logger.New("historian"),
		cache:    cache,
		creator:  creator,
		tracker:  tracker,
		throttle: throttle,
	}
}

// Tracker - the consensus time tracker
func (h *Historian) Tracker() *TimeTracker {
	return h.tracker
}

// Begin - start handling a top level transaction
func (h *Historian) Begin(top TopLevel) *Context {
	if nil == top.Record {
		top.Record = record.NewBuilder()
	}
	top.Record.SetTransactionID(top.TransactionID).SetConsensusTime(top.ConsensusTime)
	h.tracker.Reset(top.ConsensusTime)
	return &Context{
		h:   h,
		top: top,
	}
}
