// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package historian

import (
	"github.com/bitmark-inc/txguard/fault"
	"github.com/bitmark-inc/txguard/record"
	"github.com/bitmark-inc/txguard/responsecode"
	"github.com/bitmark-inc/txguard/timestamp"
	"github.com/bitmark-inc/txguard/transactionid"
	"github.com/bitmark-inc/txguard/txbody"
)

// InProgressChild - a child transaction under construction
type InProgressChild struct {
	SourceID int
	Body     *txbody.Body
	Record   *record.Builder
}

func (c *InProgressChild) isStreamed() bool {
	return !c.Record.IsReverted() && !c.Record.ShouldNotBeExternalized()
}

// Context - record bookkeeping for one top level transaction
type Context struct {
	h   *Historian
	top TopLevel

	preceding    []*InProgressChild
	following    []*InProgressChild
	lastSourceID int

	finalised   bool
	systemNonce int32
}

// ConsensusTime - consensus time of the top level transaction
func (ctx *Context) ConsensusTime() timestamp.Timestamp {
	return ctx.top.ConsensusTime
}

// TopLevelRecord - builder of the top level record
func (ctx *Context) TopLevelRecord() *record.Builder {
	return ctx.top.Record
}

// NextChildRecordSourceID - identifies one business logic invocation,
// starts at 1 for every top level transaction
func (ctx *Context) NextChildRecordSourceID() int {
	ctx.lastSourceID += 1
	return ctx.lastSourceID
}

// NextFollowingChildConsensusTime - time the next following child
// would take if every child so far is streamed
//
// asking for a time beyond the allowed offset is an invariant breach
func (ctx *Context) NextFollowingChildConsensusTime() timestamp.Timestamp {
	n := len(ctx.following) + 1
	if !ctx.h.tracker.IsAllowableFollowingOffset(n) {
		fault.Panicf("no consensus time available for following child: %d of %s", n, ctx.top.TransactionID)
	}
	return ctx.top.ConsensusTime.PlusNanos(int64(n))
}

// TrackPrecedingChildRecord - add a child placed before the top level
// transaction
//
// if the new child does not fit every child so far is reverted and
// fault.ErrMaxChildRecordsExceeded is returned
func (ctx *Context) TrackPrecedingChildRecord(sourceID int, body *txbody.Body, rec *record.Builder) (*InProgressChild, error) {
	if !ctx.h.tracker.IsAllowablePrecedingOffset(len(ctx.preceding) + 1) {
		ctx.revertAll()
		return nil, fault.ErrMaxChildRecordsExceeded
	}
	child := &InProgressChild{SourceID: sourceID, Body: body, Record: rec}
	ctx.preceding = append(ctx.preceding, child)
	return child, nil
}

// TrackFollowingChildRecord - add a child placed after the top level
// transaction, sidecars are attached to the child's record
func (ctx *Context) TrackFollowingChildRecord(sourceID int, body *txbody.Body, rec *record.Builder, sidecars ...record.Sidecar) (*InProgressChild, error) {
	if !ctx.h.tracker.IsAllowableFollowingOffset(len(ctx.following) + 1) {
		ctx.revertAll()
		return nil, fault.ErrMaxChildRecordsExceeded
	}
	for _, s := range sidecars {
		rec.AddSidecar(s.Kind, s.Payload)
	}
	child := &InProgressChild{SourceID: sourceID, Body: body, Record: rec}
	ctx.following = append(ctx.following, child)
	return child, nil
}

// RevertChildRecordsFromSource - revert only the children of one source
func (ctx *Context) RevertChildRecordsFromSource(sourceID int) {
	for _, list := range [][]*InProgressChild{ctx.preceding, ctx.following} {
		for _, c := range list {
			if sourceID == c.SourceID {
				c.Record.Revert()
			}
		}
	}
}

// CustomizeSuccessor - apply customise to the most recent following
// child accepted by match
func (ctx *Context) CustomizeSuccessor(match func(*InProgressChild) bool, customise func(*InProgressChild)) {
	for i := len(ctx.following) - 1; i >= 0; i -= 1 {
		if match(ctx.following[i]) {
			customise(ctx.following[i])
			return
		}
	}
}

// HasThrottleCapacityForChildTransactions - reserve throttle capacity
// for the successful non-contract following children
//
// either every reservation is made or none is
func (ctx *Context) HasThrottleCapacityForChildTransactions() bool {
	n := 0
	for _, c := range ctx.following {
		if responsecode.Success != c.Record.Status() {
			continue
		}
		if nil != c.Body && c.Body.Function.IsContract() {
			continue
		}
		n += 1
	}
	return ctx.h.throttle.reserve(ctx.top.ConsensusTime.Time(), n)
}

// NextSystemTransactionID - identifier for a system transaction
// created on behalf of the top level transaction
//
// only valid after Finalise, earlier use is an invariant breach
func (ctx *Context) NextSystemTransactionID() transactionid.ID {
	if !ctx.finalised {
		fault.Panicf("system transaction id requested before top level record of: %s", ctx.top.TransactionID)
	}
	id := ctx.top.TransactionID.WithoutScheduled().WithNonce(ctx.systemNonce)
	ctx.systemNonce += 1
	return id
}

func (ctx *Context) revertAll() {
	for _, c := range ctx.preceding {
		c.Record.Revert()
	}
	for _, c := range ctx.following {
		c.Record.Revert()
	}
	ctx.h.log.Warnf("max child records exceeded: %s  preceding: %d  following: %d", ctx.top.TransactionID, len(ctx.preceding), len(ctx.following))
}
