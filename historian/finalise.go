// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package historian

import (
	"github.com/pkg/errors"
	"golang.org/x/crypto/sha3"

	"github.com/bitmark-inc/txguard/fault"
	"github.com/bitmark-inc/txguard/record"
	"github.com/bitmark-inc/txguard/timestamp"
	"github.com/bitmark-inc/txguard/transactionid"
	"github.com/bitmark-inc/txguard/txbody"
)

// Finalise - persist and cache the top level record followed by the
// streamed preceding and following children
//
// a context can only be finalised once
func (ctx *Context) Finalise() (*Result, error) {
	if ctx.finalised {
		return nil, fault.ErrAlreadyFinalised
	}

	top := ctx.top
	consensusNow := top.ConsensusTime

	preceding := streamed(ctx.preceding)
	following := streamed(ctx.following)

	// every child's balance changes, streamed or not, are reported by
	// the child and not by the top level record
	for _, list := range [][]*InProgressChild{ctx.preceding, ctx.following} {
		for _, c := range list {
			top.Record.ExcludeTransfersFrom(c.Record)
		}
	}
	top.Record.SetNumChildRecords(uint16(len(preceding) + len(following)))
	top.Record.StampSidecars()
	if 0 != len(top.Signed) {
		hash := sha3.Sum384(top.Signed)
		top.Record.SetTransactionHash(hash[:])
	}

	nonce := transactionid.UserTransactionNonce + 1
	defer func() {
		ctx.finalised = true
		ctx.systemNonce = nonce
	}()

	saved, err := ctx.save(top.TransactionID, top.Record.Build())
	if nil != err {
		return nil, err
	}
	result := &Result{
		TopLevel: StreamObject{
			Record:      saved,
			Transaction: top.Signed,
			Timestamp:   consensusNow,
			Sidecars:    saved.Sidecars,
		},
	}

	m := len(preceding)
	for i, c := range preceding {
		at := consensusNow.MinusNanos(int64(m - i))
		so, err := ctx.finaliseChild(c, top.TransactionID.WithNonce(nonce), at, timestamp.Timestamp{})
		if nil != err {
			return nil, err
		}
		nonce += 1
		result.Preceding = append(result.Preceding, so)
	}

	for i, c := range following {
		at := consensusNow.PlusNanos(int64(i + 1))
		so, err := ctx.finaliseChild(c, top.TransactionID.WithNonce(nonce), at, consensusNow)
		if nil != err {
			return nil, err
		}
		nonce += 1
		result.Following = append(result.Following, so)
	}

	ctx.h.tracker.SetActualFollowingRecordsCount(len(following))

	ctx.h.log.Debugf("finalised: %s  preceding: %d  following: %d", top.TransactionID, len(preceding), len(following))
	return result, nil
}

func (ctx *Context) finaliseChild(c *InProgressChild, id transactionid.ID, at timestamp.Timestamp, parent timestamp.Timestamp) (StreamObject, error) {
	body := txbody.Body{}
	if nil != c.Body {
		body = *c.Body
	}
	body.ID = id
	if body.Function <= txbody.Unspecified {
		body.Function = txbody.CryptoTransfer
	}
	synthetic, err := body.Pack()
	if nil != err {
		return StreamObject{}, errors.Wrapf(err, "synthetic body: %s", id)
	}
	hash := sha3.Sum384(synthetic)

	c.Record.SetTransactionID(id).
		SetConsensusTime(at).
		SetTransactionHash(hash[:])
	if !parent.IsZero() {
		c.Record.SetParentConsensusTime(parent)
	}
	c.Record.StampSidecars()

	saved, err := ctx.save(id, c.Record.Build())
	if nil != err {
		return StreamObject{}, err
	}
	so := StreamObject{
		Record:      saved,
		Transaction: synthetic,
		Timestamp:   at,
		Sidecars:    saved.Sidecars,
	}
	return so, nil
}

func (ctx *Context) save(id transactionid.ID, built *record.Record) (*record.Record, error) {
	top := ctx.top
	saved, err := ctx.h.creator.SaveExpiringRecord(top.EffectivePayer, built, built.ConsensusTime.Seconds, top.SubmittingMember)
	if nil != err {
		return nil, errors.Wrapf(err, "save record: %s", id)
	}
	ctx.h.cache.SetPostConsensus(id, saved.Status(), saved)
	return saved, nil
}

func streamed(children []*InProgressChild) []*InProgressChild {
	result := make([]*InProgressChild, 0, len(children))
	for _, c := range children {
		if c.isStreamed() {
			result = append(result, c)
		}
	}
	return result
}
