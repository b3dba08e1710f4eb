// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package handler

import (
	"sync"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/txguard/dedup"
	"github.com/bitmark-inc/txguard/fault"
	"github.com/bitmark-inc/txguard/historian"
	"github.com/bitmark-inc/txguard/record"
	"github.com/bitmark-inc/txguard/reservoir"
	"github.com/bitmark-inc/txguard/responsecode"
	"github.com/bitmark-inc/txguard/timestamp"
	"github.com/bitmark-inc/txguard/txbody"
)

// Marker - counts one occurrence
type Marker interface {
	Mark()
}

// Streamer - receives every finalised record set, must not block
type Streamer interface {
	Send(from string, item interface{}) bool
}

// Handler - turns consensus events into finalised records
type Handler struct {
	sync.Mutex
	log        *logger.L
	historian  *historian.Historian
	records    reservoir.Reservoir
	submitted  *dedup.Cache
	duplicates Marker
	stream     Streamer
	started    bool
}

// New - create a handler
func New(h *historian.Historian, records reservoir.Reservoir, submitted *dedup.Cache, duplicates Marker) *Handler {
	return &Handler{
		log:        logger.New("handler"),
		historian:  h,
		records:    records,
		submitted:  submitted,
		duplicates: duplicates,
	}
}

// SetStream - also send each result to a record stream
func (hd *Handler) SetStream(stream Streamer) {
	hd.Lock()
	hd.stream = stream
	hd.Unlock()
}

// Resume - continue after an earlier run persisted records up to
// latest, events at or before latest are then refused
//
// a zero latest means nothing was persisted and changes nothing
func (hd *Handler) Resume(latest timestamp.Timestamp) {
	if latest.IsZero() {
		return
	}
	hd.Lock()
	defer hd.Unlock()
	hd.historian.Tracker().Reset(latest)
	hd.started = true
	hd.log.Infof("resume after: %s  first usable: %s", latest, hd.historian.Tracker().FirstUsableTime())
}

// Handle - process one event
//
// an event that cannot be decoded produces no record and its error is
// returned; a storage failure while finalising is fatal
func (hd *Handler) Handle(event Event) (*historian.Result, error) {
	hd.Lock()
	defer hd.Unlock()

	log := hd.log

	if hd.started && event.ConsensusTime.Before(hd.historian.Tracker().FirstUsableTime()) {
		log.Warnf("consensus time: %s  precedes first usable: %s", event.ConsensusTime, hd.historian.Tracker().FirstUsableTime())
		return nil, fault.ErrInvalidTimestamp
	}

	signed := event.Transaction
	body, err := txbody.Packed(signed).Unpack()
	if nil == err && body.HasUncheckedSubmit() {
		signed = body.UncheckedSubmit
		body, err = txbody.Packed(signed).Unpack()
	}
	if nil == err {
		err = body.ID.Validate()
	}
	if nil != err {
		log.Warnf("consensus time: %s  member: %d  error: %s", event.ConsensusTime, event.SubmittingMember, err)
		return nil, err
	}

	// seen through consensus, so late submissions of the same
	// identifier are refused at this node too
	hd.submitted.Record(body.ID)

	status := responsecode.Success
	if reservoir.NoDuplicate != hd.records.HasDuplicate(body.ID, event.SubmittingMember) {
		status = responsecode.DuplicateTransaction
		if nil != hd.duplicates {
			hd.duplicates.Mark()
		}
	}

	builder := record.NewBuilder().
		SetStatus(status).
		SetMemo(body.Memo).
		SetFee(body.Fee)
	if 0 != body.Fee {
		builder.AddTransfer(body.ID.Payer, -int64(body.Fee))
		if !body.NodeAccount.IsZero() {
			builder.AddTransfer(body.NodeAccount, int64(body.Fee))
		}
	}

	ctx := hd.historian.Begin(historian.TopLevel{
		ConsensusTime:    event.ConsensusTime,
		TransactionID:    body.ID,
		EffectivePayer:   body.ID.Payer,
		SubmittingMember: event.SubmittingMember,
		Record:           builder,
		Signed:           signed,
	})

	result, err := ctx.Finalise()
	if nil != err {
		fault.PanicWithError("finalise records", err)
	}
	hd.started = true

	if nil != hd.stream && !hd.stream.Send("handler", result) {
		log.Warnf("record stream full, dropped: %s", body.ID)
	}

	log.Debugf("id: %s  status: %s  consensus time: %s", body.ID, status, event.ConsensusTime)

	return result, nil
}
