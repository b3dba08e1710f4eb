// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package handler

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/bitmark-inc/logger"
	zmq "github.com/pebbe/zmq4"
	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/txguard/account"
	"github.com/bitmark-inc/txguard/dedup"
	"github.com/bitmark-inc/txguard/expiry"
	"github.com/bitmark-inc/txguard/fault"
	"github.com/bitmark-inc/txguard/historian"
	"github.com/bitmark-inc/txguard/history"
	"github.com/bitmark-inc/txguard/pending"
	"github.com/bitmark-inc/txguard/record"
	"github.com/bitmark-inc/txguard/reservoir"
	"github.com/bitmark-inc/txguard/responsecode"
	"github.com/bitmark-inc/txguard/storage"
	"github.com/bitmark-inc/txguard/timestamp"
	"github.com/bitmark-inc/txguard/transactionid"
	"github.com/bitmark-inc/txguard/txbody"
)

const (
	testingDirName = "testing"
)

func TestMain(m *testing.M) {
	_ = os.RemoveAll(testingDirName)
	_ = os.Mkdir(testingDirName, 0700)

	logConfig := logger.Configuration{
		Directory: testingDirName,
		File:      "testing.log",
		Size:      1048576,
		Count:     10,
		Console:   false,
		Levels: map[string]string{
			logger.DefaultTag: "critical",
		},
	}
	_ = logger.Initialise(logConfig)

	rc := m.Run()

	logger.Finalise()
	_ = os.RemoveAll(testingDirName)
	os.Exit(rc)
}

// stamps expiry without touching a database
type creator struct{}

func (creator) SaveExpiringRecord(payer account.ID, rec *record.Record, consensusSecond int64, submittingMember int64) (*record.Record, error) {
	saved := rec.Copy()
	saved.Expiry = consensusSecond + 180
	saved.SubmittingMember = submittingMember
	return saved, nil
}

type marker int

func (m *marker) Mark() { *m += 1 }

type fixture struct {
	handler    *Handler
	records    *reservoir.RecordCache
	submitted  *dedup.Cache
	duplicates *marker
}

func setup(t *testing.T) fixture {
	p, err := pending.New(time.Minute, 1000)
	assert.Nil(t, err, "pending")
	records := reservoir.New(p, history.New(10))
	h := historian.New(records, creator{}, historian.NewTimeTracker(3, 50), historian.NewChildThrottle(500, 500))
	submitted := dedup.New(180*time.Second, 10*time.Second)
	duplicates := new(marker)
	return fixture{
		handler:    New(h, records, submitted, duplicates),
		records:    records,
		submitted:  submitted,
		duplicates: duplicates,
	}
}

var (
	payer = account.New(1001)
	node  = account.New(3)
)

func makeBody(t *testing.T, seconds int64) (transactionid.ID, []byte) {
	id := transactionid.New(payer, timestamp.Timestamp{Seconds: seconds})
	body := txbody.Body{
		ID:          id,
		NodeAccount: node,
		Fee:         250,
		Memo:        "handler",
		Function:    txbody.CryptoTransfer,
	}
	packed, err := body.Pack()
	assert.Nil(t, err, "pack")
	return id, packed
}

func TestHandleSuccess(t *testing.T) {
	f := setup(t)

	id, raw := makeBody(t, 1000)
	at := timestamp.Timestamp{Seconds: 1010, Nanos: 7}
	result, err := f.handler.Handle(Event{ConsensusTime: at, SubmittingMember: 2, Transaction: raw})
	assert.Nil(t, err, "handle")

	top := result.TopLevel.Record
	assert.Equal(t, id, top.TransactionID)
	assert.Equal(t, responsecode.Success, top.Status())
	assert.Equal(t, at, top.ConsensusTime)
	assert.Equal(t, "handler", top.Memo)
	assert.Equal(t, uint64(250), top.Fee)
	assert.Equal(t, int64(1190), top.Expiry)
	assert.Equal(t, int64(2), top.SubmittingMember)
	assert.Equal(t, 48, len(top.TransactionHash), "sha3-384 of the signed bytes")
	assert.ElementsMatch(t, []record.AccountAmount{
		{Account: payer, Amount: -250},
		{Account: node, Amount: 250},
	}, top.Transfers)

	receipt := f.records.GetPriorityReceipt(id)
	assert.NotNil(t, receipt, "cached")
	assert.Equal(t, responsecode.Success, receipt.Status)
	assert.True(t, f.submitted.Contains(id), "recorded for deduplication")
	assert.Equal(t, marker(0), *f.duplicates)
}

func TestHandleDuplicate(t *testing.T) {
	f := setup(t)

	id, raw := makeBody(t, 1000)
	_, err := f.handler.Handle(Event{ConsensusTime: timestamp.Timestamp{Seconds: 1010}, SubmittingMember: 2, Transaction: raw})
	assert.Nil(t, err, "first")

	result, err := f.handler.Handle(Event{ConsensusTime: timestamp.Timestamp{Seconds: 1011}, SubmittingMember: 4, Transaction: raw})
	assert.Nil(t, err, "second")
	assert.Equal(t, responsecode.DuplicateTransaction, result.TopLevel.Record.Status())
	assert.Equal(t, marker(1), *f.duplicates)

	assert.Equal(t, responsecode.Success, f.records.GetPriorityReceipt(id).Status, "first observed keeps priority")
	duplicates := f.records.GetDuplicateRecords(id)
	assert.Equal(t, 1, len(duplicates))
	assert.Equal(t, int64(4), duplicates[0].SubmittingMember)
}

func TestHandleUncheckedSubmit(t *testing.T) {
	f := setup(t)

	innerID, inner := makeBody(t, 1000)
	outer := txbody.Body{
		ID:              transactionid.New(payer, timestamp.Timestamp{Seconds: 999}),
		Function:        txbody.UncheckedSubmit,
		UncheckedSubmit: inner,
	}
	raw, err := outer.Pack()
	assert.Nil(t, err, "pack")

	result, err := f.handler.Handle(Event{ConsensusTime: timestamp.Timestamp{Seconds: 1010}, SubmittingMember: 2, Transaction: raw})
	assert.Nil(t, err, "handle")
	assert.Equal(t, innerID, result.TopLevel.Record.TransactionID)
	assert.Equal(t, []byte(inner), result.TopLevel.Transaction)
	assert.Nil(t, f.records.GetPriorityReceipt(outer.ID), "wrapper has no record")
}

func TestHandleMalformed(t *testing.T) {
	f := setup(t)

	result, err := f.handler.Handle(Event{ConsensusTime: timestamp.Timestamp{Seconds: 1010}, Transaction: []byte{}})
	assert.Nil(t, result)
	assert.True(t, fault.IsErrInvalid(err), "invalid body")
}

func TestHandleConsensusOrder(t *testing.T) {
	f := setup(t)

	_, first := makeBody(t, 1000)
	_, second := makeBody(t, 1001)
	_, err := f.handler.Handle(Event{ConsensusTime: timestamp.Timestamp{Seconds: 1010}, Transaction: first})
	assert.Nil(t, err, "first")

	_, err = f.handler.Handle(Event{ConsensusTime: timestamp.Timestamp{Seconds: 1010, Nanos: 2}, Transaction: second})
	assert.Equal(t, fault.ErrInvalidTimestamp, err, "inside the previous time budget")

	_, err = f.handler.Handle(Event{ConsensusTime: timestamp.Timestamp{Seconds: 1010, Nanos: 4}, Transaction: second})
	assert.Nil(t, err, "first usable time")
}

func TestEventEncoding(t *testing.T) {
	event := Event{
		ConsensusTime:    timestamp.Timestamp{Seconds: 1000, Nanos: 3},
		SubmittingMember: 5,
		Transaction:      []byte{1, 2, 3},
	}
	buffer, err := PackEvent(event)
	assert.Nil(t, err, "pack")

	back, err := UnpackEvent(buffer)
	assert.Nil(t, err, "unpack")
	assert.Equal(t, event, back)

	buffer, err = PackEvent(Event{SubmittingMember: 5})
	assert.Nil(t, err, "pack")
	_, err = UnpackEvent(buffer)
	assert.Equal(t, fault.ErrInvalidTimestamp, err, "no consensus time")
}

func TestLoopback(t *testing.T) {
	f := setup(t)

	now := time.Unix(1010, 0)
	transactions := make(chan []byte, 2)
	l := NewLoopback(f.handler, transactions, 9)
	l.now = func() time.Time { return now }

	firstID, first := makeBody(t, 1000)
	secondID, second := makeBody(t, 1001)
	transactions <- first
	transactions <- second
	close(transactions)

	l.Run(nil, make(chan struct{}))

	one := f.records.GetPriorityRecord(firstID)
	two := f.records.GetPriorityRecord(secondID)
	assert.NotNil(t, one, "first handled")
	assert.NotNil(t, two, "second handled")
	assert.Equal(t, timestamp.Timestamp{Seconds: 1010}, one.ConsensusTime)
	assert.Equal(t, timestamp.Timestamp{Seconds: 1010, Nanos: 4}, two.ConsensusTime, "moved to the first usable time")
	assert.Equal(t, int64(9), two.SubmittingMember)
}

func TestConsumer(t *testing.T) {
	f := setup(t)

	const endpoint = "inproc://txguard-consensus-test"
	push, err := zmq.NewSocket(zmq.PUSH)
	assert.Nil(t, err, "socket")
	defer push.Close()
	assert.Nil(t, push.Bind(endpoint), "bind")

	c, err := NewConsumer(endpoint, f.handler)
	assert.Nil(t, err, "consumer")

	shutdown := make(chan struct{})
	done := make(chan struct{})
	go func() {
		c.Run(nil, shutdown)
		close(done)
	}()

	id, raw := makeBody(t, 1000)
	buffer, err := PackEvent(Event{ConsensusTime: timestamp.Timestamp{Seconds: 1010}, SubmittingMember: 1, Transaction: raw})
	assert.Nil(t, err, "pack")
	_, err = push.SendBytes([]byte{0xff, 0xff}, 0)
	assert.Nil(t, err, "send garbage")
	_, err = push.SendBytes(buffer, 0)
	assert.Nil(t, err, "send")

	deadline := time.Now().Add(5 * time.Second)
	for nil == f.records.GetPriorityRecord(id) && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	assert.NotNil(t, f.records.GetPriorityRecord(id), "event handled")

	close(shutdown)
	<-done
}

type stream struct {
	full  bool
	items []interface{}
}

func (s *stream) Send(from string, item interface{}) bool {
	if s.full {
		return false
	}
	s.items = append(s.items, item)
	return true
}

func TestHandleStreamsResult(t *testing.T) {
	f := setup(t)
	s := &stream{}
	f.handler.SetStream(s)

	_, raw := makeBody(t, 1000)
	result, err := f.handler.Handle(Event{ConsensusTime: timestamp.Timestamp{Seconds: 1010}, Transaction: raw})
	assert.Nil(t, err, "handle")
	assert.Equal(t, []interface{}{result}, s.items)

	s.full = true
	_, raw = makeBody(t, 1001)
	_, err = f.handler.Handle(Event{ConsensusTime: timestamp.Timestamp{Seconds: 1011}, Transaction: raw})
	assert.Nil(t, err, "a full stream does not fail handling")
}

func TestResume(t *testing.T) {
	f := setup(t)

	f.handler.Resume(timestamp.Timestamp{Seconds: 5000, Nanos: 10})

	_, raw := makeBody(t, 4990)
	_, err := f.handler.Handle(Event{ConsensusTime: timestamp.Timestamp{Seconds: 5000, Nanos: 10}, SubmittingMember: 2, Transaction: raw})
	assert.Equal(t, fault.ErrInvalidTimestamp, err, "persisted time")

	// room for the maximum preceding children after the last stored record
	_, err = f.handler.Handle(Event{ConsensusTime: timestamp.Timestamp{Seconds: 5000, Nanos: 13}, SubmittingMember: 2, Transaction: raw})
	assert.Equal(t, fault.ErrInvalidTimestamp, err, "preceding would overlap")

	result, err := f.handler.Handle(Event{ConsensusTime: timestamp.Timestamp{Seconds: 5000, Nanos: 14}, SubmittingMember: 2, Transaction: raw})
	assert.Nil(t, err, "first usable")
	assert.NotNil(t, result)
}

func TestResumeNothingPersisted(t *testing.T) {
	f := setup(t)

	f.handler.Resume(timestamp.Timestamp{})

	_, raw := makeBody(t, 1)
	_, err := f.handler.Handle(Event{ConsensusTime: timestamp.Timestamp{Seconds: 10}, SubmittingMember: 2, Transaction: raw})
	assert.Nil(t, err, "not started")
}

// a platform replaying events after a restart must not replace the
// records persisted by the previous run
func TestRestartKeepsPersistedRecords(t *testing.T) {
	databaseFileName := filepath.Join(testingDirName, "restart")
	if err := storage.Initialise(databaseFileName, storage.ReadWrite); nil != err {
		t.Fatalf("storage initialise error: %s", err)
	}
	defer storage.Finalise()

	newHandler := func() (*Handler, *reservoir.RecordCache) {
		p, err := pending.New(time.Minute, 1000)
		assert.Nil(t, err, "pending")
		records := reservoir.New(p, history.New(10))
		h := historian.New(records, expiry.NewCreations(180*time.Second), historian.NewTimeTracker(3, 50), historian.NewChildThrottle(500, 500))
		return New(h, records, dedup.New(180*time.Second, 10*time.Second), nil), records
	}

	at := timestamp.Timestamp{Seconds: 5000, Nanos: 10}
	first, _ := newHandler()
	idA, rawA := makeBody(t, 4990)
	_, err := first.Handle(Event{ConsensusTime: at, SubmittingMember: 2, Transaction: rawA})
	assert.Nil(t, err, "first run")

	second, records := newHandler()
	restored, err := expiry.Restore(records, 5000)
	assert.Nil(t, err, "restore")
	assert.Equal(t, 1, restored.Count)
	assert.Equal(t, at, restored.Latest)
	second.Resume(restored.Latest)

	idB, rawB := makeBody(t, 4991)
	_, err = second.Handle(Event{ConsensusTime: at, SubmittingMember: 2, Transaction: rawB})
	assert.Equal(t, fault.ErrInvalidTimestamp, err, "replayed time")

	stored, err := expiry.RecordsOf(idA)
	assert.Nil(t, err, "records of first")
	if assert.Equal(t, 1, len(stored)) {
		assert.Equal(t, idA, stored[0].TransactionID)
	}
	stored, err = expiry.RecordsOf(idB)
	assert.Nil(t, err, "records of replay")
	assert.Empty(t, stored)

	assert.Equal(t, responsecode.Success, records.GetPriorityReceipt(idA).Status, "restored receipt")
}
