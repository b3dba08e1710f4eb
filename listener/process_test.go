// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package listener

import (
	"encoding/json"
	"os"
	"testing"
	"time"

	"github.com/bitmark-inc/logger"
	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/txguard/account"
	"github.com/bitmark-inc/txguard/chain"
	"github.com/bitmark-inc/txguard/fault"
	"github.com/bitmark-inc/txguard/history"
	"github.com/bitmark-inc/txguard/mode"
	"github.com/bitmark-inc/txguard/pending"
	"github.com/bitmark-inc/txguard/record"
	"github.com/bitmark-inc/txguard/reservoir"
	"github.com/bitmark-inc/txguard/responsecode"
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

	_ = mode.Initialise(chain.Local, mode.Development)
	mode.Set(mode.Normal)

	rc := m.Run()

	_ = mode.Finalise()
	logger.Finalise()
	_ = os.RemoveAll(testingDirName)
	os.Exit(rc)
}

type fakeGate struct {
	result    error
	submitted []transactionid.ID
}

func (g *fakeGate) Submit(body *txbody.Body, raw []byte) error {
	g.submitted = append(g.submitted, body.ID)
	return g.result
}

func setup(t *testing.T) (*fakeGate, *reservoir.RecordCache, *Listener) {
	p, err := pending.New(time.Minute, 1000)
	assert.Nil(t, err, "pending")
	records := reservoir.New(p, history.New(10))
	gate := &fakeGate{}
	lstn := &Listener{
		log:     logger.New("listener"),
		gate:    gate,
		records: records,
		version: "1.0",
	}
	return gate, records, lstn
}

var payer = account.New(1001)

func packedBody(t *testing.T) (transactionid.ID, []byte) {
	id := transactionid.New(payer, timestamp.Timestamp{Seconds: 1000, Nanos: 5})
	body := txbody.Body{
		ID:       id,
		Memo:     "listener",
		Function: txbody.CryptoTransfer,
	}
	packed, err := body.Pack()
	assert.Nil(t, err, "pack")
	return id, packed
}

func request(fn string, parameters ...string) [][]byte {
	data := [][]byte{[]byte(fn)}
	for _, p := range parameters {
		data = append(data, []byte(p))
	}
	return data
}

func TestSubmit(t *testing.T) {
	gate, records, lstn := setup(t)

	id, raw := packedBody(t)
	reply := lstn.process([][]byte{[]byte("S"), raw})
	assert.Equal(t, [][]byte{[]byte("S"), []byte("OK")}, reply)
	assert.Equal(t, []transactionid.ID{id}, gate.submitted)
	assert.True(t, records.IsReceiptPresent(id), "pending marker")

	reply = lstn.process(request("R", id.String()))
	assert.Equal(t, "R", string(reply[0]))
	receipt := record.Receipt{}
	assert.Nil(t, json.Unmarshal(reply[1], &receipt), "json")
	assert.Equal(t, responsecode.Unknown, receipt.Status, "pending receipt")
}

func TestSubmitRejected(t *testing.T) {
	gate, _, lstn := setup(t)
	gate.result = fault.NewPreCheck(responsecode.DuplicateTransaction)

	_, raw := packedBody(t)
	reply := lstn.process([][]byte{[]byte("S"), raw})
	assert.Equal(t, [][]byte{[]byte("S"), []byte("DUPLICATE_TRANSACTION")}, reply)
}

func TestSubmitMalformed(t *testing.T) {
	gate, _, lstn := setup(t)

	reply := lstn.process(request("S", "garbage"))
	assert.Equal(t, [][]byte{[]byte("S"), []byte("INVALID_TRANSACTION_BODY")}, reply)
	assert.Empty(t, gate.submitted, "never reaches the gate")

	reply = lstn.process(request("S"))
	assert.Equal(t, "E", string(reply[0]))
}

func TestSubmitWhileNotNormal(t *testing.T) {
	gate, _, lstn := setup(t)

	mode.Set(mode.Starting)
	defer mode.Set(mode.Normal)

	_, raw := packedBody(t)
	reply := lstn.process([][]byte{[]byte("S"), raw})
	assert.Equal(t, [][]byte{[]byte("S"), []byte("PLATFORM_NOT_ACTIVE")}, reply)
	assert.Empty(t, gate.submitted)
}

func TestQueries(t *testing.T) {
	_, records, lstn := setup(t)

	id := transactionid.New(payer, timestamp.Timestamp{Seconds: 2000})
	top := record.NewBuilder().
		SetTransactionID(id).
		SetStatus(responsecode.Success).
		SetConsensusTime(timestamp.Timestamp{Seconds: 2010}).
		SetNumChildRecords(1).
		Build()
	child := record.NewBuilder().
		SetTransactionID(id.WithNonce(1)).
		SetStatus(responsecode.Success).
		SetConsensusTime(timestamp.Timestamp{Seconds: 2010, Nanos: 1}).
		Build()
	dup := record.NewBuilder().
		SetTransactionID(id).
		SetStatus(responsecode.DuplicateTransaction).
		SetConsensusTime(timestamp.Timestamp{Seconds: 2011}).
		Build()
	records.SetPostConsensus(id, top.Status(), top)
	records.SetPostConsensus(child.TransactionID, child.Status(), child)
	records.SetPostConsensus(id, dup.Status(), dup)

	reply := lstn.process(request("R", id.String()))
	receipt := record.Receipt{}
	assert.Nil(t, json.Unmarshal(reply[1], &receipt), "receipt json")
	assert.Equal(t, responsecode.Success, receipt.Status)

	reply = lstn.process(request("Q", id.String()))
	assert.Equal(t, "Q", string(reply[0]))
	set := recordSet{}
	assert.Nil(t, json.Unmarshal(reply[1], &set), "record set json")
	assert.Equal(t, top.ConsensusTime, set.Priority.ConsensusTime)
	assert.Equal(t, 1, len(set.Duplicates))
	assert.Equal(t, responsecode.DuplicateTransaction, set.Duplicates[0].Status())
	assert.Equal(t, 1, len(set.Children))
	assert.Equal(t, id.WithNonce(1), set.Children[0].TransactionID)

	reply = lstn.process(request("P", payer.String()))
	assert.Equal(t, "P", string(reply[0]))
	receipts := []record.Receipt{}
	assert.Nil(t, json.Unmarshal(reply[1], &receipts), "payer json")
	assert.True(t, len(receipts) >= 1, "payer receipts")

	missing := transactionid.New(payer, timestamp.Timestamp{Seconds: 3000})
	reply = lstn.process(request("R", missing.String()))
	assert.Equal(t, [][]byte{[]byte("E"), []byte(fault.ErrRecordNotFound.Error())}, reply)
	reply = lstn.process(request("Q", missing.String()))
	assert.Equal(t, "E", string(reply[0]))

	reply = lstn.process(request("R", "not-an-id"))
	assert.Equal(t, "E", string(reply[0]))
	reply = lstn.process(request("P", "x.y.z"))
	assert.Equal(t, "E", string(reply[0]))
}

func TestInfoAndUnknown(t *testing.T) {
	_, _, lstn := setup(t)

	reply := lstn.process(request("I"))
	assert.Equal(t, "I", string(reply[0]))
	info := serverInfo{}
	assert.Nil(t, json.Unmarshal(reply[1], &info), "json")
	assert.Equal(t, serverInfo{Version: "1.0", Chain: chain.Local, Profile: mode.Development, Normal: true}, info)

	reply = lstn.process(request("X"))
	assert.Equal(t, [][]byte{[]byte("E"), []byte(fault.ErrUnknownRequest.Error())}, reply)

	reply = lstn.process(nil)
	assert.Equal(t, "E", string(reply[0]))
}
