// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package publish_test

import (
	"os"
	"testing"
	"time"

	"github.com/bitmark-inc/logger"
	zmq "github.com/pebbe/zmq4"
	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/txguard/account"
	"github.com/bitmark-inc/txguard/fault"
	"github.com/bitmark-inc/txguard/historian"
	"github.com/bitmark-inc/txguard/messagebus"
	"github.com/bitmark-inc/txguard/publish"
	"github.com/bitmark-inc/txguard/record"
	"github.com/bitmark-inc/txguard/responsecode"
	"github.com/bitmark-inc/txguard/timestamp"
	"github.com/bitmark-inc/txguard/transactionid"
)

const (
	testingDirName = "testing"
	endpoint       = "inproc://txguard-publish-test"
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

func streamObject(id transactionid.ID, at timestamp.Timestamp) historian.StreamObject {
	rec := record.NewBuilder().
		SetTransactionID(id).
		SetStatus(responsecode.Success).
		SetConsensusTime(at).
		Build()
	return historian.StreamObject{
		Record:      rec,
		Transaction: []byte(id.String()),
		Timestamp:   at,
	}
}

func TestPublishInStreamOrder(t *testing.T) {
	bus, err := messagebus.New(10)
	assert.Nil(t, err, "bus")

	p, err := publish.New(&publish.Configuration{Broadcast: []string{endpoint}}, bus.Chan())
	assert.Nil(t, err, "publisher")

	sub, err := zmq.NewSocket(zmq.SUB)
	assert.Nil(t, err, "socket")
	defer sub.Close()
	assert.Nil(t, sub.SetSubscribe(""), "subscribe")
	assert.Nil(t, sub.SetRcvtimeo(100*time.Millisecond), "timeout")
	assert.Nil(t, sub.Connect(endpoint), "connect")

	shutdown := make(chan struct{})
	done := make(chan struct{})
	go func() {
		p.Run(nil, shutdown)
		close(done)
	}()
	defer func() {
		close(shutdown)
		<-done
	}()

	id := transactionid.New(account.New(1001), timestamp.Timestamp{Seconds: 1000})
	top := timestamp.Timestamp{Seconds: 1010, Nanos: 5}
	result := &historian.Result{
		TopLevel:  streamObject(id, top),
		Preceding: []historian.StreamObject{streamObject(id.WithNonce(1), top.MinusNanos(1))},
		Following: []historian.StreamObject{streamObject(id.WithNonce(2), top.PlusNanos(1))},
	}

	// the subscription reaches the publisher asynchronously so
	// resend until the first record arrives
	var first [][]byte
	deadline := time.Now().Add(5 * time.Second)
	for nil == first && time.Now().Before(deadline) {
		bus.Send("test", result)
		first, _ = sub.RecvMessageBytes(0)
	}
	if !assert.NotNil(t, first, "received") {
		return
	}

	// synchronise to the start of one complete result
	for nil != first && "1010.000000004" != string(first[1]) {
		first, _ = sub.RecvMessageBytes(0)
	}
	if !assert.NotNil(t, first, "preceding child") {
		return
	}
	messages := [][][]byte{first}
	for len(messages) < 3 {
		m, err := sub.RecvMessageBytes(0)
		assert.Nil(t, err, "receive")
		if nil != err {
			break
		}
		messages = append(messages, m)
	}

	expected := []transactionid.ID{id.WithNonce(1), id, id.WithNonce(2)}
	for i, m := range messages {
		if !assert.Equal(t, 4, len(m), "frames") {
			continue
		}
		assert.Equal(t, "record", string(m[0]))
		rec, err := record.Packed(m[2]).Unpack()
		assert.Nil(t, err, "unpack")
		assert.Equal(t, expected[i], rec.TransactionID, "stream order")
		assert.Equal(t, []byte(expected[i].String()), m[3])
	}
}

func TestNoBroadcast(t *testing.T) {
	p, err := publish.New(&publish.Configuration{}, nil)
	assert.Nil(t, p)
	assert.Equal(t, fault.ErrMissingParameters, err)
}
