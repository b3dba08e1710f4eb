// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package platform

import (
	"sync"

	"github.com/bitmark-inc/logger"
	zmq "github.com/pebbe/zmq4"

	"github.com/bitmark-inc/txguard/zmqutil"
)

// ZMQ - platform reached over a zmq PUSH socket
//
// a send that would block is a rejection
type ZMQ struct {
	sync.Mutex
	log    *logger.L
	socket *zmq.Socket
}

// NewZMQ - connect to the consensus pipeline at endpoint
//
// highWater bounds the messages queued for a slow consumer
func NewZMQ(endpoint string, highWater int) (*ZMQ, error) {
	log := logger.New("platform")

	socket, err := zmqutil.NewConnect(log, zmq.PUSH, endpoint)
	if nil != err {
		return nil, err
	}
	if highWater > 0 {
		socket.SetSndhwm(highWater)
	}

	return &ZMQ{
		log:    log,
		socket: socket,
	}, nil
}

// CreateTransaction - send one transaction
func (z *ZMQ) CreateTransaction(data []byte) bool {
	z.Lock()
	defer z.Unlock()

	if nil == z.socket {
		return false
	}

	_, err := z.socket.SendBytes(data, zmq.DONTWAIT)
	if nil != err {
		z.log.Warnf("rejected: %s", err)
		return false
	}
	return true
}

// Close - release the socket
func (z *ZMQ) Close() error {
	z.Lock()
	defer z.Unlock()

	if nil == z.socket {
		return nil
	}
	err := z.socket.Close()
	z.socket = nil
	return err
}
