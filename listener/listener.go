// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package listener - request/reply endpoint for submissions and queries
//
// requests are multipart messages: a one letter function followed by
// its parameters, replies repeat the function followed by the result,
// or "E" followed by an error message
//
//   S body        submit a packed transaction body, result: response code name
//   R txid        priority receipt as JSON
//   Q txid        priority, duplicate and child records as JSON
//   P account     receipts of the most recent transactions of a payer as JSON
//   I             server information as JSON
package listener

import (
	"github.com/bitmark-inc/logger"
	zmq "github.com/pebbe/zmq4"

	"github.com/bitmark-inc/txguard/fault"
	"github.com/bitmark-inc/txguard/reservoir"
	"github.com/bitmark-inc/txguard/txbody"
	"github.com/bitmark-inc/txguard/zmqutil"
)

const (
	listenerSignal = "inproc://txguard-listener-signal"
)

// Submitter - accepts transactions for consensus
type Submitter interface {
	Submit(body *txbody.Body, raw []byte) error
}

// Listener - the zmq REP server
type Listener struct {
	log     *logger.L
	gate    Submitter
	records reservoir.Reservoir
	version string

	push   *zmq.Socket // signal send
	pull   *zmq.Socket // signal receive
	socket *zmq.Socket
}

// New - bind the listener to endpoint
func New(endpoint string, gate Submitter, records reservoir.Reservoir, version string) (*Listener, error) {
	log := logger.New("listener")
	if nil == log {
		return nil, fault.ErrInvalidLoggerChannel
	}

	log.Info("initialising…")

	lstn := &Listener{
		log:     log,
		gate:    gate,
		records: records,
		version: version,
	}

	var err error

	// signalling channel
	lstn.push, lstn.pull, err = zmqutil.NewSignalPair(listenerSignal)
	if nil != err {
		return nil, err
	}

	lstn.socket, err = zmqutil.NewBind(log, zmq.REP, endpoint)
	if nil != err {
		lstn.push.Close()
		lstn.pull.Close()
		return nil, err
	}

	return lstn, nil
}

// Run - wait for incoming requests, process them and reply
func (lstn *Listener) Run(args interface{}, shutdown <-chan struct{}) {

	log := lstn.log

	log.Info("starting…")

	go func() {
		poller := zmq.NewPoller()
		poller.Add(lstn.socket, zmq.POLLIN)
		poller.Add(lstn.pull, zmq.POLLIN)
	loop:
		for {
			sockets, _ := poller.Poll(-1)
			for _, socket := range sockets {
				switch s := socket.Socket; s {
				case lstn.socket:
					lstn.serve()
				case lstn.pull:
					s.RecvMessageBytes(0)
					break loop
				}
			}
		}
		log.Info("shutting down")
		lstn.pull.Close()
		lstn.socket.Close()
		log.Info("stopped")
	}()

	// wait for shutdown
	log.Info("waiting…")
	<-shutdown
	log.Info("initiate shutdown")
	lstn.push.SendMessage("stop")
	lstn.push.Close()
}

// receive one request and send its reply
func (lstn *Listener) serve() {
	data, err := lstn.socket.RecvMessageBytes(0)
	if nil != err {
		lstn.log.Errorf("receive error: %s", err)
		return
	}

	reply := lstn.process(data)

	_, err = lstn.socket.SendMessage(reply)
	fault.PanicIfError("listener", err)
}
