// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package zmqutil - socket set up shared by the zmq endpoints
package zmqutil

import (
	"strings"
	"time"

	"github.com/bitmark-inc/logger"
	zmq "github.com/pebbe/zmq4"

	"github.com/bitmark-inc/txguard/fault"
)

const (
	heartbeatInterval = 15 * time.Second
	heartbeatTimeout  = 60 * time.Second
	heartbeatTTL      = 120 * time.Second
)

var schemes = []string{"tcp://", "ipc://", "inproc://"}

// ValidEndpoint - check that an endpoint uses a supported transport
func ValidEndpoint(endpoint string) error {
	for _, s := range schemes {
		if strings.HasPrefix(endpoint, s) && len(endpoint) > len(s) {
			return nil
		}
	}
	return fault.ErrUnsupportedSocketAddress
}

// NewSignalPair - return a pair of connected push/pull sockets
// for shutdown signalling
func NewSignalPair(signal string) (*zmq.Socket, *zmq.Socket, error) {

	// send half of signalling channel
	push, err := zmq.NewSocket(zmq.PUSH)
	if nil != err {
		return nil, nil, err
	}
	push.SetLinger(0)
	err = push.Bind(signal)
	if nil != err {
		push.Close()
		return nil, nil, err
	}

	// receive half of signalling channel
	pull, err := zmq.NewSocket(zmq.PULL)
	if nil != err {
		push.Close()
		return nil, nil, err
	}
	pull.SetLinger(0)
	err = pull.Connect(signal)
	if nil != err {
		push.Close()
		pull.Close()
		return nil, nil, err
	}

	return push, pull, nil
}

// NewBind - create a socket bound to endpoint
func NewBind(log *logger.L, socketType zmq.Type, endpoint string) (*zmq.Socket, error) {
	socket, err := newSocket(socketType, endpoint)
	if nil != err {
		return nil, err
	}
	err = socket.Bind(endpoint)
	if nil != err {
		log.Errorf("cannot bind: %q  error: %s", endpoint, err)
		socket.Close()
		return nil, err
	}
	log.Infof("bind: %q", endpoint)
	return socket, nil
}

// NewConnect - create a socket connected to endpoint
func NewConnect(log *logger.L, socketType zmq.Type, endpoint string) (*zmq.Socket, error) {
	socket, err := newSocket(socketType, endpoint)
	if nil != err {
		return nil, err
	}
	err = socket.Connect(endpoint)
	if nil != err {
		log.Errorf("cannot connect: %q  error: %s", endpoint, err)
		socket.Close()
		return nil, err
	}
	log.Infof("connect: %q", endpoint)
	return socket, nil
}

func newSocket(socketType zmq.Type, endpoint string) (*zmq.Socket, error) {
	if err := ValidEndpoint(endpoint); nil != err {
		return nil, err
	}

	socket, err := zmq.NewSocket(socketType)
	if nil != err {
		return nil, err
	}

	socket.SetLinger(0)
	socket.SetIpv6(strings.HasPrefix(endpoint, "tcp://["))

	if strings.HasPrefix(endpoint, "tcp://") {
		socket.SetHeartbeatIvl(heartbeatInterval)
		socket.SetHeartbeatTimeout(heartbeatTimeout)
		socket.SetHeartbeatTtl(heartbeatTTL)
	}

	return socket, nil
}
