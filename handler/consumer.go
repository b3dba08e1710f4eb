// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package handler

import (
	zmq "github.com/pebbe/zmq4"

	"github.com/bitmark-inc/txguard/zmqutil"
)

const (
	consumerSignal = "inproc://txguard-handler-signal"
)

// Consumer - receives consensus events from the platform
type Consumer struct {
	handler *Handler

	push   *zmq.Socket // signal send
	pull   *zmq.Socket // signal receive
	socket *zmq.Socket
}

// NewConsumer - connect a PULL socket to the platform's event stream
func NewConsumer(endpoint string, handler *Handler) (*Consumer, error) {
	c := &Consumer{
		handler: handler,
	}

	var err error
	c.push, c.pull, err = zmqutil.NewSignalPair(consumerSignal)
	if nil != err {
		return nil, err
	}

	c.socket, err = zmqutil.NewConnect(handler.log, zmq.PULL, endpoint)
	if nil != err {
		c.push.Close()
		c.pull.Close()
		return nil, err
	}
	return c, nil
}

// Run - handle events until shutdown
func (c *Consumer) Run(args interface{}, shutdown <-chan struct{}) {

	log := c.handler.log

	log.Info("starting…")

	go func() {
		poller := zmq.NewPoller()
		poller.Add(c.socket, zmq.POLLIN)
		poller.Add(c.pull, zmq.POLLIN)
	loop:
		for {
			sockets, _ := poller.Poll(-1)
			for _, socket := range sockets {
				switch s := socket.Socket; s {
				case c.socket:
					c.receive()
				case c.pull:
					s.RecvMessageBytes(0)
					break loop
				}
			}
		}
		c.pull.Close()
		c.socket.Close()
		log.Info("stopped")
	}()

	<-shutdown
	log.Info("initiate shutdown")
	c.push.SendMessage("stop")
	c.push.Close()
}

func (c *Consumer) receive() {
	log := c.handler.log

	data, err := c.socket.RecvBytes(0)
	if nil != err {
		log.Errorf("receive error: %s", err)
		return
	}
	event, err := UnpackEvent(data)
	if nil != err {
		log.Warnf("discard event: %s", err)
		return
	}
	c.handler.Handle(event)
}
