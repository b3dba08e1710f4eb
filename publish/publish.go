// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package publish

import (
	"github.com/bitmark-inc/logger"
	zmq "github.com/pebbe/zmq4"

	"github.com/bitmark-inc/txguard/fault"
	"github.com/bitmark-inc/txguard/historian"
	"github.com/bitmark-inc/txguard/messagebus"
	"github.com/bitmark-inc/txguard/zmqutil"
)

// a block of configuration data
// this is read from a Lua configuration file
type Configuration struct {
	Broadcast []string `gluamapper:"broadcast" json:"broadcast"`
}

// Publisher - background broadcaster of finalised records
type Publisher struct {
	log     *logger.L
	bus     <-chan messagebus.Message
	sockets []*zmq.Socket
}

// New - bind a PUB socket on each broadcast endpoint
func New(configuration *Configuration, bus <-chan messagebus.Message) (*Publisher, error) {
	log := logger.New("publish")
	if nil == log {
		return nil, fault.ErrInvalidLoggerChannel
	}
	if 0 == len(configuration.Broadcast) {
		return nil, fault.ErrMissingParameters
	}

	p := &Publisher{
		log: log,
		bus: bus,
	}
	for _, endpoint := range configuration.Broadcast {
		socket, err := zmqutil.NewBind(log, zmq.PUB, endpoint)
		if nil != err {
			p.close()
			return nil, err
		}
		p.sockets = append(p.sockets, socket)
	}
	return p, nil
}

// Run - publish until shutdown or the bus is closed
func (p *Publisher) Run(args interface{}, shutdown <-chan struct{}) {
	log := p.log

	log.Info("starting…")
loop:
	for {
		select {
		case <-shutdown:
			break loop
		case item, ok := <-p.bus:
			if !ok {
				break loop
			}
			result, ok := item.Item.(*historian.Result)
			if !ok {
				log.Warnf("from: %s  unexpected item: %T", item.From, item.Item)
				continue loop
			}
			p.publish(result)
		}
	}
	p.close()
	log.Info("stopped")
}

// send the records of one top level transaction in stream order
func (p *Publisher) publish(result *historian.Result) {
	objects := make([]historian.StreamObject, 0, len(result.Preceding)+1+len(result.Following))
	objects = append(objects, result.Preceding...)
	objects = append(objects, result.TopLevel)
	objects = append(objects, result.Following...)

	for _, so := range objects {
		packed, err := so.Record.Pack()
		if nil != err {
			p.log.Errorf("pack record: %s  error: %s", so.Record.TransactionID, err)
			continue
		}
		at, _ := so.Timestamp.MarshalText()
		for _, socket := range p.sockets {
			_, err := socket.SendMessageDontwait("record", at, []byte(packed), so.Transaction)
			if nil != err {
				p.log.Debugf("send record: %s  error: %s", so.Record.TransactionID, err)
			}
		}
	}
}

func (p *Publisher) close() {
	for _, socket := range p.sockets {
		socket.Close()
	}
	p.sockets = nil
}
