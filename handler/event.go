// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package handler

import (
	"github.com/gogo/protobuf/proto"
	"github.com/pkg/errors"

	"github.com/bitmark-inc/txguard/fault"
	"github.com/bitmark-inc/txguard/timestamp"
	"github.com/bitmark-inc/txguard/wire"
)

// Event - one transaction reached consensus
type Event struct {
	ConsensusTime    timestamp.Timestamp
	SubmittingMember int64
	Transaction      []byte
}

// PackEvent - encode an event for the consensus socket
func PackEvent(event Event) ([]byte, error) {
	m := &wire.ConsensusEvent{
		ConsensusTime:    wire.FromTimestamp(event.ConsensusTime),
		SubmittingMember: event.SubmittingMember,
		Transaction:      event.Transaction,
	}
	buffer, err := proto.Marshal(m)
	if nil != err {
		return nil, errors.Wrap(err, "pack consensus event")
	}
	return buffer, nil
}

// UnpackEvent - decode an event, the consensus time must be present
func UnpackEvent(buffer []byte) (Event, error) {
	var m wire.ConsensusEvent
	if err := proto.Unmarshal(buffer, &m); nil != err {
		return Event{}, errors.Wrap(err, "unpack consensus event")
	}
	if nil == m.ConsensusTime {
		return Event{}, fault.ErrInvalidTimestamp
	}
	event := Event{
		ConsensusTime:    m.ConsensusTime.Value(),
		SubmittingMember: m.SubmittingMember,
		Transaction:      m.Transaction,
	}
	return event, nil
}
