// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package record

import (
	"encoding/binary"

	"github.com/OneOfOne/xxhash"
	proto "github.com/gogo/protobuf/proto"
	"github.com/pkg/errors"

	"github.com/bitmark-inc/txguard/fault"
	"github.com/bitmark-inc/txguard/responsecode"
	"github.com/bitmark-inc/txguard/wire"
)

const checksumSize = 4

// Packed - encoded record: 4 byte checksum followed by the protobuf message
type Packed []byte

// Pack - encode a record for storage
func (r *Record) Pack() (Packed, error) {
	m := &wire.Record{
		TransactionID:       wire.FromTransactionID(r.TransactionID),
		Status:              int32(r.Receipt.Status),
		CreatedAccount:      wire.FromAccount(r.Receipt.CreatedAccount),
		ConsensusTime:       wire.FromTimestamp(r.ConsensusTime),
		ParentConsensusTime: wire.FromTimestamp(r.ParentConsensusTime),
		TransactionHash:     r.TransactionHash,
		Memo:                r.Memo,
		Fee:                 r.Fee,
		NumChildRecords:     uint32(r.NumChildRecords),
		Expiry:              r.Expiry,
		SubmittingMember:    r.SubmittingMember,
	}
	for _, t := range r.Transfers {
		m.Transfers = append(m.Transfers, &wire.AccountAmount{
			Account: wire.FromAccount(t.Account),
			Amount:  t.Amount,
		})
	}
	for _, s := range r.Sidecars {
		m.Sidecars = append(m.Sidecars, &wire.Sidecar{
			ConsensusTime: wire.FromTimestamp(s.ConsensusTime),
			Kind:          int32(s.Kind),
			Payload:       s.Payload,
		})
	}

	buffer, err := proto.Marshal(m)
	if nil != err {
		return nil, errors.Wrapf(err, "pack record: %s", r.TransactionID)
	}

	packed := make(Packed, checksumSize, checksumSize+len(buffer))
	binary.BigEndian.PutUint32(packed, xxhash.Checksum32(buffer))
	return append(packed, buffer...), nil
}

// Unpack - decode a stored record, verifying its checksum
func (p Packed) Unpack() (*Record, error) {
	if len(p) < checksumSize {
		return nil, fault.ErrTruncatedRecord
	}
	buffer := p[checksumSize:]
	if binary.BigEndian.Uint32(p) != xxhash.Checksum32(buffer) {
		return nil, fault.ErrChecksumMismatch
	}

	var m wire.Record
	if err := proto.Unmarshal(buffer, &m); nil != err {
		return nil, errors.Wrap(err, "unpack record")
	}

	r := &Record{
		TransactionID: m.TransactionID.Value(),
		Receipt: Receipt{
			Status:         responsecode.Code(m.Status),
			CreatedAccount: m.CreatedAccount.ID(),
		},
		ConsensusTime:       m.ConsensusTime.Value(),
		ParentConsensusTime: m.ParentConsensusTime.Value(),
		TransactionHash:     m.TransactionHash,
		Memo:                m.Memo,
		Fee:                 m.Fee,
		NumChildRecords:     uint16(m.NumChildRecords),
		Expiry:              m.Expiry,
		SubmittingMember:    m.SubmittingMember,
	}
	for _, t := range m.Transfers {
		r.Transfers = append(r.Transfers, AccountAmount{Account: t.Account.ID(), Amount: t.Amount})
	}
	for _, s := range m.Sidecars {
		r.Sidecars = append(r.Sidecars, Sidecar{
			ConsensusTime: s.ConsensusTime.Value(),
			Kind:          SidecarKind(s.Kind),
			Payload:       s.Payload,
		})
	}
	return r, nil
}
