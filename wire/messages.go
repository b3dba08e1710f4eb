// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	proto "github.com/gogo/protobuf/proto"
)

// Account - shard.realm.num
type Account struct {
	Shard int64 `protobuf:"varint,1,opt,name=shard,proto3" json:"shard,omitempty"`
	Realm int64 `protobuf:"varint,2,opt,name=realm,proto3" json:"realm,omitempty"`
	Num   int64 `protobuf:"varint,3,opt,name=num,proto3" json:"num,omitempty"`
}

func (m *Account) Reset()         { *m = Account{} }
func (m *Account) String() string { return proto.CompactTextString(m) }
func (*Account) ProtoMessage()    {}

// Timestamp - seconds and nanoseconds
type Timestamp struct {
	Seconds int64 `protobuf:"varint,1,opt,name=seconds,proto3" json:"seconds,omitempty"`
	Nanos   int32 `protobuf:"varint,2,opt,name=nanos,proto3" json:"nanos,omitempty"`
}

func (m *Timestamp) Reset()         { *m = Timestamp{} }
func (m *Timestamp) String() string { return proto.CompactTextString(m) }
func (*Timestamp) ProtoMessage()    {}

// TransactionID - payer, start time, scheduled flag, nonce
type TransactionID struct {
	Payer      *Account   `protobuf:"bytes,1,opt,name=payer,proto3" json:"payer,omitempty"`
	ValidStart *Timestamp `protobuf:"bytes,2,opt,name=valid_start,json=validStart,proto3" json:"valid_start,omitempty"`
	Scheduled  bool       `protobuf:"varint,3,opt,name=scheduled,proto3" json:"scheduled,omitempty"`
	Nonce      int32      `protobuf:"varint,4,opt,name=nonce,proto3" json:"nonce,omitempty"`
}

func (m *TransactionID) Reset()         { *m = TransactionID{} }
func (m *TransactionID) String() string { return proto.CompactTextString(m) }
func (*TransactionID) ProtoMessage()    {}

// TransactionBody - the signed content of a transaction
type TransactionBody struct {
	TransactionID   *TransactionID `protobuf:"bytes,1,opt,name=transaction_id,json=transactionId,proto3" json:"transaction_id,omitempty"`
	NodeAccount     *Account       `protobuf:"bytes,2,opt,name=node_account,json=nodeAccount,proto3" json:"node_account,omitempty"`
	Fee             uint64         `protobuf:"varint,3,opt,name=fee,proto3" json:"fee,omitempty"`
	ValidDuration   int64          `protobuf:"varint,4,opt,name=valid_duration,json=validDuration,proto3" json:"valid_duration,omitempty"`
	Memo            string         `protobuf:"bytes,5,opt,name=memo,proto3" json:"memo,omitempty"`
	Function        int32          `protobuf:"varint,6,opt,name=function,proto3" json:"function,omitempty"`
	UncheckedSubmit []byte         `protobuf:"bytes,7,opt,name=unchecked_submit,json=uncheckedSubmit,proto3" json:"unchecked_submit,omitempty"`
}

func (m *TransactionBody) Reset()         { *m = TransactionBody{} }
func (m *TransactionBody) String() string { return proto.CompactTextString(m) }
func (*TransactionBody) ProtoMessage()    {}

// AccountAmount - one balance change
type AccountAmount struct {
	Account *Account `protobuf:"bytes,1,opt,name=account,proto3" json:"account,omitempty"`
	Amount  int64    `protobuf:"zigzag64,2,opt,name=amount,proto3" json:"amount,omitempty"`
}

func (m *AccountAmount) Reset()         { *m = AccountAmount{} }
func (m *AccountAmount) String() string { return proto.CompactTextString(m) }
func (*AccountAmount) ProtoMessage()    {}

// Sidecar - auxiliary payload stamped with its record's consensus time
type Sidecar struct {
	ConsensusTime *Timestamp `protobuf:"bytes,1,opt,name=consensus_time,json=consensusTime,proto3" json:"consensus_time,omitempty"`
	Kind          int32      `protobuf:"varint,2,opt,name=kind,proto3" json:"kind,omitempty"`
	Payload       []byte     `protobuf:"bytes,3,opt,name=payload,proto3" json:"payload,omitempty"`
}

func (m *Sidecar) Reset()         { *m = Sidecar{} }
func (m *Sidecar) String() string { return proto.CompactTextString(m) }
func (*Sidecar) ProtoMessage()    {}

// Record - a finalised transaction outcome
type Record struct {
	TransactionID       *TransactionID   `protobuf:"bytes,1,opt,name=transaction_id,json=transactionId,proto3" json:"transaction_id,omitempty"`
	Status              int32            `protobuf:"varint,2,opt,name=status,proto3" json:"status,omitempty"`
	CreatedAccount      *Account         `protobuf:"bytes,3,opt,name=created_account,json=createdAccount,proto3" json:"created_account,omitempty"`
	ConsensusTime       *Timestamp       `protobuf:"bytes,4,opt,name=consensus_time,json=consensusTime,proto3" json:"consensus_time,omitempty"`
	ParentConsensusTime *Timestamp       `protobuf:"bytes,5,opt,name=parent_consensus_time,json=parentConsensusTime,proto3" json:"parent_consensus_time,omitempty"`
	TransactionHash     []byte           `protobuf:"bytes,6,opt,name=transaction_hash,json=transactionHash,proto3" json:"transaction_hash,omitempty"`
	Memo                string           `protobuf:"bytes,7,opt,name=memo,proto3" json:"memo,omitempty"`
	Fee                 uint64           `protobuf:"varint,8,opt,name=fee,proto3" json:"fee,omitempty"`
	Transfers           []*AccountAmount `protobuf:"bytes,9,rep,name=transfers,proto3" json:"transfers,omitempty"`
	NumChildRecords     uint32           `protobuf:"varint,10,opt,name=num_child_records,json=numChildRecords,proto3" json:"num_child_records,omitempty"`
	Sidecars            []*Sidecar       `protobuf:"bytes,11,rep,name=sidecars,proto3" json:"sidecars,omitempty"`
	Expiry              int64            `protobuf:"varint,12,opt,name=expiry,proto3" json:"expiry,omitempty"`
	SubmittingMember    int64            `protobuf:"varint,13,opt,name=submitting_member,json=submittingMember,proto3" json:"submitting_member,omitempty"`
}

func (m *Record) Reset()         { *m = Record{} }
func (m *Record) String() string { return proto.CompactTextString(m) }
func (*Record) ProtoMessage()    {}

// ConsensusEvent - one transaction in consensus order
type ConsensusEvent struct {
	ConsensusTime    *Timestamp `protobuf:"bytes,1,opt,name=consensus_time,json=consensusTime,proto3" json:"consensus_time,omitempty"`
	SubmittingMember int64      `protobuf:"varint,2,opt,name=submitting_member,json=submittingMember,proto3" json:"submitting_member,omitempty"`
	Transaction      []byte     `protobuf:"bytes,3,opt,name=transaction,proto3" json:"transaction,omitempty"`
}

func (m *ConsensusEvent) Reset()         { *m = ConsensusEvent{} }
func (m *ConsensusEvent) String() string { return proto.CompactTextString(m) }
func (*ConsensusEvent) ProtoMessage()    {}
