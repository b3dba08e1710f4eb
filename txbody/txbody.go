// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package txbody - the client visible content of a transaction
package txbody

import (
	proto "github.com/gogo/protobuf/proto"
	"github.com/pkg/errors"

	"github.com/bitmark-inc/txguard/account"
	"github.com/bitmark-inc/txguard/fault"
	"github.com/bitmark-inc/txguard/transactionid"
	"github.com/bitmark-inc/txguard/wire"
)

// Function - the operation a transaction performs
type Function int32

// supported functions
const (
	Unspecified     Function = iota
	CryptoTransfer  Function = iota
	CryptoCreate    Function = iota
	ContractCall    Function = iota
	ContractCreate  Function = iota
	TokenMint       Function = iota
	TokenBurn       Function = iota
	ScheduleCreate  Function = iota
	UncheckedSubmit Function = iota
	functionLimit   Function = iota
)

// String - function name for printf
func (f Function) String() string {
	switch f {
	case CryptoTransfer:
		return "CryptoTransfer"
	case CryptoCreate:
		return "CryptoCreate"
	case ContractCall:
		return "ContractCall"
	case ContractCreate:
		return "ContractCreate"
	case TokenMint:
		return "TokenMint"
	case TokenBurn:
		return "TokenBurn"
	case ScheduleCreate:
		return "ScheduleCreate"
	case UncheckedSubmit:
		return "UncheckedSubmit"
	default:
		return "*Unknown*"
	}
}

// IsContract - smart contract functions
func (f Function) IsContract() bool {
	return ContractCall == f || ContractCreate == f
}

// Body - decoded transaction body
type Body struct {
	ID              transactionid.ID `json:"transactionId"`
	NodeAccount     account.ID       `json:"nodeAccount"`
	Fee             uint64           `json:"fee"`
	ValidDuration   int64            `json:"validDuration"`
	Memo            string           `json:"memo"`
	Function        Function         `json:"function"`
	UncheckedSubmit []byte           `json:"uncheckedSubmit,omitempty"`
}

// Packed - encoded transaction body
type Packed []byte

// HasUncheckedSubmit - true if the body carries raw replacement bytes
func (b *Body) HasUncheckedSubmit() bool {
	return UncheckedSubmit == b.Function || 0 != len(b.UncheckedSubmit)
}

// Pack - encode a body
func (b *Body) Pack() (Packed, error) {
	if b.Function <= Unspecified || b.Function >= functionLimit {
		return nil, fault.ErrInvalidTransactionBody
	}
	m := &wire.TransactionBody{
		TransactionID:   wire.FromTransactionID(b.ID),
		NodeAccount:     wire.FromAccount(b.NodeAccount),
		Fee:             b.Fee,
		ValidDuration:   b.ValidDuration,
		Memo:            b.Memo,
		Function:        int32(b.Function),
		UncheckedSubmit: b.UncheckedSubmit,
	}
	buffer, err := proto.Marshal(m)
	if nil != err {
		return nil, errors.Wrap(err, "pack transaction body")
	}
	return Packed(buffer), nil
}

// Unpack - decode a body
//
// the identifier is not validated here, see ExtractID
func (p Packed) Unpack() (*Body, error) {
	if 0 == len(p) {
		return nil, fault.ErrInvalidTransactionBody
	}
	var m wire.TransactionBody
	if err := proto.Unmarshal(p, &m); nil != err {
		return nil, fault.ErrInvalidTransactionBody
	}
	f := Function(m.Function)
	if f <= Unspecified || f >= functionLimit || nil == m.TransactionID {
		return nil, fault.ErrInvalidTransactionBody
	}
	b := &Body{
		ID:              m.TransactionID.Value(),
		NodeAccount:     m.NodeAccount.ID(),
		Fee:             m.Fee,
		ValidDuration:   m.ValidDuration,
		Memo:            m.Memo,
		Function:        f,
		UncheckedSubmit: m.UncheckedSubmit,
	}
	return b, nil
}

// ExtractID - decode only as far as a validated transaction identifier
func (p Packed) ExtractID() (transactionid.ID, error) {
	b, err := p.Unpack()
	if nil != err {
		return transactionid.ID{}, err
	}
	if err := b.ID.Validate(); nil != err {
		return transactionid.ID{}, err
	}
	return b.ID, nil
}
