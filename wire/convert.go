// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"github.com/bitmark-inc/txguard/account"
	"github.com/bitmark-inc/txguard/timestamp"
	"github.com/bitmark-inc/txguard/transactionid"
)

// FromAccount - message for an account, nil for the zero account
func FromAccount(a account.ID) *Account {
	if a.IsZero() {
		return nil
	}
	return &Account{Shard: a.Shard, Realm: a.Realm, Num: a.Num}
}

// ID - account carried by the message, nil gives the zero account
func (m *Account) ID() account.ID {
	if nil == m {
		return account.ID{}
	}
	return account.ID{Shard: m.Shard, Realm: m.Realm, Num: m.Num}
}

// FromTimestamp - message for a timestamp, nil for the zero timestamp
func FromTimestamp(ts timestamp.Timestamp) *Timestamp {
	if ts.IsZero() {
		return nil
	}
	return &Timestamp{Seconds: ts.Seconds, Nanos: ts.Nanos}
}

// Value - timestamp carried by the message
func (m *Timestamp) Value() timestamp.Timestamp {
	if nil == m {
		return timestamp.Timestamp{}
	}
	return timestamp.Timestamp{Seconds: m.Seconds, Nanos: m.Nanos}
}

// FromTransactionID - message for an identifier
func FromTransactionID(id transactionid.ID) *TransactionID {
	return &TransactionID{
		Payer:      FromAccount(id.Payer),
		ValidStart: FromTimestamp(id.ValidStart),
		Scheduled:  id.Scheduled,
		Nonce:      id.Nonce,
	}
}

// Value - identifier carried by the message
func (m *TransactionID) Value() transactionid.ID {
	if nil == m {
		return transactionid.ID{}
	}
	return transactionid.ID{
		Payer:      m.Payer.ID(),
		ValidStart: m.ValidStart.Value(),
		Scheduled:  m.Scheduled,
		Nonce:      m.Nonce,
	}
}
