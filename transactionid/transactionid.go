// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package transactionid - the identifier naming one transaction or
// one of its child transactions
package transactionid

import (
	"encoding/binary"
	"fmt"
	"strconv"
	"strings"

	"github.com/bitmark-inc/txguard/account"
	"github.com/bitmark-inc/txguard/fault"
	"github.com/bitmark-inc/txguard/timestamp"
)

// UserTransactionNonce - nonce of a transaction submitted by a client
const UserTransactionNonce = int32(0)

// KeySize - bytes in a packed key
const KeySize = 3*8 + timestamp.Size + 1 + 4

// Key - packed identifier usable as a map key
type Key string

// ID - payer, start time, scheduled flag and nonce
//
// values are immutable, the With* methods return copies
type ID struct {
	Payer      account.ID          `json:"payer"`
	ValidStart timestamp.Timestamp `json:"validStart"`
	Scheduled  bool                `json:"scheduled"`
	Nonce      int32               `json:"nonce"`
}

// New - identifier of a user transaction
func New(payer account.ID, validStart timestamp.Timestamp) ID {
	return ID{
		Payer:      payer,
		ValidStart: validStart,
	}
}

// WithNonce - copy of the identifier with a different nonce
func (id ID) WithNonce(nonce int32) ID {
	id.Nonce = nonce
	return id
}

// WithScheduled - copy of the identifier with the scheduled flag set
func (id ID) WithScheduled() ID {
	id.Scheduled = true
	return id
}

// WithoutScheduled - copy of the identifier with the scheduled flag cleared
func (id ID) WithoutScheduled() ID {
	id.Scheduled = false
	return id
}

// IsChild - true for synthetic identifiers
func (id ID) IsChild() bool {
	return UserTransactionNonce != id.Nonce
}

// Parent - the user transaction identifier this one derives from
func (id ID) Parent() ID {
	return id.WithNonce(UserTransactionNonce)
}

// Validate - structural checks applied before an identifier is used
func (id ID) Validate() error {
	if !id.Payer.Valid() {
		return fault.ErrInvalidTransactionID
	}
	if id.ValidStart.IsZero() || id.ValidStart.Seconds < 0 || id.ValidStart.Nanos < 0 {
		return fault.ErrInvalidTransactionID
	}
	if id.Nonce < 0 {
		return fault.ErrInvalidTransactionID
	}
	return nil
}

// Key - fixed width packing of every field
//
// two identifiers are equal exactly when their keys are equal
func (id ID) Key() Key {
	buffer := make([]byte, KeySize)
	binary.BigEndian.PutUint64(buffer[0:], uint64(id.Payer.Shard))
	binary.BigEndian.PutUint64(buffer[8:], uint64(id.Payer.Realm))
	binary.BigEndian.PutUint64(buffer[16:], uint64(id.Payer.Num))
	copy(buffer[24:], id.ValidStart.Bytes())
	n := 24 + timestamp.Size
	if id.Scheduled {
		buffer[n] = 1
	}
	binary.BigEndian.PutUint32(buffer[n+1:], uint32(id.Nonce))
	return Key(buffer)
}

// FromKey - reverse of Key
func FromKey(k Key) (ID, error) {
	if KeySize != len(k) {
		return ID{}, fault.ErrInvalidTransactionID
	}
	buffer := []byte(k)
	ts, err := timestamp.FromBytes(buffer[24:])
	if nil != err {
		return ID{}, fault.ErrInvalidTransactionID
	}
	n := 24 + timestamp.Size
	id := ID{
		Payer: account.ID{
			Shard: int64(binary.BigEndian.Uint64(buffer[0:])),
			Realm: int64(binary.BigEndian.Uint64(buffer[8:])),
			Num:   int64(binary.BigEndian.Uint64(buffer[16:])),
		},
		ValidStart: ts,
		Scheduled:  0 != buffer[n],
		Nonce:      int32(binary.BigEndian.Uint32(buffer[n+1:])),
	}
	return id, nil
}

// String - payer@seconds.nanos with optional ?scheduled and /nonce suffixes
func (id ID) String() string {
	s := fmt.Sprintf("%s@%s", id.Payer, id.ValidStart)
	if id.Scheduled {
		s += "?scheduled"
	}
	if id.IsChild() {
		s += fmt.Sprintf("/%d", id.Nonce)
	}
	return s
}

// FromString - reverse of String
func FromString(s string) (ID, error) {
	id := ID{}

	if i := strings.LastIndex(s, "/"); i >= 0 {
		nonce, err := strconv.ParseInt(s[i+1:], 10, 32)
		if nil != err || nonce <= 0 {
			return ID{}, fault.ErrInvalidTransactionID
		}
		id.Nonce = int32(nonce)
		s = s[:i]
	}
	if strings.HasSuffix(s, "?scheduled") {
		id.Scheduled = true
		s = strings.TrimSuffix(s, "?scheduled")
	}

	parts := strings.Split(s, "@")
	if 2 != len(parts) {
		return ID{}, fault.ErrInvalidTransactionID
	}
	payer, err := account.FromString(parts[0])
	if nil != err {
		return ID{}, fault.ErrInvalidTransactionID
	}
	validStart, err := timestamp.FromString(parts[1])
	if nil != err {
		return ID{}, fault.ErrInvalidTransactionID
	}
	id.Payer = payer
	id.ValidStart = validStart
	return id, nil
}

// MarshalText - convert identifier to text
func (id ID) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

// UnmarshalText - convert text into an identifier
func (id *ID) UnmarshalText(s []byte) error {
	v, err := FromString(string(s))
	if nil != err {
		return err
	}
	*id = v
	return nil
}
