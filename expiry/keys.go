// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package expiry

import (
	"encoding/binary"

	"github.com/bitmark-inc/txguard/account"
	"github.com/bitmark-inc/txguard/fault"
	"github.com/bitmark-inc/txguard/timestamp"
	"github.com/bitmark-inc/txguard/transactionid"
)

const (
	secondSize  = 8
	accountSize = 3 * 8
)

// RecordKey - key of a record in storage.Pool.Records
func RecordKey(consensusTime timestamp.Timestamp) []byte {
	return consensusTime.Bytes()
}

func expiringKey(second int64, consensusTime timestamp.Timestamp) []byte {
	key := make([]byte, secondSize, secondSize+timestamp.Size)
	binary.BigEndian.PutUint64(key, uint64(second))
	return append(key, consensusTime.Bytes()...)
}

// split an expiring key into its expiry second and record key
func splitExpiringKey(key []byte) (int64, []byte, error) {
	if secondSize+timestamp.Size != len(key) {
		return 0, nil, fault.ErrTruncatedRecord
	}
	return int64(binary.BigEndian.Uint64(key)), key[secondSize:], nil
}

// AccountBytes - fixed width encoding of an account for index keys
func AccountBytes(a account.ID) []byte {
	buffer := make([]byte, accountSize)
	binary.BigEndian.PutUint64(buffer[0:], uint64(a.Shard))
	binary.BigEndian.PutUint64(buffer[8:], uint64(a.Realm))
	binary.BigEndian.PutUint64(buffer[16:], uint64(a.Num))
	return buffer
}

func accountFromBytes(buffer []byte) (account.ID, error) {
	if accountSize != len(buffer) {
		return account.ID{}, fault.ErrInvalidAccount
	}
	return account.ID{
		Shard: int64(binary.BigEndian.Uint64(buffer[0:])),
		Realm: int64(binary.BigEndian.Uint64(buffer[8:])),
		Num:   int64(binary.BigEndian.Uint64(buffer[16:])),
	}, nil
}

func payerKey(payer account.ID, recordKey []byte) []byte {
	return append(AccountBytes(payer), recordKey...)
}

func transactionKey(id transactionid.ID, recordKey []byte) []byte {
	return append([]byte(id.Key()), recordKey...)
}
