// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package expiry

import (
	"github.com/pkg/errors"

	"github.com/bitmark-inc/txguard/account"
	"github.com/bitmark-inc/txguard/record"
	"github.com/bitmark-inc/txguard/storage"
	"github.com/bitmark-inc/txguard/transactionid"
)

// RecordsOf - persisted records of an identifier in consensus order
func RecordsOf(id transactionid.ID) ([]*record.Record, error) {
	return indexed(storage.Pool.Transactions, []byte(id.Key()))
}

// RecordsPaidBy - persisted records charged to payer in consensus order
func RecordsPaidBy(payer account.ID) ([]*record.Record, error) {
	return indexed(storage.Pool.Payers, AccountBytes(payer))
}

// EachRecord - call f for every persisted record in consensus order,
// stops at the first error
func EachRecord(f func(*record.Record) error) error {
	return storage.Pool.Records.NewFetchCursor().Map(func(key []byte, value []byte) error {
		rec, err := record.Packed(value).Unpack()
		if nil != err {
			return errors.Wrapf(err, "record: %x", key)
		}
		return f(rec)
	})
}

// index keys are prefix ++ record key
func indexed(index *storage.PoolHandle, prefix []byte) ([]*record.Record, error) {
	recordKeys := [][]byte{}
	err := index.NewFetchCursor().Prefix(prefix).Map(func(key []byte, value []byte) error {
		recordKeys = append(recordKeys, key[len(prefix):])
		return nil
	})
	if nil != err {
		return nil, err
	}

	records := make([]*record.Record, 0, len(recordKeys))
	for _, recordKey := range recordKeys {
		packed := storage.Pool.Records.Get(recordKey)
		if nil == packed {
			// swept after the index was read
			continue
		}
		rec, err := record.Packed(packed).Unpack()
		if nil != err {
			return nil, errors.Wrapf(err, "record: %x", recordKey)
		}
		records = append(records, rec)
	}
	return records, nil
}
