// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"github.com/syndtr/goleveldb/leveldb"

	"github.com/bitmark-inc/txguard/fault"
)

// Transaction - atomic group of writes across pools
//
// reads through a transaction see its own pending writes
type Transaction interface {
	Begin()
	Put(*PoolHandle, []byte, []byte)
	Delete(*PoolHandle, []byte)
	Get(*PoolHandle, []byte) []byte
	Has(*PoolHandle, []byte) bool
	Commit() error
	Abort()
}

type transactionData struct {
	access Access
}

func newTransaction(access Access) Transaction {
	return &transactionData{
		access: access,
	}
}

// NewDBTransaction - start a transaction, blocks while another is open
func NewDBTransaction() (Transaction, error) {
	poolData.RLock()
	trx := poolData.trx
	ok := nil != poolData.db
	poolData.RUnlock()

	if !ok {
		return nil, fault.ErrDatabaseIsNotSet
	}
	trx.Begin()
	return trx, nil
}

func (t *transactionData) Begin() {
	t.access.Begin()
}

func (t *transactionData) Put(handle *PoolHandle, key []byte, value []byte) {
	t.access.Put(handle.prefixKey(key), value)
}

func (t *transactionData) Delete(handle *PoolHandle, key []byte) {
	t.access.Delete(handle.prefixKey(key))
}

func (t *transactionData) Get(handle *PoolHandle, key []byte) []byte {
	value, err := t.access.Get(handle.prefixKey(key))
	if leveldb.ErrNotFound == err {
		return nil
	}
	fault.PanicIfError("transaction.Get", err)
	return value
}

func (t *transactionData) Has(handle *PoolHandle, key []byte) bool {
	found, err := t.access.Has(handle.prefixKey(key))
	fault.PanicIfError("transaction.Has", err)
	return found
}

func (t *transactionData) Commit() error {
	return t.access.Commit()
}

func (t *transactionData) Abort() {
	t.access.Abort()
}
