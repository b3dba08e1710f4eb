// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"sync"

	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/iterator"
	ldb_util "github.com/syndtr/goleveldb/leveldb/util"
)

// Access - batched writes over one database
type Access interface {
	Abort()
	Begin()
	Commit() error
	Committed([]byte) ([]byte, error)
	Delete([]byte)
	Get([]byte) ([]byte, error)
	Has([]byte) (bool, error)
	InUse() bool
	Iterator(*ldb_util.Range) iterator.Iterator
	Put([]byte, []byte)
}

// AccessData - the single batch, only one writer at a time
type AccessData struct {
	sync.Mutex
	writer  sync.Mutex
	inUse   bool
	db      *leveldb.DB
	batch   *leveldb.Batch
	overlay Overlay
}

func newDA(db *leveldb.DB, trx *leveldb.Batch, overlay Overlay) Access {
	return &AccessData{
		inUse:   false,
		db:      db,
		batch:   trx,
		overlay: overlay,
	}
}

// Begin - wait for the batch to be free and take it
func (d *AccessData) Begin() {
	d.writer.Lock()

	d.Lock()
	d.inUse = true
	d.Unlock()
}

func (d *AccessData) Put(key []byte, value []byte) {
	d.Lock()
	defer d.Unlock()
	d.overlay.put(key, value)
	d.batch.Put(key, value)
}

func (d *AccessData) Delete(key []byte) {
	d.Lock()
	defer d.Unlock()
	d.overlay.remove(key)
	d.batch.Delete(key)
}

// Commit - write the batch and release it
func (d *AccessData) Commit() error {
	d.Lock()
	err := d.db.Write(d.batch, nil)
	d.reset()
	d.Unlock()

	d.writer.Unlock()
	return err
}

// Abort - discard the batch and release it
func (d *AccessData) Abort() {
	d.Lock()
	d.reset()
	d.Unlock()

	d.writer.Unlock()
}

func (d *AccessData) reset() {
	d.batch.Reset()
	d.overlay.clear()
	d.inUse = false
}

// Get - value including writes pending in the batch
func (d *AccessData) Get(key []byte) ([]byte, error) {
	d.Lock()
	entry, found := d.overlay.lookup(key)
	d.Unlock()
	if found {
		if opDelete == entry.op {
			return nil, leveldb.ErrNotFound
		}
		return entry.value, nil
	}
	return d.db.Get(key, nil)
}

// Committed - value as last written to the database
func (d *AccessData) Committed(key []byte) ([]byte, error) {
	return d.db.Get(key, nil)
}

func (d *AccessData) Has(key []byte) (bool, error) {
	d.Lock()
	entry, found := d.overlay.lookup(key)
	d.Unlock()
	if found {
		return opPut == entry.op, nil
	}
	return d.db.Has(key, nil)
}

func (d *AccessData) Iterator(searchRange *ldb_util.Range) iterator.Iterator {
	return d.db.NewIterator(searchRange, nil)
}

func (d *AccessData) InUse() bool {
	d.Lock()
	defer d.Unlock()
	return d.inUse
}
