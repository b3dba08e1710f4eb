// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"github.com/syndtr/goleveldb/leveldb/util"

	"github.com/bitmark-inc/txguard/fault"
)

// FetchCursor - position within the key range of one pool
type FetchCursor struct {
	pool   *PoolHandle
	bounds util.Range
}

// NewFetchCursor - cursor covering every key of the pool
func (p *PoolHandle) NewFetchCursor() *FetchCursor {
	return &FetchCursor{
		pool: p,
		bounds: util.Range{
			Start: []byte{p.prefix},
			Limit: p.limit,
		},
	}
}

// Seek - start at key, or the first key after it
func (cursor *FetchCursor) Seek(key []byte) *FetchCursor {
	cursor.bounds.Start = cursor.pool.prefixKey(key)
	return cursor
}

// Prefix - only visit keys beginning with prefix
func (cursor *FetchCursor) Prefix(prefix []byte) *FetchCursor {
	cursor.bounds = *util.BytesPrefix(cursor.pool.prefixKey(prefix))
	return cursor
}

// Fetch - next count elements; the cursor moves past the last one
// so repeated calls page through the range
func (cursor *FetchCursor) Fetch(count int) ([]Element, error) {
	if count <= 0 {
		return nil, fault.ErrInvalidCount
	}

	page := make([]Element, 0, count)
	err := cursor.iterate(func(e Element) (bool, error) {
		page = append(page, e)
		return len(page) < count, nil
	})

	if n := len(page); n > 0 {
		cursor.bounds.Start = append(cursor.pool.prefixKey(page[n-1].Key), 0x00)
	}
	return page, err
}

// Map - call f for each remaining element, the first error from f
// ends the scan and is returned
func (cursor *FetchCursor) Map(f func(key []byte, value []byte) error) error {
	return cursor.iterate(func(e Element) (bool, error) {
		if err := f(e.Key, e.Value); nil != err {
			return false, err
		}
		return true, nil
	})
}

// visit returns false to stop
func (cursor *FetchCursor) iterate(visit func(Element) (bool, error)) error {
	poolData.RLock()
	defer poolData.RUnlock()
	if nil == poolData.db {
		return fault.ErrDatabaseIsNotSet
	}

	iter := cursor.pool.dataAccess.Iterator(&cursor.bounds)
	defer iter.Release()

	for iter.Next() {
		more, err := visit(element(iter.Key(), iter.Value()))
		if nil != err {
			return err
		}
		if !more {
			break
		}
	}
	return iter.Error()
}
