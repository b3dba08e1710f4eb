// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package history

import (
	"sync"

	"github.com/bitmark-inc/logger"
	farm "github.com/dgryski/go-farm"

	"github.com/bitmark-inc/txguard/account"
	"github.com/bitmark-inc/txguard/record"
	"github.com/bitmark-inc/txguard/responsecode"
	"github.com/bitmark-inc/txguard/transactionid"
)

// number of table shards must be a power of 2
// and mask is the corresponding bit mask
const (
	shards = 16
	mask   = shards - 1
)

// lockable map
type lockable struct {
	sync.RWMutex
	table map[transactionid.Key]*RecentHistory
}

// most recent records per payer in arrival order, duplicates and
// children included
type payerIndex struct {
	sync.RWMutex
	limit   int
	records map[account.ID][]*record.Record
}

// Table - identifier to recent history
type Table struct {
	log    *logger.L
	shards [shards]lockable
	payers payerIndex
}

// New - create a table remembering at most maxPerPayer records per payer
func New(maxPerPayer int) *Table {
	t := &Table{
		log: logger.New("history"),
		payers: payerIndex{
			limit:   maxPerPayer,
			records: make(map[account.ID][]*record.Record),
		},
	}
	for i := 0; i < shards; i += 1 {
		t.shards[i].table = make(map[transactionid.Key]*RecentHistory, 1000)
	}
	return t
}

func (t *Table) shard(k transactionid.Key) *lockable {
	n := farm.Fingerprint64([]byte(k)) & mask
	return &t.shards[n]
}

// Observe - fold a finalised record into the history of id
func (t *Table) Observe(id transactionid.ID, status responsecode.Code, rec *record.Record) {
	k := id.Key()
	s := t.shard(k)

	s.Lock()
	h, ok := s.table[k]
	if !ok {
		h = &RecentHistory{}
		s.table[k] = h
	}
	h.observe(rec)
	duplicate := 0 != len(h.duplicates)
	s.Unlock()

	if duplicate {
		t.log.Debugf("duplicate: %s  status: %s", id, status)
	}
	t.payers.add(rec.TransactionID.Payer, rec)
}

// Has - true if any history exists for id
func (t *Table) Has(id transactionid.ID) bool {
	k := id.Key()
	s := t.shard(k)

	s.RLock()
	_, ok := s.table[k]
	s.RUnlock()
	return ok
}

// PriorityRecord - canonical record for id, nil if none
func (t *Table) PriorityRecord(id transactionid.ID) *record.Record {
	k := id.Key()
	s := t.shard(k)

	s.RLock()
	defer s.RUnlock()
	if h, ok := s.table[k]; ok {
		return h.PriorityRecord()
	}
	return nil
}

// DuplicateRecords - non-priority records for id in arrival order
func (t *Table) DuplicateRecords(id transactionid.ID) []*record.Record {
	k := id.Key()
	s := t.shard(k)

	s.RLock()
	defer s.RUnlock()
	if h, ok := s.table[k]; ok {
		return h.DuplicateRecords()
	}
	return nil
}

// HasMember - true if some record for id was submitted by member
func (t *Table) HasMember(id transactionid.ID, member int64) bool {
	k := id.Key()
	s := t.shard(k)

	s.RLock()
	defer s.RUnlock()
	if h, ok := s.table[k]; ok {
		return h.hasMember(member)
	}
	return false
}

// ChildRecords - priority records of the children of id
//
// children are found by nonce from the parent's declared child count,
// a child that already expired is skipped
func (t *Table) ChildRecords(id transactionid.ID) []*record.Record {
	parent := t.PriorityRecord(id)
	if nil == parent || 0 == parent.NumChildRecords {
		return nil
	}

	children := make([]*record.Record, 0, parent.NumChildRecords)
	for nonce := int32(1); nonce <= int32(parent.NumChildRecords); nonce += 1 {
		if child := t.PriorityRecord(id.WithNonce(nonce)); nil != child {
			children = append(children, child)
		}
	}
	return children
}

// RecordsByPayer - the most recent records paid for by payer, oldest
// first, whatever their status
func (t *Table) RecordsByPayer(payer account.ID) []*record.Record {
	return t.payers.get(payer)
}

// Prune - forget everything that expired by the given consensus second,
// returns the number of identifiers removed
func (t *Table) Prune(second int64) int {
	removed := 0
	for i := 0; i < shards; i += 1 {
		s := &t.shards[i]
		s.Lock()
		for k, h := range s.table {
			if h.forgetExpired(second) {
				delete(s.table, k)
				removed += 1
			}
		}
		s.Unlock()
	}
	// duplicates may expire while their priority record remains
	t.payers.compact(second)
	if removed > 0 {
		t.log.Infof("pruned: %d", removed)
	}
	return removed
}

// Size - number of identifiers with history
func (t *Table) Size() int {
	n := 0
	for i := 0; i < shards; i += 1 {
		t.shards[i].RLock()
		n += len(t.shards[i].table)
		t.shards[i].RUnlock()
	}
	return n
}

func (p *payerIndex) add(payer account.ID, rec *record.Record) {
	if p.limit <= 0 {
		return
	}
	p.Lock()
	records := append(p.records[payer], rec)
	if len(records) > p.limit {
		records = append([]*record.Record{}, records[len(records)-p.limit:]...)
	}
	p.records[payer] = records
	p.Unlock()
}

func (p *payerIndex) get(payer account.ID) []*record.Record {
	p.RLock()
	defer p.RUnlock()
	return append([]*record.Record{}, p.records[payer]...)
}

// drop records that expired by the given consensus second
func (p *payerIndex) compact(second int64) {
	p.Lock()
	defer p.Unlock()
	for payer, records := range p.records {
		kept := records[:0]
		for _, rec := range records {
			if !rec.IsExpired(second) {
				kept = append(kept, rec)
			}
		}
		if 0 == len(kept) {
			delete(p.records, payer)
		} else {
			p.records[payer] = kept
		}
	}
}
