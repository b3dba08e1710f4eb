// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package reservoir

import (
	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/txguard/account"
	"github.com/bitmark-inc/txguard/history"
	"github.com/bitmark-inc/txguard/pending"
	"github.com/bitmark-inc/txguard/record"
	"github.com/bitmark-inc/txguard/responsecode"
	"github.com/bitmark-inc/txguard/transactionid"
)

// Reservoir - pre and post consensus entry points and the query surface
type Reservoir interface {
	AddPreConsensus(transactionid.ID)
	SetPostConsensus(transactionid.ID, responsecode.Code, *record.Record)
	IsReceiptPresent(transactionid.ID) bool
	HasDuplicate(transactionid.ID, int64) Classification

	GetPriorityReceipt(transactionid.ID) *record.Receipt
	GetPriorityRecord(transactionid.ID) *record.Record
	GetDuplicateReceipts(transactionid.ID) []record.Receipt
	GetDuplicateRecords(transactionid.ID) []*record.Record
	GetChildReceipts(transactionid.ID) []record.Receipt
	GetChildRecords(transactionid.ID) []*record.Record
	GetReceiptsByPayer(account.ID) []record.Receipt
	GetRecordsByPayer(account.ID) []*record.Record
}

// RecordCache - reservoir over a pending marker cache and a history table
type RecordCache struct {
	log     *logger.L
	pending *pending.Cache
	history *history.Table
}

// New - create a record cache
func New(p *pending.Cache, h *history.Table) *RecordCache {
	return &RecordCache{
		log:     logger.New("reservoir"),
		pending: p,
		history: h,
	}
}

// AddPreConsensus - transaction passed its pre-checks and awaits consensus
func (c *RecordCache) AddPreConsensus(id transactionid.ID) {
	c.pending.AddPreConsensus(id)
}

// SetPostConsensus - a finalised record reached consensus
func (c *RecordCache) SetPostConsensus(id transactionid.ID, status responsecode.Code, rec *record.Record) {
	c.history.Observe(id, status, rec)
	c.log.Debugf("post consensus: %s  status: %s", id, status)
}

// IsReceiptPresent - true if the transaction is pending or has history
func (c *RecordCache) IsReceiptPresent(id transactionid.ID) bool {
	return c.history.Has(id) || c.pending.IsPresent(id)
}

// HasDuplicate - classify whether id already reached consensus
//
// a pending marker alone is not a duplicate
func (c *RecordCache) HasDuplicate(id transactionid.ID, member int64) Classification {
	if !c.history.Has(id) {
		return NoDuplicate
	}
	if c.history.HasMember(id, member) {
		return SameNode
	}
	return OtherNode
}

// GetPriorityReceipt - canonical receipt, UNKNOWN while only pending,
// nil if the transaction is not known
func (c *RecordCache) GetPriorityReceipt(id transactionid.ID) *record.Receipt {
	if r := c.history.PriorityRecord(id); nil != r {
		receipt := r.Receipt
		return &receipt
	}
	if c.pending.IsPresent(id) {
		return &record.Receipt{Status: responsecode.Unknown}
	}
	return nil
}

// GetPriorityRecord - canonical record, nil if none
func (c *RecordCache) GetPriorityRecord(id transactionid.ID) *record.Record {
	return c.history.PriorityRecord(id)
}

// GetDuplicateReceipts - receipts of the non-priority records
func (c *RecordCache) GetDuplicateReceipts(id transactionid.ID) []record.Receipt {
	return receipts(c.history.DuplicateRecords(id))
}

// GetDuplicateRecords - the non-priority records in arrival order
func (c *RecordCache) GetDuplicateRecords(id transactionid.ID) []*record.Record {
	return c.history.DuplicateRecords(id)
}

// GetChildReceipts - receipts of the children of id
func (c *RecordCache) GetChildReceipts(id transactionid.ID) []record.Receipt {
	return receipts(c.history.ChildRecords(id))
}

// GetChildRecords - records of the children of id that have not expired
func (c *RecordCache) GetChildRecords(id transactionid.ID) []*record.Record {
	return c.history.ChildRecords(id)
}

// GetReceiptsByPayer - receipts of the payer's most recent records, oldest first
func (c *RecordCache) GetReceiptsByPayer(payer account.ID) []record.Receipt {
	return receipts(c.history.RecordsByPayer(payer))
}

// GetRecordsByPayer - the payer's most recent records including duplicates
// and children, oldest first
func (c *RecordCache) GetRecordsByPayer(payer account.ID) []*record.Record {
	return c.history.RecordsByPayer(payer)
}

func receipts(records []*record.Record) []record.Receipt {
	if 0 == len(records) {
		return nil
	}
	result := make([]record.Receipt, len(records))
	for i, r := range records {
		result[i] = r.Receipt
	}
	return result
}
