// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package record

import (
	"github.com/bitmark-inc/txguard/account"
	"github.com/bitmark-inc/txguard/responsecode"
	"github.com/bitmark-inc/txguard/timestamp"
	"github.com/bitmark-inc/txguard/transactionid"
)

// Builder - a record under construction
//
// not safe for concurrent use, a builder belongs to the single
// consensus handling goroutine
type Builder struct {
	rec             Record
	reverted        bool
	notExternalized bool
}

// NewBuilder - empty builder
func NewBuilder() *Builder {
	return &Builder{}
}

// SetTransactionID - identifier the record is for
func (b *Builder) SetTransactionID(id transactionid.ID) *Builder {
	b.rec.TransactionID = id
	return b
}

// SetStatus - receipt status
func (b *Builder) SetStatus(status responsecode.Code) *Builder {
	b.rec.Receipt.Status = status
	return b
}

// SetCreatedAccount - account created by the transaction, if any
func (b *Builder) SetCreatedAccount(a account.ID) *Builder {
	b.rec.Receipt.CreatedAccount = a
	return b
}

// SetConsensusTime - consensus time assigned to the record
func (b *Builder) SetConsensusTime(ts timestamp.Timestamp) *Builder {
	b.rec.ConsensusTime = ts
	return b
}

// SetParentConsensusTime - marks a child record with its parent's time
func (b *Builder) SetParentConsensusTime(ts timestamp.Timestamp) *Builder {
	b.rec.ParentConsensusTime = ts
	return b
}

// SetTransactionHash - hash of the signed transaction bytes
func (b *Builder) SetTransactionHash(hash []byte) *Builder {
	b.rec.TransactionHash = hash
	return b
}

// SetMemo - memo copied from the body
func (b *Builder) SetMemo(memo string) *Builder {
	b.rec.Memo = memo
	return b
}

// SetFee - fee charged
func (b *Builder) SetFee(fee uint64) *Builder {
	b.rec.Fee = fee
	return b
}

// SetNumChildRecords - following children streamed after this record
func (b *Builder) SetNumChildRecords(n uint16) *Builder {
	b.rec.NumChildRecords = n
	return b
}

// AddTransfer - accumulate a balance change, merging by account
func (b *Builder) AddTransfer(a account.ID, amount int64) *Builder {
	for i := range b.rec.Transfers {
		if b.rec.Transfers[i].Account == a {
			b.rec.Transfers[i].Amount += amount
			b.dropZeroTransfers()
			return b
		}
	}
	if 0 != amount {
		b.rec.Transfers = append(b.rec.Transfers, AccountAmount{Account: a, Amount: amount})
	}
	return b
}

// AddSidecar - attach a payload, its time is set on finalisation
func (b *Builder) AddSidecar(kind SidecarKind, payload []byte) *Builder {
	b.rec.Sidecars = append(b.rec.Sidecars, Sidecar{Kind: kind, Payload: payload})
	return b
}

// StampSidecars - set every sidecar time to the record's consensus time
func (b *Builder) StampSidecars() {
	for i := range b.rec.Sidecars {
		b.rec.Sidecars[i].ConsensusTime = b.rec.ConsensusTime
	}
}

// TransactionID - identifier set so far
func (b *Builder) TransactionID() transactionid.ID { return b.rec.TransactionID }

// Status - current receipt status
func (b *Builder) Status() responsecode.Code { return b.rec.Receipt.Status }

// ConsensusTime - consensus time set so far
func (b *Builder) ConsensusTime() timestamp.Timestamp { return b.rec.ConsensusTime }

// Transfers - accumulated balance changes, not a copy
func (b *Builder) Transfers() []AccountAmount { return b.rec.Transfers }

// Sidecars - attached payloads, not a copy
func (b *Builder) Sidecars() []Sidecar { return b.rec.Sidecars }

// Revert - undo the effects of the transaction
//
// a successful status becomes REVERTED_SUCCESS, a failure status is kept
func (b *Builder) Revert() {
	b.reverted = true
	if b.rec.Receipt.Status.IsSuccessful() {
		b.rec.Receipt.Status = responsecode.RevertedSuccess
	}
	b.rec.Transfers = nil
}

// IsReverted - true after Revert
func (b *Builder) IsReverted() bool {
	return b.reverted
}

// SetShouldNotBeExternalized - keep the record out of the stream
func (b *Builder) SetShouldNotBeExternalized() *Builder {
	b.notExternalized = true
	return b
}

// ShouldNotBeExternalized - true if the record stays out of the stream
func (b *Builder) ShouldNotBeExternalized() bool {
	return b.notExternalized
}

// ExcludeTransfersFrom - remove the balance changes another record
// already reports
func (b *Builder) ExcludeTransfersFrom(other *Builder) {
	for _, t := range other.rec.Transfers {
		b.AddTransfer(t.Account, -t.Amount)
	}
}

func (b *Builder) dropZeroTransfers() {
	n := 0
	for _, t := range b.rec.Transfers {
		if 0 != t.Amount {
			b.rec.Transfers[n] = t
			n += 1
		}
	}
	b.rec.Transfers = b.rec.Transfers[:n]
}

// Build - snapshot of the current state as an independent record
func (b *Builder) Build() *Record {
	return b.rec.Copy()
}
