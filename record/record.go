// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package record - finalised transaction outcomes and their receipts
package record

import (
	"github.com/bitmark-inc/txguard/account"
	"github.com/bitmark-inc/txguard/responsecode"
	"github.com/bitmark-inc/txguard/timestamp"
	"github.com/bitmark-inc/txguard/transactionid"
)

// Receipt - the short form of an outcome
type Receipt struct {
	Status         responsecode.Code `json:"status"`
	CreatedAccount account.ID        `json:"createdAccount"`
}

// AccountAmount - balance change for one account
type AccountAmount struct {
	Account account.ID `json:"account"`
	Amount  int64      `json:"amount"`
}

// SidecarKind - type of sidecar payload
type SidecarKind int32

// sidecar kinds
const (
	StateChanges SidecarKind = iota
	Actions      SidecarKind = iota
	Bytecode     SidecarKind = iota
)

// Sidecar - auxiliary payload for a record
type Sidecar struct {
	ConsensusTime timestamp.Timestamp `json:"consensusTime"`
	Kind          SidecarKind         `json:"kind"`
	Payload       []byte              `json:"payload"`
}

// Record - the immutable outcome of one transaction
type Record struct {
	TransactionID       transactionid.ID    `json:"transactionId"`
	Receipt             Receipt             `json:"receipt"`
	ConsensusTime       timestamp.Timestamp `json:"consensusTime"`
	ParentConsensusTime timestamp.Timestamp `json:"parentConsensusTime"`
	TransactionHash     []byte              `json:"transactionHash"`
	Memo                string              `json:"memo"`
	Fee                 uint64              `json:"fee"`
	Transfers           []AccountAmount     `json:"transfers"`
	NumChildRecords     uint16              `json:"numChildRecords"`
	Sidecars            []Sidecar           `json:"sidecars,omitempty"`
	Expiry              int64               `json:"expiry"`
	SubmittingMember    int64               `json:"submittingMember"`
}

// Status - status from the receipt
func (r *Record) Status() responsecode.Code {
	return r.Receipt.Status
}

// HasParentConsensusTime - only following child records carry one
func (r *Record) HasParentConsensusTime() bool {
	return !r.ParentConsensusTime.IsZero()
}

// IsExpired - true once the given consensus second reaches the expiry
func (r *Record) IsExpired(second int64) bool {
	return 0 != r.Expiry && second >= r.Expiry
}

// Copy - deep copy
func (r *Record) Copy() *Record {
	c := *r
	if nil != r.TransactionHash {
		c.TransactionHash = append([]byte{}, r.TransactionHash...)
	}
	if nil != r.Transfers {
		c.Transfers = append([]AccountAmount{}, r.Transfers...)
	}
	if nil != r.Sidecars {
		c.Sidecars = make([]Sidecar, len(r.Sidecars))
		for i, s := range r.Sidecars {
			c.Sidecars[i] = s
			c.Sidecars[i].Payload = append([]byte{}, s.Payload...)
		}
	}
	return &c
}
