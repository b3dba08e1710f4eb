// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package expiry

import (
	"time"

	"github.com/bitmark-inc/logger"
	"github.com/pkg/errors"

	"github.com/bitmark-inc/txguard/account"
	"github.com/bitmark-inc/txguard/fault"
	"github.com/bitmark-inc/txguard/record"
	"github.com/bitmark-inc/txguard/storage"
)

// Creations - writes records that expire a fixed time after consensus
type Creations struct {
	log *logger.L
	ttl int64
}

// NewCreations - records live for ttl, counted in whole seconds
func NewCreations(ttl time.Duration) *Creations {
	return &Creations{
		log: logger.New("expiry"),
		ttl: int64(ttl / time.Second),
	}
}

// SaveExpiringRecord - persist a copy of rec stamped with its expiry and
// submitting member, the copy is returned
//
// fails with fault.ErrRecordExists if a record is already stored at the
// same consensus time
func (c *Creations) SaveExpiringRecord(payer account.ID, rec *record.Record, consensusSecond int64, submittingMember int64) (*record.Record, error) {
	saved := rec.Copy()
	saved.Expiry = consensusSecond + c.ttl
	saved.SubmittingMember = submittingMember

	packed, err := saved.Pack()
	if nil != err {
		return nil, err
	}

	trx, err := storage.NewDBTransaction()
	if nil != err {
		return nil, err
	}

	// a consensus time is only ever used once, a record already
	// stored there belongs to another transaction and its indexes
	key := RecordKey(saved.ConsensusTime)
	if trx.Has(storage.Pool.Records, key) {
		trx.Abort()
		c.log.Errorf("consensus time: %s  already holds a record, refused: %s", saved.ConsensusTime, saved.TransactionID)
		return nil, fault.ErrRecordExists
	}
	trx.Put(storage.Pool.Records, key, packed)
	trx.Put(storage.Pool.Expiring, expiringKey(saved.Expiry, saved.ConsensusTime), AccountBytes(payer))
	trx.Put(storage.Pool.Payers, payerKey(payer, key), []byte{})
	trx.Put(storage.Pool.Transactions, transactionKey(saved.TransactionID, key), []byte{})

	if err := trx.Commit(); nil != err {
		return nil, errors.Wrapf(err, "commit record: %s", saved.TransactionID)
	}

	c.log.Debugf("saved: %s  at: %s  expiry: %d", saved.TransactionID, saved.ConsensusTime, saved.Expiry)
	return saved, nil
}
