// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package expiry

import (
	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/txguard/record"
	"github.com/bitmark-inc/txguard/responsecode"
	"github.com/bitmark-inc/txguard/timestamp"
	"github.com/bitmark-inc/txguard/transactionid"
)

// Observer - receives each restored record
type Observer interface {
	SetPostConsensus(transactionid.ID, responsecode.Code, *record.Record)
}

// Restored - result of a restore
//
// Latest is the consensus time of the last stored record, expired or
// not, zero if the store is empty
type Restored struct {
	Count  int
	Latest timestamp.Timestamp
}

// Restore - feed every record still live at second to the observer in
// consensus order
func Restore(observer Observer, second int64) (Restored, error) {
	log := logger.New("expiry")

	restored := Restored{}
	err := EachRecord(func(rec *record.Record) error {
		if restored.Latest.Before(rec.ConsensusTime) {
			restored.Latest = rec.ConsensusTime
		}
		if rec.IsExpired(second) {
			return nil
		}
		observer.SetPostConsensus(rec.TransactionID, rec.Status(), rec)
		restored.Count += 1
		return nil
	})
	if nil != err {
		return restored, err
	}

	log.Infof("restored: %d  latest consensus time: %s", restored.Count, restored.Latest)
	return restored, nil
}
