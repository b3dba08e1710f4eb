// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package expiry

import (
	"time"

	"github.com/bitmark-inc/logger"
	"github.com/pkg/errors"

	"github.com/bitmark-inc/txguard/record"
	"github.com/bitmark-inc/txguard/storage"
)

const sweepBatchSize = 1000

// Pruner - in-memory history kept in step with storage
type Pruner interface {
	Prune(second int64) int
}

// Sweeper - background removal of expired records
type Sweeper struct {
	log      *logger.L
	history  Pruner
	interval time.Duration
	now      func() time.Time
}

// NewSweeper - sweep every interval
func NewSweeper(history Pruner, interval time.Duration) *Sweeper {
	return &Sweeper{
		log:      logger.New("expiry"),
		history:  history,
		interval: interval,
		now:      time.Now,
	}
}

// Run - sweep until shutdown
func (s *Sweeper) Run(args interface{}, shutdown <-chan struct{}) {
	log := s.log

	log.Info("starting…")

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

loop:
	for {
		select {
		case <-shutdown:
			break loop
		case <-ticker.C:
			n, err := s.Sweep(s.now().Unix())
			if nil != err {
				log.Errorf("sweep: %s", err)
			} else if n > 0 {
				log.Infof("swept: %d", n)
			}
		}
	}

	log.Info("stopped")
}

// Sweep - delete every record expired at second, returns the count
func (s *Sweeper) Sweep(second int64) (int, error) {
	total := 0
	for {
		n, more, err := s.sweepBatch(second)
		total += n
		if nil != err {
			return total, err
		}
		if !more {
			break
		}
	}
	s.history.Prune(second)
	return total, nil
}

// delete one batch of expired records, more is true if the batch was
// full and further expired records may remain
func (s *Sweeper) sweepBatch(second int64) (int, bool, error) {
	elements, err := storage.Pool.Expiring.NewFetchCursor().Fetch(sweepBatchSize)
	if nil != err {
		return 0, false, err
	}

	trx, err := storage.NewDBTransaction()
	if nil != err {
		return 0, false, err
	}

	n := 0
	for _, e := range elements {
		expiry, recordKey, err := splitExpiringKey(e.Key)
		if nil != err {
			trx.Abort()
			return 0, false, errors.Wrapf(err, "expiring key: %x", e.Key)
		}
		if expiry > second {
			break
		}

		trx.Delete(storage.Pool.Expiring, e.Key)

		if payer, err := accountFromBytes(e.Value); nil == err {
			trx.Delete(storage.Pool.Payers, payerKey(payer, recordKey))
		}

		packed := trx.Get(storage.Pool.Records, recordKey)
		if nil != packed {
			if rec, err := record.Packed(packed).Unpack(); nil == err {
				trx.Delete(storage.Pool.Transactions, transactionKey(rec.TransactionID, recordKey))
			} else {
				s.log.Warnf("unreadable record: %x  error: %s", recordKey, err)
			}
			trx.Delete(storage.Pool.Records, recordKey)
		}
		n += 1
	}

	if err := trx.Commit(); nil != err {
		return 0, false, errors.Wrap(err, "commit sweep")
	}
	return n, n == sweepBatchSize, nil
}
