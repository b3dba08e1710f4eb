// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"github.com/bitmark-inc/txguard/dedup"
	"github.com/bitmark-inc/txguard/record"
	"github.com/bitmark-inc/txguard/reservoir"
	"github.com/bitmark-inc/txguard/responsecode"
	"github.com/bitmark-inc/txguard/transactionid"
)

// restored records fill the record cache and, for top level
// identifiers, the deduplication cache
type restorer struct {
	records   reservoir.Reservoir
	submitted *dedup.Cache
}

func (r restorer) SetPostConsensus(id transactionid.ID, status responsecode.Code, rec *record.Record) {
	r.records.SetPostConsensus(id, status, rec)
	if !id.IsChild() {
		r.submitted.Record(id)
	}
}
