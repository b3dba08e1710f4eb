// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/txguard/expiry"
	"github.com/bitmark-inc/txguard/fault"
	"github.com/bitmark-inc/txguard/transactionid"
)

func runGet(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	id, err := transactionid.FromString(c.String("txid"))
	if nil != err {
		return err
	}

	if m.verbose {
		fmt.Fprintf(m.e, "txid: %s\n", id)
	}

	records, err := expiry.RecordsOf(id)
	if nil != err {
		return err
	}
	if 0 == len(records) {
		return fault.ErrRecordNotFound
	}

	return printJson(m.w, records)
}
