// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"github.com/pkg/errors"
	"github.com/urfave/cli"

	"github.com/bitmark-inc/txguard/account"
	"github.com/bitmark-inc/txguard/expiry"
	"github.com/bitmark-inc/txguard/record"
)

var errCountReached = errors.New("count reached")

func runList(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	count := c.Int("count")
	if count < 0 {
		return errors.New("count cannot be negative")
	}

	records := []*record.Record{}

	if p := c.String("payer"); "" != p {
		payer, err := account.FromString(p)
		if nil != err {
			return err
		}
		records, err = expiry.RecordsPaidBy(payer)
		if nil != err {
			return err
		}
		if count > 0 && len(records) > count {
			records = records[:count]
		}
	} else {
		err := expiry.EachRecord(func(rec *record.Record) error {
			records = append(records, rec)
			if count > 0 && len(records) >= count {
				return errCountReached
			}
			return nil
		})
		if nil != err && errCountReached != err {
			return err
		}
	}

	return printJson(m.w, records)
}
