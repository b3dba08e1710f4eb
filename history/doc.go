// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package history - recent outcomes per transaction identifier
//
// the table is split into shards each with its own lock so that
// readers of one identifier never wait for writers of another
//
// the first record observed for an identifier is its priority record,
// later records for the same identifier are duplicates kept in arrival
// order, the priority is not re-ranked by status
package history
