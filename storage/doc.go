// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package storage - maintain the on-disk record store
//
// This maintains a LevelDB database split into a series of tables.
// Each table is defined by a prefix byte that is obtained from the
// prefix tag in the struct defining the available tables.
//
// Notes:
// 1. each separate pool has a single byte prefix (to spread the keys in LevelDB)
// 2. ++             = concatenation of byte data
// 3. consensus time = seconds(big endian int64) ++ nanos(big endian int32), 12 bytes
// 4. second         = big endian int64 (8 bytes)
// 5. payer          = shard ++ realm ++ num, each big endian int64 (24 bytes)
// 6. txKey          = packed transaction identifier, see transactionid.Key
//
// Records:
//
//   R ++ consensus time           - finalised record
//                                   data: checksum ++ protobuf record
//
// Indexes (all data empty):
//
//   E ++ second ++ consensus time - record expires at second
//   P ++ payer ++ consensus time  - record paid for by payer
//   T ++ txKey ++ consensus time  - record for transaction, duplicates share txKey
//
// Testing:
//   Z ++ key                      - testing data
package storage
