// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package wire - protocol buffer messages for transaction bodies,
// finalised records and consensus events
//
// the messages are tagged structs marshalled by the gogo protobuf
// runtime, field numbers must never be reused
package wire
