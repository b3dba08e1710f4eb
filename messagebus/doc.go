// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package messagebus - a bounded queue between a producer that must never
// block and a background consumer
//
// the consensus handler sends each finalised record set here; a full
// queue drops the item and counts it
package messagebus
