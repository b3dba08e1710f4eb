// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package platform - hand-off of accepted transactions to consensus
package platform

// Platform - create transaction primitive of the consensus layer
//
// true means the bytes entered the consensus pipeline, false means
// they were rejected and the caller may retry
type Platform interface {
	CreateTransaction(data []byte) bool
}
