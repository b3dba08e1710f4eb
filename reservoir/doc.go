// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package reservoir - the record cache answering receipt and record
// queries
//
// before consensus a transaction is only known by its pending marker,
// after consensus its history takes priority over the marker; an
// identifier whose marker and history both expired reads as not found
package reservoir
