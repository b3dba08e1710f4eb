// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package historian - finalise the records of a top level transaction
// and the child transactions its business logic created
//
// each top level transaction gets its own Context from Begin, the
// context owns the in-progress children and is discarded after
// Finalise, so nothing carries over to the next transaction
//
// preceding children take the nanoseconds just before the top level
// consensus time, following children the nanoseconds just after it,
// children that are reverted or not externalized take neither a nonce
// nor a time
package historian
