// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package expiry - persist finalised records with a limited lifetime
//
// every record is written with its expiry second, the sweeper deletes
// records once consensus time passes that second and prunes the
// in-memory history in step
package expiry
