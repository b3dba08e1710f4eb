// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package version - release reported by txguardd and txguard-records
package version

// git tag "vMajor.Minor" must match
const (
	Major   = "1"
	Minor   = "0"
	Version = Major + "." + Minor
)
