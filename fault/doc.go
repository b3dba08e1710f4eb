// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package fault - shared error values and the last resort panic path
//
// each error belongs to a class (exists, invalid, limit, not found,
// process) so callers test the class or compare the instance rather
// than match message text. rejections returned to a submitting client
// are PreCheckError values carrying the response code to report.
package fault
