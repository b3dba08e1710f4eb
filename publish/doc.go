// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package publish - broadcast the finalised record stream
//
// every record is sent on each zmq PUB socket in stream order: the
// preceding children, the top level record, then the following
// children.  Each message has four frames:
//
//   "record"
//   consensus time as seconds.nanos
//   packed record
//   transaction bytes
//
// subscribers that fall behind lose messages, the stream is informative
// and the record store remains authoritative
package publish
