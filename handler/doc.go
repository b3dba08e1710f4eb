// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package handler - consume transactions in consensus order
//
// each consensus event carries the consensus time, the submitting
// member and the signed transaction exactly as submitted.  The handler
// classifies the transaction against the record history, builds its
// top level record and finalises it through the historian.
//
// events arrive either from a consensus platform over a zmq PULL socket
// or, when no platform is configured, from the in-process loopback
// which assigns consensus time from the local clock.
package handler
