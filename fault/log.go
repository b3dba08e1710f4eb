// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fault

import (
	"fmt"
	"runtime"
	"time"

	"github.com/bitmark-inc/logger"
)

// time allowed for the log file to be written before the panic
const flushDelay = 100 * time.Millisecond

// last resort channel, only used immediately before a panic
var log *logger.L

// Initialise - open the channel used to report unrecoverable failures
func Initialise() error {
	if nil != log {
		return ErrAlreadyInitialised
	}
	log = logger.New("fault")
	if nil == log {
		return ErrInvalidLoggerChannel
	}
	return nil
}

// Finalise - flush and detach the channel
func Finalise() {
	if nil != log {
		log.Flush()
	}
	log = nil
}

// Panicf - record the caller location and a formatted reason then panic
// with the reason as the value
func Panicf(format string, arguments ...interface{}) {
	reason := fmt.Sprintf(format, arguments...)
	abort(location(2), reason)
}

// PanicWithError - an operation that the guard cannot survive has failed
func PanicWithError(operation string, err error) {
	abort(location(2), fmt.Sprintf("%s failed with error: %v", operation, err))
}

// PanicIfError - PanicWithError only when err is set
func PanicIfError(operation string, err error) {
	if nil == err {
		return
	}
	abort(location(2), fmt.Sprintf("%s failed with error: %v", operation, err))
}

func location(skip int) string {
	_, file, line, ok := runtime.Caller(skip)
	if !ok {
		return "?"
	}
	return fmt.Sprintf("%s:%d", file, line)
}

func abort(where string, reason string) {
	if nil == log {
		fmt.Printf("*** (%s) %s\n", where, reason)
	} else {
		log.Criticalf("(%s) %s", where, reason)
		log.Flush()
		time.Sleep(flushDelay)
	}
	panic(reason)
}
