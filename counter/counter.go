// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package counter - event tallies shared between goroutines without a
// mutex, such as dropped stream items or metered rejections
package counter

import (
	"sync/atomic"
)

// Counter - monotonic tally, the zero value is ready to use
type Counter uint64

// Increment - count one event and return the new total
func (c *Counter) Increment() uint64 {
	return c.Add(1)
}

// Add - count n events and return the new total
func (c *Counter) Add(n uint64) uint64 {
	return atomic.AddUint64((*uint64)(c), n)
}

// Uint64 - current total
func (c *Counter) Uint64() uint64 {
	return atomic.LoadUint64((*uint64)(c))
}

// IsZero - true if nothing has been counted
func (c *Counter) IsZero() bool {
	return 0 == c.Uint64()
}
