// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package historian

import (
	"time"

	"golang.org/x/time/rate"
)

// ChildThrottle - rate limit on child transactions driven by consensus
// time rather than the wall clock so every node decides the same way
type ChildThrottle struct {
	limiter *rate.Limiter
}

// NewChildThrottle - allow perSecond children with the given burst
//
// a zero rate disables throttling
func NewChildThrottle(perSecond float64, burst int) *ChildThrottle {
	if perSecond <= 0 {
		return &ChildThrottle{}
	}
	return &ChildThrottle{
		limiter: rate.NewLimiter(rate.Limit(perSecond), burst),
	}
}

// reserve - take n slots at time now, either all or none
func (t *ChildThrottle) reserve(now time.Time, n int) bool {
	if nil == t.limiter || 0 == n {
		return true
	}
	reservations := make([]*rate.Reservation, 0, n)
	for i := 0; i < n; i += 1 {
		r := t.limiter.ReserveN(now, 1)
		reservations = append(reservations, r)
		if !r.OK() || r.DelayFrom(now) > 0 {
			for j := len(reservations) - 1; j >= 0; j -= 1 {
				reservations[j].CancelAt(now)
			}
			return false
		}
	}
	return true
}
