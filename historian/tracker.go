// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package historian

import (
	"github.com/bitmark-inc/txguard/timestamp"
)

// TimeTracker - consensus time budget around each top level transaction
type TimeTracker struct {
	maxPreceding    int
	maxFollowing    int
	current         timestamp.Timestamp
	actualFollowing int
}

// NewTimeTracker - create a tracker
func NewTimeTracker(maxPreceding int, maxFollowing int) *TimeTracker {
	return &TimeTracker{
		maxPreceding: maxPreceding,
		maxFollowing: maxFollowing,
	}
}

// Reset - start tracking a new top level transaction
func (t *TimeTracker) Reset(consensusTime timestamp.Timestamp) {
	t.current = consensusTime
	t.actualFollowing = 0
}

// IsAllowablePrecedingOffset - true if an n'th preceding child fits
func (t *TimeTracker) IsAllowablePrecedingOffset(n int) bool {
	return n > 0 && n <= t.maxPreceding
}

// IsAllowableFollowingOffset - true if an n'th following child fits
func (t *TimeTracker) IsAllowableFollowingOffset(n int) bool {
	return n > 0 && n <= t.maxFollowing
}

// SetActualFollowingRecordsCount - following children actually streamed
func (t *TimeTracker) SetActualFollowingRecordsCount(n int) {
	t.actualFollowing = n
}

// ActualFollowingRecordsCount - value recorded for the current transaction
func (t *TimeTracker) ActualFollowingRecordsCount() int {
	return t.actualFollowing
}

// FirstUsableTime - earliest consensus time the next top level
// transaction may take, leaving room for its preceding children
func (t *TimeTracker) FirstUsableTime() timestamp.Timestamp {
	return t.current.PlusNanos(int64(t.actualFollowing) + int64(t.maxPreceding) + 1)
}
