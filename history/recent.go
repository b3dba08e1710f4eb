// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package history

import (
	"github.com/bitmark-inc/txguard/record"
)

// an observed record
type observation struct {
	record *record.Record
}

// RecentHistory - every outcome observed for one identifier
type RecentHistory struct {
	priority   *observation
	duplicates []observation
}

func (h *RecentHistory) observe(rec *record.Record) {
	if nil == h.priority {
		h.priority = &observation{record: rec}
		return
	}
	h.duplicates = append(h.duplicates, observation{record: rec})
}

// PriorityRecord - the canonical outcome, nil once everything expired
func (h *RecentHistory) PriorityRecord() *record.Record {
	if nil == h.priority {
		return nil
	}
	return h.priority.record
}

// DuplicateRecords - the other outcomes in arrival order
func (h *RecentHistory) DuplicateRecords() []*record.Record {
	if 0 == len(h.duplicates) {
		return nil
	}
	records := make([]*record.Record, len(h.duplicates))
	for i, d := range h.duplicates {
		records[i] = d.record
	}
	return records
}

// hasMember - true if any outcome came from the given node
func (h *RecentHistory) hasMember(member int64) bool {
	if nil != h.priority && member == h.priority.record.SubmittingMember {
		return true
	}
	for _, d := range h.duplicates {
		if member == d.record.SubmittingMember {
			return true
		}
	}
	return false
}

// forgetExpired - drop outcomes that expired by the given second,
// returns true when nothing is left
//
// when the priority expires the oldest surviving duplicate takes its place
func (h *RecentHistory) forgetExpired(second int64) bool {
	kept := h.duplicates[:0]
	for _, d := range h.duplicates {
		if !d.record.IsExpired(second) {
			kept = append(kept, d)
		}
	}
	h.duplicates = kept

	if nil != h.priority && h.priority.record.IsExpired(second) {
		h.priority = nil
		if len(h.duplicates) > 0 {
			first := h.duplicates[0]
			h.priority = &first
			h.duplicates = h.duplicates[1:]
		}
	}
	return nil == h.priority
}
