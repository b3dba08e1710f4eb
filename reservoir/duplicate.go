// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package reservoir

// Classification - result of a duplicate check
type Classification int

// possible classifications
const (
	NoDuplicate Classification = iota
	SameNode    Classification = iota
	OtherNode   Classification = iota
)

// String - convert the classification for printf
func (c Classification) String() string {
	switch c {
	case NoDuplicate:
		return "NoDuplicate"
	case SameNode:
		return "SameNode"
	case OtherNode:
		return "OtherNode"
	default:
		return "*Unknown*"
	}
}
