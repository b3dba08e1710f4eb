// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package account - ledger entity identifiers of the form shard.realm.num
package account

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/bitmark-inc/txguard/fault"
)

// ID - an account identifier
type ID struct {
	Shard int64 `json:"shard"`
	Realm int64 `json:"realm"`
	Num   int64 `json:"num"`
}

// New - create an account in shard 0 realm 0
func New(num int64) ID {
	return ID{Num: num}
}

// IsZero - true for the unset account
func (a ID) IsZero() bool {
	return 0 == a.Shard && 0 == a.Realm && 0 == a.Num
}

// Valid - all parts non-negative and a positive account number
func (a ID) Valid() bool {
	return a.Shard >= 0 && a.Realm >= 0 && a.Num > 0
}

// String - format as shard.realm.num
func (a ID) String() string {
	return fmt.Sprintf("%d.%d.%d", a.Shard, a.Realm, a.Num)
}

// FromString - parse shard.realm.num
func FromString(s string) (ID, error) {
	parts := strings.Split(s, ".")
	if 3 != len(parts) {
		return ID{}, fault.ErrInvalidAccount
	}
	n := [3]int64{}
	for i, p := range parts {
		v, err := strconv.ParseInt(p, 10, 64)
		if nil != err || v < 0 {
			return ID{}, fault.ErrInvalidAccount
		}
		n[i] = v
	}
	return ID{Shard: n[0], Realm: n[1], Num: n[2]}, nil
}

// MarshalText - convert account to text
func (a ID) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalText - convert text into an account
func (a *ID) UnmarshalText(s []byte) error {
	id, err := FromString(string(s))
	if nil != err {
		return err
	}
	*a = id
	return nil
}
