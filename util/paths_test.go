// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package util_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/txguard/util"
)

func TestEnsureAbsolute(t *testing.T) {
	tests := []struct {
		directory string
		path      string
		expected  string
	}{
		{"/var/lib/txguard", "data", "/var/lib/txguard/data"},
		{"/var/lib/txguard/", "./log/../log", "/var/lib/txguard/log"},
		{"/var/lib/txguard", "/srv/records", "/srv/records"},
		{"/var/lib/txguard", "/srv//records/", "/srv/records"},
	}

	for _, test := range tests {
		assert.Equal(t, test.expected, util.EnsureAbsolute(test.directory, test.path), test.path)
	}
}
