// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package counter_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/txguard/counter"
)

func TestCounter(t *testing.T) {
	var c counter.Counter

	assert.True(t, c.IsZero(), "zero at start")

	for i := 0; i < 5; i += 1 {
		c.Increment()
	}
	assert.Equal(t, uint64(5), c.Uint64())
	assert.False(t, c.IsZero(), "counted")

	assert.Equal(t, uint64(15), c.Add(10))
	assert.Equal(t, uint64(16), c.Increment())
	assert.Equal(t, uint64(16), c.Uint64())
}

func TestConcurrentIncrement(t *testing.T) {
	var c counter.Counter
	var wg sync.WaitGroup

	const workers = 8
	const each = 1000
	for i := 0; i < workers; i += 1 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < each; j += 1 {
				c.Increment()
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, uint64(workers*each), c.Uint64())
}
