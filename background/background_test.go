// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package background_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/txguard/background"
	"github.com/bitmark-inc/txguard/counter"
)

type ticker struct {
	ticks    counter.Counter
	finished bool
}

func (state *ticker) Run(args interface{}, shutdown <-chan struct{}) {
	interval := args.(time.Duration)
loop:
	for {
		select {
		case <-shutdown:
			break loop
		case <-time.After(interval):
			state.ticks.Increment()
		}
	}
	state.finished = true
}

func TestStartStop(t *testing.T) {
	proc1 := &ticker{}
	proc2 := &ticker{}

	funcDone := false
	proc3 := background.ProcessFunc(func(args interface{}, shutdown <-chan struct{}) {
		<-shutdown
		funcDone = true
	})

	p := background.Start(background.Processes{proc1, proc2, proc3}, time.Millisecond)
	time.Sleep(50 * time.Millisecond)
	p.Stop()

	assert.True(t, proc1.finished, "proc1 finished")
	assert.True(t, proc2.finished, "proc2 finished")
	assert.True(t, funcDone, "func finished")
	assert.False(t, proc1.ticks.IsZero(), "proc1 ran")

	// second stop must not panic on a closed channel
	p.Stop()
}

func TestEmpty(t *testing.T) {
	p := background.Start(nil, nil)
	p.Stop()
}
