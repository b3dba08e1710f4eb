// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package mode_test

import (
	"os"
	"testing"

	"github.com/bitmark-inc/logger"
	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/txguard/chain"
	"github.com/bitmark-inc/txguard/fault"
	"github.com/bitmark-inc/txguard/mode"
)

const (
	testingDirName = "testing"
)

func TestMain(m *testing.M) {
	_ = os.RemoveAll(testingDirName)
	_ = os.Mkdir(testingDirName, 0700)

	logConfig := logger.Configuration{
		Directory: testingDirName,
		File:      "testing.log",
		Size:      1048576,
		Count:     10,
		Console:   false,
		Levels: map[string]string{
			logger.DefaultTag: "critical",
		},
	}
	_ = logger.Initialise(logConfig)

	rc := m.Run()

	logger.Finalise()
	_ = os.RemoveAll(testingDirName)
	os.Exit(rc)
}

func TestUncheckedSubmitPolicy(t *testing.T) {
	items := []struct {
		chain   string
		profile string
		allowed bool
	}{
		{chain.Local, mode.Development, true},
		{chain.Local, mode.Test, true},
		{chain.Local, mode.Production, false},
		{chain.Testnet, mode.Development, false},
		{chain.Mainnet, mode.Test, false},
	}

	for i, item := range items {
		err := mode.Initialise(item.chain, item.profile)
		assert.Nil(t, err, "%d: initialise", i)
		assert.Equal(t, item.allowed, mode.IsUncheckedSubmitAllowed(), "%d: allowed", i)
		assert.Equal(t, item.allowed, mode.Policy{}.IsUncheckedSubmitAllowed(), "%d: policy", i)
		assert.Equal(t, item.chain, mode.ChainName(), "%d: chain", i)
		assert.True(t, mode.Is(mode.Starting), "%d: starting", i)

		err = mode.Finalise()
		assert.Nil(t, err, "%d: finalise", i)
		assert.False(t, mode.IsUncheckedSubmitAllowed(), "%d: after finalise", i)
	}
}

func TestInitialiseErrors(t *testing.T) {
	assert.Equal(t, fault.ErrInvalidChain, mode.Initialise("bitmark", mode.Test))
	assert.Equal(t, fault.ErrInvalidProfile, mode.Initialise(chain.Local, "staging"))
	assert.Equal(t, fault.ErrNotInitialised, mode.Finalise())

	assert.Nil(t, mode.Initialise(chain.Local, mode.Test))
	assert.Equal(t, fault.ErrAlreadyInitialised, mode.Initialise(chain.Local, mode.Test))

	mode.Set(mode.Normal)
	assert.True(t, mode.Is(mode.Normal))
	assert.Equal(t, "Normal", mode.String())

	assert.Nil(t, mode.Finalise())
	assert.True(t, mode.Is(mode.Stopped))
}
