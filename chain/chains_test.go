// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/txguard/chain"
)

func TestChains(t *testing.T) {
	for _, name := range []string{chain.Mainnet, chain.Testnet, chain.Previewnet, chain.Local} {
		assert.True(t, chain.Valid(name), name)
		_, ok := chain.LedgerID(name)
		assert.True(t, ok, name)
	}
	assert.False(t, chain.Valid("bitmark"))

	assert.True(t, chain.IsProductionLike(chain.Mainnet))
	assert.True(t, chain.IsProductionLike(chain.Previewnet))
	assert.False(t, chain.IsProductionLike(chain.Local))
	assert.False(t, chain.IsProductionLike("unknown"))
}
