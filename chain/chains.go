// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chain

// names of all chains
const (
	Mainnet    = "mainnet"
	Testnet    = "testnet"
	Previewnet = "previewnet"
	Local      = "local"
)

// ledger identity bytes carried by records of each chain
var ledgerIDs = map[string]byte{
	Mainnet:    0x00,
	Testnet:    0x01,
	Previewnet: 0x02,
	Local:      0x03,
}

// Valid - validate a chain name
func Valid(name string) bool {
	_, ok := ledgerIDs[name]
	return ok
}

// LedgerID - identity byte for a chain, false for an unknown chain
func LedgerID(name string) (byte, bool) {
	id, ok := ledgerIDs[name]
	return id, ok
}

// IsProductionLike - chains carrying real value or a public test network
func IsProductionLike(name string) bool {
	switch name {
	case Mainnet, Testnet, Previewnet:
		return true
	default:
		return false
	}
}
