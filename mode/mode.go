// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package mode

import (
	"sync"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/txguard/chain"
	"github.com/bitmark-inc/txguard/fault"
)

// type to hold the mode
type Mode int

// all possible modes
const (
	Stopped Mode = iota
	Starting
	Normal
	maximum
)

// deployment profiles
const (
	Development = "development"
	Test        = "test"
	Production  = "production"
)

var globalData struct {
	sync.RWMutex
	log     *logger.L
	mode    Mode
	chain   string
	profile string

	// set once during initialise
	initialised bool
}

// Initialise - set up the mode system
func Initialise(chainName string, profile string) error {

	globalData.Lock()
	defer globalData.Unlock()

	// no need to start if already started
	if globalData.initialised {
		return fault.ErrAlreadyInitialised
	}

	globalData.log = logger.New("mode")
	globalData.log.Info("starting…")

	if !chain.Valid(chainName) {
		globalData.log.Criticalf("mode cannot handle chain: '%s'", chainName)
		return fault.ErrInvalidChain
	}

	switch profile {
	case Development, Test, Production:
	default:
		globalData.log.Criticalf("mode cannot handle profile: '%s'", profile)
		return fault.ErrInvalidProfile
	}

	globalData.chain = chainName
	globalData.profile = profile
	globalData.mode = Starting

	// all data initialised
	globalData.initialised = true

	return nil
}

// Finalise - shutdown mode handling
func Finalise() error {

	if !globalData.initialised {
		return fault.ErrNotInitialised
	}

	globalData.log.Info("shutting down…")

	Set(Stopped)

	// finally...
	globalData.Lock()
	globalData.initialised = false
	globalData.Unlock()

	globalData.log.Info("finished")
	globalData.log.Flush()

	return nil
}

// Set - change mode
func Set(mode Mode) {

	if mode >= Stopped && mode < maximum {
		globalData.Lock()
		globalData.mode = mode
		globalData.Unlock()

		globalData.log.Infof("set: %s", mode)
	} else {
		globalData.log.Errorf("ignore invalid set: %d", mode)
	}
}

// Is - detect mode
func Is(mode Mode) bool {
	globalData.RLock()
	defer globalData.RUnlock()
	return mode == globalData.mode
}

// ChainName - name of the current chain
func ChainName() string {
	globalData.RLock()
	defer globalData.RUnlock()
	return globalData.chain
}

// Profile - name of the current deployment profile
func Profile() string {
	globalData.RLock()
	defer globalData.RUnlock()
	return globalData.profile
}

// IsUncheckedSubmitAllowed - raw payload substitution is only for
// development and test profiles on a non production-like chain
func IsUncheckedSubmitAllowed() bool {
	globalData.RLock()
	defer globalData.RUnlock()
	if !globalData.initialised {
		return false
	}
	return Production != globalData.profile && !chain.IsProductionLike(globalData.chain)
}

// Policy - the current settings as a value for components that take
// the policy as a dependency
type Policy struct{}

// IsUncheckedSubmitAllowed - see the package level function
func (Policy) IsUncheckedSubmitAllowed() bool {
	return IsUncheckedSubmitAllowed()
}

// String - current mode represented as a string
func String() string {
	globalData.RLock()
	defer globalData.RUnlock()
	return globalData.mode.String()
}

// String - mode represented as a string
func (m Mode) String() string {
	switch m {
	case Stopped:
		return "Stopped"
	case Starting:
		return "Starting"
	case Normal:
		return "Normal"
	default:
		return "*Unknown*"
	}
}
