// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package submission - forward each transaction to consensus at most once
package submission

import (
	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/txguard/dedup"
	"github.com/bitmark-inc/txguard/fault"
	"github.com/bitmark-inc/txguard/platform"
	"github.com/bitmark-inc/txguard/responsecode"
	"github.com/bitmark-inc/txguard/txbody"
)

// Policy - decides whether the unchecked submit payload may be used
type Policy interface {
	IsUncheckedSubmitAllowed() bool
}

// Marker - counts platform rejections
type Marker interface {
	Mark()
}

// Gate - the submission entry point
type Gate struct {
	log       *logger.L
	submitted *dedup.Cache
	platform  platform.Platform
	policy    Policy
	rejected  Marker
}

// New - create a gate
func New(submitted *dedup.Cache, p platform.Platform, policy Policy, rejected Marker) *Gate {
	return &Gate{
		log:       logger.New("submission"),
		submitted: submitted,
		platform:  p,
		policy:    policy,
		rejected:  rejected,
	}
}

// Submit - hand raw to the platform unless its identifier was already
// handed off by this node
//
// failures carry a response code, see fault.CodeOf
func (g *Gate) Submit(body *txbody.Body, raw []byte) error {
	if body.HasUncheckedSubmit() {
		if !g.policy.IsUncheckedSubmitAllowed() {
			g.log.Warnf("unchecked submit refused: %s", body.ID)
			return fault.NewPreCheck(responsecode.PlatformTransactionNotCreated)
		}
		raw = body.UncheckedSubmit
	}

	g.submitted.Lock()
	defer g.submitted.Unlock()

	id, err := txbody.Packed(raw).ExtractID()
	if nil != err {
		g.log.Debugf("invalid payload: %s", err)
		return err
	}

	if g.submitted.Contains(id) {
		g.log.Infof("duplicate: %s", id)
		return fault.NewPreCheck(responsecode.DuplicateTransaction)
	}

	if !g.platform.CreateTransaction(raw) {
		g.rejected.Mark()
		g.log.Warnf("platform rejected: %s", id)
		return fault.NewPreCheck(responsecode.PlatformTransactionNotCreated)
	}

	g.submitted.Add(id)
	g.log.Debugf("submitted: %s", id)
	return nil
}
