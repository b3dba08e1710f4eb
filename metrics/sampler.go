// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package metrics

import (
	"time"

	"github.com/bitmark-inc/logger"
)

// Sampler - background process that samples meters
type Sampler struct {
	log      *logger.L
	interval time.Duration
	meters   []*Meter
}

// NewSampler - sample the meters every interval
func NewSampler(interval time.Duration, meters ...*Meter) *Sampler {
	return &Sampler{
		log:      logger.New("metrics"),
		interval: interval,
		meters:   meters,
	}
}

// Run - sample until shutdown
func (s *Sampler) Run(args interface{}, shutdown <-chan struct{}) {
	log := s.log

	log.Info("starting…")

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	now := time.Now()
	for _, m := range s.meters {
		m.Sample(now)
	}

loop:
	for {
		select {
		case <-shutdown:
			break loop
		case now := <-ticker.C:
			for _, m := range s.meters {
				m.Sample(now)
			}
		}
	}

	log.Info("stopped")
}
