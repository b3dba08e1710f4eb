// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/bitmark-inc/txguard/counter"
)

const namespace = "txguard"

// Meter - counts events and tracks their rate
type Meter struct {
	count counter.Counter
	total prometheus.Counter
	rate  prometheus.Gauge

	sync.Mutex
	lastCount uint64
	lastTime  time.Time
	perSecond float64
}

// NewMeter - create a meter and register its collectors
func NewMeter(registry prometheus.Registerer, name string, help string) (*Meter, error) {
	m := &Meter{
		total: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      name + "_total",
			Help:      help,
		}),
		rate: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      name + "_per_second",
			Help:      help + " per second",
		}),
	}

	if err := registry.Register(m.total); nil != err {
		return nil, err
	}
	if err := registry.Register(m.rate); nil != err {
		registry.Unregister(m.total)
		return nil, err
	}
	return m, nil
}

// Mark - record one event
func (m *Meter) Mark() {
	m.count.Increment()
	m.total.Inc()
}

// Count - events since creation
func (m *Meter) Count() uint64 {
	return m.count.Uint64()
}

// Sample - update the rate from the events since the previous sample
//
// the first sample only sets the baseline
func (m *Meter) Sample(now time.Time) float64 {
	m.Lock()
	defer m.Unlock()

	current := m.count.Uint64()
	if !m.lastTime.IsZero() {
		elapsed := now.Sub(m.lastTime).Seconds()
		if elapsed > 0 {
			m.perSecond = float64(current-m.lastCount) / elapsed
			m.rate.Set(m.perSecond)
		}
	}
	m.lastCount = current
	m.lastTime = now
	return m.perSecond
}

// Rate - per second rate at the last sample
func (m *Meter) Rate() float64 {
	m.Lock()
	defer m.Unlock()
	return m.perSecond
}
