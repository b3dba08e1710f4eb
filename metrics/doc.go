// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package metrics - event meters exported to prometheus
//
// a meter keeps a lock free count for local use and mirrors every
// event into a prometheus counter, a sampler turns the count into a
// per second rate gauge
package metrics
