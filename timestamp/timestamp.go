// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package timestamp - consensus instants with nanosecond resolution
package timestamp

import (
	"encoding/binary"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/bitmark-inc/txguard/fault"
)

const nanosPerSecond = int64(time.Second)

// Size - bytes in a packed timestamp
const Size = 12

// Timestamp - seconds and nanoseconds since the epoch
type Timestamp struct {
	Seconds int64 `json:"seconds"`
	Nanos   int32 `json:"nanos"`
}

// New - create a timestamp, carrying excess nanoseconds into seconds
func New(seconds int64, nanos int64) Timestamp {
	seconds += nanos / nanosPerSecond
	nanos %= nanosPerSecond
	if nanos < 0 {
		nanos += nanosPerSecond
		seconds -= 1
	}
	return Timestamp{Seconds: seconds, Nanos: int32(nanos)}
}

// FromTime - convert from a time value
func FromTime(t time.Time) Timestamp {
	return New(t.Unix(), int64(t.Nanosecond()))
}

// Time - convert to a time value
func (ts Timestamp) Time() time.Time {
	return time.Unix(ts.Seconds, int64(ts.Nanos)).UTC()
}

// IsZero - true for the unset timestamp
func (ts Timestamp) IsZero() bool {
	return 0 == ts.Seconds && 0 == ts.Nanos
}

// PlusNanos - timestamp n nanoseconds later
func (ts Timestamp) PlusNanos(n int64) Timestamp {
	return New(ts.Seconds, int64(ts.Nanos)+n)
}

// MinusNanos - timestamp n nanoseconds earlier
func (ts Timestamp) MinusNanos(n int64) Timestamp {
	return New(ts.Seconds, int64(ts.Nanos)-n)
}

// PlusSeconds - timestamp n seconds later
func (ts Timestamp) PlusSeconds(n int64) Timestamp {
	return Timestamp{Seconds: ts.Seconds + n, Nanos: ts.Nanos}
}

// Compare - -1, 0 or +1 as ts is before, equal to or after other
func (ts Timestamp) Compare(other Timestamp) int {
	switch {
	case ts.Seconds < other.Seconds:
		return -1
	case ts.Seconds > other.Seconds:
		return 1
	case ts.Nanos < other.Nanos:
		return -1
	case ts.Nanos > other.Nanos:
		return 1
	default:
		return 0
	}
}

// Before - strictly earlier than other
func (ts Timestamp) Before(other Timestamp) bool {
	return ts.Compare(other) < 0
}

// After - strictly later than other
func (ts Timestamp) After(other Timestamp) bool {
	return ts.Compare(other) > 0
}

// String - format as seconds.nanoseconds
func (ts Timestamp) String() string {
	return fmt.Sprintf("%d.%09d", ts.Seconds, ts.Nanos)
}

// FromString - parse seconds.nanoseconds
func FromString(s string) (Timestamp, error) {
	parts := strings.Split(s, ".")
	if 2 != len(parts) || 0 == len(parts[1]) || len(parts[1]) > 9 {
		return Timestamp{}, fault.ErrInvalidTimestamp
	}
	seconds, err := strconv.ParseInt(parts[0], 10, 64)
	if nil != err {
		return Timestamp{}, fault.ErrInvalidTimestamp
	}
	fraction := parts[1] + strings.Repeat("0", 9-len(parts[1]))
	nanos, err := strconv.ParseInt(fraction, 10, 32)
	if nil != err || nanos < 0 {
		return Timestamp{}, fault.ErrInvalidTimestamp
	}
	return Timestamp{Seconds: seconds, Nanos: int32(nanos)}, nil
}

// Bytes - big endian packing that sorts in time order for
// non-negative timestamps
func (ts Timestamp) Bytes() []byte {
	buffer := make([]byte, Size)
	binary.BigEndian.PutUint64(buffer[:8], uint64(ts.Seconds))
	binary.BigEndian.PutUint32(buffer[8:], uint32(ts.Nanos))
	return buffer
}

// FromBytes - reverse of Bytes
func FromBytes(buffer []byte) (Timestamp, error) {
	if len(buffer) < Size {
		return Timestamp{}, fault.ErrInvalidTimestamp
	}
	return Timestamp{
		Seconds: int64(binary.BigEndian.Uint64(buffer[:8])),
		Nanos:   int32(binary.BigEndian.Uint32(buffer[8:Size])),
	}, nil
}

// MarshalText - convert timestamp to text
func (ts Timestamp) MarshalText() ([]byte, error) {
	return []byte(ts.String()), nil
}

// UnmarshalText - convert text into a timestamp
func (ts *Timestamp) UnmarshalText(s []byte) error {
	t, err := FromString(string(s))
	if nil != err {
		return err
	}
	*ts = t
	return nil
}
