// Zaparoo Timekit
// Copyright (c) 2026 The Zaparoo Project Contributors.
// SPDX-License-Identifier: GPL-3.0-or-later
//
// This file is part of Zaparoo Timekit.
//
// Zaparoo Timekit is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Zaparoo Timekit is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Zaparoo Timekit.  If not, see <http://www.gnu.org/licenses/>.

// Package xtime converts between the 1601-based tick timestamp model,
// broken-down calendar time and POSIX seconds.
//
// Ticks count 100-nanosecond intervals since 1601-01-01T00:00:00Z. Legacy
// consumers exchange them as two 32-bit halves (see FileTime); everywhere
// else they are handled as a single uint64.
package xtime

import (
	"cmp"
	"errors"
	"fmt"
	"math"
	"strconv"
	"time"
)

const (
	// TicksPerSecond is the number of 100ns ticks in one second.
	TicksPerSecond = 10_000_000
	// TicksPerMillisecond is the number of 100ns ticks in one millisecond.
	TicksPerMillisecond = 10_000

	// EpochOffset is the number of ticks between the tick epoch
	// (1601-01-01) and the POSIX epoch (1970-01-01): 369 years holding
	// 89 leap days.
	EpochOffset uint64 = (369*365 + 89) * 24 * 3600 * TicksPerSecond

	// epochOffsetSeconds is EpochOffset expressed in whole seconds.
	epochOffsetSeconds = EpochOffset / TicksPerSecond

	maxPosixSeconds = (math.MaxUint64 - EpochOffset) / TicksPerSecond
)

var (
	// ErrOutOfRange is returned when a value cannot be represented in the
	// target format, such as ticks before the POSIX epoch being broken
	// down or a calendar date that is not valid.
	ErrOutOfRange = errors.New("time value out of range")

	// ErrInvalidArgument is returned when a required output or input
	// target is nil.
	ErrInvalidArgument = errors.New("invalid argument")
)

// Ticks is a count of 100-nanosecond intervals since 1601-01-01T00:00:00Z.
type Ticks uint64

// PosixSeconds is a count of seconds since 1970-01-01T00:00:00Z.
type PosixSeconds int64

// Compare orders two tick values, returning -1, 0 or 1.
func Compare(a, b Ticks) int {
	return cmp.Compare(a, b)
}

// TicksToPosix scales ticks down to whole POSIX seconds, rounding toward
// the tick epoch. Ticks before 1970 give negative seconds.
func TicksToPosix(t Ticks) PosixSeconds {
	//nolint:gosec // t/TicksPerSecond is at most ~1.8e12
	return PosixSeconds(int64(uint64(t)/TicksPerSecond) - int64(epochOffsetSeconds))
}

// PosixToTicks scales POSIX seconds up to ticks. Negative seconds are
// allowed down to the tick epoch itself.
func PosixToTicks(s PosixSeconds) (Ticks, error) {
	if s < 0 {
		back := uint64(-s)
		if back > epochOffsetSeconds {
			return 0, fmt.Errorf("posix seconds %d predate the tick epoch: %w", s, ErrOutOfRange)
		}
		return Ticks(EpochOffset - back*TicksPerSecond), nil
	}

	if uint64(s) > maxPosixSeconds {
		return 0, fmt.Errorf("posix seconds %d overflow ticks: %w", s, ErrOutOfRange)
	}
	return Ticks(uint64(s)*TicksPerSecond + EpochOffset), nil
}

// TicksFromTime converts a Go time to ticks at full 100ns precision.
func TicksFromTime(tm time.Time) (Ticks, error) {
	base, err := PosixToTicks(PosixSeconds(tm.Unix()))
	if err != nil {
		return 0, err
	}

	frac := uint64(tm.Nanosecond()) / 100 //nolint:gosec // nanoseconds are never negative
	if uint64(base) > math.MaxUint64-frac {
		return 0, fmt.Errorf("time %s overflows ticks: %w", tm, ErrOutOfRange)
	}
	return base + Ticks(frac), nil
}

// Time returns the instant t refers to, in UTC.
func (t Ticks) Time() time.Time {
	//nolint:gosec // t/TicksPerSecond is at most ~1.8e12
	secs := int64(uint64(t)/TicksPerSecond) - int64(epochOffsetSeconds)
	nsec := int64(uint64(t)%TicksPerSecond) * 100 //nolint:gosec // below 1e9
	return time.Unix(secs, nsec).UTC()
}

// Milliseconds returns the sub-second millisecond component of t.
func (t Ticks) Milliseconds() int {
	return int((uint64(t) % TicksPerSecond) / TicksPerMillisecond)
}

func (t Ticks) String() string {
	return strconv.FormatUint(uint64(t), 10)
}
