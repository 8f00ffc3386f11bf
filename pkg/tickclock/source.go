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

// Package tickclock provides elapsed-time counters and a sleep that
// always runs for at least the requested duration.
//
// Host clocks are reached through a Source. NewSystemSource returns the
// implementation for the platform the binary was built for.
package tickclock

import (
	"errors"
	"time"
)

// HighResFrequency is the fixed rate of Sample counters: nanoseconds.
const HighResFrequency uint64 = 1_000_000_000

var (
	// ErrInterrupted is returned by Source.Sleep when the wait ended early,
	// along with the time still left to sleep.
	ErrInterrupted = errors.New("sleep interrupted")

	// ErrNotSupported is returned when a clock is unavailable on the
	// current platform.
	ErrNotSupported = errors.New("clock not supported on this platform")
)

// Source is a host clock provider. All counter values are nanoseconds.
type Source interface {
	// Monotonic reads a counter that never goes backwards.
	Monotonic() (uint64, error)
	// ProcessCPU reads CPU time consumed by the current process.
	ProcessCPU() (uint64, error)
	// Sleep blocks for d. If the wait is cut short it returns the time
	// remaining and an error wrapping ErrInterrupted.
	Sleep(d time.Duration) (time.Duration, error)
}

// Sample is a raw counter reading and the number of counts per second.
type Sample struct {
	Counter   uint64
	Frequency uint64
}

// Elapsed returns the time between two samples taken from the same
// counter. A later sample with a smaller counter yields zero.
func Elapsed(from, to Sample) time.Duration {
	if to.Counter <= from.Counter {
		return 0
	}

	delta := to.Counter - from.Counter
	freq := to.Frequency
	if freq == 0 || freq == HighResFrequency {
		return time.Duration(delta) //nolint:gosec // nanosecond counter
	}
	whole := delta / freq * uint64(time.Second)
	part := delta % freq * uint64(time.Second) / freq
	return time.Duration(whole + part) //nolint:gosec // bounded by counter range
}
