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

//go:build linux || darwin || freebsd

package tickclock

import (
	"fmt"

	"golang.org/x/sys/unix"
)

type posixSource struct{}

// NewSystemSource returns a Source backed by clock_gettime.
func NewSystemSource() Source {
	return posixSource{}
}

func (posixSource) Monotonic() (uint64, error) {
	return readClock(unix.CLOCK_MONOTONIC)
}

func (posixSource) ProcessCPU() (uint64, error) {
	return readClock(unix.CLOCK_PROCESS_CPUTIME_ID)
}

func readClock(id int32) (uint64, error) {
	var ts unix.Timespec
	if err := unix.ClockGettime(id, &ts); err != nil {
		return 0, fmt.Errorf("clock_gettime(%d): %w", id, err)
	}
	return uint64(ts.Nano()), nil //nolint:gosec // clocks used here never report negative time
}
