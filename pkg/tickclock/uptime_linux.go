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

//go:build linux

package tickclock

import (
	"fmt"
	"time"

	"golang.org/x/sys/unix"
)

// SystemUptime returns the duration since the system booted, including
// time spent suspended.
func SystemUptime() (time.Duration, error) {
	ns, err := readClock(unix.CLOCK_BOOTTIME)
	if err != nil {
		return 0, fmt.Errorf("failed to read boot clock: %w", err)
	}
	return time.Duration(ns), nil //nolint:gosec // boot clock fits in int64
}
