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

//go:build !linux && !darwin && !freebsd && !windows

package tickclock

import (
	"fmt"
	"time"
)

type runtimeSource struct {
	base time.Time
}

// NewSystemSource returns a Source backed by the Go runtime's monotonic
// clock reading.
func NewSystemSource() Source {
	return runtimeSource{base: time.Now()}
}

func (s runtimeSource) Monotonic() (uint64, error) {
	return uint64(time.Since(s.base)), nil //nolint:gosec // monotonic reading never goes negative
}

func (runtimeSource) ProcessCPU() (uint64, error) {
	return 0, fmt.Errorf("process cpu time: %w", ErrNotSupported)
}

func (runtimeSource) Sleep(d time.Duration) (time.Duration, error) {
	time.Sleep(d)
	return 0, nil
}
