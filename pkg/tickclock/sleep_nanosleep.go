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

//go:build linux || freebsd

package tickclock

import (
	"errors"
	"fmt"
	"time"

	"golang.org/x/sys/unix"
)

func (posixSource) Sleep(d time.Duration) (time.Duration, error) {
	req := unix.NsecToTimespec(d.Nanoseconds())
	var rem unix.Timespec

	err := unix.Nanosleep(&req, &rem)
	if err == nil {
		return 0, nil
	}

	left := time.Duration(rem.Nano())
	if errors.Is(err, unix.EINTR) {
		return left, fmt.Errorf("nanosleep: %w", ErrInterrupted)
	}
	return left, fmt.Errorf("nanosleep: %w", err)
}
