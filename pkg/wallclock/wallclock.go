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

// Package wallclock captures the current local date and time.
package wallclock

import (
	"github.com/ZaparooProject/zaparoo-timekit/pkg/xtime"
	"github.com/jonboulle/clockwork"
)

// MinReliableYear is the earliest year a reading is trusted. Devices
// without an RTC often boot at the POSIX epoch until NTP syncs.
const MinReliableYear = 2024

// DSTSource supplies the last known daylight-saving state. It is owned
// and refreshed by the timezone service; the wall clock only reads it.
type DSTSource interface {
	IsDST() bool
}

// WallClock reads local time from a clock and a zone converter.
type WallClock struct {
	clock clockwork.Clock
	conv  *xtime.Converter
	dst   DSTSource
}

// New returns a wall clock. A nil clock reads the real time and a nil
// converter uses the host's local zone. A nil dst reports standard time.
func New(clock clockwork.Clock, conv *xtime.Converter, dst DSTSource) *WallClock {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if conv == nil {
		conv = xtime.NewConverter(nil)
	}
	return &WallClock{
		clock: clock,
		conv:  conv,
		dst:   dst,
	}
}

// Capture returns the current local time at one second resolution.
// Millisecond is always zero and IsDST is the cached zone state rather
// than a fresh computation.
func (w *WallClock) Capture() xtime.CalendarTime {
	now := xtime.PosixSeconds(w.clock.Now().Unix())
	ct := w.conv.LocalBreakdown(now)
	ct.Millisecond = 0
	ct.IsDST = w.dst != nil && w.dst.IsDST()
	return ct
}

// NowPosix returns the current time as POSIX seconds.
func (w *WallClock) NowPosix() xtime.PosixSeconds {
	return xtime.PosixSeconds(w.clock.Now().Unix())
}

// NowTicks returns the current system time as ticks, at one second
// resolution.
func (w *WallClock) NowTicks() (xtime.Ticks, error) {
	//nolint:wrapcheck // already carries context from xtime
	return xtime.PosixToTicks(w.NowPosix())
}

// Reliable reports whether the clock appears to have been set.
func (w *WallClock) Reliable() bool {
	return w.clock.Now().Year() >= MinReliableYear
}
