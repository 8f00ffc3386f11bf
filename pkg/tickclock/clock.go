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

package tickclock

import (
	"errors"
	"fmt"
	"time"

	"github.com/ZaparooProject/zaparoo-timekit/pkg/xtime"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"
)

// Clock exposes the coarse tick count, the high resolution counters and
// sleep on top of a Source.
type Clock struct {
	src   Source
	clock clockwork.Clock
	start time.Time
}

// New returns a Clock reading from src. Nil arguments fall back to the
// platform source and the real wall clock.
func New(src Source, clock clockwork.Clock) *Clock {
	if src == nil {
		src = NewSystemSource()
	}
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Clock{
		src:   src,
		clock: clock,
		start: clock.Now(),
	}
}

// Now samples the high resolution counter. With cpuTime set the process
// CPU-time clock is read instead of the monotonic clock.
func (c *Clock) Now(cpuTime bool) (Sample, error) {
	read, name := c.src.Monotonic, "monotonic"
	if cpuTime {
		read, name = c.src.ProcessCPU, "process cpu"
	}

	counter, err := read()
	if err != nil {
		log.Error().Err(err).Str("clock", name).Msg("error getting timer")
		return Sample{}, fmt.Errorf("failed to read %s clock: %w", name, err)
	}

	return Sample{
		Counter:   counter,
		Frequency: HighResFrequency,
	}, nil
}

// Frequency returns the number of counter units per second.
func (*Clock) Frequency() uint64 {
	return HighResFrequency
}

// ReadFrequency stores the counter frequency in dst.
func (c *Clock) ReadFrequency(dst *uint64) error {
	if dst == nil {
		return fmt.Errorf("nil frequency target: %w", xtime.ErrInvalidArgument)
	}
	*dst = c.Frequency()
	return nil
}

// TickCount returns milliseconds since the clock was created. Like the
// legacy 32-bit counter it wraps after roughly 49.7 days.
func (c *Clock) TickCount() uint32 {
	ms := c.clock.Since(c.start).Milliseconds()
	return uint32(ms) //nolint:gosec // wraparound is part of the contract
}

// Sleep blocks the calling goroutine for at least ms milliseconds. An
// interrupted wait is resumed with whatever time was left.
func (c *Clock) Sleep(ms uint32) error {
	remaining := time.Duration(ms) * time.Millisecond
	interrupts := 0

	for remaining > 0 {
		left, err := c.src.Sleep(remaining)
		if err == nil {
			break
		}
		if !errors.Is(err, ErrInterrupted) {
			log.Error().Err(err).Uint32("ms", ms).Msg("sleep failed")
			return fmt.Errorf("failed to sleep %dms: %w", ms, err)
		}
		interrupts++
		remaining = left
	}

	if interrupts > 0 {
		log.Debug().Uint32("ms", ms).Int("interrupts", interrupts).Msg("sleep resumed after interrupts")
	}
	return nil
}
