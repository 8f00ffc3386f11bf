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

package xtime

import (
	"fmt"
	"math"
	"time"

	"github.com/rs/zerolog/log"
)

const (
	// MinYear is the first calendar year representable as ticks.
	MinYear = 1601
	// MaxYear is the last calendar year that fits in ticks in every zone.
	// The largest tick value falls in 60056.
	MaxYear = 60055
)

// cumulative days before the first of each month in a common year
var dayOffset = [12]int{0, 31, 59, 90, 120, 151, 182, 212, 243, 273, 304, 334}

var daysInMonth = [12]int{31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}

// CalendarTime is a broken-down local date and time.
//
// Weekday is derived when a CalendarTime is produced from ticks and is
// ignored when one is converted to ticks. IsDST reports the zone state at
// the time of the breakdown.
type CalendarTime struct {
	Year        int
	Month       int
	Day         int
	Weekday     time.Weekday
	Hour        int
	Minute      int
	Second      int
	Millisecond int
	IsDST       bool
}

// IsLeapYear reports whether year has a February 29th.
func IsLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// DaysInMonth returns the number of days in month (1-12) of year, or 0 for
// an invalid month.
func DaysInMonth(year, month int) int {
	if month < 1 || month > 12 {
		return 0
	}
	if month == 2 && IsLeapYear(year) {
		return 29
	}
	return daysInMonth[month-1]
}

// DayOfYear returns the 1-based ordinal day of the given date. The date
// is assumed to be valid.
func DayOfYear(year, month, day int) int {
	yday := dayOffset[month-1] + day - 1
	// past the end of February in a leap year
	if IsLeapYear(year) && month > 2 {
		yday++
	}
	return yday + 1
}

// Validate checks every field except Weekday and IsDST.
func (c CalendarTime) Validate() error {
	switch {
	case c.Year < MinYear:
		return fmt.Errorf("year %d before %d: %w", c.Year, MinYear, ErrOutOfRange)
	case c.Year > MaxYear:
		return fmt.Errorf("year %d after %d: %w", c.Year, MaxYear, ErrOutOfRange)
	case c.Month < 1 || c.Month > 12:
		return fmt.Errorf("month %d: %w", c.Month, ErrOutOfRange)
	case c.Day < 1 || c.Day > DaysInMonth(c.Year, c.Month):
		return fmt.Errorf("day %d of %04d-%02d: %w", c.Day, c.Year, c.Month, ErrOutOfRange)
	case c.Hour < 0 || c.Hour > 23:
		return fmt.Errorf("hour %d: %w", c.Hour, ErrOutOfRange)
	case c.Minute < 0 || c.Minute > 59:
		return fmt.Errorf("minute %d: %w", c.Minute, ErrOutOfRange)
	case c.Second < 0 || c.Second > 59:
		return fmt.Errorf("second %d: %w", c.Second, ErrOutOfRange)
	case c.Millisecond < 0 || c.Millisecond > 999:
		return fmt.Errorf("millisecond %d: %w", c.Millisecond, ErrOutOfRange)
	}
	return nil
}

func (c CalendarTime) String() string {
	return fmt.Sprintf("%04d-%02d-%02d %02d:%02d:%02d.%03d",
		c.Year, c.Month, c.Day, c.Hour, c.Minute, c.Second, c.Millisecond)
}

// Converter maps between ticks and calendar time using the host calendar
// rules of a single location.
type Converter struct {
	loc *time.Location
}

// NewConverter returns a converter for loc. A nil loc uses the host's
// local zone.
func NewConverter(loc *time.Location) *Converter {
	if loc == nil {
		loc = time.Local
	}
	return &Converter{loc: loc}
}

// Location returns the zone the converter breaks times down in.
func (c *Converter) Location() *time.Location {
	return c.loc
}

// CalendarToTicks converts a local calendar time to ticks, keeping
// millisecond precision.
func (c *Converter) CalendarToTicks(ct CalendarTime) (Ticks, error) {
	if err := ct.Validate(); err != nil {
		log.Debug().Err(err).Msgf("invalid calendar time: %s", ct)
		return 0, err
	}

	yday := DayOfYear(ct.Year, ct.Month, ct.Day)
	tm := time.Date(
		ct.Year, time.Month(ct.Month), ct.Day,
		ct.Hour, ct.Minute, ct.Second, 0,
		c.loc,
	)
	// a wall time skipped by a zone transition comes back shifted
	if tm.YearDay() != yday || tm.Hour() != ct.Hour ||
		tm.Minute() != ct.Minute || tm.Second() != ct.Second {
		err := fmt.Errorf("calendar time %s does not exist in %s, normalized to %s: %w",
			ct, c.loc, tm.Format(time.DateTime), ErrOutOfRange)
		log.Debug().Err(err).Msg("calendar normalization failed")
		return 0, err
	}

	base, err := PosixToTicks(PosixSeconds(tm.Unix()))
	if err != nil {
		log.Debug().Err(err).Msgf("calendar time %s outside tick range", ct)
		return 0, err
	}

	ms := uint64(ct.Millisecond) * TicksPerMillisecond //nolint:gosec // validated 0-999
	if uint64(base) > math.MaxUint64-ms {
		return 0, fmt.Errorf("calendar time %s overflows ticks: %w", ct, ErrOutOfRange)
	}
	return base + Ticks(ms), nil
}

// TicksToCalendar breaks t down into local calendar time. Ticks before the
// POSIX epoch are out of range.
func (c *Converter) TicksToCalendar(t Ticks) (CalendarTime, error) {
	if uint64(t) < EpochOffset {
		err := fmt.Errorf("ticks %d predate the posix epoch: %w", t, ErrOutOfRange)
		log.Debug().Err(err).Msg("cannot break down ticks")
		return CalendarTime{}, err
	}

	ms := (uint64(t) - EpochOffset) / TicksPerMillisecond
	//nolint:gosec // ms/1000 is at most ~1.8e12
	ct := c.LocalBreakdown(PosixSeconds(ms / 1000))
	ct.Millisecond = int(ms % 1000)
	return ct, nil
}

// LocalBreakdown splits POSIX seconds into local calendar fields.
func (c *Converter) LocalBreakdown(secs PosixSeconds) CalendarTime {
	tm := time.Unix(int64(secs), 0).In(c.loc)
	return CalendarTime{
		Year:    tm.Year(),
		Month:   int(tm.Month()),
		Day:     tm.Day(),
		Weekday: tm.Weekday(),
		Hour:    tm.Hour(),
		Minute:  tm.Minute(),
		Second:  tm.Second(),
		IsDST:   tm.IsDST(),
	}
}

// CalendarPosix breaks t down in the converter's zone and reassembles the
// fields into POSIX seconds, dropping any sub-second part.
func (c *Converter) CalendarPosix(t Ticks) (PosixSeconds, error) {
	ct, err := c.TicksToCalendar(t)
	if err != nil {
		return 0, err
	}
	ct.Millisecond = 0

	whole, err := c.CalendarToTicks(ct)
	if err != nil {
		return 0, err
	}
	return TicksToPosix(whole), nil
}
