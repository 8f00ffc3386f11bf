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

package wallclock_test

import (
	"testing"
	"time"

	"github.com/ZaparooProject/zaparoo-timekit/pkg/testing/mocks"
	"github.com/ZaparooProject/zaparoo-timekit/pkg/timezone"
	"github.com/ZaparooProject/zaparoo-timekit/pkg/wallclock"
	"github.com/ZaparooProject/zaparoo-timekit/pkg/xtime"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCapture(t *testing.T) {
	t.Parallel()

	fake := clockwork.NewFakeClockAt(time.Date(2024, 2, 29, 13, 45, 30, 987_000_000, time.UTC))
	dst := &mocks.MockDSTSource{}
	dst.On("IsDST").Return(false)

	w := wallclock.New(fake, xtime.NewConverter(time.UTC), dst)
	got := w.Capture()

	assert.Equal(t, xtime.CalendarTime{
		Year:    2024,
		Month:   2,
		Day:     29,
		Weekday: time.Thursday,
		Hour:    13,
		Minute:  45,
		Second:  30,
	}, got)
	dst.AssertExpectations(t)
}

func TestCapture_UsesCachedDST(t *testing.T) {
	t.Parallel()

	// the flag comes from the source even when it disagrees with the zone
	fake := clockwork.NewFakeClockAt(time.Date(2024, 1, 15, 8, 0, 0, 0, time.UTC))
	dst := &mocks.MockDSTSource{}
	dst.On("IsDST").Return(true)

	w := wallclock.New(fake, xtime.NewConverter(time.UTC), dst)
	assert.True(t, w.Capture().IsDST)
}

func TestCapture_NilDSTSource(t *testing.T) {
	t.Parallel()

	fake := clockwork.NewFakeClockAt(time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC))
	w := wallclock.New(fake, xtime.NewConverter(time.UTC), nil)
	assert.False(t, w.Capture().IsDST)
}

func TestCapture_LocalZoneWithTimezoneService(t *testing.T) {
	t.Parallel()

	zone := time.FixedZone("UTC+3", 3*60*60)
	fake := clockwork.NewFakeClockAt(time.Date(2023, 12, 31, 22, 30, 0, 0, time.UTC))
	tz := timezone.New(zone, fake)

	w := wallclock.New(fake, xtime.NewConverter(zone), tz)
	got := w.Capture()
	assert.Equal(t, 2024, got.Year)
	assert.Equal(t, 1, got.Month)
	assert.Equal(t, 1, got.Day)
	assert.Equal(t, 1, got.Hour)
	assert.Equal(t, 30, got.Minute)
	assert.Equal(t, time.Monday, got.Weekday)
	assert.False(t, got.IsDST)
}

func TestNowTicks(t *testing.T) {
	t.Parallel()

	fake := clockwork.NewFakeClockAt(time.Date(2024, 2, 29, 12, 0, 0, 500_000_000, time.UTC))
	w := wallclock.New(fake, nil, nil)

	got, err := w.NowTicks()
	require.NoError(t, err)
	assert.Equal(t, xtime.Ticks(133_536_816_000_000_000), got)
	assert.Equal(t, xtime.PosixSeconds(1_709_208_000), w.NowPosix())
}

func TestCapture_RoundTripsThroughTicks(t *testing.T) {
	t.Parallel()

	fake := clockwork.NewFakeClockAt(time.Date(2025, 6, 15, 9, 10, 11, 0, time.UTC))
	conv := xtime.NewConverter(time.UTC)
	w := wallclock.New(fake, conv, nil)

	ticks, err := conv.CalendarToTicks(w.Capture())
	require.NoError(t, err)

	now, err := w.NowTicks()
	require.NoError(t, err)
	assert.Equal(t, 0, xtime.Compare(ticks, now))
}

func TestReliable(t *testing.T) {
	t.Parallel()

	tests := []struct {
		now  time.Time
		name string
		want bool
	}{
		{name: "unset rtc at epoch", now: time.Unix(0, 0).UTC(), want: false},
		{name: "year before cutoff", now: time.Date(2023, 12, 31, 23, 59, 59, 0, time.UTC), want: false},
		{name: "cutoff year", now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), want: true},
		{name: "current", now: time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC), want: true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			w := wallclock.New(clockwork.NewFakeClockAt(tt.now), xtime.NewConverter(time.UTC), nil)
			assert.Equal(t, tt.want, w.Reliable())
		})
	}
}
