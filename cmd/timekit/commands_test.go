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

package main

import (
	"bytes"
	"math"
	"testing"
	"time"

	"github.com/ZaparooProject/zaparoo-timekit/pkg/testing/mocks"
	"github.com/ZaparooProject/zaparoo-timekit/pkg/tickclock"
	"github.com/ZaparooProject/zaparoo-timekit/pkg/wallclock"
	"github.com/ZaparooProject/zaparoo-timekit/pkg/xtime"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp(t *testing.T, loc *time.Location, dst bool) (*app, *bytes.Buffer, *mocks.MockClockSource, *clockwork.FakeClock) {
	t.Helper()

	clock := clockwork.NewFakeClockAt(time.Date(2024, 7, 1, 12, 0, 0, 0, time.UTC))
	dstSrc := &mocks.MockDSTSource{}
	dstSrc.On("IsDST").Return(dst).Maybe()
	src := &mocks.MockClockSource{}
	conv := xtime.NewConverter(loc)
	out := &bytes.Buffer{}

	return &app{
		out:   out,
		conv:  conv,
		wall:  wallclock.New(clock, conv, dstSrc),
		ticks: tickclock.New(src, clock),
	}, out, src, clock
}

func TestExecute_NoCommand(t *testing.T) {
	t.Parallel()

	a, out, _, _ := newTestApp(t, time.UTC, false)
	err := a.execute(&options{})
	require.ErrorIs(t, err, errNoCommand)
	assert.Empty(t, out.String())
}

func TestExecute_Now(t *testing.T) {
	t.Parallel()

	a, out, _, _ := newTestApp(t, time.FixedZone("CEST", 2*60*60), true)
	require.NoError(t, a.execute(&options{now: true}))

	want := "local:    2024-07-01 14:00:00.000 Monday (dst)\n" +
		"posix:    1719835200\n" +
		"ticks:    133643088000000000\n" +
		"filetime: 0x32ed2000:0x01dacbae\n"
	assert.Equal(t, want, out.String())
}

func TestExecute_NowUnsetClock(t *testing.T) {
	t.Parallel()

	clock := clockwork.NewFakeClockAt(time.Unix(86_400, 0))
	conv := xtime.NewConverter(time.UTC)
	out := &bytes.Buffer{}
	a := &app{
		out:  out,
		conv: conv,
		wall: wallclock.New(clock, conv, nil),
	}

	require.NoError(t, a.execute(&options{now: true}))
	assert.Contains(t, out.String(), "warning:  system clock appears to be unset\n")
	assert.Contains(t, out.String(), "local:    1970-01-02 00:00:00.000 Friday (std)\n")
}

func TestExecute_CounterUptimeError(t *testing.T) {
	t.Parallel()

	a, out, src, _ := newTestApp(t, time.UTC, false)
	src.On("Monotonic").Return(uint64(1), nil)
	a.uptime = func() (time.Duration, error) { return 0, xtime.ErrInvalidArgument }

	require.NoError(t, a.execute(&options{counter: true}))
	assert.NotContains(t, out.String(), "uptime:")
}

func TestExecute_Ticks(t *testing.T) {
	t.Parallel()

	a, out, _, _ := newTestApp(t, time.UTC, false)
	require.NoError(t, a.execute(&options{ticks: 133_536_816_005_000_000, hasTicks: true}))

	want := "local:    2024-02-29 12:00:00.500 Thursday (std)\n" +
		"utc:      2024-02-29 12:00:00.500\n" +
		"posix:    1709208000\n"
	assert.Equal(t, want, out.String())
}

func TestExecute_TicksOutOfRange(t *testing.T) {
	t.Parallel()

	a, _, _, _ := newTestApp(t, time.UTC, false)
	err := a.execute(&options{ticks: 0, hasTicks: true})
	require.ErrorIs(t, err, xtime.ErrOutOfRange)
}

func TestExecute_Posix(t *testing.T) {
	t.Parallel()

	a, out, _, _ := newTestApp(t, time.UTC, false)
	require.NoError(t, a.execute(&options{posix: 0, hasPosix: true}))

	want := "ticks:    116444736000000000\n" +
		"local:    1970-01-01 00:00:00.000 Thursday (std)\n"
	assert.Equal(t, want, out.String())
}

func TestExecute_Split(t *testing.T) {
	t.Parallel()

	a, out, _, _ := newTestApp(t, time.UTC, false)
	require.NoError(t, a.execute(&options{split: "0xD26A2B40:0x01DA6B06"}))
	assert.Contains(t, out.String(), "ticks:    133536816005000000\n")
	assert.Contains(t, out.String(), "posix:    1709208000\n")
}

func TestExecute_SplitInvalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		split string
	}{
		{name: "missing separator", split: "1234"},
		{name: "bad low", split: "zz:1"},
		{name: "high overflows", split: "1:0x100000000"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			a, _, _, _ := newTestApp(t, time.UTC, false)
			require.Error(t, a.execute(&options{split: tt.split}))
		})
	}
}

func TestExecute_Counter(t *testing.T) {
	t.Parallel()

	a, out, src, clock := newTestApp(t, time.UTC, false)
	src.On("Monotonic").Return(uint64(42), nil)
	clock.Advance(1500 * time.Millisecond)
	a.uptime = func() (time.Duration, error) { return 90*time.Minute + 250*time.Millisecond, nil }

	require.NoError(t, a.execute(&options{counter: true}))

	want := "counter:   42 (monotonic)\n" +
		"frequency: 1000000000\n" +
		"tickcount: 1500\n" +
		"uptime:    1h30m0s\n"
	assert.Equal(t, want, out.String())
	src.AssertExpectations(t)
}

func TestExecute_CounterHighRes(t *testing.T) {
	t.Parallel()

	a, out, src, _ := newTestApp(t, time.UTC, false)
	a.highRes = true
	src.On("ProcessCPU").Return(uint64(7), nil)

	require.NoError(t, a.execute(&options{counter: true}))
	assert.Contains(t, out.String(), "counter:   7 (process cpu)\n")
	src.AssertExpectations(t)
}

func TestExecute_Sleep(t *testing.T) {
	t.Parallel()

	a, out, src, _ := newTestApp(t, time.UTC, false)
	src.On("Monotonic").Return(uint64(1_000), nil).Once()
	src.On("Monotonic").Return(uint64(5_001_000), nil).Once()
	src.On("Sleep", 5*time.Millisecond).Return(time.Duration(0), nil).Once()

	require.NoError(t, a.execute(&options{sleepMS: 5}))
	assert.Equal(t, "slept:    5ms\n", out.String())
	src.AssertExpectations(t)
}

func TestExecute_SleepTooLong(t *testing.T) {
	t.Parallel()

	a, _, _, _ := newTestApp(t, time.UTC, false)
	err := a.execute(&options{sleepMS: math.MaxUint32 + 1})
	require.ErrorIs(t, err, xtime.ErrOutOfRange)
}

func TestRun_BadFlag(t *testing.T) {
	t.Parallel()

	err := run([]string{"-ticks", "not-a-number"}, &bytes.Buffer{})
	require.Error(t, err)
}
