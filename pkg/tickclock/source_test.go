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
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSystemSource_MonotonicNeverDecreases(t *testing.T) {
	t.Parallel()

	c := New(nil, nil)
	prev, err := c.Now(false)
	require.NoError(t, err)

	for i := 0; i < 1000; i++ {
		next, err := c.Now(false)
		require.NoError(t, err)
		require.GreaterOrEqual(t, next.Counter, prev.Counter)
		prev = next
	}
}

func TestSystemSource_ProcessCPU(t *testing.T) {
	t.Parallel()

	c := New(nil, nil)
	first, err := c.Now(true)
	if errors.Is(err, ErrNotSupported) {
		t.Skipf("process cpu clock not available on %s", runtime.GOOS)
	}
	require.NoError(t, err)

	// burn some cpu so the counter has a chance to move
	x := 0
	for i := 0; i < 5_000_000; i++ {
		x += i % 7
	}
	assert.Positive(t, x)

	second, err := c.Now(true)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, second.Counter, first.Counter)
	assert.Equal(t, HighResFrequency, second.Frequency)
}

func TestSystemSource_SleepLowerBound(t *testing.T) {
	t.Parallel()

	c := New(nil, nil)
	before, err := c.Now(false)
	require.NoError(t, err)
	start := time.Now()

	require.NoError(t, c.Sleep(100))

	assert.GreaterOrEqual(t, time.Since(start), 100*time.Millisecond)
	after, err := c.Now(false)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, Elapsed(before, after), 100*time.Millisecond)
}

func TestSystemSource_SleepReportsRemaining(t *testing.T) {
	t.Parallel()

	left, err := NewSystemSource().Sleep(time.Millisecond)
	if err != nil {
		require.ErrorIs(t, err, ErrInterrupted)
		assert.LessOrEqual(t, left, time.Millisecond)
		return
	}
	assert.Zero(t, left)
}

func TestSystemUptime(t *testing.T) {
	t.Parallel()

	uptime, err := SystemUptime()
	if err != nil && runtime.GOOS != "linux" && runtime.GOOS != "darwin" && runtime.GOOS != "windows" {
		t.Skipf("uptime not available on %s: %v", runtime.GOOS, err)
	}
	require.NoError(t, err, "SystemUptime should not return error on running system")

	assert.Greater(t, uptime, time.Duration(0), "uptime should be positive")

	// catches unit mistakes like returning milliseconds as seconds
	assert.Less(t, uptime, 10*365*24*time.Hour, "uptime should be less than 10 years")
}

func TestSystemUptime_Consistency(t *testing.T) {
	t.Parallel()

	uptime1, err := SystemUptime()
	if err != nil {
		t.Skipf("uptime not available: %v", err)
	}

	time.Sleep(50 * time.Millisecond)

	uptime2, err := SystemUptime()
	require.NoError(t, err)

	assert.GreaterOrEqual(t, uptime2, uptime1, "uptime should increase over time")
	assert.Less(t, uptime2-uptime1, time.Second, "uptime difference should be less than 1 second")
}
