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

package mocks

import (
	"time"

	"github.com/stretchr/testify/mock"
)

// MockClockSource is a testify mock for tickclock.Source.
//
// Example:
//
//	src := &MockClockSource{}
//	src.On("Monotonic").Return(uint64(42), nil)
type MockClockSource struct {
	mock.Mock
}

// Monotonic mocks reading the monotonic counter.
func (m *MockClockSource) Monotonic() (uint64, error) {
	args := m.Called()
	v, _ := args.Get(0).(uint64)
	//nolint:wrapcheck // mock returns are wrapped by the caller
	return v, args.Error(1)
}

// ProcessCPU mocks reading the process CPU-time counter.
func (m *MockClockSource) ProcessCPU() (uint64, error) {
	args := m.Called()
	v, _ := args.Get(0).(uint64)
	//nolint:wrapcheck // mock returns are wrapped by the caller
	return v, args.Error(1)
}

// Sleep mocks a blocking wait. It returns immediately.
func (m *MockClockSource) Sleep(d time.Duration) (time.Duration, error) {
	args := m.Called(d)
	left, _ := args.Get(0).(time.Duration)
	//nolint:wrapcheck // mock returns are wrapped by the caller
	return left, args.Error(1)
}

// MockDSTSource is a testify mock for wallclock.DSTSource.
type MockDSTSource struct {
	mock.Mock
}

// IsDST mocks reading the cached daylight-saving flag.
func (m *MockDSTSource) IsDST() bool {
	args := m.Called()
	return args.Bool(0)
}
