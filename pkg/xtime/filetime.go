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

import "fmt"

// FileTime is the split form of Ticks used by consumers that expect a
// 64-bit value as two 32-bit halves.
type FileTime struct {
	Low  uint32
	High uint32
}

// Split breaks t into its low and high 32-bit halves.
func Split(t Ticks) FileTime {
	return FileTime{
		Low:  uint32(t & 0xFFFFFFFF),
		High: uint32(t >> 32),
	}
}

// Ticks joins the two halves back into a single value.
func (ft FileTime) Ticks() Ticks {
	return Ticks(uint64(ft.High)<<32 | uint64(ft.Low))
}

// DecodeFileTime reads a split value supplied by a legacy caller.
func DecodeFileTime(ft *FileTime) (Ticks, error) {
	if ft == nil {
		return 0, fmt.Errorf("nil file time: %w", ErrInvalidArgument)
	}
	return ft.Ticks(), nil
}

// EncodeFileTime writes t into dst. dst is left untouched on failure.
func EncodeFileTime(t Ticks, dst *FileTime) error {
	if dst == nil {
		return fmt.Errorf("nil file time target: %w", ErrInvalidArgument)
	}
	*dst = Split(t)
	return nil
}
