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

package config

import (
	"fmt"
	"strconv"
)

// Get returns the value stored under a dotted setting key.
func (c *Instance) Get(key string) (any, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	switch key {
	case KeyDebugLogging:
		return c.vals.DebugLogging, nil
	case KeyErrorReporting:
		return c.vals.ErrorReporting, nil
	case KeyErrorReportingDSN:
		return c.vals.ErrorReportingDSN, nil
	case KeyClockTimezone:
		return c.vals.Clock.Timezone, nil
	case KeyClockDSTRefresh:
		return c.vals.Clock.DSTRefresh, nil
	case KeyClockHighResCPU:
		return c.vals.Clock.HighResCPU, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
}

// Set validates and stores a value under a dotted setting key. Boolean
// settings also accept their string forms. Nothing is changed on error.
// Call Save to persist.
func (c *Instance) Set(key string, value any) error {
	switch key {
	case KeyDebugLogging, KeyErrorReporting, KeyClockHighResCPU:
		b, err := toBool(value)
		if err != nil {
			return fmt.Errorf("setting %s: %w", key, err)
		}
		c.setBool(key, b)
		return nil
	case KeyErrorReportingDSN, KeyClockTimezone, KeyClockDSTRefresh:
		s, ok := value.(string)
		if !ok {
			return fmt.Errorf("setting %s: expected string, got %T", key, value)
		}
		if err := validateVar(s, stringTags[key]); err != nil {
			return fmt.Errorf("setting %s: %w", key, err)
		}
		c.setString(key, s)
		return nil
	default:
		return fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
}

var stringTags = map[string]string{
	KeyErrorReportingDSN: "omitempty,url",
	KeyClockTimezone:     "omitempty,zone",
	KeyClockDSTRefresh:   "omitempty,duration",
}

func (c *Instance) setBool(key string, b bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch key {
	case KeyDebugLogging:
		c.vals.DebugLogging = b
	case KeyErrorReporting:
		c.vals.ErrorReporting = b
	case KeyClockHighResCPU:
		c.vals.Clock.HighResCPU = b
	}
}

func (c *Instance) setString(key, s string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch key {
	case KeyErrorReportingDSN:
		c.vals.ErrorReportingDSN = s
	case KeyClockTimezone:
		c.vals.Clock.Timezone = s
	case KeyClockDSTRefresh:
		c.vals.Clock.DSTRefresh = s
	}
}

func toBool(value any) (bool, error) {
	switch v := value.(type) {
	case bool:
		return v, nil
	case string:
		b, err := strconv.ParseBool(v)
		if err != nil {
			return false, fmt.Errorf("invalid boolean %q: %w", v, err)
		}
		return b, nil
	default:
		return false, fmt.Errorf("expected bool, got %T", value)
	}
}
