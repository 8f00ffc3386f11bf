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
	"testing"
	"time"

	"github.com/spf13/afero"
	"pgregory.net/rapid"
)

// TestPropertyDSTRefreshRoundTrip verifies any positive duration written
// through Set survives Save and Load.
func TestPropertyDSTRefreshRoundTrip(t *testing.T) {
	t.Parallel()
	rapid.Check(t, func(t *rapid.T) {
		d := time.Duration(rapid.Int64Range(1, int64(365*24*time.Hour)).Draw(t, "duration"))

		fs := afero.NewMemMapFs()
		cfg, err := NewConfig(fs, "/config", BaseDefaults)
		if err != nil {
			t.Fatalf("new config: %v", err)
		}
		if err := cfg.Set(KeyClockDSTRefresh, d.String()); err != nil {
			t.Fatalf("set %s: %v", d, err)
		}
		if err := cfg.Save(); err != nil {
			t.Fatalf("save: %v", err)
		}
		if err := cfg.Load(); err != nil {
			t.Fatalf("load: %v", err)
		}
		if got := cfg.DSTRefresh(); got != d {
			t.Fatalf("dst refresh %s became %s", d, got)
		}
	})
}

// TestPropertyBoolSettingsAcceptStrings verifies bool keys take both
// native and string forms.
func TestPropertyBoolSettingsAcceptStrings(t *testing.T) {
	t.Parallel()
	keys := []string{KeyDebugLogging, KeyErrorReporting, KeyClockHighResCPU}

	rapid.Check(t, func(t *rapid.T) {
		key := rapid.SampledFrom(keys).Draw(t, "key")
		want := rapid.Bool().Draw(t, "value")
		asString := rapid.Bool().Draw(t, "asString")

		cfg := &Instance{}
		var value any = want
		if asString {
			value = map[bool]string{true: "true", false: "false"}[want]
		}
		if err := cfg.Set(key, value); err != nil {
			t.Fatalf("set %s=%v: %v", key, value, err)
		}
		got, err := cfg.Get(key)
		if err != nil {
			t.Fatalf("get %s: %v", key, err)
		}
		if got != want {
			t.Fatalf("%s: got %v, want %v", key, got, want)
		}
	})
}
