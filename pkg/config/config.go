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

// Package config is the persistent settings store: TOML values on disk
// with typed and key-based accessors.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/ZaparooProject/zaparoo-timekit/pkg/helpers/syncutil"
	toml "github.com/pelletier/go-toml/v2"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
)

const (
	SchemaVersion = 1
	CfgEnv        = "TIMEKIT_CFG"
)

const (
	KeyDebugLogging      = "debug_logging"
	KeyErrorReporting    = "error_reporting"
	KeyErrorReportingDSN = "error_reporting_dsn"
	KeyClockTimezone     = "clock.timezone"
	KeyClockDSTRefresh   = "clock.dst_refresh"
	KeyClockHighResCPU   = "clock.high_res_cpu"
)

var ErrUnknownKey = errors.New("unknown setting key")

type Values struct {
	ErrorReportingDSN string `toml:"error_reporting_dsn,omitempty" validate:"omitempty,url"`
	Clock             Clock  `toml:"clock"`
	ConfigSchema      int    `toml:"config_schema"`
	DebugLogging      bool   `toml:"debug_logging"`
	ErrorReporting    bool   `toml:"error_reporting"`
}

type Clock struct {
	// Timezone is an IANA zone name. Empty or "Local" uses the host zone.
	Timezone string `toml:"timezone,omitempty" validate:"omitempty,zone"`
	// DSTRefresh is how often the cached daylight-saving state is
	// recomputed, as a Go duration string.
	DSTRefresh string `toml:"dst_refresh,omitempty" validate:"omitempty,duration"`
	// HighResCPU selects the process CPU-time clock for counter reads.
	HighResCPU bool `toml:"high_res_cpu"`
}

var BaseDefaults = Values{
	ConfigSchema: SchemaVersion,
	Clock: Clock{
		Timezone:   "Local",
		DSTRefresh: "15m",
	},
}

type Instance struct {
	fs       afero.Fs
	cfgPath  string
	vals     Values
	defaults Values
	mu       syncutil.RWMutex
}

// NewConfig opens the config file in configDir, writing defaults to disk
// first if it doesn't exist yet. The TIMEKIT_CFG environment variable
// overrides the file path.
//
//nolint:gocritic // config struct copied for immutability
func NewConfig(fs afero.Fs, configDir string, defaults Values) (*Instance, error) {
	if fs == nil {
		fs = afero.NewOsFs()
	}

	cfgPath := os.Getenv(CfgEnv)
	log.Debug().Msgf("env config path: %s", cfgPath)

	if cfgPath == "" {
		cfgPath = filepath.Join(configDir, CfgFile)
	}

	cfg := Instance{
		fs:       fs,
		cfgPath:  cfgPath,
		vals:     defaults,
		defaults: defaults,
	}

	exists, err := afero.Exists(fs, cfgPath)
	if err != nil {
		return nil, fmt.Errorf("failed to check config file: %w", err)
	}
	if !exists {
		log.Info().Msg("saving new default config to disk")

		err := fs.MkdirAll(filepath.Dir(cfgPath), 0o750)
		if err != nil {
			return nil, fmt.Errorf("failed to create config directory: %w", err)
		}

		err = cfg.Save()
		if err != nil {
			return nil, err
		}
	}

	err = cfg.Load()
	if err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Path returns the location of the config file.
func (c *Instance) Path() string {
	return c.cfgPath
}

func (c *Instance) Load() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.cfgPath == "" {
		return errors.New("config path not set")
	}

	data, err := afero.ReadFile(c.fs, c.cfgPath)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	// Start with defaults, then unmarshal file values on top.
	// This ensures fields not present in the file retain their default values.
	newVals := c.defaults
	err = toml.Unmarshal(data, &newVals)
	if err != nil {
		return fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if newVals.ConfigSchema != SchemaVersion {
		log.Error().Msgf(
			"schema version mismatch: got %d, expecting %d",
			newVals.ConfigSchema,
			SchemaVersion,
		)
		return errors.New("schema version mismatch")
	}

	if err := validate(&newVals); err != nil {
		return fmt.Errorf("invalid config file: %w", err)
	}

	c.vals = newVals
	return nil
}

func (c *Instance) Save() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.cfgPath == "" {
		return errors.New("config path not set")
	}

	c.vals.ConfigSchema = SchemaVersion

	data, err := toml.Marshal(&c.vals)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := afero.WriteFile(c.fs, c.cfgPath, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

func (c *Instance) DebugLogging() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.vals.DebugLogging
}

func (c *Instance) SetDebugLogging(enabled bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.vals.DebugLogging = enabled
}

func (c *Instance) ErrorReporting() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.vals.ErrorReporting
}

func (c *Instance) SetErrorReporting(enabled bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.vals.ErrorReporting = enabled
}

func (c *Instance) ErrorReportingDSN() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.vals.ErrorReportingDSN
}

func (c *Instance) Timezone() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.vals.Clock.Timezone
}

// SetTimezone stores a zone name after checking it can be loaded.
func (c *Instance) SetTimezone(name string) error {
	return c.Set(KeyClockTimezone, name)
}

// DSTRefresh returns the parsed refresh interval, or zero if unset.
func (c *Instance) DSTRefresh() time.Duration {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.vals.Clock.DSTRefresh == "" {
		return 0
	}
	d, err := time.ParseDuration(c.vals.Clock.DSTRefresh)
	if err != nil {
		log.Warn().Msgf("invalid dst refresh interval: %s", c.vals.Clock.DSTRefresh)
		return 0
	}
	return d
}

func (c *Instance) HighResCPU() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.vals.Clock.HighResCPU
}

func (c *Instance) SetHighResCPU(enabled bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.vals.Clock.HighResCPU = enabled
}
