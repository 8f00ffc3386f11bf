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
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/ZaparooProject/zaparoo-timekit/internal/telemetry"
	"github.com/ZaparooProject/zaparoo-timekit/pkg/config"
	"github.com/ZaparooProject/zaparoo-timekit/pkg/helpers"
	"github.com/ZaparooProject/zaparoo-timekit/pkg/tickclock"
	"github.com/ZaparooProject/zaparoo-timekit/pkg/timezone"
	"github.com/ZaparooProject/zaparoo-timekit/pkg/wallclock"
	"github.com/ZaparooProject/zaparoo-timekit/pkg/xtime"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		telemetry.Flush()
		os.Exit(1)
	}
}

func run(args []string, stdout io.Writer) error {
	var opts options
	fs := opts.flagSet()
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return fmt.Errorf("failed to parse flags: %w", err)
	}

	cfgDir := opts.configDir
	if cfgDir == "" {
		userDir, err := os.UserConfigDir()
		if err != nil {
			return fmt.Errorf("failed to find config directory: %w", err)
		}
		cfgDir = filepath.Join(userDir, config.AppName)
	}

	cfg, err := config.NewConfig(afero.NewOsFs(), cfgDir, config.BaseDefaults)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	var logWriters []io.Writer
	if opts.verbose {
		logWriters = []io.Writer{os.Stderr}
	}
	if err := helpers.InitLogging(cfgDir, logWriters); err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}
	helpers.SetDebugLogging(cfg.DebugLogging() || opts.verbose)

	log.Info().
		Str("version", config.AppVersion).
		Str("config", cfg.Path()).
		Msg("timekit starting")

	err = telemetry.Init(cfg.ErrorReporting(), cfg.ErrorReportingDSN(), config.AppVersion, cfg.Timezone())
	if err != nil {
		log.Warn().Err(err).Msg("error reporting unavailable")
	}
	defer telemetry.Close()

	loc, err := timezone.LoadLocation(cfg.Timezone())
	if err != nil {
		return fmt.Errorf("failed to load timezone: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	realClock := clockwork.NewRealClock()
	tz := timezone.New(loc, realClock)
	if err := tz.Start(ctx, cfg.DSTRefresh()); err != nil {
		return fmt.Errorf("failed to start timezone service: %w", err)
	}
	defer tz.Stop()

	conv := xtime.NewConverter(loc)
	a := &app{
		out:     stdout,
		conv:    conv,
		wall:    wallclock.New(realClock, conv, tz),
		ticks:   tickclock.New(tickclock.NewSystemSource(), realClock),
		uptime:  tickclock.SystemUptime,
		highRes: cfg.HighResCPU(),
	}

	return a.execute(&opts)
}
