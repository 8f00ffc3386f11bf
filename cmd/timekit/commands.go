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
	"errors"
	"flag"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/ZaparooProject/zaparoo-timekit/pkg/config"
	"github.com/ZaparooProject/zaparoo-timekit/pkg/tickclock"
	"github.com/ZaparooProject/zaparoo-timekit/pkg/wallclock"
	"github.com/ZaparooProject/zaparoo-timekit/pkg/xtime"
	"github.com/rs/zerolog/log"
)

var errNoCommand = errors.New("no command given, see -help")

type options struct {
	configDir string
	split     string
	ticks     uint64
	posix     int64
	sleepMS   uint64
	now       bool
	counter   bool
	verbose   bool
	hasTicks  bool
	hasPosix  bool
}

func (o *options) flagSet() *flag.FlagSet {
	fs := flag.NewFlagSet(config.AppName, flag.ContinueOnError)
	fs.BoolVar(&o.now, "now", false, "print the current local time in every representation")
	fs.Func("ticks", "convert a tick count to local calendar time", func(s string) error {
		v, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid tick count: %w", err)
		}
		o.ticks, o.hasTicks = v, true
		return nil
	})
	fs.Func("posix", "convert POSIX seconds to ticks and calendar time", func(s string) error {
		v, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid posix seconds: %w", err)
		}
		o.posix, o.hasPosix = v, true
		return nil
	})
	fs.StringVar(&o.split, "split", "", "join a LOW:HIGH 32-bit pair into ticks")
	fs.BoolVar(&o.counter, "counter", false, "sample the high resolution counter and tick count")
	fs.Uint64Var(&o.sleepMS, "sleep", 0, "sleep for the given milliseconds and report the elapsed time")
	fs.StringVar(&o.configDir, "config", "", "config directory")
	fs.BoolVar(&o.verbose, "verbose", false, "log to stderr at debug level")
	return fs
}

type app struct {
	out     io.Writer
	conv    *xtime.Converter
	wall    *wallclock.WallClock
	ticks   *tickclock.Clock
	uptime  func() (time.Duration, error)
	highRes bool
}

func (a *app) execute(o *options) error {
	ran := false
	steps := []struct {
		fn      func() error
		enabled bool
	}{
		{enabled: o.now, fn: a.printNow},
		{enabled: o.hasTicks, fn: func() error { return a.printTicks(xtime.Ticks(o.ticks)) }},
		{enabled: o.hasPosix, fn: func() error { return a.printPosix(xtime.PosixSeconds(o.posix)) }},
		{enabled: o.split != "", fn: func() error { return a.printSplit(o.split) }},
		{enabled: o.counter, fn: a.printCounter},
		{enabled: o.sleepMS > 0, fn: func() error { return a.sleep(o.sleepMS) }},
	}

	for _, s := range steps {
		if !s.enabled {
			continue
		}
		ran = true
		if err := s.fn(); err != nil {
			return err
		}
	}

	if !ran {
		return errNoCommand
	}
	return nil
}

func (a *app) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(a.out, format, args...)
}

func dstLabel(dst bool) string {
	if dst {
		return "dst"
	}
	return "std"
}

func (a *app) printNow() error {
	ct := a.wall.Capture()
	t, err := a.wall.NowTicks()
	if err != nil {
		return fmt.Errorf("failed to read current ticks: %w", err)
	}
	ft := xtime.Split(t)

	if !a.wall.Reliable() {
		log.Warn().Stringer("ticks", t).Msg("system clock appears to be unset")
		a.printf("warning:  system clock appears to be unset\n")
	}
	a.printf("local:    %s %s (%s)\n", ct, ct.Weekday, dstLabel(ct.IsDST))
	a.printf("posix:    %d\n", a.wall.NowPosix())
	a.printf("ticks:    %s\n", t)
	a.printf("filetime: 0x%08x:0x%08x\n", ft.Low, ft.High)
	return nil
}

func (a *app) printTicks(t xtime.Ticks) error {
	ct, err := a.conv.TicksToCalendar(t)
	if err != nil {
		return fmt.Errorf("failed to convert ticks %s: %w", t, err)
	}
	secs := xtime.TicksToPosix(t)

	a.printf("local:    %s %s (%s)\n", ct, ct.Weekday, dstLabel(ct.IsDST))
	a.printf("utc:      %s\n", t.Time().Format("2006-01-02 15:04:05.000"))
	a.printf("posix:    %d\n", secs)
	return nil
}

func (a *app) printPosix(secs xtime.PosixSeconds) error {
	t, err := xtime.PosixToTicks(secs)
	if err != nil {
		return fmt.Errorf("failed to convert posix seconds %d: %w", secs, err)
	}
	ct := a.conv.LocalBreakdown(secs)

	a.printf("ticks:    %s\n", t)
	a.printf("local:    %s %s (%s)\n", ct, ct.Weekday, dstLabel(ct.IsDST))
	return nil
}

func (a *app) printSplit(s string) error {
	lowStr, highStr, ok := strings.Cut(s, ":")
	if !ok {
		return fmt.Errorf("split value %q is not LOW:HIGH: %w", s, xtime.ErrInvalidArgument)
	}
	low, err := strconv.ParseUint(lowStr, 0, 32)
	if err != nil {
		return fmt.Errorf("invalid low half %q: %w", lowStr, err)
	}
	high, err := strconv.ParseUint(highStr, 0, 32)
	if err != nil {
		return fmt.Errorf("invalid high half %q: %w", highStr, err)
	}

	ft := xtime.FileTime{Low: uint32(low), High: uint32(high)}
	t, err := xtime.DecodeFileTime(&ft)
	if err != nil {
		return fmt.Errorf("failed to join %q: %w", s, err)
	}

	a.printf("ticks:    %s\n", t)
	return a.printTicks(t)
}

func (a *app) printCounter() error {
	sample, err := a.ticks.Now(a.highRes)
	if err != nil {
		return fmt.Errorf("failed to sample counter: %w", err)
	}

	var freq uint64
	if err := a.ticks.ReadFrequency(&freq); err != nil {
		return fmt.Errorf("failed to read counter frequency: %w", err)
	}

	source := "monotonic"
	if a.highRes {
		source = "process cpu"
	}
	a.printf("counter:   %d (%s)\n", sample.Counter, source)
	a.printf("frequency: %d\n", freq)
	a.printf("tickcount: %d\n", a.ticks.TickCount())

	if a.uptime != nil {
		up, err := a.uptime()
		if err != nil {
			log.Warn().Err(err).Msg("error reading system uptime")
			return nil
		}
		a.printf("uptime:    %s\n", up.Truncate(time.Second))
	}
	return nil
}

func (a *app) sleep(ms uint64) error {
	if ms > math.MaxUint32 {
		return fmt.Errorf("sleep of %dms too long: %w", ms, xtime.ErrOutOfRange)
	}

	before, err := a.ticks.Now(false)
	if err != nil {
		return fmt.Errorf("failed to sample counter: %w", err)
	}
	if err := a.ticks.Sleep(uint32(ms)); err != nil {
		return fmt.Errorf("sleep failed: %w", err)
	}
	after, err := a.ticks.Now(false)
	if err != nil {
		return fmt.Errorf("failed to sample counter: %w", err)
	}

	elapsed := tickclock.Elapsed(before, after)
	log.Debug().Uint64("requested_ms", ms).Dur("elapsed", elapsed).Msg("sleep finished")
	a.printf("slept:    %s\n", elapsed)
	return nil
}
