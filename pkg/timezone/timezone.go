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

// Package timezone tracks the daylight-saving state and UTC offset of a
// zone. Readers get the last cached values; the service refreshes them on
// its own schedule.
package timezone

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"sync/atomic"
	"time"

	"github.com/ZaparooProject/zaparoo-timekit/pkg/helpers/syncutil"
	"github.com/ZaparooProject/zaparoo-timekit/pkg/xtime"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"
)

// DefaultRefreshInterval is used by Start when no interval is given.
const DefaultRefreshInterval = 15 * time.Minute

// ErrAlreadyRunning is returned by Start when the refresh loop is active.
var ErrAlreadyRunning = errors.New("timezone refresh already running")

// Service caches zone state for lock-free readers. The refresh loop is
// the only writer.
type Service struct {
	loc    *time.Location
	clock  clockwork.Clock
	cancel context.CancelFunc
	done   chan struct{}
	zone   atomic.Value
	offset atomic.Int64
	mu     syncutil.Mutex
	isDST  atomic.Bool
}

// LoadLocation resolves a configured zone name. An empty name or "Local"
// selects the host's local zone.
func LoadLocation(name string) (*time.Location, error) {
	name = strings.TrimSpace(name)
	if name == "" || strings.EqualFold(name, "local") {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("failed to load timezone %q: %w", name, err)
	}
	return loc, nil
}

// New creates a service for loc and primes the cache.
func New(loc *time.Location, clock clockwork.Clock) *Service {
	if loc == nil {
		loc = time.Local
	}
	if clock == nil {
		clock = clockwork.NewRealClock()
	}

	s := &Service{
		loc:   loc,
		clock: clock,
	}
	s.update(true)
	return s
}

// Location returns the zone being tracked.
func (s *Service) Location() *time.Location {
	return s.loc
}

// IsDST reports the last cached daylight-saving state.
func (s *Service) IsDST() bool {
	return s.isDST.Load()
}

// OffsetSeconds returns the last cached offset in seconds east of UTC.
func (s *Service) OffsetSeconds() int {
	return int(s.offset.Load())
}

// ZoneName returns the abbreviation in effect at the last refresh.
func (s *Service) ZoneName() string {
	name, _ := s.zone.Load().(string)
	return name
}

// Refresh recomputes the cached state from the current time.
func (s *Service) Refresh() {
	s.update(false)
}

func (s *Service) update(initial bool) {
	now := s.clock.Now().In(s.loc)
	name, offset := now.Zone()
	dst := now.IsDST()

	s.zone.Store(name)
	s.offset.Store(int64(offset))
	prev := s.isDST.Swap(dst)

	switch {
	case initial:
		log.Debug().
			Str("zone", name).
			Int("offset", offset).
			Bool("dst", dst).
			Msgf("timezone initialized: %s", s.loc)
	case prev != dst:
		log.Info().
			Str("zone", name).
			Int("offset", offset).
			Bool("dst", dst).
			Msg("daylight saving state changed")
	}
}

// Start refreshes the cache every interval until ctx is done or Stop is
// called. A zero interval uses DefaultRefreshInterval.
func (s *Service) Start(ctx context.Context, interval time.Duration) error {
	if interval <= 0 {
		interval = DefaultRefreshInterval
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.done != nil {
		return ErrAlreadyRunning
	}

	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.done = make(chan struct{})

	ticker := s.clock.NewTicker(interval)
	go func(done chan struct{}) {
		defer close(done)
		defer s.release(done)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.Chan():
				s.Refresh()
			}
		}
	}(s.done)

	log.Debug().Dur("interval", interval).Msg("timezone refresh started")
	return nil
}

// release clears the lifecycle state when the loop ends on its own, so a
// cancelled parent context does not block a later Start.
func (s *Service) release(done chan struct{}) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.done != done {
		return
	}
	s.cancel()
	s.cancel, s.done = nil, nil
	log.Debug().Msg("timezone refresh stopped with its context")
}

// Stop ends the refresh loop and waits for it to exit.
func (s *Service) Stop() {
	s.mu.Lock()
	cancel, done := s.cancel, s.done
	s.cancel, s.done = nil, nil
	s.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
}

// UTCToLocal shifts t by the cached offset.
func (s *Service) UTCToLocal(t xtime.Ticks) (xtime.Ticks, error) {
	return shift(t, s.offset.Load())
}

// LocalToUTC removes the cached offset from a local tick value.
func (s *Service) LocalToUTC(t xtime.Ticks) (xtime.Ticks, error) {
	return shift(t, -s.offset.Load())
}

func shift(t xtime.Ticks, seconds int64) (xtime.Ticks, error) {
	if seconds < 0 {
		delta := uint64(-seconds) * xtime.TicksPerSecond
		if uint64(t) < delta {
			return 0, fmt.Errorf("shifting %d by %ds: %w", t, seconds, xtime.ErrOutOfRange)
		}
		return t - xtime.Ticks(delta), nil
	}

	delta := uint64(seconds) * xtime.TicksPerSecond
	if uint64(t) > math.MaxUint64-delta {
		return 0, fmt.Errorf("shifting %d by %ds: %w", t, seconds, xtime.ErrOutOfRange)
	}
	return t + xtime.Ticks(delta), nil
}
