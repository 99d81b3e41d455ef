// Copyright 2026 The JazzPetri Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package clock provides the time source used to measure analysis phases.
//
// Production code uses RealTimeClock. Tests use VirtualClock, whose time
// only moves when the test advances it, so elapsed-time reporting can be
// checked exactly.
package clock

import "time"

// Clock abstracts the wall clock.
type Clock interface {
	// Now returns the current time of the clock.
	Now() time.Time
}

// Stopwatch measures the time elapsed since it was started on a Clock.
type Stopwatch struct {
	clock Clock
	start time.Time
}

// Start returns a stopwatch started at the current time of c.
// A nil clock falls back to RealTimeClock.
func Start(c Clock) *Stopwatch {
	if c == nil {
		c = NewRealTimeClock()
	}
	return &Stopwatch{clock: c, start: c.Now()}
}

// Started returns the time the stopwatch was started.
func (s *Stopwatch) Started() time.Time {
	return s.start
}

// Elapsed returns the time since Start. It never returns a negative duration.
func (s *Stopwatch) Elapsed() time.Duration {
	d := s.clock.Now().Sub(s.start)
	if d < 0 {
		return 0
	}
	return d
}
