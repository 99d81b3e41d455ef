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

package clock

import (
	"sync"
	"time"
)

// VirtualClock is a manually driven clock for deterministic tests.
// Time moves only through AdvanceBy, AdvanceTo, or the optional tick applied
// on every Now call.
type VirtualClock struct {
	mu      sync.RWMutex
	current time.Time
	tick    time.Duration
	reads   int
}

// NewVirtualClock creates a virtual clock starting at start.
func NewVirtualClock(start time.Time) *VirtualClock {
	return &VirtualClock{current: start}
}

// NewTickingClock creates a virtual clock that advances by tick after every
// call to Now. Two consecutive reads therefore differ by exactly tick.
func NewTickingClock(start time.Time, tick time.Duration) *VirtualClock {
	return &VirtualClock{current: start, tick: tick}
}

// Now returns the virtual time, then applies the tick if one is set.
func (v *VirtualClock) Now() time.Time {
	v.mu.Lock()
	defer v.mu.Unlock()
	now := v.current
	v.reads++
	if v.tick > 0 {
		v.current = v.current.Add(v.tick)
	}
	return now
}

// AdvanceTo moves the clock to targetTime. Moving backwards is ignored.
func (v *VirtualClock) AdvanceTo(targetTime time.Time) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if !targetTime.After(v.current) {
		return
	}
	v.current = targetTime
}

// AdvanceBy moves the clock forward by d. Non-positive durations are ignored.
func (v *VirtualClock) AdvanceBy(d time.Duration) {
	if d <= 0 {
		return
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	v.current = v.current.Add(d)
}

// Reads returns how many times Now was called.
func (v *VirtualClock) Reads() int {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.reads
}
