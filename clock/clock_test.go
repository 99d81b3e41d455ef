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
	"testing"
	"time"
)

var epoch = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

func TestRealTimeClock_Now(t *testing.T) {
	c := NewRealTimeClock()
	before := time.Now()
	now := c.Now()
	after := time.Now()

	if now.Before(before) || now.After(after) {
		t.Errorf("Now() = %v, want between %v and %v", now, before, after)
	}
}

func TestVirtualClock_Advance(t *testing.T) {
	c := NewVirtualClock(epoch)

	if !c.Now().Equal(epoch) {
		t.Fatalf("Now() = %v, want %v", c.Now(), epoch)
	}

	c.AdvanceBy(5 * time.Second)
	if got := c.Now(); !got.Equal(epoch.Add(5 * time.Second)) {
		t.Errorf("after AdvanceBy Now() = %v", got)
	}

	c.AdvanceBy(-time.Second)
	if got := c.Now(); !got.Equal(epoch.Add(5 * time.Second)) {
		t.Errorf("negative AdvanceBy moved the clock to %v", got)
	}

	c.AdvanceTo(epoch)
	if got := c.Now(); !got.Equal(epoch.Add(5 * time.Second)) {
		t.Errorf("AdvanceTo(past) moved the clock to %v", got)
	}

	c.AdvanceTo(epoch.Add(time.Minute))
	if got := c.Now(); !got.Equal(epoch.Add(time.Minute)) {
		t.Errorf("AdvanceTo() Now() = %v", got)
	}

	if c.Reads() != 5 {
		t.Errorf("Reads() = %d, want 5", c.Reads())
	}
}

func TestTickingClock(t *testing.T) {
	c := NewTickingClock(epoch, time.Millisecond)

	first := c.Now()
	second := c.Now()
	if d := second.Sub(first); d != time.Millisecond {
		t.Errorf("consecutive reads differ by %v, want 1ms", d)
	}
}

func TestStopwatch(t *testing.T) {
	c := NewVirtualClock(epoch)
	sw := Start(c)

	if !sw.Started().Equal(epoch) {
		t.Errorf("Started() = %v, want %v", sw.Started(), epoch)
	}

	c.AdvanceBy(250 * time.Millisecond)
	if got := sw.Elapsed(); got != 250*time.Millisecond {
		t.Errorf("Elapsed() = %v, want 250ms", got)
	}
}

func TestStopwatch_NilClock(t *testing.T) {
	sw := Start(nil)
	if sw.Elapsed() < 0 {
		t.Error("Elapsed() should never be negative")
	}
}

func TestClockImplementations(t *testing.T) {
	var _ Clock = NewRealTimeClock()
	var _ Clock = NewVirtualClock(epoch)
}
