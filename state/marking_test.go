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

package state

import (
	"errors"
	"testing"

	"github.com/jazzpetri/deadlock/petri"
)

func TestMarking_Validate(t *testing.T) {
	tests := []struct {
		name    string
		m       Marking
		n       int
		wantErr error
	}{
		{"valid", Marking{0, 1, 1}, 3, nil},
		{"empty", Marking{}, 0, nil},
		{"too short", Marking{0, 1}, 3, ErrLengthMismatch},
		{"too long", Marking{0, 1, 0, 0}, 3, ErrLengthMismatch},
		{"not safe", Marking{0, 2, 0}, 3, ErrNotSafe},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.m.Validate(tt.n)
			if tt.wantErr == nil && err != nil {
				t.Fatalf("Validate() unexpected error: %v", err)
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestMarking_KeyRoundTrip(t *testing.T) {
	m := Marking{1, 0, 0, 1}
	if m.Key() != "1001" {
		t.Errorf("Key() = %q, want 1001", m.Key())
	}

	back, err := ParseKey(m.Key())
	if err != nil {
		t.Fatalf("ParseKey() error: %v", err)
	}
	if !back.Equal(m) {
		t.Errorf("ParseKey() = %v, want %v", back, m)
	}

	if _, err := ParseKey("10x"); !errors.Is(err, ErrNotSafe) {
		t.Errorf("ParseKey(10x) error = %v, want ErrNotSafe", err)
	}
}

func TestMarking_Helpers(t *testing.T) {
	m := FromBools([]bool{false, true, true})

	if m.Ones() != 2 {
		t.Errorf("Ones() = %d, want 2", m.Ones())
	}
	if !m.Has(1) || m.Has(0) || m.Has(7) {
		t.Errorf("Has() inconsistent for %v", m)
	}
	if got := m.String(); got != "[0 1 1]" {
		t.Errorf("String() = %q", got)
	}

	marked := m.Marked([]string{"a", "b", "c"})
	if len(marked) != 2 || marked[0] != "b" || marked[1] != "c" {
		t.Errorf("Marked() = %v, want [b c]", marked)
	}

	c := m.Clone()
	c[0] = 1
	if m[0] != 0 {
		t.Error("Clone() shares storage with original")
	}
	if m.Equal(c) {
		t.Error("Equal() true for different markings")
	}
	if Marking(nil).Clone() != nil {
		t.Error("Clone() of nil should be nil")
	}
}

func TestInitial(t *testing.T) {
	net := petri.NewPetriNet("n", "n")
	_ = net.AddPlace(petri.NewPlace("p1", "p1", 1))
	_ = net.AddPlace(petri.NewPlace("p2", "p2", 0))

	m := Initial(net)
	if !m.Equal(Marking{1, 0}) {
		t.Errorf("Initial() = %v, want [1 0]", m)
	}
}
