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

// Package state provides markings of 1-safe Petri nets and their
// serialization. A Marking is the token assignment used throughout the
// analyzer: symbolic membership queries, integer-program candidates, the
// explicit baseline, and the reported deadlock witness all share it.
package state

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jazzpetri/deadlock/petri"
)

var (
	// ErrLengthMismatch is returned when a marking does not have one entry per place.
	ErrLengthMismatch = errors.New("marking length does not match place count")

	// ErrNotSafe is returned when a marking entry is outside {0, 1}.
	ErrNotSafe = errors.New("marking entry is not 0 or 1")
)

// Marking represents the token assignment of a 1-safe Petri net.
// Entry i is 1 if place i (in net place order) holds a token, 0 otherwise.
// The length of a marking always equals the place count of its net.
type Marking []uint8

// NewMarking creates an empty marking for n places.
func NewMarking(n int) Marking {
	return make(Marking, n)
}

// Initial returns the initial marking of a net.
func Initial(net *petri.PetriNet) Marking {
	return Marking(net.InitialTokens())
}

// FromBools converts a boolean assignment into a marking.
func FromBools(values []bool) Marking {
	m := make(Marking, len(values))
	for i, v := range values {
		if v {
			m[i] = 1
		}
	}
	return m
}

// Len returns the number of places covered by the marking.
func (m Marking) Len() int {
	return len(m)
}

// Ones returns the number of places holding a token.
func (m Marking) Ones() int {
	count := 0
	for _, v := range m {
		if v == 1 {
			count++
		}
	}
	return count
}

// Has reports whether place i holds a token.
func (m Marking) Has(i int) bool {
	return i >= 0 && i < len(m) && m[i] == 1
}

// Validate checks that the marking has exactly n entries, each 0 or 1.
func (m Marking) Validate(n int) error {
	if len(m) != n {
		return fmt.Errorf("%w: got %d entries, want %d", ErrLengthMismatch, len(m), n)
	}
	for i, v := range m {
		if v > 1 {
			return fmt.Errorf("%w: entry %d is %d", ErrNotSafe, i, v)
		}
	}
	return nil
}

// Key returns a canonical string key for this marking ("0110").
// Keys are used for deduplication in the explicit state space.
func (m Marking) Key() string {
	var sb strings.Builder
	sb.Grow(len(m))
	for _, v := range m {
		sb.WriteByte('0' + v)
	}
	return sb.String()
}

// ParseKey converts a key produced by Key back into a marking.
func ParseKey(key string) (Marking, error) {
	m := make(Marking, len(key))
	for i := 0; i < len(key); i++ {
		switch key[i] {
		case '0':
		case '1':
			m[i] = 1
		default:
			return nil, fmt.Errorf("%w: %q at %d", ErrNotSafe, key[i], i)
		}
	}
	return m, nil
}

// Marked returns the IDs of the places holding a token, in place order.
// ids must be the place IDs of the net in place order.
func (m Marking) Marked(ids []string) []string {
	var marked []string
	for i, v := range m {
		if v == 1 && i < len(ids) {
			marked = append(marked, ids[i])
		}
	}
	return marked
}

// Clone creates an independent copy of the marking.
func (m Marking) Clone() Marking {
	if m == nil {
		return nil
	}
	c := make(Marking, len(m))
	copy(c, m)
	return c
}

// Equal returns true if two markings assign the same tokens to the same places.
func (m Marking) Equal(other Marking) bool {
	if len(m) != len(other) {
		return false
	}
	for i := range m {
		if m[i] != other[i] {
			return false
		}
	}
	return true
}

// String renders the marking as a bracketed vector, e.g. [0 1].
func (m Marking) String() string {
	parts := make([]string, len(m))
	for i, v := range m {
		parts[i] = fmt.Sprintf("%d", v)
	}
	return "[" + strings.Join(parts, " ") + "]"
}
