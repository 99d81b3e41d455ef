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

package bdd

import (
	"fmt"

	"github.com/dalzilio/rudd"
)

// Permutation is a validated one-way variable renaming: from[i] becomes
// to[i]. The source and target blocks are disjoint.
type Permutation struct {
	m    *Manager
	r    rudd.Replacer
	from []int
	to   []int
}

// NewPermutation builds a renaming from[i] → to[i]. Both slices must have the
// same length and hold in-range variables without duplicates. A target may
// not also be a source, the diagram library cannot rename in both
// directions at once.
func (m *Manager) NewPermutation(from, to []int) (*Permutation, error) {
	if len(from) != len(to) {
		return nil, fmt.Errorf("%w: %d sources, %d targets", ErrPermutation, len(from), len(to))
	}
	seenFrom := make(map[int]bool, len(from))
	seenTo := make(map[int]bool, len(to))
	for i := range from {
		if err := m.checkVar(from[i]); err != nil {
			return nil, err
		}
		if err := m.checkVar(to[i]); err != nil {
			return nil, err
		}
		if seenFrom[from[i]] || seenTo[to[i]] {
			return nil, fmt.Errorf("%w: variable repeated at position %d", ErrPermutation, i)
		}
		seenFrom[from[i]] = true
		seenTo[to[i]] = true
	}
	for i, v := range to {
		if seenFrom[v] {
			return nil, fmt.Errorf("%w: target %d at position %d is also a source", ErrPermutation, v, i)
		}
	}

	r, err := m.b.NewReplacer(from, to)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPermutation, err)
	}
	return &Permutation{
		m:    m,
		r:    r,
		from: append([]int(nil), from...),
		to:   append([]int(nil), to...),
	}, nil
}

// Target returns the variable v is renamed to, or v itself when unmapped.
func (p *Permutation) Target(v int) int {
	for i, f := range p.from {
		if f == v {
			return p.to[i]
		}
	}
	return v
}

// Len returns the number of renamed variables.
func (p *Permutation) Len() int {
	return len(p.from)
}
