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

// Package symbolic computes the reachable markings of a 1-safe Petri net
// with binary decision diagrams.
//
// Each place p at position i owns a pair of boolean variables: the current
// variable i and the next variable n+i, where n is the place count. A set
// of markings is a formula over the current variables; a transition
// relation is a formula over both blocks. The image of a set under a
// relation quantifies the current block away, which leaves a formula over
// the next block only, and renames the next block back onto the current one.
package symbolic

import (
	"errors"
	"fmt"

	"github.com/jazzpetri/deadlock/bdd"
	"github.com/jazzpetri/deadlock/petri"
	"github.com/jazzpetri/deadlock/state"
)

// ErrEmptyNet is returned when a net without places is encoded.
var ErrEmptyNet = errors.New("net has no places")

// Pair is the variable pair of one place.
type Pair struct {
	Place   string
	Current int
	Next    int
}

// Encoder assigns variable pairs to places in stable place order. The
// mapping is fixed at construction.
type Encoder struct {
	net     *petri.PetriNet
	mgr     *bdd.Manager
	pairs   []Pair
	byID    map[string]int
	current []int
	next    []int
	rename  *bdd.Permutation
}

// NewEncoder creates the formula manager for net and assigns the variable
// pairs. It fails with bdd.ErrUnavailable if the manager cannot be created.
func NewEncoder(net *petri.PetriNet, opts ...bdd.Option) (*Encoder, error) {
	n := len(net.Places)
	if n == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptyNet, net.ID)
	}

	mgr, err := bdd.New(2*n, opts...)
	if err != nil {
		return nil, err
	}

	e := &Encoder{
		net:     net,
		mgr:     mgr,
		pairs:   make([]Pair, n),
		byID:    make(map[string]int, n),
		current: make([]int, n),
		next:    make([]int, n),
	}
	for i, p := range net.Places {
		e.pairs[i] = Pair{Place: p.ID, Current: i, Next: n + i}
		e.byID[p.ID] = i
		e.current[i] = i
		e.next[i] = n + i
	}

	e.rename, err = mgr.NewPermutation(e.next, e.current)
	if err != nil {
		return nil, fmt.Errorf("failed to build next-to-current renaming: %w", err)
	}
	return e, nil
}

// Manager returns the formula manager owned by the encoder.
func (e *Encoder) Manager() *bdd.Manager {
	return e.mgr
}

// Net returns the encoded net.
func (e *Encoder) Net() *petri.PetriNet {
	return e.net
}

// Places returns the number of places.
func (e *Encoder) Places() int {
	return len(e.pairs)
}

// Pair returns the variable pair of the place with the given ID.
func (e *Encoder) Pair(placeID string) (Pair, bool) {
	i, ok := e.byID[placeID]
	if !ok {
		return Pair{}, false
	}
	return e.pairs[i], true
}

// PairAt returns the variable pair of the place at position i.
func (e *Encoder) PairAt(i int) Pair {
	return e.pairs[i]
}

// PlaceOf maps a variable of either block back to its place position.
// Returns (-1, false) for a variable outside both blocks.
func (e *Encoder) PlaceOf(v int) (int, bool) {
	n := len(e.pairs)
	if v < 0 || v >= 2*n {
		return -1, false
	}
	return v % n, true
}

// Current returns the current-state variables in place order.
func (e *Encoder) Current() []int {
	return append([]int(nil), e.current...)
}

// Next returns the next-state variables in place order.
func (e *Encoder) Next() []int {
	return append([]int(nil), e.next...)
}

// Rename returns the permutation mapping every next variable onto its
// current variable. It only applies to formulas free of current variables.
func (e *Encoder) Rename() *bdd.Permutation {
	return e.rename
}

// EncodeInitial returns the formula satisfied exactly by the initial marking.
func (e *Encoder) EncodeInitial() (*bdd.Handle, error) {
	return e.EncodeMarking(state.Initial(e.net))
}

// EncodeMarking returns the formula over current variables satisfied
// exactly by m.
func (e *Encoder) EncodeMarking(m state.Marking) (*bdd.Handle, error) {
	if err := m.Validate(len(e.pairs)); err != nil {
		return nil, err
	}

	s := e.mgr.NewScope()
	defer s.Close()

	lits := make([]*bdd.Handle, len(e.pairs))
	for i, p := range e.pairs {
		lits[i] = s.Track(e.mgr.Literal(p.Current, m[i] == 1))
	}
	if err := s.Err(); err != nil {
		return nil, err
	}
	return e.mgr.And(lits...)
}
