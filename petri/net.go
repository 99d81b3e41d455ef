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

package petri

import (
	"errors"
	"fmt"
	"sort"
)

var (
	// ErrDuplicateID is returned when two nodes or two arcs share an ID.
	ErrDuplicateID = errors.New("duplicate id")

	// ErrUnknownPlace is returned when an ID does not name a place of the net.
	ErrUnknownPlace = errors.New("unknown place")

	// ErrUnknownTransition is returned when an ID does not name a transition of the net.
	ErrUnknownTransition = errors.New("unknown transition")

	// ErrInvalidArc is returned for arcs that do not connect a place and a transition.
	ErrInvalidArc = errors.New("invalid arc")

	// ErrNotSafe is returned when an initial marking is outside {0, 1}.
	ErrNotSafe = errors.New("initial marking is not 1-safe")

	// ErrNotResolved is returned when analysis is attempted on an unresolved net.
	ErrNotResolved = errors.New("net not resolved")
)

// PetriNet represents a complete 1-safe Petri net graph.
// It contains places, transitions, and arcs in insertion order, and provides
// methods for validation and resolution of ID references to dense indices.
//
// The hybrid structure approach:
// - ID references (strings) are stored as they come from the net description
// - Place/transition indices are computed by Resolve() for analysis
// - Validate() checks structural integrity
//
// Analysis packages only accept resolved nets and never re-validate them.
type PetriNet struct {
	// ID is the unique identifier for this Petri net
	ID string

	// Name is the human-readable name
	Name string

	// Places in stable order; the index of a place is its position here
	Places []*Place

	// Transitions in stable order
	Transitions []*Transition

	// Arcs in the order they were added
	Arcs []*Arc

	// placeIndex maps place IDs to positions in Places
	placeIndex map[string]int

	// transIndex maps transition IDs to positions in Transitions
	transIndex map[string]int

	// arcIDs tracks arc IDs for duplicate detection
	arcIDs map[string]struct{}

	// resolved indicates whether place sets have been computed
	resolved bool

	// Metadata stores arbitrary key-value pairs (source file, tool name, ...)
	Metadata map[string]interface{}
}

// NewPetriNet creates a new Petri net with the specified ID and name.
func NewPetriNet(id, name string) *PetriNet {
	return &PetriNet{
		ID:          id,
		Name:        name,
		Places:      make([]*Place, 0),
		Transitions: make([]*Transition, 0),
		Arcs:        make([]*Arc, 0),
		placeIndex:  make(map[string]int),
		transIndex:  make(map[string]int),
		arcIDs:      make(map[string]struct{}),
		Metadata:    make(map[string]interface{}),
	}
}

// AddPlace adds a place to the net and assigns its index.
// Returns an error if a place or transition with the same ID already exists.
func (pn *PetriNet) AddPlace(p *Place) error {
	if err := pn.checkNodeID(p.ID); err != nil {
		return err
	}
	p.index = len(pn.Places)
	pn.placeIndex[p.ID] = p.index
	pn.Places = append(pn.Places, p)
	pn.resolved = false
	return nil
}

// AddTransition adds a transition to the net and assigns its index.
// Returns an error if a place or transition with the same ID already exists.
func (pn *PetriNet) AddTransition(t *Transition) error {
	if err := pn.checkNodeID(t.ID); err != nil {
		return err
	}
	t.index = len(pn.Transitions)
	pn.transIndex[t.ID] = t.index
	pn.Transitions = append(pn.Transitions, t)
	pn.resolved = false
	return nil
}

// AddArc adds an arc to the net.
// Arcs without an ID get a generated one. Endpoints are checked by Validate(),
// so arcs may be added before the nodes they reference.
func (pn *PetriNet) AddArc(a *Arc) error {
	if a.ID == "" {
		a.ID = fmt.Sprintf("arc-%d", len(pn.Arcs))
	}
	if _, exists := pn.arcIDs[a.ID]; exists {
		return fmt.Errorf("%w: arc %s already exists", ErrDuplicateID, a.ID)
	}
	if a.Weight <= 0 {
		a.Weight = 1
	}
	pn.arcIDs[a.ID] = struct{}{}
	pn.Arcs = append(pn.Arcs, a)
	pn.resolved = false
	return nil
}

func (pn *PetriNet) checkNodeID(id string) error {
	if id == "" {
		return fmt.Errorf("node ID cannot be empty")
	}
	if _, exists := pn.placeIndex[id]; exists {
		return fmt.Errorf("%w: place %s already exists", ErrDuplicateID, id)
	}
	if _, exists := pn.transIndex[id]; exists {
		return fmt.Errorf("%w: transition %s already exists", ErrDuplicateID, id)
	}
	return nil
}

// Validate checks that the Petri net is well-formed.
// A net is valid if:
//  1. every initial marking is 0 or 1
//  2. every arc connects an existing place to an existing transition, or
//     an existing transition to an existing place
//
// Returns an error if validation fails.
func (pn *PetriNet) Validate() error {
	for _, p := range pn.Places {
		if p.InitialMarking < 0 || p.InitialMarking > 1 {
			return fmt.Errorf("%w: place %s has %d tokens", ErrNotSafe, p.ID, p.InitialMarking)
		}
	}

	for _, arc := range pn.Arcs {
		_, srcPlace := pn.placeIndex[arc.SourceID]
		_, srcTrans := pn.transIndex[arc.SourceID]
		_, dstPlace := pn.placeIndex[arc.TargetID]
		_, dstTrans := pn.transIndex[arc.TargetID]

		if !srcPlace && !srcTrans {
			return fmt.Errorf("arc %s: source %s does not exist", arc.ID, arc.SourceID)
		}
		if !dstPlace && !dstTrans {
			return fmt.Errorf("arc %s: target %s does not exist", arc.ID, arc.TargetID)
		}
		if srcPlace == dstPlace {
			return fmt.Errorf("%w: arc %s connects %s to %s", ErrInvalidArc, arc.ID, arc.SourceID, arc.TargetID)
		}
	}

	return nil
}

// Resolve computes the input and output place sets of every transition.
// It validates the net first. Duplicate arcs between the same place and
// transition are merged: their weights add up on input arcs, and an output
// place is listed once.
//
// Calling Resolve() multiple times is safe (idempotent).
func (pn *PetriNet) Resolve() error {
	if pn.resolved {
		return nil
	}

	if err := pn.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	inputs := make([]map[int]int, len(pn.Transitions))
	outputs := make([]map[int]struct{}, len(pn.Transitions))
	for i := range pn.Transitions {
		inputs[i] = make(map[int]int)
		outputs[i] = make(map[int]struct{})
	}

	for _, arc := range pn.Arcs {
		if p, ok := pn.placeIndex[arc.SourceID]; ok {
			t := pn.transIndex[arc.TargetID]
			inputs[t][p] += arc.Weight
			continue
		}
		t := pn.transIndex[arc.SourceID]
		p := pn.placeIndex[arc.TargetID]
		outputs[t][p] = struct{}{}
	}

	for i, trans := range pn.Transitions {
		trans.inputs = make([]Input, 0, len(inputs[i]))
		for p, w := range inputs[i] {
			trans.inputs = append(trans.inputs, Input{Place: p, Weight: w})
		}
		sort.Slice(trans.inputs, func(a, b int) bool {
			return trans.inputs[a].Place < trans.inputs[b].Place
		})

		trans.outputs = make([]int, 0, len(outputs[i]))
		for p := range outputs[i] {
			trans.outputs = append(trans.outputs, p)
		}
		sort.Ints(trans.outputs)

		trans.resolved = true
	}

	pn.resolved = true
	return nil
}

// Resolved returns true if the Petri net has been resolved.
func (pn *PetriNet) Resolved() bool {
	return pn.resolved
}

// PlaceIndex returns the index of the place with the given ID.
// Returns (-1, false) if no such place exists.
func (pn *PetriNet) PlaceIndex(id string) (int, bool) {
	i, ok := pn.placeIndex[id]
	if !ok {
		return -1, false
	}
	return i, true
}

// TransitionIndex returns the index of the transition with the given ID.
// Returns (-1, false) if no such transition exists.
func (pn *PetriNet) TransitionIndex(id string) (int, bool) {
	i, ok := pn.transIndex[id]
	if !ok {
		return -1, false
	}
	return i, true
}

// GetPlace retrieves a place by its ID.
// Returns an error wrapping ErrUnknownPlace if not found.
func (pn *PetriNet) GetPlace(id string) (*Place, error) {
	if pn == nil {
		return nil, fmt.Errorf("cannot get place from nil net")
	}
	i, ok := pn.placeIndex[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownPlace, id)
	}
	return pn.Places[i], nil
}

// GetTransition retrieves a transition by its ID.
// Returns an error wrapping ErrUnknownTransition if not found.
func (pn *PetriNet) GetTransition(id string) (*Transition, error) {
	if pn == nil {
		return nil, fmt.Errorf("cannot get transition from nil net")
	}
	i, ok := pn.transIndex[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownTransition, id)
	}
	return pn.Transitions[i], nil
}

// PlaceIDs returns the place IDs in stable order.
func (pn *PetriNet) PlaceIDs() []string {
	ids := make([]string, len(pn.Places))
	for i, p := range pn.Places {
		ids[i] = p.ID
	}
	return ids
}

// InitialTokens returns the initial marking as a 0/1 vector in place order.
func (pn *PetriNet) InitialTokens() []uint8 {
	m := make([]uint8, len(pn.Places))
	for i, p := range pn.Places {
		if p.Marked() {
			m[i] = 1
		}
	}
	return m
}

// SourceTransitions returns the transitions that have no input place.
// The net must be resolved.
func (pn *PetriNet) SourceTransitions() []*Transition {
	var src []*Transition
	for _, t := range pn.Transitions {
		if t.IsSource() {
			src = append(src, t)
		}
	}
	return src
}

// String returns a human-readable representation of the Petri net for debugging.
func (pn *PetriNet) String() string {
	resolvedStr := "not resolved"
	if pn.resolved {
		resolvedStr = "resolved"
	}
	return fmt.Sprintf("PetriNet[%s: \"%s\" places=%d transitions=%d arcs=%d %s]",
		pn.ID, pn.Name, len(pn.Places), len(pn.Transitions), len(pn.Arcs), resolvedStr)
}

// SetMetadata sets a metadata value for the specified key.
func (pn *PetriNet) SetMetadata(key string, value interface{}) {
	if pn.Metadata == nil {
		pn.Metadata = make(map[string]interface{})
	}
	pn.Metadata[key] = value
}

// GetMetadata retrieves a metadata value for the specified key.
func (pn *PetriNet) GetMetadata(key string) (interface{}, bool) {
	if pn.Metadata == nil {
		return nil, false
	}
	value, ok := pn.Metadata[key]
	return value, ok
}
