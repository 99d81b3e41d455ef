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

// Package petri provides the net model consumed by the deadlock analyzer.
// It implements places, transitions, arcs, and the Petri net container with
// a hybrid graph structure: ID references are kept for parsing and reporting,
// and dense place/transition indices are computed by Resolve() for analysis.
//
// Safety Semantics:
//
// Nets handled here are 1-safe: every place holds at most one token in any
// reachable marking. The initial marking of each place is therefore 0 or 1,
// and Validate() rejects anything else.
//
// Place order is stable: places are indexed in the order they were added, and
// every marking vector produced by the analyzer uses that order.
package petri

import "fmt"

// Place holds at most one token in a 1-safe Petri net.
type Place struct {
	// ID is the unique identifier for this place
	ID string

	// Name is the human-readable name
	Name string

	// InitialMarking is the number of tokens in the initial marking (0 or 1)
	InitialMarking int

	// index is the position of the place in PetriNet.Places.
	// Set by PetriNet.AddPlace()
	index int
}

// NewPlace creates a new place with the specified ID, name, and initial token count.
// The index is assigned when the place is added to a net.
func NewPlace(id, name string, initial int) *Place {
	return &Place{
		ID:             id,
		Name:           name,
		InitialMarking: initial,
		index:          -1,
	}
}

// Index returns the stable position of the place in its net, or -1 if the
// place has not been added to a net yet.
func (p *Place) Index() int {
	return p.index
}

// Marked reports whether the place holds a token in the initial marking.
func (p *Place) Marked() bool {
	return p.InitialMarking > 0
}

// String returns a human-readable representation of the place for debugging.
func (p *Place) String() string {
	return fmt.Sprintf("Place[%s: \"%s\" tokens=%d]", p.ID, p.Name, p.InitialMarking)
}
