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

import "fmt"

// Input is one input place of a transition together with the total weight
// of the arcs from that place into the transition.
type Input struct {
	// Place is the index of the input place in PetriNet.Places
	Place int

	// Weight is the summed weight of all arcs from Place into the transition
	Weight int
}

// Transition consumes tokens from its input places and produces tokens in its
// output places.
//
// Input and output place sets are derived from the arc list by
// PetriNet.Resolve(). A place that is both an input and an output of the same
// transition is a self-loop place: firing leaves its token count unchanged.
//
// A transition with no input place is a source transition. It is enabled in
// every marking, so a net containing one can never deadlock.
type Transition struct {
	// ID is the unique identifier for this transition
	ID string

	// Name is the human-readable name
	Name string

	// index is the position of the transition in PetriNet.Transitions
	index int

	// inputs are the resolved input places, sorted by place index
	inputs []Input

	// outputs are the resolved output place indices, sorted
	outputs []int

	// resolved indicates whether the place sets have been computed
	resolved bool
}

// NewTransition creates a new transition with the specified ID and name.
func NewTransition(id, name string) *Transition {
	return &Transition{
		ID:    id,
		Name:  name,
		index: -1,
	}
}

// Index returns the stable position of the transition in its net, or -1 if
// the transition has not been added to a net yet.
func (t *Transition) Index() int {
	return t.index
}

// Inputs returns the input places of the transition.
// Only available after PetriNet.Resolve() has been called.
func (t *Transition) Inputs() []Input {
	return t.inputs
}

// Outputs returns the output place indices of the transition.
// Only available after PetriNet.Resolve() has been called.
func (t *Transition) Outputs() []int {
	return t.outputs
}

// IsSource reports whether the transition has no input place.
// Only meaningful after PetriNet.Resolve() has been called.
func (t *Transition) IsSource() bool {
	return t.resolved && len(t.inputs) == 0
}

// InputWeight returns the total weight over all input arcs.
func (t *Transition) InputWeight() int {
	total := 0
	for _, in := range t.inputs {
		total += in.Weight
	}
	return total
}

// Consumes reports whether place index p is an input of the transition.
func (t *Transition) Consumes(p int) bool {
	for _, in := range t.inputs {
		if in.Place == p {
			return true
		}
	}
	return false
}

// Produces reports whether place index p is an output of the transition.
func (t *Transition) Produces(p int) bool {
	for _, out := range t.outputs {
		if out == p {
			return true
		}
	}
	return false
}

// String returns a human-readable representation of the transition for debugging.
func (t *Transition) String() string {
	resolvedStr := "not resolved"
	if t.resolved {
		resolvedStr = fmt.Sprintf("in=%d out=%d", len(t.inputs), len(t.outputs))
	}
	return fmt.Sprintf("Transition[%s: \"%s\" %s]", t.ID, t.Name, resolvedStr)
}
