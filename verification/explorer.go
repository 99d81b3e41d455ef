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

// Package verification provides explicit state-space exploration of 1-safe
// Petri nets.
//
// The explorer enumerates reachable markings one by one with breadth-first
// search. It is the independent baseline the symbolic engine is compared
// against: it shares no code with the formula-based reachability, only the
// firing rule. Memory grows with the number of reachable markings, so it is
// meant for small nets.
//
// Firing rule (1-safe): a transition is enabled when every input place holds
// a token; a transition without input places is always enabled. Firing
// empties input-only places, marks output places, and leaves self-loop
// places (input and output of the same transition) unchanged.
package verification

import (
	"errors"
	"fmt"

	"github.com/jazzpetri/deadlock/petri"
	"github.com/jazzpetri/deadlock/state"
)

// ErrStateLimit is returned together with the partial state space when the
// exploration stops at the state limit.
var ErrStateLimit = errors.New("state space limit reached")

// State is one reachable marking of the explored state space.
type State struct {
	// ID is the discovery index of the state; the initial state is 0
	ID int

	// Marking is the token assignment of this state
	Marking state.Marking
}

// Edge is one firing between two states.
type Edge struct {
	From         int
	To           int
	TransitionID string
}

// StateSpace is the reachability graph of a net.
type StateSpace struct {
	// States in discovery (breadth-first) order
	States []*State

	// Edges maps a state ID to its outgoing firings
	Edges map[int][]Edge

	// Initial is the ID of the initial state
	Initial int

	// Complete is false when the state limit stopped the exploration
	Complete bool

	stateIndex map[string]int
}

// Len returns the number of states.
func (ss *StateSpace) Len() int {
	return len(ss.States)
}

// EdgeCount returns the number of edges.
func (ss *StateSpace) EdgeCount() int {
	count := 0
	for _, edges := range ss.Edges {
		count += len(edges)
	}
	return count
}

// Lookup returns the ID of the state with marking m.
func (ss *StateSpace) Lookup(m state.Marking) (int, bool) {
	id, ok := ss.stateIndex[m.Key()]
	return id, ok
}

// Contains reports whether m was reached.
func (ss *StateSpace) Contains(m state.Marking) bool {
	_, ok := ss.Lookup(m)
	return ok
}

// Markings returns the reachable markings in discovery order.
func (ss *StateSpace) Markings() []state.Marking {
	out := make([]state.Marking, len(ss.States))
	for i, s := range ss.States {
		out[i] = s.Marking
	}
	return out
}

// Explorer performs explicit breadth-first exploration.
type Explorer struct {
	net       *petri.PetriNet
	maxStates int
}

// NewExplorer creates an explorer for a resolved net. A non-positive
// maxStates uses a limit of 10000 states.
func NewExplorer(net *petri.PetriNet, maxStates int) *Explorer {
	if maxStates <= 0 {
		maxStates = 10000
	}
	return &Explorer{
		net:       net,
		maxStates: maxStates,
	}
}

// Explore builds the state space from the initial marking.
//
// If the state limit is reached the partial state space is returned with an
// error wrapping ErrStateLimit.
func (e *Explorer) Explore() (*StateSpace, error) {
	if err := e.net.Resolve(); err != nil {
		return nil, err
	}

	initial := state.Initial(e.net)
	ss := &StateSpace{
		States:     []*State{{ID: 0, Marking: initial}},
		Edges:      make(map[int][]Edge),
		Initial:    0,
		stateIndex: map[string]int{initial.Key(): 0},
	}

	queue := []int{0}
	for len(queue) > 0 {
		currentID := queue[0]
		queue = queue[1:]
		current := ss.States[currentID]

		for _, trans := range e.net.Transitions {
			if !Enabled(current.Marking, trans) {
				continue
			}
			successor := Fire(current.Marking, trans)

			key := successor.Key()
			nextID, exists := ss.stateIndex[key]
			if !exists {
				if len(ss.States) >= e.maxStates {
					return ss, fmt.Errorf("%w (%d states)", ErrStateLimit, e.maxStates)
				}
				nextID = len(ss.States)
				ss.States = append(ss.States, &State{ID: nextID, Marking: successor})
				ss.stateIndex[key] = nextID
				queue = append(queue, nextID)
			}
			ss.Edges[currentID] = append(ss.Edges[currentID], Edge{
				From:         currentID,
				To:           nextID,
				TransitionID: trans.ID,
			})
		}
	}

	ss.Complete = true
	return ss, nil
}

// Enabled reports whether t may fire in m. The transition must belong to a
// resolved net.
func Enabled(m state.Marking, t *petri.Transition) bool {
	for _, in := range t.Inputs() {
		if !m.Has(in.Place) {
			return false
		}
	}
	return true
}

// Fire returns the marking reached by firing t in m. m is not modified.
func Fire(m state.Marking, t *petri.Transition) state.Marking {
	next := m.Clone()
	for _, in := range t.Inputs() {
		if !t.Produces(in.Place) {
			next[in.Place] = 0
		}
	}
	for _, out := range t.Outputs() {
		next[out] = 1
	}
	return next
}

// Dead reports whether no transition of net is enabled in m.
func Dead(net *petri.PetriNet, m state.Marking) bool {
	for _, t := range net.Transitions {
		if Enabled(m, t) {
			return false
		}
	}
	return true
}

// FindPath returns the transition IDs of a shortest firing sequence from
// state from to state to, or nil if to is unreachable from from (or equal).
func FindPath(ss *StateSpace, from, to int) []string {
	if from == to {
		return nil
	}

	type pathNode struct {
		stateID int
		path    []string
	}

	visited := map[int]bool{from: true}
	queue := []pathNode{{stateID: from}}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		for _, edge := range ss.Edges[current.stateID] {
			if visited[edge.To] {
				continue
			}

			newPath := make([]string, len(current.path)+1)
			copy(newPath, current.path)
			newPath[len(current.path)] = edge.TransitionID

			if edge.To == to {
				return newPath
			}

			visited[edge.To] = true
			queue = append(queue, pathNode{stateID: edge.To, path: newPath})
		}
	}

	return nil
}
