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

package verification

import "fmt"

// VerificationResult is the outcome of checking one property on a state space.
type VerificationResult struct {
	// Property is the name of the checked property
	Property string

	// Kind identifies the check that produced the result; it survives the
	// renaming done by SafetyProperty
	Kind string

	// Satisfied is true if the property holds on every explored state
	Satisfied bool

	// Message is a human-readable summary
	Message string

	// Witness is a firing sequence from the initial state to the state that
	// decided the property, when there is one
	Witness []string

	// Marking is the deciding marking key, when there is one
	Marking string

	// StatesChecked is the number of states examined
	StatesChecked int
}

// Certificate collects the results of a verification run.
type Certificate struct {
	NetID        string
	Properties   []VerificationResult
	StateCount   int
	EdgeCount    int
	Complete     bool
	DeadlockFree bool
}

// AllSatisfied returns true if every property holds.
func (c *Certificate) AllSatisfied() bool {
	for _, r := range c.Properties {
		if !r.Satisfied {
			return false
		}
	}
	return true
}

// Deadlocks returns the explored states in which no transition is enabled.
func (e *Explorer) Deadlocks(ss *StateSpace) []*State {
	var dead []*State
	for _, s := range ss.States {
		if Dead(e.net, s.Marking) {
			dead = append(dead, s)
		}
	}
	return dead
}

// CheckDeadlockFreedom reports the first dead state in discovery order, with
// a shortest firing sequence reaching it.
func (e *Explorer) CheckDeadlockFreedom(ss *StateSpace) VerificationResult {
	for _, s := range ss.States {
		if !Dead(e.net, s.Marking) {
			continue
		}
		return VerificationResult{
			Property:      "deadlock_freedom",
			Kind:          "deadlock_freedom",
			Satisfied:     false,
			Message:       fmt.Sprintf("deadlock found at state %d: %s", s.ID, s.Marking.Key()),
			Witness:       FindPath(ss, ss.Initial, s.ID),
			Marking:       s.Marking.Key(),
			StatesChecked: len(ss.States),
		}
	}

	return VerificationResult{
		Property:      "deadlock_freedom",
		Kind:          "deadlock_freedom",
		Satisfied:     true,
		Message:       "no deadlocks found in reachable state space",
		StatesChecked: len(ss.States),
	}
}

// CheckReachability reports whether some explored state marks every place
// in placeIDs.
func (e *Explorer) CheckReachability(ss *StateSpace, placeIDs ...string) VerificationResult {
	idx := make([]int, 0, len(placeIDs))
	for _, id := range placeIDs {
		i, ok := e.net.PlaceIndex(id)
		if !ok {
			return VerificationResult{
				Property: "reachability",
				Kind:     "reachability",
				Message:  fmt.Sprintf("unknown place %s", id),
			}
		}
		idx = append(idx, i)
	}

	for _, s := range ss.States {
		if markedAll(s, idx) {
			return VerificationResult{
				Property:      "reachability",
				Kind:          "reachability",
				Satisfied:     true,
				Message:       fmt.Sprintf("target marking reachable at state %d", s.ID),
				Witness:       FindPath(ss, ss.Initial, s.ID),
				Marking:       s.Marking.Key(),
				StatesChecked: len(ss.States),
			}
		}
	}

	return VerificationResult{
		Property:      "reachability",
		Kind:          "reachability",
		Satisfied:     false,
		Message:       "target marking not reachable from initial state",
		StatesChecked: len(ss.States),
	}
}

// CheckMutualExclusion reports whether placeA and placeB are never marked
// together.
func (e *Explorer) CheckMutualExclusion(ss *StateSpace, placeA, placeB string) VerificationResult {
	a, okA := e.net.PlaceIndex(placeA)
	b, okB := e.net.PlaceIndex(placeB)
	if !okA || !okB {
		return VerificationResult{
			Property: "mutual_exclusion",
			Kind:     "mutual_exclusion",
			Message:  fmt.Sprintf("unknown place %s or %s", placeA, placeB),
		}
	}

	for _, s := range ss.States {
		if s.Marking.Has(a) && s.Marking.Has(b) {
			return VerificationResult{
				Property:  "mutual_exclusion",
				Kind:      "mutual_exclusion",
				Satisfied: false,
				Message: fmt.Sprintf("mutual exclusion violated: places %s and %s both have tokens at state %d",
					placeA, placeB, s.ID),
				Witness:       FindPath(ss, ss.Initial, s.ID),
				Marking:       s.Marking.Key(),
				StatesChecked: len(ss.States),
			}
		}
	}

	return VerificationResult{
		Property:      "mutual_exclusion",
		Kind:          "mutual_exclusion",
		Satisfied:     true,
		Message:       fmt.Sprintf("mutual exclusion holds between %s and %s", placeA, placeB),
		StatesChecked: len(ss.States),
	}
}

func markedAll(s *State, idx []int) bool {
	for _, i := range idx {
		if !s.Marking.Has(i) {
			return false
		}
	}
	return true
}

// GenerateCertificate explores the net and checks deadlock freedom.
// A state limit error is returned alongside a certificate over the explored
// portion.
func (e *Explorer) GenerateCertificate() (*Certificate, error) {
	ss, err := e.Explore()
	if ss == nil {
		return nil, err
	}

	deadlock := e.CheckDeadlockFreedom(ss)
	return &Certificate{
		NetID:        e.net.ID,
		Properties:   []VerificationResult{deadlock},
		StateCount:   ss.Len(),
		EdgeCount:    ss.EdgeCount(),
		Complete:     ss.Complete,
		DeadlockFree: deadlock.Satisfied,
	}, err
}
