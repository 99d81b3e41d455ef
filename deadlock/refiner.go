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

// Package deadlock decides whether a dead marking of a 1-safe Petri net is
// reachable.
//
// Candidates come from a 0/1 integer program over the net topology: every
// feasible point disables all transitions. Each candidate is checked
// against the symbolic reachable set. An unreachable candidate is excluded
// with a no-good cut and the program is solved again, until either a
// reachable candidate is found or the program becomes infeasible.
//
//	SEARCH ──feasible──▶ VERIFY ──reachable──▶ ACCEPT
//	   ▲  └─infeasible─▶ INFEASIBLE  │
//	   └──────── REFINE ◀─unreachable─┘
//
// Every refinement removes one point of a finite 0/1 space, so the loop
// stops after at most 2^|places| refinements. Only disproved candidates are
// cut, so a reachable dead marking is never excluded.
package deadlock

import (
	"errors"
	"fmt"

	"github.com/jazzpetri/deadlock/context"
	"github.com/jazzpetri/deadlock/ilp"
	"github.com/jazzpetri/deadlock/state"
)

var (
	// ErrSolverUnknown is returned when the backend gives no answer.
	ErrSolverUnknown = errors.New("integer program solver returned unknown status")

	// ErrBadCandidate is returned when the backend proposes a point that
	// violates the model.
	ErrBadCandidate = errors.New("solver candidate violates the model")

	// ErrTerminated is returned by Step on a refiner in a terminal phase.
	ErrTerminated = errors.New("refiner already terminated")
)

// Phase is a state of the refinement loop.
type Phase int

const (
	// Search solves the integer program.
	Search Phase = iota

	// Verify checks the candidate against the reachable set.
	Verify

	// Accept is terminal: the candidate is a reachable dead marking.
	Accept

	// Refine cuts the spurious candidate off the integer program.
	Refine

	// Infeasible is terminal: no reachable dead marking exists.
	Infeasible
)

// String returns the upper-case phase name.
func (p Phase) String() string {
	switch p {
	case Search:
		return "SEARCH"
	case Verify:
		return "VERIFY"
	case Accept:
		return "ACCEPT"
	case Refine:
		return "REFINE"
	case Infeasible:
		return "INFEASIBLE"
	default:
		return "UNKNOWN"
	}
}

// Terminal reports whether the loop stops in p.
func (p Phase) Terminal() bool {
	return p == Accept || p == Infeasible
}

// Membership answers reachability of a single marking.
type Membership interface {
	Contains(m state.Marking) (bool, error)
}

// Step records one transition of the refiner.
type Step struct {
	From      Phase
	To        Phase
	Candidate state.Marking
	// Cut is set on REFINE steps.
	Cut string
}

func (s Step) String() string {
	out := fmt.Sprintf("%s -> %s", s.From, s.To)
	if s.Candidate != nil {
		out += " " + s.Candidate.Key()
	}
	if s.Cut != "" {
		out += " [" + s.Cut + "]"
	}
	return out
}

// Refiner runs the SEARCH / VERIFY / REFINE loop over a structural model.
// It is single-use and not safe for concurrent use.
type Refiner struct {
	model   *ilp.Model
	backend ilp.Backend
	oracle  Membership
	actx    *context.AnalysisContext

	phase       Phase
	candidate   state.Marking
	candidates  int
	refinements int
	trace       []Step
}

// NewRefiner creates a refiner in the SEARCH phase. A nil actx uses no-op
// observability.
func NewRefiner(actx *context.AnalysisContext, model *ilp.Model, backend ilp.Backend, oracle Membership) *Refiner {
	return &Refiner{
		model:   model,
		backend: backend,
		oracle:  oracle,
		actx:    actx,
		phase:   Search,
	}
}

// Phase returns the current phase.
func (r *Refiner) Phase() Phase {
	return r.phase
}

// Candidate returns the last candidate proposed by the solver. After
// ACCEPT it is the deadlock witness.
func (r *Refiner) Candidate() state.Marking {
	return r.candidate.Clone()
}

// Candidates returns how many candidates the solver proposed.
func (r *Refiner) Candidates() int {
	return r.candidates
}

// Refinements returns how many cuts were added.
func (r *Refiner) Refinements() int {
	return r.refinements
}

// Trace returns the recorded steps.
func (r *Refiner) Trace() []Step {
	return append([]Step(nil), r.trace...)
}

// Step performs the work of the current phase and moves to the next one.
func (r *Refiner) Step() error {
	logger := r.actx.GetLogger()
	from := r.phase
	step := Step{From: from}

	switch from {
	case Search:
		if err := r.actx.Err(); err != nil {
			return err
		}
		sol, err := r.backend.Solve(r.actx.GetContext(), r.model)
		if err != nil {
			return fmt.Errorf("solving structural model: %w", err)
		}
		switch sol.Status {
		case ilp.Infeasible:
			r.phase = Infeasible
		case ilp.Feasible:
			if !r.model.Satisfied(sol.Values) {
				return fmt.Errorf("%w: %v", ErrBadCandidate, sol.Values)
			}
			r.candidate = sol.Values
			r.candidates++
			step.Candidate = sol.Values.Clone()
			r.phase = Verify
			logger.Debug("structural candidate", map[string]interface{}{
				"candidate": sol.Values.Key(),
				"n":         r.candidates,
			})
		default:
			return fmt.Errorf("%w (%s backend)", ErrSolverUnknown, r.backend.Name())
		}

	case Verify:
		step.Candidate = r.candidate.Clone()
		reachable, err := r.oracle.Contains(r.candidate)
		if err != nil {
			return fmt.Errorf("verifying candidate %s: %w", r.candidate.Key(), err)
		}
		if reachable {
			r.phase = Accept
		} else {
			r.phase = Refine
		}

	case Refine:
		step.Candidate = r.candidate.Clone()
		cut, err := r.model.AddCut(r.candidate)
		if err != nil {
			return fmt.Errorf("adding cut: %w", err)
		}
		r.refinements++
		step.Cut = cut.String()
		r.phase = Search
		logger.Debug("spurious candidate excluded", map[string]interface{}{
			"candidate": r.candidate.Key(),
			"cut":       cut.Name,
		})

	default:
		return fmt.Errorf("%w in %s", ErrTerminated, from)
	}

	step.To = r.phase
	r.trace = append(r.trace, step)
	return nil
}

// Run steps until a terminal phase and reports whether a deadlock was
// accepted.
func (r *Refiner) Run() (bool, error) {
	for !r.phase.Terminal() {
		if err := r.Step(); err != nil {
			return false, err
		}
	}
	return r.phase == Accept, nil
}
