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

package ilp

import (
	"context"
	"errors"
	"fmt"

	"github.com/jazzpetri/deadlock/state"
)

// ErrUnavailable is returned when no backend can be created for a name.
var ErrUnavailable = errors.New("solver backend unavailable")

// Backend names accepted by NewBackend.
const (
	BackendAuto = "auto"
	BackendPB   = "pb"
	BackendSAT  = "sat"
)

// Status is the outcome of a solve.
type Status int

const (
	// Unknown means the backend gave no answer.
	Unknown Status = iota
	// Feasible means Solution.Values satisfies every constraint.
	Feasible
	// Infeasible means no 0/1 point satisfies the model.
	Infeasible
)

func (s Status) String() string {
	switch s {
	case Feasible:
		return "feasible"
	case Infeasible:
		return "infeasible"
	default:
		return "unknown"
	}
}

// Solution is the result of Backend.Solve. Values is set only when Status
// is Feasible and has one entry per model variable.
type Solution struct {
	Status Status
	Values state.Marking
}

// Backend solves a Model. Infeasibility is reported through Status, never
// as an error. Implementations check ctx only before they start solving.
type Backend interface {
	Name() string
	Solve(ctx context.Context, m *Model) (Solution, error)
}

// NewBackend returns the backend registered under name. "auto" picks the
// pseudo-boolean backend and falls back to the clausal one when it cannot
// be created.
func NewBackend(name string) (Backend, error) {
	switch name {
	case BackendPB:
		return NewPBBackend(), nil
	case BackendSAT:
		return NewSATBackend(), nil
	case BackendAuto, "":
		if b, err := NewBackend(BackendPB); err == nil {
			return b, nil
		}
		return NewBackend(BackendSAT)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnavailable, name)
}

// zeros returns the all-zero assignment, which satisfies a model without
// non-trivial constraints.
func zeros(m *Model) Solution {
	return Solution{Status: Feasible, Values: state.NewMarking(m.Vars())}
}
