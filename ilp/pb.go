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

	"github.com/crillab/gophersat/solver"

	"github.com/jazzpetri/deadlock/state"
)

// PBBackend solves models as pseudo-boolean problems with gophersat. The
// problem is rebuilt on every call; gophersat has no incremental PB API.
type PBBackend struct {
	solves int
}

// NewPBBackend creates a pseudo-boolean backend.
func NewPBBackend() *PBBackend {
	return &PBBackend{}
}

// Name returns "pb".
func (b *PBBackend) Name() string {
	return BackendPB
}

// Solves returns the number of completed Solve calls.
func (b *PBBackend) Solves() int {
	return b.solves
}

// Solve decides the model.
func (b *PBBackend) Solve(ctx context.Context, m *Model) (Solution, error) {
	if err := ctx.Err(); err != nil {
		return Solution{}, err
	}
	b.solves++

	var constrs []solver.PBConstr
	for _, c := range m.constraints {
		pc, trivial, infeasible := normalize(c)
		if infeasible {
			return Solution{Status: Infeasible}, nil
		}
		if trivial {
			continue
		}
		constrs = append(constrs, solver.GtEq(pc.lits, pc.weights, pc.atLeast))
	}
	if len(constrs) == 0 {
		return zeros(m), nil
	}

	s := solver.New(solver.ParsePBConstrs(constrs))
	switch s.Solve() {
	case solver.Sat:
		return Solution{Status: Feasible, Values: values(m.Vars(), s.Model())}, nil
	case solver.Unsat:
		return Solution{Status: Infeasible}, nil
	}
	return Solution{Status: Unknown}, nil
}

// values maps a solver model onto the model variables. Variables that occur
// in no constraint are absent from the solver model and stay 0.
func values(n int, model []bool) state.Marking {
	out := state.NewMarking(n)
	for i := 0; i < n && i < len(model); i++ {
		if model[i] {
			out[i] = 1
		}
	}
	return out
}
