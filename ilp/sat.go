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

	"github.com/go-air/gini"
	"github.com/go-air/gini/inter"
	"github.com/go-air/gini/z"
)

// ErrNotClausal is returned by SATBackend for a constraint that is not
// equivalent to a single clause.
var ErrNotClausal = errors.New("constraint is not clausal")

// SATBackend solves clausal models with the incremental gini solver. One
// solver instance is kept per model; since constraints are only ever
// appended, a later Solve on the same model adds just the new clauses.
type SATBackend struct {
	g      inter.S
	model  *Model
	added  int
	maxVar int
	unsat  bool
	solves int
}

// NewSATBackend creates a clausal backend.
func NewSATBackend() *SATBackend {
	return &SATBackend{}
}

// Name returns "sat".
func (b *SATBackend) Name() string {
	return BackendSAT
}

// Solves returns the number of completed Solve calls.
func (b *SATBackend) Solves() int {
	return b.solves
}

// Solve decides the model. A constraint that is not clausal yields
// ErrNotClausal.
func (b *SATBackend) Solve(ctx context.Context, m *Model) (Solution, error) {
	if err := ctx.Err(); err != nil {
		return Solution{}, err
	}
	if b.model != m || b.added > len(m.constraints) {
		b.g = gini.New()
		b.model = m
		b.added = 0
		b.maxVar = 0
		b.unsat = false
	}
	b.solves++

	for ; b.added < len(m.constraints); b.added++ {
		c := m.constraints[b.added]
		pc, trivial, infeasible := normalize(c)
		switch {
		case infeasible:
			b.unsat = true
			continue
		case trivial:
			continue
		case !pc.clausal():
			return Solution{}, fmt.Errorf("%w: %s", ErrNotClausal, c)
		}
		for _, l := range pc.lits {
			b.g.Add(z.Dimacs2Lit(l))
			if v := abs(l); v > b.maxVar {
				b.maxVar = v
			}
		}
		b.g.Add(z.LitNull)
	}
	if b.unsat {
		return Solution{Status: Infeasible}, nil
	}

	switch b.g.Solve() {
	case 1:
		out := zeros(m)
		for i := 0; i < len(out.Values) && i < b.maxVar; i++ {
			if b.g.Value(z.Var(i + 1).Pos()) {
				out.Values[i] = 1
			}
		}
		return out, nil
	case -1:
		return Solution{Status: Infeasible}, nil
	}
	return Solution{Status: Unknown}, nil
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
