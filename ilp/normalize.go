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

import "sort"

// pbConstr is Σ weights[i]·lits[i] ≥ atLeast with positive weights.
// Literals are 1-based DIMACS style: v+1 for x_v, -(v+1) for ¬x_v.
type pbConstr struct {
	lits    []int
	weights []int
	atLeast int
}

// normalize rewrites Σ a·x ≤ b over 0/1 variables as a ≥-constraint with
// positive weights. Terms on the same variable are merged first. For a > 0,
// a·x = a − a·¬x, so
//
//	Σ_{a>0} a·¬x + Σ_{a<0} |a|·x ≥ Σ_{a>0} a − b
//
// trivial is true when every assignment satisfies the constraint and
// infeasible when none does.
func normalize(c Constraint) (pc pbConstr, trivial, infeasible bool) {
	merged := make(map[int]int, len(c.Terms))
	for _, t := range c.Terms {
		merged[t.Var] += t.Coeff
	}
	vars := make([]int, 0, len(merged))
	for v, a := range merged {
		if a != 0 {
			vars = append(vars, v)
		}
	}
	sort.Ints(vars)

	pc.atLeast = -c.Bound
	total := 0
	for _, v := range vars {
		a := merged[v]
		if a > 0 {
			pc.lits = append(pc.lits, -(v + 1))
			pc.weights = append(pc.weights, a)
			pc.atLeast += a
			total += a
		} else {
			pc.lits = append(pc.lits, v+1)
			pc.weights = append(pc.weights, -a)
			total += -a
		}
	}

	switch {
	case pc.atLeast <= 0:
		return pc, true, false
	case total < pc.atLeast:
		return pc, false, true
	}
	return pc, false, false
}

// clausal reports whether the constraint is equivalent to the disjunction
// of its literals, i.e. any single true literal satisfies it.
func (pc pbConstr) clausal() bool {
	for _, w := range pc.weights {
		if w < pc.atLeast {
			return false
		}
	}
	return true
}
