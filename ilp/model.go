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

// Package ilp models structural deadlocks of a 1-safe Petri net as a 0/1
// integer program and solves it with pluggable backends.
//
// The model has one binary variable per place (1 = the place holds a
// token). Every constraint has the form Σ coeff·x ≤ bound. Constraints are
// only ever added, never retracted, so a backend may keep state between
// solves of the same model.
package ilp

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jazzpetri/deadlock/petri"
	"github.com/jazzpetri/deadlock/state"
)

var (
	// ErrSourceTransition is returned by NewStructuralModel for a net with a
	// transition without input place. No solver is needed: such a net can
	// never deadlock.
	ErrSourceTransition = errors.New("transition has no input place")

	// ErrVarRange is returned when a constraint names a variable outside the model.
	ErrVarRange = errors.New("variable out of range")
)

// Term is coeff·x_var.
type Term struct {
	Var   int
	Coeff int
}

// Constraint is Σ Terms ≤ Bound.
type Constraint struct {
	// Name identifies the constraint in logs, e.g. "disable:t1" or "cut:3".
	Name  string
	Terms []Term
	Bound int
}

// Eval returns Σ coeff·values[var].
func (c Constraint) Eval(values state.Marking) int {
	sum := 0
	for _, t := range c.Terms {
		sum += t.Coeff * int(values[t.Var])
	}
	return sum
}

// Satisfied reports whether values meets the constraint.
func (c Constraint) Satisfied(values state.Marking) bool {
	return c.Eval(values) <= c.Bound
}

// String renders the constraint as a linear inequality.
func (c Constraint) String() string {
	var sb strings.Builder
	for i, t := range c.Terms {
		switch {
		case i == 0 && t.Coeff < 0:
			sb.WriteString("-")
		case i > 0 && t.Coeff < 0:
			sb.WriteString(" - ")
		case i > 0:
			sb.WriteString(" + ")
		}
		coeff := t.Coeff
		if coeff < 0 {
			coeff = -coeff
		}
		if coeff != 1 {
			fmt.Fprintf(&sb, "%d·", coeff)
		}
		fmt.Fprintf(&sb, "x%d", t.Var)
	}
	if len(c.Terms) == 0 {
		sb.WriteString("0")
	}
	fmt.Fprintf(&sb, " <= %d", c.Bound)
	return sb.String()
}

// Model is a 0/1 integer program over place variables.
type Model struct {
	names       []string
	constraints []Constraint
	cuts        int
}

// NewModel creates an empty model with one variable per name.
func NewModel(names []string) *Model {
	return &Model{names: append([]string(nil), names...)}
}

// NewStructuralModel builds, for every transition, the constraint
// Σ weight(p,t)·x_p ≤ Σ weight(p,t) − 1 over its input places. A solution
// of the model disables every transition. The net must be resolved.
//
// A transition without input place yields ErrSourceTransition.
func NewStructuralModel(net *petri.PetriNet) (*Model, error) {
	if !net.Resolved() {
		return nil, petri.ErrNotResolved
	}
	m := NewModel(net.PlaceIDs())
	for _, t := range net.Transitions {
		inputs := t.Inputs()
		if len(inputs) == 0 {
			return nil, fmt.Errorf("%w: %s", ErrSourceTransition, t.ID)
		}
		c := Constraint{Name: "disable:" + t.ID, Bound: t.InputWeight() - 1}
		for _, in := range inputs {
			c.Terms = append(c.Terms, Term{Var: in.Place, Coeff: in.Weight})
		}
		if err := m.Add(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// CutFor returns the constraint excluding exactly the 0/1 point m:
//
//	Σ_{p∈S1} x_p − Σ_{p∈S0} x_p ≤ |S1| − 1
//
// where S1 are the places marked in m and S0 the others.
func CutFor(m state.Marking) Constraint {
	c := Constraint{Bound: m.Ones() - 1}
	for i, v := range m {
		coeff := -1
		if v == 1 {
			coeff = 1
		}
		c.Terms = append(c.Terms, Term{Var: i, Coeff: coeff})
	}
	return c
}

// Add appends c. Every term must name a model variable.
func (m *Model) Add(c Constraint) error {
	for _, t := range c.Terms {
		if t.Var < 0 || t.Var >= len(m.names) {
			return fmt.Errorf("%w: x%d in %q", ErrVarRange, t.Var, c.Name)
		}
	}
	m.constraints = append(m.constraints, c)
	return nil
}

// AddCut appends the no-good cut for candidate and names it.
func (m *Model) AddCut(candidate state.Marking) (Constraint, error) {
	if err := candidate.Validate(len(m.names)); err != nil {
		return Constraint{}, err
	}
	c := CutFor(candidate)
	c.Name = fmt.Sprintf("cut:%d", m.cuts+1)
	if err := m.Add(c); err != nil {
		return Constraint{}, err
	}
	m.cuts++
	return c, nil
}

// Vars returns the number of variables.
func (m *Model) Vars() int {
	return len(m.names)
}

// Names returns the variable names in variable order.
func (m *Model) Names() []string {
	return append([]string(nil), m.names...)
}

// Len returns the number of constraints.
func (m *Model) Len() int {
	return len(m.constraints)
}

// Cuts returns the number of cuts added with AddCut.
func (m *Model) Cuts() int {
	return m.cuts
}

// Constraints returns the constraints in insertion order.
func (m *Model) Constraints() []Constraint {
	return append([]Constraint(nil), m.constraints...)
}

// Satisfied reports whether values meets every constraint.
func (m *Model) Satisfied(values state.Marking) bool {
	for _, c := range m.constraints {
		if !c.Satisfied(values) {
			return false
		}
	}
	return true
}
