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
	"testing"

	"github.com/jazzpetri/deadlock/state"
)

func backends() []Backend {
	return []Backend{NewPBBackend(), NewSATBackend()}
}

func TestNewBackend(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"pb", BackendPB},
		{"sat", BackendSAT},
		{"auto", BackendPB},
		{"", BackendPB},
	}
	for _, tt := range tests {
		b, err := NewBackend(tt.name)
		if err != nil {
			t.Fatalf("NewBackend(%q) error: %v", tt.name, err)
		}
		if b.Name() != tt.want {
			t.Errorf("NewBackend(%q).Name() = %q, want %q", tt.name, b.Name(), tt.want)
		}
	}
	if _, err := NewBackend("scip"); !errors.Is(err, ErrUnavailable) {
		t.Errorf("NewBackend(scip) error = %v, want ErrUnavailable", err)
	}
}

func TestStatusString(t *testing.T) {
	for s, want := range map[Status]string{Feasible: "feasible", Infeasible: "infeasible", Unknown: "unknown"} {
		if got := s.String(); got != want {
			t.Errorf("Status(%d).String() = %q, want %q", s, got, want)
		}
	}
}

func TestSolveEmptyModel(t *testing.T) {
	for _, b := range backends() {
		t.Run(b.Name(), func(t *testing.T) {
			sol, err := b.Solve(context.Background(), NewModel([]string{"a", "b"}))
			if err != nil {
				t.Fatalf("Solve() error: %v", err)
			}
			if sol.Status != Feasible || !sol.Values.Equal(state.Marking{0, 0}) {
				t.Errorf("Solve() = %v %v, want feasible [0 0]", sol.Status, sol.Values)
			}
		})
	}
}

func TestSolveInfeasibleConstant(t *testing.T) {
	for _, b := range backends() {
		t.Run(b.Name(), func(t *testing.T) {
			m := NewModel([]string{"a"})
			if err := m.Add(Constraint{Name: "never", Bound: -1}); err != nil {
				t.Fatal(err)
			}
			sol, err := b.Solve(context.Background(), m)
			if err != nil {
				t.Fatalf("Solve() error: %v", err)
			}
			if sol.Status != Infeasible {
				t.Errorf("Status = %v, want infeasible", sol.Status)
			}
		})
	}
}

func TestSolveCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	for _, b := range backends() {
		if _, err := b.Solve(ctx, NewModel(nil)); !errors.Is(err, context.Canceled) {
			t.Errorf("%s: Solve() error = %v, want context.Canceled", b.Name(), err)
		}
	}
}

func TestSolveStructural(t *testing.T) {
	// T1 needs P1 and P2, T2 needs P3 with weight 2.
	net := buildNet(t,
		[]string{"P1", "P2", "P3"},
		[]string{"T1", "T2"},
		[]arcSpec{{"P1", "T1", 1}, {"P2", "T1", 1}, {"T1", "P3", 1}, {"P3", "T2", 2}},
	)
	for _, b := range backends() {
		t.Run(b.Name(), func(t *testing.T) {
			m, err := NewStructuralModel(net)
			if err != nil {
				t.Fatal(err)
			}
			sol, err := b.Solve(context.Background(), m)
			if err != nil {
				t.Fatalf("Solve() error: %v", err)
			}
			if sol.Status != Feasible {
				t.Fatalf("Status = %v, want feasible", sol.Status)
			}
			if sol.Values.Len() != 3 {
				t.Fatalf("len(Values) = %d, want 3", sol.Values.Len())
			}
			if !m.Satisfied(sol.Values) {
				t.Errorf("solution %v violates the model", sol.Values)
			}
		})
	}
}

// Adding one cut per solution must enumerate exactly the points that
// satisfy the structural constraints, then become infeasible.
func TestSolveEnumeratesWithCuts(t *testing.T) {
	net := buildNet(t,
		[]string{"P1", "P2", "P3", "P4"},
		[]string{"T1", "T2", "T3"},
		[]arcSpec{
			{"P1", "T1", 1}, {"P2", "T1", 1}, {"T1", "P3", 1},
			{"P3", "T2", 1}, {"T2", "P4", 1},
			{"P4", "T3", 1}, {"P1", "T3", 1}, {"T3", "P2", 1},
		},
	)
	base, err := NewStructuralModel(net)
	if err != nil {
		t.Fatal(err)
	}
	want := 0
	for _, p := range allPoints(4) {
		if base.Satisfied(p) {
			want++
		}
	}

	for _, b := range backends() {
		t.Run(b.Name(), func(t *testing.T) {
			m, _ := NewStructuralModel(net)
			seen := make(map[string]bool)
			for i := 0; i <= 1<<4; i++ {
				sol, err := b.Solve(context.Background(), m)
				if err != nil {
					t.Fatalf("Solve() error: %v", err)
				}
				if sol.Status == Infeasible {
					break
				}
				if !m.Satisfied(sol.Values) {
					t.Fatalf("solution %v violates the model", sol.Values)
				}
				if seen[sol.Values.Key()] {
					t.Fatalf("solution %v returned twice", sol.Values)
				}
				seen[sol.Values.Key()] = true
				if _, err := m.AddCut(sol.Values); err != nil {
					t.Fatal(err)
				}
			}
			if len(seen) != want {
				t.Errorf("enumerated %d solutions, want %d", len(seen), want)
			}
		})
	}
}

func TestSATBackendIncremental(t *testing.T) {
	b := NewSATBackend()
	m := NewModel([]string{"a", "b"})
	ctx := context.Background()

	for i := 0; i < 4; i++ {
		sol, err := b.Solve(ctx, m)
		if err != nil {
			t.Fatalf("Solve() #%d error: %v", i, err)
		}
		if sol.Status != Feasible {
			t.Fatalf("Solve() #%d status = %v, want feasible", i, sol.Status)
		}
		if _, err := m.AddCut(sol.Values); err != nil {
			t.Fatal(err)
		}
	}
	sol, err := b.Solve(ctx, m)
	if err != nil {
		t.Fatal(err)
	}
	if sol.Status != Infeasible {
		t.Errorf("after four cuts status = %v, want infeasible", sol.Status)
	}
	if b.Solves() != 5 {
		t.Errorf("Solves() = %d, want 5", b.Solves())
	}
}

func TestSATBackendRejectsNonClausal(t *testing.T) {
	m := NewModel([]string{"a", "b"})
	if err := m.Add(Constraint{Name: "none", Terms: []Term{{0, 1}, {1, 1}}, Bound: 0}); err != nil {
		t.Fatal(err)
	}
	if _, err := NewSATBackend().Solve(context.Background(), m); !errors.Is(err, ErrNotClausal) {
		t.Errorf("SATBackend.Solve() error = %v, want ErrNotClausal", err)
	}

	sol, err := NewPBBackend().Solve(context.Background(), m)
	if err != nil {
		t.Fatalf("PBBackend.Solve() error: %v", err)
	}
	if sol.Status != Feasible || !sol.Values.Equal(state.Marking{0, 0}) {
		t.Errorf("PBBackend.Solve() = %v %v, want feasible [0 0]", sol.Status, sol.Values)
	}
}
