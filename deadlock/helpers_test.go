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

package deadlock

import (
	"context"
	"fmt"
	"math/rand"
	"testing"

	"github.com/jazzpetri/deadlock/ilp"
	"github.com/jazzpetri/deadlock/petri"
	"github.com/jazzpetri/deadlock/state"
)

type placeSpec struct {
	id     string
	tokens int
}

// buildNet creates a resolved net. Arcs are given as source/target ID pairs.
func buildNet(t *testing.T, places []placeSpec, transitions []string, arcs [][2]string) *petri.PetriNet {
	t.Helper()
	net := petri.NewPetriNet("test", "test")
	for _, p := range places {
		if err := net.AddPlace(petri.NewPlace(p.id, p.id, p.tokens)); err != nil {
			t.Fatalf("AddPlace(%s): %v", p.id, err)
		}
	}
	for _, id := range transitions {
		if err := net.AddTransition(petri.NewTransition(id, id)); err != nil {
			t.Fatalf("AddTransition(%s): %v", id, err)
		}
	}
	for _, a := range arcs {
		if err := net.AddArc(petri.NewArc("", a[0], a[1], 1)); err != nil {
			t.Fatalf("AddArc(%s→%s): %v", a[0], a[1], err)
		}
	}
	if err := net.Resolve(); err != nil {
		t.Fatalf("Resolve(): %v", err)
	}
	return net
}

// linearChain: P1(1) → T1 → P2(0). Deadlock at [0 1].
func linearChain(t *testing.T) *petri.PetriNet {
	return buildNet(t,
		[]placeSpec{{"P1", 1}, {"P2", 0}},
		[]string{"T1"},
		[][2]string{{"P1", "T1"}, {"T1", "P2"}},
	)
}

// selfLoopNet: T1 consumes and reproduces both P1(1) and P2(1). No deadlock.
func selfLoopNet(t *testing.T) *petri.PetriNet {
	return buildNet(t,
		[]placeSpec{{"P1", 1}, {"P2", 1}},
		[]string{"T1"},
		[][2]string{{"P1", "T1"}, {"P2", "T1"}, {"T1", "P1"}, {"T1", "P2"}},
	)
}

// sourceTransitionNet: T0 has no input place.
func sourceTransitionNet(t *testing.T) *petri.PetriNet {
	return buildNet(t,
		[]placeSpec{{"P1", 0}, {"P2", 1}},
		[]string{"T0", "T1"},
		[][2]string{{"T0", "P1"}, {"P2", "T1"}, {"T1", "P1"}},
	)
}

// cycle: a token moves P1 ⇄ P2. The only structurally dead marking, [0 0],
// is unreachable.
func cycle(t *testing.T) *petri.PetriNet {
	return buildNet(t,
		[]placeSpec{{"P1", 1}, {"P2", 0}},
		[]string{"T1", "T2"},
		[][2]string{{"P1", "T1"}, {"T1", "P2"}, {"P2", "T2"}, {"T2", "P1"}},
	)
}

// cycleWithExit extends cycle with T3: P1 → P3. Structurally dead markings
// are [0 0 0] (unreachable) and [0 0 1] (reachable).
func cycleWithExit(t *testing.T) *petri.PetriNet {
	return buildNet(t,
		[]placeSpec{{"P1", 1}, {"P2", 0}, {"P3", 0}},
		[]string{"T1", "T2", "T3"},
		[][2]string{
			{"P1", "T1"}, {"T1", "P2"}, {"P2", "T2"}, {"T2", "P1"},
			{"P1", "T3"}, {"T3", "P3"},
		},
	)
}

// randomNet builds a small net where every transition has at least one input
// place. The same seed always yields the same net.
func randomNet(t *testing.T, seed int64, nPlaces, nTrans int) *petri.PetriNet {
	r := rand.New(rand.NewSource(seed))
	places := make([]placeSpec, nPlaces)
	for i := range places {
		places[i] = placeSpec{fmt.Sprintf("p%d", i), r.Intn(2)}
	}
	transitions := make([]string, nTrans)
	var arcs [][2]string
	for i := range transitions {
		tr := fmt.Sprintf("t%d", i)
		transitions[i] = tr
		arcs = append(arcs, [2]string{places[r.Intn(nPlaces)].id, tr})
		for _, p := range places {
			switch r.Intn(5) {
			case 0:
				arcs = append(arcs, [2]string{p.id, tr})
			case 1:
				arcs = append(arcs, [2]string{tr, p.id})
			}
		}
	}
	return buildNet(t, places, transitions, arcs)
}

// setOracle is a Membership over an explicit set of marking keys.
type setOracle struct {
	reachable map[string]bool
	converged bool
	queries   []string
}

func newSetOracle(keys ...string) *setOracle {
	o := &setOracle{reachable: make(map[string]bool), converged: true}
	for _, k := range keys {
		o.reachable[k] = true
	}
	return o
}

func (o *setOracle) Contains(m state.Marking) (bool, error) {
	o.queries = append(o.queries, m.Key())
	return o.reachable[m.Key()], nil
}

func (o *setOracle) Converged() bool {
	return o.converged
}

// countingBackend wraps a backend and counts Solve calls.
type countingBackend struct {
	ilp.Backend
	calls int
}

func (b *countingBackend) Solve(ctx context.Context, m *ilp.Model) (ilp.Solution, error) {
	b.calls++
	return b.Backend.Solve(ctx, m)
}

// stubBackend always returns the same solution.
type stubBackend struct {
	sol ilp.Solution
}

func (stubBackend) Name() string { return "stub" }

func (b stubBackend) Solve(context.Context, *ilp.Model) (ilp.Solution, error) {
	return b.sol, nil
}
