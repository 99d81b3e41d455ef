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

package symbolic

import (
	"fmt"
	"math/rand"
	"sort"
	"testing"

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

// linearChain: P1(1) → T1 → P2(0).
func linearChain(t *testing.T) *petri.PetriNet {
	return buildNet(t,
		[]placeSpec{{"P1", 1}, {"P2", 0}},
		[]string{"T1"},
		[][2]string{{"P1", "T1"}, {"T1", "P2"}},
	)
}

// selfLoopNet: T1 consumes and reproduces both P1(1) and P2(1).
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

// chain builds P0(1) → T0 → P1 → T1 → ... → Pn.
func chain(t *testing.T, n int) *petri.PetriNet {
	places := []placeSpec{{"P0", 1}}
	var transitions []string
	var arcs [][2]string
	for i := 0; i < n; i++ {
		p := fmt.Sprintf("P%d", i)
		next := fmt.Sprintf("P%d", i+1)
		tr := fmt.Sprintf("T%d", i)
		places = append(places, placeSpec{next, 0})
		transitions = append(transitions, tr)
		arcs = append(arcs, [2]string{p, tr}, [2]string{tr, next})
	}
	return buildNet(t, places, transitions, arcs)
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

func sortedKeys(ms []state.Marking) []string {
	keys := make([]string, len(ms))
	for i, m := range ms {
		keys[i] = m.Key()
	}
	sort.Strings(keys)
	return keys
}
