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

package bdd

import (
	"errors"
	"math/big"
	"testing"
)

func newManager(t *testing.T, varnum int) *Manager {
	t.Helper()
	m, err := New(varnum, WithNodeSize(1000), WithCacheSize(500))
	if err != nil {
		t.Fatalf("New(%d) error: %v", varnum, err)
	}
	return m
}

func mustHandle(t *testing.T, h *Handle, err error) *Handle {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return h
}

func TestNew_InvalidVarnum(t *testing.T) {
	if _, err := New(0); !errors.Is(err, ErrUnavailable) {
		t.Errorf("New(0) error = %v, want ErrUnavailable", err)
	}
}

func TestRetainRelease(t *testing.T) {
	m := newManager(t, 2)

	v, err := m.Var(0)
	h := mustHandle(t, v, err)
	if m.Live() != 1 {
		t.Fatalf("Live() = %d, want 1", m.Live())
	}

	if _, err := m.Retain(h); err != nil {
		t.Fatalf("Retain() error: %v", err)
	}
	if err := m.Release(h); err != nil {
		t.Fatalf("first Release() error: %v", err)
	}
	if m.Live() != 1 {
		t.Errorf("Live() after partial release = %d, want 1", m.Live())
	}
	if err := m.Release(h); err != nil {
		t.Fatalf("second Release() error: %v", err)
	}
	if m.Live() != 0 {
		t.Errorf("Live() = %d, want 0", m.Live())
	}

	if err := m.Release(h); !errors.Is(err, ErrReleased) {
		t.Errorf("double Release() error = %v, want ErrReleased", err)
	}
	if _, err := m.Not(h); !errors.Is(err, ErrReleased) {
		t.Errorf("Not(released) error = %v, want ErrReleased", err)
	}
	if m.Peak() != 1 {
		t.Errorf("Peak() = %d, want 1", m.Peak())
	}
}

func TestForeignHandle(t *testing.T) {
	m1 := newManager(t, 1)
	m2 := newManager(t, 1)

	v, err := m1.Var(0)
	h := mustHandle(t, v, err)
	if _, err := m2.Not(h); !errors.Is(err, ErrForeignHandle) {
		t.Errorf("Not(foreign) error = %v, want ErrForeignHandle", err)
	}
}

func TestVarRange(t *testing.T) {
	m := newManager(t, 2)

	if _, err := m.Var(2); !errors.Is(err, ErrVarRange) {
		t.Errorf("Var(2) error = %v, want ErrVarRange", err)
	}
	if _, err := m.NVar(-1); !errors.Is(err, ErrVarRange) {
		t.Errorf("NVar(-1) error = %v, want ErrVarRange", err)
	}
}

func TestCanonicalEquality(t *testing.T) {
	m := newManager(t, 3)
	s := m.NewScope()
	defer s.Close()

	x := s.Track(m.Var(0))
	y := s.Track(m.Var(1))
	xy := s.Track(m.And(x, y))
	yx := s.Track(m.And(y, x))
	notNot := s.Track(m.Not(s.Track(m.Not(xy))))
	if err := s.Err(); err != nil {
		t.Fatalf("building formulas: %v", err)
	}

	for name, h := range map[string]*Handle{"y∧x": yx, "¬¬(x∧y)": notNot} {
		eq, err := m.Equal(xy, h)
		if err != nil {
			t.Fatalf("Equal() error: %v", err)
		}
		if !eq {
			t.Errorf("x∧y and %s should share a canonical node", name)
		}
	}

	eq, _ := m.Equal(x, y)
	if eq {
		t.Error("x and y should differ")
	}
}

func TestConstantsAndDiff(t *testing.T) {
	m := newManager(t, 2)
	s := m.NewScope()
	defer s.Close()

	x := s.Track(m.Var(0))
	nx := s.Track(m.NVar(0))
	contradiction := s.Track(m.And(x, nx))
	tautology := s.Track(m.Or(x, nx))
	empty := s.Track(m.Diff(x, x))
	if err := s.Err(); err != nil {
		t.Fatalf("building formulas: %v", err)
	}

	if f, _ := m.IsFalse(contradiction); !f {
		t.Error("x ∧ ¬x should be false")
	}
	if f, _ := m.IsTrue(tautology); !f {
		t.Error("x ∨ ¬x should be true")
	}
	if f, _ := m.IsFalse(empty); !f {
		t.Error("x ∧ ¬x via Diff should be false")
	}
}

func TestEquiv(t *testing.T) {
	m := newManager(t, 2)
	s := m.NewScope()
	defer s.Close()

	x := s.Track(m.Var(0))
	y := s.Track(m.Var(1))
	e := s.Track(m.Equiv(x, y))
	if err := s.Err(); err != nil {
		t.Fatalf("building formulas: %v", err)
	}

	n, err := m.SatCount(e, 2)
	if err != nil {
		t.Fatalf("SatCount() error: %v", err)
	}
	if n.Cmp(big.NewInt(2)) != 0 {
		t.Errorf("SatCount(x⇔y) = %s, want 2", n)
	}
}

func TestSatCount_Over(t *testing.T) {
	m := newManager(t, 4)
	s := m.NewScope()
	defer s.Close()

	x := s.Track(m.Var(0))
	if err := s.Err(); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		over int
		want int64
	}{
		{1, 1},
		{2, 2},
		{4, 8},
	}
	for _, tt := range tests {
		n, err := m.SatCount(x, tt.over)
		if err != nil {
			t.Fatalf("SatCount(over=%d) error: %v", tt.over, err)
		}
		if n.Cmp(big.NewInt(tt.want)) != 0 {
			t.Errorf("SatCount(over=%d) = %s, want %d", tt.over, n, tt.want)
		}
	}

	if _, err := m.SatCount(x, 5); !errors.Is(err, ErrVarRange) {
		t.Errorf("SatCount(over=5) error = %v, want ErrVarRange", err)
	}
}

func TestExistAndAndExist(t *testing.T) {
	m := newManager(t, 2)
	s := m.NewScope()
	defer s.Close()

	x := s.Track(m.Var(0))
	y := s.Track(m.Var(1))
	xy := s.Track(m.And(x, y))
	projected := s.Track(m.Exist(xy, []int{0}))
	fused := s.Track(m.AndExist(x, y, []int{0}))
	if err := s.Err(); err != nil {
		t.Fatalf("building formulas: %v", err)
	}

	if eq, _ := m.Equal(projected, y); !eq {
		t.Error("∃x. x∧y should equal y")
	}
	if eq, _ := m.Equal(fused, y); !eq {
		t.Error("AndExist(x, y, {x}) should equal y")
	}
}

func TestNodeCountAndMemory(t *testing.T) {
	m := newManager(t, 2)
	s := m.NewScope()
	defer s.Close()

	tr := s.Track(m.True())
	x := s.Track(m.Var(0))
	if err := s.Err(); err != nil {
		t.Fatal(err)
	}

	nt, err := m.NodeCount(tr)
	if err != nil {
		t.Fatalf("NodeCount(true) error: %v", err)
	}
	nx, err := m.NodeCount(x)
	if err != nil {
		t.Fatalf("NodeCount(x) error: %v", err)
	}
	if nx <= nt {
		t.Errorf("NodeCount(x) = %d, want more than NodeCount(true) = %d", nx, nt)
	}
	if m.MemoryInUse() <= 0 {
		t.Errorf("MemoryInUse() = %d, want positive", m.MemoryInUse())
	}
	if m.Stats() == "" {
		t.Error("Stats() should not be empty")
	}
}

func TestAllSat(t *testing.T) {
	m := newManager(t, 4)
	s := m.NewScope()
	defer s.Close()

	// x0 ∧ ¬x1 over the first 3 variables: x2 is free.
	f := s.Track(m.And(s.Track(m.Var(0)), s.Track(m.NVar(1))))
	if err := s.Err(); err != nil {
		t.Fatal(err)
	}

	seen := make(map[[3]bool]bool)
	err := m.AllSat(f, 3, func(a []bool) error {
		if len(a) != 3 {
			t.Fatalf("assignment length = %d, want 3", len(a))
		}
		seen[[3]bool{a[0], a[1], a[2]}] = true
		return nil
	})
	if err != nil {
		t.Fatalf("AllSat() error: %v", err)
	}

	want := [][3]bool{{true, false, false}, {true, false, true}}
	if len(seen) != len(want) {
		t.Fatalf("AllSat() produced %d assignments, want %d", len(seen), len(want))
	}
	for _, w := range want {
		if !seen[w] {
			t.Errorf("missing assignment %v", w)
		}
	}

	stop := errors.New("stop")
	calls := 0
	err = m.AllSat(f, 3, func([]bool) error {
		calls++
		return stop
	})
	if !errors.Is(err, stop) || calls != 1 {
		t.Errorf("AllSat() did not stop on error: err=%v calls=%d", err, calls)
	}
}

func TestAllSat_StopsOnSingleLiteral(t *testing.T) {
	m := newManager(t, 2)
	v, err := m.Var(0)
	x := mustHandle(t, v, err)

	stop := errors.New("stop")
	calls := 0
	err = m.AllSat(x, 2, func(a []bool) error {
		calls++
		if !a[0] {
			t.Errorf("assignment %v does not satisfy x0", a)
		}
		return stop
	})
	if !errors.Is(err, stop) {
		t.Errorf("AllSat() error = %v, want stop", err)
	}
	if calls != 1 {
		t.Errorf("AllSat() called fn %d times after an error, want 1", calls)
	}
	if err := m.Release(x); err != nil {
		t.Fatalf("Release() error: %v", err)
	}
}
