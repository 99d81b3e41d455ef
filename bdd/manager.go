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

// Package bdd provides a boolean-formula manager over reduced ordered
// binary decision diagrams.
//
// Formulas are exposed as opaque Handles. Every operation returns a fresh
// Handle holding one reference; callers release it with Release (or collect
// it in a Scope) once they are done. Releasing a handle twice is reported
// as ErrReleased instead of being silently ignored.
//
// Structurally identical formulas share one canonical node, so equality of
// two handles is a constant-time comparison.
//
// A Manager is a single shared arena and is not safe for concurrent use.
package bdd

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/dalzilio/rudd"
)

var (
	// ErrUnavailable is returned when the diagram manager cannot be created.
	ErrUnavailable = errors.New("bdd manager unavailable")

	// ErrReleased is returned when a handle is used or released after its
	// last reference was dropped.
	ErrReleased = errors.New("bdd handle already released")

	// ErrVarRange is returned for a variable index outside [0, varnum).
	ErrVarRange = errors.New("bdd variable out of range")

	// ErrForeignHandle is returned when a handle from another manager is used.
	ErrForeignHandle = errors.New("bdd handle belongs to another manager")

	// ErrOperation is returned when the underlying diagram operation fails,
	// typically because the node table is exhausted.
	ErrOperation = errors.New("bdd operation failed")

	// ErrPermutation is returned when a permutation is not a bijection.
	ErrPermutation = errors.New("invalid variable permutation")
)

const (
	// DefaultNodeSize is the initial node table size.
	DefaultNodeSize = 10000

	// DefaultCacheSize is the operation cache size.
	DefaultCacheSize = 5000

	// bytesPerNode approximates the storage of one canonical node.
	bytesPerNode = 20
)

// Option configures a Manager.
type Option func(*options)

type options struct {
	nodeSize  int
	cacheSize int
}

// WithNodeSize sets the initial node table size.
func WithNodeSize(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.nodeSize = n
		}
	}
}

// WithCacheSize sets the operation cache size.
func WithCacheSize(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.cacheSize = n
		}
	}
}

// Manager owns the diagram arena and tracks live handles.
type Manager struct {
	b      *rudd.BDD
	varnum int
	live   int
	peak   int
}

// Handle is an opaque reference to a canonical formula node.
// A handle is valid while its reference count is positive.
type Handle struct {
	m    *Manager
	node rudd.Node
	refs int
}

// New creates a manager over varnum boolean variables.
func New(varnum int, opts ...Option) (*Manager, error) {
	if varnum <= 0 {
		return nil, fmt.Errorf("%w: variable count must be positive, got %d", ErrUnavailable, varnum)
	}
	o := options{nodeSize: DefaultNodeSize, cacheSize: DefaultCacheSize}
	for _, opt := range opts {
		opt(&o)
	}

	b, err := rudd.New(varnum, rudd.Nodesize(o.nodeSize), rudd.Cachesize(o.cacheSize))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return &Manager{b: b, varnum: varnum}, nil
}

// Varnum returns the number of variables of the manager.
func (m *Manager) Varnum() int {
	return m.varnum
}

// Live returns the number of handles whose reference count is positive.
func (m *Manager) Live() int {
	return m.live
}

// Peak returns the highest number of simultaneously live handles.
func (m *Manager) Peak() int {
	return m.peak
}

// Stats returns the statistics string of the underlying diagram library.
func (m *Manager) Stats() string {
	return m.b.Stats()
}

// MemoryInUse estimates the bytes held by the canonical node table.
func (m *Manager) MemoryInUse() int64 {
	count := 0
	_ = m.b.Allnodes(func(id, level, low, high int) error {
		count++
		return nil
	})
	return int64(count) * bytesPerNode
}

func (m *Manager) wrap(n rudd.Node, op string) (*Handle, error) {
	if n == nil {
		return nil, fmt.Errorf("%w: %s: %s", ErrOperation, op, m.b.Error())
	}
	m.live++
	if m.live > m.peak {
		m.peak = m.live
	}
	return &Handle{m: m, node: n, refs: 1}, nil
}

func (m *Manager) check(hs ...*Handle) error {
	for _, h := range hs {
		if h == nil || h.refs <= 0 {
			return ErrReleased
		}
		if h.m != m {
			return ErrForeignHandle
		}
	}
	return nil
}

func (m *Manager) checkVar(i int) error {
	if i < 0 || i >= m.varnum {
		return fmt.Errorf("%w: %d not in [0, %d)", ErrVarRange, i, m.varnum)
	}
	return nil
}

// Retain adds a reference to h.
func (m *Manager) Retain(h *Handle) (*Handle, error) {
	if err := m.check(h); err != nil {
		return nil, err
	}
	h.refs++
	return h, nil
}

// Release drops one reference to h. Dropping the last reference makes the
// handle invalid. Releasing an invalid handle returns ErrReleased.
func (m *Manager) Release(h *Handle) error {
	if err := m.check(h); err != nil {
		return err
	}
	h.refs--
	if h.refs == 0 {
		h.node = nil
		m.live--
	}
	return nil
}

// True returns the constant true formula.
func (m *Manager) True() (*Handle, error) {
	return m.wrap(m.b.True(), "true")
}

// False returns the constant false formula.
func (m *Manager) False() (*Handle, error) {
	return m.wrap(m.b.False(), "false")
}

// Var returns the positive literal of variable i.
func (m *Manager) Var(i int) (*Handle, error) {
	if err := m.checkVar(i); err != nil {
		return nil, err
	}
	return m.wrap(m.b.Ithvar(i), "ithvar")
}

// NVar returns the negative literal of variable i.
func (m *Manager) NVar(i int) (*Handle, error) {
	if err := m.checkVar(i); err != nil {
		return nil, err
	}
	return m.wrap(m.b.NIthvar(i), "nithvar")
}

// Literal returns Var(i) when positive is true and NVar(i) otherwise.
func (m *Manager) Literal(i int, positive bool) (*Handle, error) {
	if positive {
		return m.Var(i)
	}
	return m.NVar(i)
}

// Not returns the negation of h.
func (m *Manager) Not(h *Handle) (*Handle, error) {
	if err := m.check(h); err != nil {
		return nil, err
	}
	return m.wrap(m.b.Not(h.node), "not")
}

// And returns the conjunction of hs. The empty conjunction is true.
func (m *Manager) And(hs ...*Handle) (*Handle, error) {
	if err := m.check(hs...); err != nil {
		return nil, err
	}
	return m.wrap(m.b.And(nodes(hs)...), "and")
}

// Or returns the disjunction of hs. The empty disjunction is false.
func (m *Manager) Or(hs ...*Handle) (*Handle, error) {
	if err := m.check(hs...); err != nil {
		return nil, err
	}
	return m.wrap(m.b.Or(nodes(hs)...), "or")
}

// Diff returns a ∧ ¬b.
func (m *Manager) Diff(a, b *Handle) (*Handle, error) {
	if err := m.check(a, b); err != nil {
		return nil, err
	}
	nb := m.b.Not(b.node)
	if nb == nil {
		return nil, fmt.Errorf("%w: diff: %s", ErrOperation, m.b.Error())
	}
	return m.wrap(m.b.And(a.node, nb), "diff")
}

// Equiv returns the bi-implication a ⇔ b.
func (m *Manager) Equiv(a, b *Handle) (*Handle, error) {
	if err := m.check(a, b); err != nil {
		return nil, err
	}
	na, nb := m.b.Not(a.node), m.b.Not(b.node)
	if na == nil || nb == nil {
		return nil, fmt.Errorf("%w: equiv: %s", ErrOperation, m.b.Error())
	}
	both := m.b.And(a.node, b.node)
	neither := m.b.And(na, nb)
	if both == nil || neither == nil {
		return nil, fmt.Errorf("%w: equiv: %s", ErrOperation, m.b.Error())
	}
	return m.wrap(m.b.Or(both, neither), "equiv")
}

// Exist existentially quantifies the variables vars out of h.
func (m *Manager) Exist(h *Handle, vars []int) (*Handle, error) {
	if err := m.check(h); err != nil {
		return nil, err
	}
	set, err := m.varset(vars)
	if err != nil {
		return nil, err
	}
	return m.wrap(m.b.Exist(h.node, set), "exist")
}

// AndExist computes ∃vars. a ∧ b without building the conjunction first.
func (m *Manager) AndExist(a, b *Handle, vars []int) (*Handle, error) {
	if err := m.check(a, b); err != nil {
		return nil, err
	}
	set, err := m.varset(vars)
	if err != nil {
		return nil, err
	}
	return m.wrap(m.b.AndExist(set, a.node, b.node), "andexist")
}

func (m *Manager) varset(vars []int) (rudd.Node, error) {
	for _, v := range vars {
		if err := m.checkVar(v); err != nil {
			return nil, err
		}
	}
	set := m.b.Makeset(vars)
	if set == nil {
		return nil, fmt.Errorf("%w: makeset: %s", ErrOperation, m.b.Error())
	}
	return set, nil
}

// Replace renames the variables of h according to p.
func (m *Manager) Replace(h *Handle, p *Permutation) (*Handle, error) {
	if err := m.check(h); err != nil {
		return nil, err
	}
	if p == nil || p.m != m {
		return nil, fmt.Errorf("%w: permutation not built by this manager", ErrPermutation)
	}
	return m.wrap(m.b.Replace(h.node, p.r), "replace")
}

// Equal reports whether a and b denote the same formula.
func (m *Manager) Equal(a, b *Handle) (bool, error) {
	if err := m.check(a, b); err != nil {
		return false, err
	}
	return sameNode(a.node, b.node), nil
}

// IsFalse reports whether h is identically false.
func (m *Manager) IsFalse(h *Handle) (bool, error) {
	if err := m.check(h); err != nil {
		return false, err
	}
	return sameNode(h.node, m.b.False()), nil
}

// IsTrue reports whether h is identically true.
func (m *Manager) IsTrue(h *Handle) (bool, error) {
	if err := m.check(h); err != nil {
		return false, err
	}
	return sameNode(h.node, m.b.True()), nil
}

// SatCount returns the number of satisfying assignments of h over the first
// over variables. h must not depend on variables at or beyond over.
func (m *Manager) SatCount(h *Handle, over int) (*big.Int, error) {
	if err := m.check(h); err != nil {
		return nil, err
	}
	if over < 0 || over > m.varnum {
		return nil, fmt.Errorf("%w: count over %d variables", ErrVarRange, over)
	}
	total := m.b.Satcount(h.node)
	if total == nil {
		return nil, fmt.Errorf("%w: satcount: %s", ErrOperation, m.b.Error())
	}
	free := new(big.Int).Lsh(big.NewInt(1), uint(m.varnum-over))
	return new(big.Int).Quo(total, free), nil
}

// NodeCount returns the number of nodes reachable from h, constants included.
func (m *Manager) NodeCount(h *Handle) (int, error) {
	if err := m.check(h); err != nil {
		return 0, err
	}
	count := 0
	err := m.b.Allnodes(func(id, level, low, high int) error {
		count++
		return nil
	}, h.node)
	if err != nil {
		return 0, fmt.Errorf("%w: allnodes: %v", ErrOperation, err)
	}
	return count, nil
}

// AllSat calls fn once for every satisfying assignment of h over the first
// over variables, in no particular order. Variables the formula does not
// constrain are expanded to both values. h must not depend on variables at
// or beyond over. Iteration stops at the first error returned by fn.
func (m *Manager) AllSat(h *Handle, over int, fn func([]bool) error) error {
	if err := m.check(h); err != nil {
		return err
	}
	if over < 0 || over > m.varnum {
		return fmt.Errorf("%w: enumerate over %d variables", ErrVarRange, over)
	}
	// rudd drops callback errors on inner nodes, keep the first one here.
	var stop error
	err := m.b.Allsat(func(cube []int) error {
		if stop != nil {
			return stop
		}
		stop = expand(cube[:over], make([]bool, over), 0, fn)
		return stop
	}, h.node)
	if stop != nil {
		return stop
	}
	if err != nil {
		return fmt.Errorf("%w: allsat: %v", ErrOperation, err)
	}
	return nil
}

func expand(cube []int, buf []bool, i int, fn func([]bool) error) error {
	if i == len(cube) {
		return fn(append([]bool(nil), buf...))
	}
	switch cube[i] {
	case 0:
		buf[i] = false
		return expand(cube, buf, i+1, fn)
	case 1:
		buf[i] = true
		return expand(cube, buf, i+1, fn)
	}
	buf[i] = false
	if err := expand(cube, buf, i+1, fn); err != nil {
		return err
	}
	buf[i] = true
	return expand(cube, buf, i+1, fn)
}

func nodes(hs []*Handle) []rudd.Node {
	ns := make([]rudd.Node, len(hs))
	for i, h := range hs {
		ns[i] = h.node
	}
	return ns
}

func sameNode(a, b rudd.Node) bool {
	if a == b {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	return *a == *b
}
