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
	"github.com/jazzpetri/deadlock/bdd"
	"github.com/jazzpetri/deadlock/state"
)

// Oracle answers membership queries against a set of markings.
type Oracle struct {
	enc       *Encoder
	set       *bdd.Handle
	converged bool
	queries   int
}

// NewOracle creates an oracle over set, a formula on enc's current
// variables. The oracle does not own set.
func NewOracle(enc *Encoder, set *bdd.Handle, converged bool) *Oracle {
	return &Oracle{enc: enc, set: set, converged: converged}
}

// Contains reports whether m belongs to the set. The set is restricted one
// place at a time by the literal matching m; the walk stops at the first
// place where the restriction becomes identically false.
//
// A marking whose length differs from the place count is rejected with
// state.ErrLengthMismatch.
func (o *Oracle) Contains(m state.Marking) (bool, error) {
	if err := m.Validate(o.enc.Places()); err != nil {
		return false, err
	}
	o.queries++

	mgr := o.enc.mgr
	cur, err := mgr.Retain(o.set)
	if err != nil {
		return false, err
	}
	for i, v := range m {
		lit, err := mgr.Literal(o.enc.pairs[i].Current, v == 1)
		if err != nil {
			return false, releaseAll(mgr, err, cur)
		}
		next, err := mgr.And(cur, lit)
		if err := releaseAll(mgr, nil, cur, lit); err != nil {
			return false, releaseAll(mgr, err, next)
		}
		if err != nil {
			return false, err
		}
		cur = next

		empty, err := mgr.IsFalse(cur)
		if err != nil || empty {
			return false, releaseAll(mgr, err, cur)
		}
	}
	return true, mgr.Release(cur)
}

// Converged reports whether the underlying reachable set is exact.
func (o *Oracle) Converged() bool {
	return o.converged
}

// Queries returns the number of membership queries answered.
func (o *Oracle) Queries() int {
	return o.queries
}

// releaseAll releases every non-nil handle and returns err, or the first
// release failure if err is nil.
func releaseAll(mgr *bdd.Manager, err error, hs ...*bdd.Handle) error {
	for _, h := range hs {
		if h == nil {
			continue
		}
		if rerr := mgr.Release(h); rerr != nil && err == nil {
			err = rerr
		}
	}
	return err
}
