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
	"errors"
	"fmt"
	"math/big"

	"github.com/jazzpetri/deadlock/bdd"
	"github.com/jazzpetri/deadlock/config"
	"github.com/jazzpetri/deadlock/context"
	"github.com/jazzpetri/deadlock/state"
)

// ErrIterationCap is returned together with a usable Result when the
// fixpoint did not converge within the iteration cap. The reachable set of
// such a result is an under-approximation and must not be treated as exact.
var ErrIterationCap = errors.New("reachability iteration cap reached before convergence")

// Solver computes the reachable set of a net as a least fixpoint.
type Solver struct {
	enc         *Encoder
	rels        *Relations
	maxIter     int
	logger      context.Logger
	onIteration func(k int, set *bdd.Handle)
}

// SolverOption configures a Solver.
type SolverOption func(*Solver)

// WithMaxIterations sets the iteration cap. Non-positive values keep the default.
func WithMaxIterations(n int) SolverOption {
	return func(s *Solver) {
		if n > 0 {
			s.maxIter = n
		}
	}
}

// WithLogger sets the logger used for per-iteration debug output.
func WithLogger(l context.Logger) SolverOption {
	return func(s *Solver) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithOnIteration registers a hook called with reachable_k after each
// iteration k, starting with k = 0 for the initial marking. The handle is
// only valid during the call; retain it to keep it.
func WithOnIteration(fn func(k int, set *bdd.Handle)) SolverOption {
	return func(s *Solver) {
		s.onIteration = fn
	}
}

// NewSolver creates a solver over the relations rels built for enc.
func NewSolver(enc *Encoder, rels *Relations, opts ...SolverOption) *Solver {
	s := &Solver{
		enc:     enc,
		rels:    rels,
		maxIter: config.DefaultMaxIterations,
		logger:  &context.NoOpLogger{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Image returns the set of markings reachable from set by firing exactly
// one transition: the union over all relations R of
// rename(∃current. set ∧ R).
func (s *Solver) Image(set *bdd.Handle) (*bdd.Handle, error) {
	mgr := s.enc.mgr
	acc, err := mgr.False()
	if err != nil {
		return nil, err
	}

	current := s.enc.Current()
	for _, rel := range s.rels.All() {
		step, err := mgr.AndExist(set, rel.Handle, current)
		if err != nil {
			return nil, s.abort(fmt.Errorf("image of %s: %w", rel.Transition, err), acc)
		}
		renamed, err := mgr.Replace(step, s.enc.rename)
		if rerr := mgr.Release(step); rerr != nil && err == nil {
			err = rerr
		}
		if err != nil {
			return nil, s.abort(fmt.Errorf("image of %s: %w", rel.Transition, err), acc, renamed)
		}
		union, err := mgr.Or(acc, renamed)
		if err != nil {
			return nil, s.abort(err, acc, renamed)
		}
		if err := s.release(acc, renamed); err != nil {
			return nil, s.abort(err, union)
		}
		acc = union
	}
	return acc, nil
}

// Compute runs the fixpoint
//
//	reachable_0   = initial
//	reachable_k+1 = reachable_k ∪ image(reachable_k)
//
// until image(reachable_k) adds no marking. The cap bounds the number of
// growing steps. If the image after the last allowed step still adds a
// marking, Compute returns the partial result together with ErrIterationCap;
// the result's Converged field is false.
func (s *Solver) Compute() (*Result, error) {
	mgr := s.enc.mgr
	reach, err := s.enc.EncodeInitial()
	if err != nil {
		return nil, err
	}
	s.observe(0, reach)

	for k := 1; ; k++ {
		img, err := s.Image(reach)
		if err != nil {
			return nil, s.abort(err, reach)
		}
		fresh, err := mgr.Diff(img, reach)
		if err != nil {
			return nil, s.abort(err, reach, img)
		}
		done, err := mgr.IsFalse(fresh)
		if rerr := mgr.Release(fresh); err == nil {
			err = rerr
		}
		if err != nil {
			return nil, s.abort(err, reach, img)
		}
		if done {
			if err := mgr.Release(img); err != nil {
				return nil, s.abort(err, reach)
			}
			s.logger.Debug("reachability converged", map[string]interface{}{
				"iterations": k,
			})
			return &Result{enc: s.enc, Reachable: reach, Iterations: k, Converged: true}, nil
		}

		// The cap counts growing steps; the image after the last allowed
		// step still runs so a set that is already complete converges.
		if k > s.maxIter {
			if err := mgr.Release(img); err != nil {
				return nil, s.abort(err, reach)
			}
			s.logger.Warn("reachability iteration cap reached", map[string]interface{}{
				"cap": s.maxIter,
			})
			res := &Result{enc: s.enc, Reachable: reach, Iterations: k, Converged: false}
			return res, fmt.Errorf("%w: %d iterations", ErrIterationCap, s.maxIter)
		}

		union, err := mgr.Or(reach, img)
		if err != nil {
			return nil, s.abort(err, reach, img)
		}
		if err := s.release(reach, img); err != nil {
			return nil, s.abort(err, union)
		}
		reach = union
		s.observe(k, reach)
	}
}

func (s *Solver) observe(k int, set *bdd.Handle) {
	s.logger.Debug("fixpoint iteration", map[string]interface{}{
		"iteration": k,
	})
	if s.onIteration != nil {
		s.onIteration(k, set)
	}
}

func (s *Solver) release(hs ...*bdd.Handle) error {
	return releaseAll(s.enc.mgr, nil, hs...)
}

// abort releases hs and returns err. Release failures are secondary and
// dropped in favor of the original error.
func (s *Solver) abort(err error, hs ...*bdd.Handle) error {
	_ = s.release(hs...)
	return err
}

// Result is the outcome of a fixpoint computation. It owns the reachable
// set handle until Close.
type Result struct {
	enc *Encoder

	// Reachable is a formula over the current variables.
	Reachable *bdd.Handle

	// Iterations is the number of image computations performed.
	Iterations int

	// Converged is false when the iteration cap stopped the fixpoint.
	Converged bool
}

// Count returns the number of reachable markings.
func (r *Result) Count() (*big.Int, error) {
	return r.enc.mgr.SatCount(r.Reachable, r.enc.Places())
}

// Memory returns the memory figure of the formula manager in bytes.
func (r *Result) Memory() int64 {
	return r.enc.mgr.MemoryInUse()
}

// Nodes returns the node count of the reachable set formula.
func (r *Result) Nodes() (int, error) {
	return r.enc.mgr.NodeCount(r.Reachable)
}

// Markings enumerates the reachable markings. The order is unspecified.
func (r *Result) Markings() ([]state.Marking, error) {
	var out []state.Marking
	err := r.enc.mgr.AllSat(r.Reachable, r.enc.Places(), func(a []bool) error {
		out = append(out, state.FromBools(a))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Oracle returns a membership oracle over the reachable set. The oracle is
// valid until the result is closed.
func (r *Result) Oracle() *Oracle {
	return NewOracle(r.enc, r.Reachable, r.Converged)
}

// Close releases the reachable set. Calling Close twice is a no-op.
func (r *Result) Close() error {
	if r.Reachable == nil {
		return nil
	}
	err := r.enc.mgr.Release(r.Reachable)
	r.Reachable = nil
	return err
}
