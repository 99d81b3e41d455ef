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

	"go.uber.org/multierr"

	"github.com/jazzpetri/deadlock/bdd"
	"github.com/jazzpetri/deadlock/petri"
)

// ErrSourceTransition is returned by BuildAll when the net has a transition
// without input places. Such a transition is enabled in every marking, so
// the net cannot deadlock and no relation needs to be built.
var ErrSourceTransition = errors.New("transition has no input place")

// Relation is the transition relation of one transition: a formula over
// current and next variables relating every marking in which the
// transition is enabled to the marking reached by firing it.
type Relation struct {
	Transition string

	// Inputs and Outputs are the place positions derived from the arcs.
	Inputs  []int
	Outputs []int

	Handle *bdd.Handle
}

// RelationBuilder builds transition relations over an encoder's variables.
type RelationBuilder struct {
	enc *Encoder
}

// NewRelationBuilder creates a builder for enc.
func NewRelationBuilder(enc *Encoder) *RelationBuilder {
	return &RelationBuilder{enc: enc}
}

// places derives the input and output place positions of t from the arc
// list. An arc endpoint that is not a place of the encoder is an error.
func (b *RelationBuilder) places(t *petri.Transition) (inputs, outputs []int, err error) {
	seenIn := make(map[int]bool)
	seenOut := make(map[int]bool)
	for _, arc := range b.enc.net.Arcs {
		switch t.ID {
		case arc.TargetID:
			pair, ok := b.enc.Pair(arc.SourceID)
			if !ok {
				return nil, nil, fmt.Errorf("%w: %s (arc %s into %s)", petri.ErrUnknownPlace, arc.SourceID, arc.ID, t.ID)
			}
			if !seenIn[pair.Current] {
				seenIn[pair.Current] = true
				inputs = append(inputs, pair.Current)
			}
		case arc.SourceID:
			pair, ok := b.enc.Pair(arc.TargetID)
			if !ok {
				return nil, nil, fmt.Errorf("%w: %s (arc %s from %s)", petri.ErrUnknownPlace, arc.TargetID, arc.ID, t.ID)
			}
			if !seenOut[pair.Current] {
				seenOut[pair.Current] = true
				outputs = append(outputs, pair.Current)
			}
		}
	}
	return inputs, outputs, nil
}

// Build constructs the relation of t as the conjunction of
//
//   - the precondition: every input place holds a token;
//   - the effect, per place p:
//     input and output: next(p) ⇔ current(p), the token stays;
//     input only: ¬next(p), the token is consumed;
//     output only: next(p), a token is produced;
//     neither: next(p) ⇔ current(p), the place is unaffected.
//
// Arc weights are ignored: in a 1-safe net a place either holds the token
// an arc asks for or it does not.
func (b *RelationBuilder) Build(t *petri.Transition) (*Relation, error) {
	if _, ok := b.enc.net.TransitionIndex(t.ID); !ok {
		return nil, fmt.Errorf("%w: %s", petri.ErrUnknownTransition, t.ID)
	}
	inputs, outputs, err := b.places(t)
	if err != nil {
		return nil, err
	}

	mgr := b.enc.mgr
	n := b.enc.Places()
	isIn := make([]bool, n)
	isOut := make([]bool, n)
	for _, p := range inputs {
		isIn[p] = true
	}
	for _, p := range outputs {
		isOut[p] = true
	}

	s := mgr.NewScope()
	defer s.Close()

	parts := make([]*bdd.Handle, 0, len(inputs)+n)
	for _, p := range inputs {
		parts = append(parts, s.Track(mgr.Var(b.enc.pairs[p].Current)))
	}
	for p := 0; p < n; p++ {
		pair := b.enc.pairs[p]
		switch {
		case isIn[p] && !isOut[p]:
			parts = append(parts, s.Track(mgr.NVar(pair.Next)))
		case isOut[p] && !isIn[p]:
			parts = append(parts, s.Track(mgr.Var(pair.Next)))
		default:
			cur := s.Track(mgr.Var(pair.Current))
			next := s.Track(mgr.Var(pair.Next))
			parts = append(parts, s.Track(mgr.Equiv(cur, next)))
		}
	}
	if err := s.Err(); err != nil {
		return nil, fmt.Errorf("transition %s: %w", t.ID, err)
	}

	h, err := mgr.And(parts...)
	if err != nil {
		return nil, fmt.Errorf("transition %s: %w", t.ID, err)
	}
	return &Relation{
		Transition: t.ID,
		Inputs:     inputs,
		Outputs:    outputs,
		Handle:     h,
	}, nil
}

// Relations owns the relations of every transition of a net.
type Relations struct {
	mgr  *bdd.Manager
	list []*Relation
}

// BuildAll builds one relation per transition in net order. It returns
// ErrSourceTransition, naming the first offending transition, as soon as a
// transition without input place is met. Relations built before a failure
// are released.
func (b *RelationBuilder) BuildAll() (*Relations, error) {
	return b.build(false)
}

// BuildAllWithSources is BuildAll without the source-transition check. It
// is used when the reachable set itself is wanted even though the net is
// known to be deadlock-free.
func (b *RelationBuilder) BuildAllWithSources() (*Relations, error) {
	return b.build(true)
}

func (b *RelationBuilder) build(allowSources bool) (*Relations, error) {
	rels := &Relations{mgr: b.enc.mgr}
	for _, t := range b.enc.net.Transitions {
		r, err := b.Build(t)
		if err == nil && len(r.Inputs) == 0 && !allowSources {
			err = multierr.Append(
				fmt.Errorf("%w: %s", ErrSourceTransition, t.ID),
				b.enc.mgr.Release(r.Handle),
			)
		}
		if err != nil {
			return nil, multierr.Append(err, rels.Close())
		}
		rels.list = append(rels.list, r)
	}
	return rels, nil
}

// Len returns the number of relations.
func (r *Relations) Len() int {
	return len(r.list)
}

// All returns the relations in transition order.
func (r *Relations) All() []*Relation {
	return r.list
}

// Get returns the relation of the transition with the given ID.
func (r *Relations) Get(transitionID string) (*Relation, bool) {
	for _, rel := range r.list {
		if rel.Transition == transitionID {
			return rel, true
		}
	}
	return nil, false
}

// Close releases every relation handle. Calling Close twice is a no-op.
func (r *Relations) Close() error {
	var err error
	for _, rel := range r.list {
		err = multierr.Append(err, r.mgr.Release(rel.Handle))
	}
	r.list = nil
	return err
}
