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
	"errors"
	"fmt"
	"time"

	"github.com/jazzpetri/deadlock/clock"
	"github.com/jazzpetri/deadlock/context"
	"github.com/jazzpetri/deadlock/ilp"
	"github.com/jazzpetri/deadlock/petri"
	"github.com/jazzpetri/deadlock/state"
)

// ErrUnconverged is returned when the reachable set stopped at the
// iteration cap and degraded results are not allowed. Deciding against a
// partial set could miss a reachable deadlock.
var ErrUnconverged = errors.New("reachable set did not converge")

// converger is implemented by membership oracles that know whether their
// set is a fixpoint.
type converger interface {
	Converged() bool
}

// Result is the outcome of Detect.
type Result struct {
	// Found is true when a reachable dead marking was accepted.
	Found bool

	// Witness is the accepted marking, one entry per place.
	Witness state.Marking

	// Marked lists the IDs of the places marked in Witness.
	Marked []string

	Candidates  int
	Refinements int
	Elapsed     time.Duration

	// ShortCircuit is set when a transition without input place made the
	// net trivially deadlock-free and no solver was called.
	ShortCircuit bool

	// Degraded is set when the answer was computed against an unconverged
	// reachable set. A negative answer may then be wrong.
	Degraded bool

	Trace []Step
}

// Detector runs deadlock detection on one net.
type Detector struct {
	net           *petri.PetriNet
	oracle        Membership
	backend       ilp.Backend
	backendName   string
	allowDegraded bool
	actx          *context.AnalysisContext
}

// Option configures a Detector.
type Option func(*Detector)

// WithBackend sets the integer program backend.
func WithBackend(b ilp.Backend) Option {
	return func(d *Detector) {
		d.backend = b
	}
}

// WithBackendName selects the backend by name when none was set with
// WithBackend. The default is "auto".
func WithBackendName(name string) Option {
	return func(d *Detector) {
		d.backendName = name
	}
}

// WithAllowDegraded lets Detect run against an unconverged reachable set.
func WithAllowDegraded(allow bool) Option {
	return func(d *Detector) {
		d.allowDegraded = allow
	}
}

// WithAnalysisContext sets the clock, logger, metrics and tracer.
func WithAnalysisContext(actx *context.AnalysisContext) Option {
	return func(d *Detector) {
		d.actx = actx
	}
}

// NewDetector creates a detector for net, verifying candidates with oracle.
func NewDetector(net *petri.PetriNet, oracle Membership, opts ...Option) *Detector {
	d := &Detector{
		net:         net,
		oracle:      oracle,
		backendName: ilp.BackendAuto,
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.actx == nil {
		d.actx = context.Background()
	}
	return d
}

// Detect decides whether a dead marking is reachable.
//
// A net with a transition without input place can never deadlock, and
// Detect returns immediately without creating a solver. Otherwise the
// structural model is refined until a candidate is accepted or the model
// becomes infeasible.
func (d *Detector) Detect() (*Result, error) {
	actx := d.actx
	logger := actx.GetLogger()
	metrics := actx.GetMetrics()
	sw := clock.Start(actx.GetClock())

	span := actx.GetTracer().StartSpan("cegar")
	defer span.End()
	span.SetAttribute("net", d.net.ID)

	fail := func(err error) (*Result, error) {
		span.RecordError(err)
		return nil, err
	}

	if err := d.net.Resolve(); err != nil {
		return fail(err)
	}

	res := &Result{}
	if sources := d.net.SourceTransitions(); len(sources) > 0 {
		res.ShortCircuit = true
		res.Elapsed = sw.Elapsed()
		span.SetAttribute("short_circuit", true)
		logger.Info("net has a transition without input place, no deadlock possible", map[string]interface{}{
			"net":        d.net.ID,
			"transition": sources[0].ID,
		})
		metrics.Observe("deadlock_detect_seconds", res.Elapsed.Seconds())
		return res, nil
	}

	if c, ok := d.oracle.(converger); ok && !c.Converged() {
		if !d.allowDegraded {
			return fail(ErrUnconverged)
		}
		res.Degraded = true
		logger.Warn("detecting deadlocks against an unconverged reachable set", map[string]interface{}{
			"net": d.net.ID,
		})
	}

	backend := d.backend
	if backend == nil {
		b, err := ilp.NewBackend(d.backendName)
		if err != nil {
			return fail(err)
		}
		backend = b
	}

	model, err := ilp.NewStructuralModel(d.net)
	if err != nil {
		return fail(fmt.Errorf("building structural model: %w", err))
	}

	logger.Info("searching for reachable deadlocks", map[string]interface{}{
		"net":         d.net.ID,
		"backend":     backend.Name(),
		"constraints": model.Len(),
	})

	r := NewRefiner(actx, model, backend, d.oracle)
	found, err := r.Run()
	metrics.Add("deadlock_candidates_total", float64(r.Candidates()))
	metrics.Add("deadlock_refinements_total", float64(r.Refinements()))
	if err != nil {
		return fail(err)
	}

	res.Found = found
	res.Candidates = r.Candidates()
	res.Refinements = r.Refinements()
	res.Trace = r.Trace()
	if found {
		res.Witness = r.Candidate()
		res.Marked = res.Witness.Marked(d.net.PlaceIDs())
	}
	res.Elapsed = sw.Elapsed()
	metrics.Observe("deadlock_detect_seconds", res.Elapsed.Seconds())

	span.SetAttribute("found", found)
	span.SetAttribute("refinements", res.Refinements)
	fields := map[string]interface{}{
		"net":         d.net.ID,
		"found":       found,
		"candidates":  res.Candidates,
		"refinements": res.Refinements,
		"elapsed":     res.Elapsed.String(),
	}
	if found {
		fields["witness"] = res.Marked
	}
	logger.Info("deadlock search finished", fields)
	return res, nil
}
