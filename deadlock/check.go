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
	"math/big"

	"go.uber.org/multierr"

	"github.com/jazzpetri/deadlock/config"
	"github.com/jazzpetri/deadlock/context"
	"github.com/jazzpetri/deadlock/petri"
	"github.com/jazzpetri/deadlock/symbolic"
)

// Report combines the reachability figures with the deadlock result.
type Report struct {
	Deadlock *Result

	// Reachable is the number of reachable markings.
	Reachable *big.Int

	// Iterations is the number of fixpoint iterations.
	Iterations int

	// Converged is false when the fixpoint stopped at the iteration cap.
	Converged bool

	// Memory is the BDD manager's memory estimate in bytes.
	Memory int64

	// Nodes is the node count of the reachable set.
	Nodes int

	// Skipped is true when the net has a transition without input place.
	// No reachable set is computed then and Reachable is nil.
	Skipped bool
}

// Check runs the whole pipeline on net: reachable set, then deadlock
// detection against it. An unconverged reachable set is an error unless
// cfg.AllowDegraded is set. A net with a transition without input place
// never deadlocks and skips the reachable set entirely.
func Check(actx *context.AnalysisContext, net *petri.PetriNet, cfg *config.Config) (report *Report, err error) {
	if cfg == nil {
		cfg = config.Default()
	}

	if err := net.Resolve(); err != nil {
		return nil, err
	}
	if len(net.SourceTransitions()) > 0 {
		res, err := NewDetector(net, nil, WithAnalysisContext(actx)).Detect()
		if err != nil {
			return nil, err
		}
		return &Report{Deadlock: res, Converged: true, Skipped: true}, nil
	}

	a, err := symbolic.Analyze(actx, net, cfg)
	if err != nil && !errors.Is(err, symbolic.ErrIterationCap) {
		return nil, err
	}
	defer func() {
		err = multierr.Append(err, a.Close())
		if err != nil {
			report = nil
		}
	}()

	report = &Report{
		Iterations: a.Result.Iterations,
		Converged:  a.Result.Converged,
		Memory:     a.Result.Memory(),
	}
	if report.Reachable, err = a.Result.Count(); err != nil {
		return nil, err
	}
	if report.Nodes, err = a.Result.Nodes(); err != nil {
		return nil, err
	}

	d := NewDetector(net, a.Oracle(),
		WithAnalysisContext(actx),
		WithBackendName(cfg.Backend),
		WithAllowDegraded(cfg.AllowDegraded),
	)
	if report.Deadlock, err = d.Detect(); err != nil {
		return nil, err
	}
	return report, nil
}
