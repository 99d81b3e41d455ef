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
	"github.com/jazzpetri/deadlock/config"
	"github.com/jazzpetri/deadlock/context"
	"github.com/jazzpetri/deadlock/petri"
)

// Analysis bundles the encoder, the transition relations and the fixpoint
// result of one net. Close releases everything it owns.
type Analysis struct {
	Net       *petri.PetriNet
	Encoder   *Encoder
	Relations *Relations
	Result    *Result

	// Degraded is set when the fixpoint stopped at the iteration cap.
	Degraded bool
}

// Analyze resolves net, encodes it, builds every transition relation and
// computes the reachable set. Source transitions are encoded like any
// other transition here; callers that only need deadlock detection should
// check for them first.
//
// When the iteration cap is hit the returned Analysis is usable, Degraded
// is set, and the error wraps ErrIterationCap.
func Analyze(actx *context.AnalysisContext, net *petri.PetriNet, cfg *config.Config) (*Analysis, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	logger := actx.GetLogger()
	metrics := actx.GetMetrics()
	span := actx.GetTracer().StartSpan("reachability")
	defer span.End()
	span.SetAttribute("net", net.ID)

	if err := net.Resolve(); err != nil {
		span.RecordError(err)
		return nil, err
	}

	enc, err := NewEncoder(net, bdd.WithNodeSize(cfg.NodeSize), bdd.WithCacheSize(cfg.CacheSize))
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	rels, err := NewRelationBuilder(enc).BuildAllWithSources()
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("building transition relations: %w", err)
	}

	logger.Info("computing reachable markings", map[string]interface{}{
		"net":         net.ID,
		"places":      len(net.Places),
		"transitions": len(net.Transitions),
	})

	solver := NewSolver(enc, rels,
		WithMaxIterations(cfg.MaxIterations),
		WithLogger(logger),
	)
	res, err := solver.Compute()
	if err != nil && !errors.Is(err, ErrIterationCap) {
		span.RecordError(err)
		return nil, multierr.Append(err, rels.Close())
	}

	a := &Analysis{
		Net:       net,
		Encoder:   enc,
		Relations: rels,
		Result:    res,
		Degraded:  !res.Converged,
	}

	metrics.Add("reachability_iterations_total", float64(res.Iterations))
	metrics.Set("bdd_memory_bytes", float64(res.Memory()))
	span.SetAttribute("iterations", res.Iterations)
	span.SetAttribute("converged", res.Converged)

	fields := map[string]interface{}{
		"iterations": res.Iterations,
		"converged":  res.Converged,
	}
	if count, cerr := res.Count(); cerr == nil {
		fields["reachable"] = count.String()
		if count.IsInt64() {
			metrics.Set("reachable_markings", float64(count.Int64()))
		}
	}
	logger.Info("reachable markings computed", fields)

	if err != nil {
		span.RecordError(err)
	}
	return a, err
}

// Oracle returns the membership oracle over the reachable set.
func (a *Analysis) Oracle() *Oracle {
	return a.Result.Oracle()
}

// Close releases the reachable set and the transition relations.
func (a *Analysis) Close() error {
	return multierr.Combine(
		a.Result.Close(),
		a.Relations.Close(),
	)
}
