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

package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/scott-cotton/cli"

	"github.com/jazzpetri/deadlock/verification"
)

func explore(cfg *ExploreConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Explore.Parse(cc, args)
	if err != nil {
		return err
	}
	net, err := loadNet(args)
	if err != nil {
		return err
	}

	limit := cfg.MaxStates
	if limit <= 0 {
		limit = cfg.settings.MaxStates
	}
	ex := verification.NewExplorer(net, limit)
	ss, err := ex.Explore()
	if err != nil && !errors.Is(err, verification.ErrStateLimit) {
		return err
	}

	p := newPalette(cfg.colored(cc.Out))
	writeField(cc.Out, p, "net", "%s (%d places, %d transitions)", net.ID, len(net.Places), len(net.Transitions))
	writeField(cc.Out, p, "states", "%d markings, %d edges", ss.Len(), ss.EdgeCount())
	if !ss.Complete {
		writeField(cc.Out, p, "warning", "%s", p.Warn(fmt.Sprintf("state limit %d reached, the search is partial", limit)))
	}

	props, err := propertySuite(cfg.Reach, cfg.Mutex)
	if err != nil {
		return err
	}
	cert := ex.Evaluate(ss, props)
	for _, r := range cert.Properties[1:] {
		status := p.Good("holds")
		if !r.Satisfied {
			status = p.Bad("violated")
		}
		writeField(cc.Out, p, r.Property, "%s: %s", status, r.Message)
		if cfg.Path && r.Witness != nil {
			writeField(cc.Out, p, "path", "%s", formatPath(r.Witness))
		}
	}

	deadlocks := ex.Deadlocks(ss)
	if len(deadlocks) == 0 {
		writeField(cc.Out, p, "deadlock", "%s", p.Good("none"))
	} else {
		writeField(cc.Out, p, "deadlock", "%s", p.Bad(fmt.Sprintf("%d reachable", len(deadlocks))))
		ids := net.PlaceIDs()
		for _, s := range deadlocks {
			writeField(cc.Out, p, "witness", "%s", formatMarked(s.Marking.Marked(ids)))
			if cfg.Path {
				path := verification.FindPath(ss, ss.Initial, s.ID)
				writeField(cc.Out, p, "path", "%s", formatPath(path))
			}
		}
	}

	switch {
	case !cert.DeadlockFree:
		return cli.ExitCodeErr(exitDeadlock)
	case !cert.AllSatisfied():
		return cli.ExitCodeErr(exitViolation)
	}
	return nil
}

// propertySuite builds the properties checked by explore. Deadlock freedom
// always comes first; reach adds one reachability property per place and
// mutex one exclusion property over exactly two places.
func propertySuite(reach, mutex string) ([]verification.SafetyProperty, error) {
	props := []verification.SafetyProperty{verification.NewDeadlockFreedomProperty("deadlock_freedom")}
	for _, id := range splitList(reach) {
		props = append(props, verification.NewReachabilityProperty("reach "+id, id))
	}
	if pair := splitList(mutex); len(pair) > 0 {
		if len(pair) != 2 {
			return nil, fmt.Errorf("%w: -mutex takes two places, got %d", cli.ErrUsage, len(pair))
		}
		props = append(props, verification.NewMutualExclusionProperty("mutex "+pair[0]+"/"+pair[1], pair[0], pair[1]))
	}
	return props, nil
}

func splitList(s string) []string {
	var out []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}

func formatPath(path []string) string {
	if len(path) == 0 {
		return "(initial marking)"
	}
	return strings.Join(path, " -> ")
}
