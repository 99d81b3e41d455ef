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
	"sort"

	"github.com/scott-cotton/cli"
	"go.uber.org/multierr"

	"github.com/jazzpetri/deadlock/symbolic"
)

func reach(cfg *ReachConfig, cc *cli.Context, args []string) (err error) {
	args, err = cfg.Reach.Parse(cc, args)
	if err != nil {
		return err
	}
	net, err := loadNet(args)
	if err != nil {
		return err
	}

	a, err := symbolic.Analyze(cfg.analysisContext(), net, cfg.settings)
	if err != nil && !errors.Is(err, symbolic.ErrIterationCap) {
		return err
	}
	defer func() {
		err = multierr.Append(err, a.Close())
	}()

	count, err := a.Result.Count()
	if err != nil {
		return err
	}
	nodes, err := a.Result.Nodes()
	if err != nil {
		return err
	}

	p := newPalette(cfg.colored(cc.Out))
	writeField(cc.Out, p, "net", "%s (%d places, %d transitions)", net.ID, len(net.Places), len(net.Transitions))
	writeField(cc.Out, p, "reachable", "%s markings in %d iterations", count.String(), a.Result.Iterations)
	writeField(cc.Out, p, "bdd", "%d nodes, %d bytes", nodes, a.Result.Memory())
	if a.Degraded {
		writeField(cc.Out, p, "warning", "%s", p.Warn("fixpoint stopped at the iteration cap, the reachable set is partial"))
	}

	if cfg.List {
		markings, err := a.Result.Markings()
		if err != nil {
			return err
		}
		ids := net.PlaceIDs()
		lines := make([]string, len(markings))
		for i, m := range markings {
			lines[i] = m.Key() + " " + formatMarked(m.Marked(ids))
		}
		sort.Strings(lines)
		for _, line := range lines {
			fmt.Fprintln(cc.Out, line)
		}
	}
	return nil
}
