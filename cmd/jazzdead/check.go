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
	"fmt"

	"github.com/scott-cotton/cli"

	"github.com/jazzpetri/deadlock/deadlock"
	"github.com/jazzpetri/deadlock/state"
)

func check(cfg *CheckConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Check.Parse(cc, args)
	if err != nil {
		return err
	}
	if cfg.JSON && cfg.YAML {
		return fmt.Errorf("%w: -json and -yaml are exclusive", cli.ErrUsage)
	}
	net, err := loadNet(args)
	if err != nil {
		return err
	}

	p := newPalette(cfg.colored(cc.Out))
	if cfg.Lint {
		writeLint(cc.Out, p, deadlock.Lint(net))
	}

	actx := cfg.analysisContext()
	report, err := deadlock.Check(actx, net, cfg.settings)
	if err != nil {
		return err
	}

	res := report.Deadlock
	switch {
	case cfg.JSON || cfg.YAML:
		if !res.Found {
			fmt.Fprintln(cc.Out, "null")
			break
		}
		snap, err := state.NewSnapshot(net, res.Witness, actx.GetClock().Now())
		if err != nil {
			return err
		}
		serialize := snap.Serialize
		if cfg.YAML {
			serialize = snap.SerializeYAML
		}
		data, err := serialize()
		if err != nil {
			return err
		}
		fmt.Fprintln(cc.Out, string(data))
	default:
		writeCheckReport(cc.Out, p, net, report)
	}

	if res.Found {
		return cli.ExitCodeErr(exitDeadlock)
	}
	return nil
}
