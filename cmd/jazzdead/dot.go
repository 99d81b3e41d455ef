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

func dot(cfg *DotConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Dot.Parse(cc, args)
	if err != nil {
		return err
	}
	net, err := loadNet(args)
	if err != nil {
		return err
	}

	if cfg.Mermaid {
		fmt.Fprint(cc.Out, net.ToMermaid())
		return nil
	}

	marking := state.Initial(net)
	if cfg.Witness {
		report, err := deadlock.Check(cfg.analysisContext(), net, cfg.settings)
		if err != nil {
			return err
		}
		if report.Deadlock.Found {
			marking = report.Deadlock.Witness
		}
	}
	fmt.Fprint(cc.Out, net.ToDOT(marking))
	return nil
}
