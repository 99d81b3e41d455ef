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
	"github.com/scott-cotton/cli"
)

func MainCommand() *cli.Command {
	cfg := &MainConfig{}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Main, "jazzdead").
		WithSynopsis("jazzdead [opts] command [opts] <net-file>").
		WithDescription("jazzdead decides whether a 1-safe Petri net can reach a deadlock.").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return jazzdeadMain(cfg, cc, args)
		}).
		WithSubs(
			CheckCommand(cfg),
			ReachCommand(cfg),
			ExploreCommand(cfg),
			CompareCommand(cfg),
			DotCommand(cfg))
}

func CheckCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &CheckConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Check, "check").
		WithAliases("c").
		WithSynopsis("check [-json|-yaml] [-lint] <net-file>").
		WithDescription("compute the reachable markings and search for a reachable deadlock").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return check(cfg, cc, args)
		})
}

func ReachCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &ReachConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Reach, "reach").
		WithAliases("r").
		WithSynopsis("reach [-list] <net-file>").
		WithDescription("compute the reachable markings symbolically").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return reach(cfg, cc, args)
		})
}

func ExploreCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &ExploreConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Explore, "explore").
		WithAliases("e").
		WithSynopsis("explore [-max-states n] [-path] [-reach p,q] [-mutex p,q] <net-file>").
		WithDescription("enumerate the reachable markings explicitly, list the deadlocks and check safety properties").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return explore(cfg, cc, args)
		})
}

func CompareCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &CompareConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Compare, "compare").
		WithSynopsis("compare [-max-states n] <net-file>").
		WithDescription("compare the symbolic reachable set with explicit enumeration").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return compare(cfg, cc, args)
		})
}

func DotCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &DotConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Dot, "dot").
		WithSynopsis("dot [-witness] [-mermaid] <net-file>").
		WithDescription("render the net as Graphviz DOT or Mermaid").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return dot(cfg, cc, args)
		})
}
