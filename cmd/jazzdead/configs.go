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
	stdcontext "context"
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/scott-cotton/cli"
	"go.uber.org/zap"

	"github.com/jazzpetri/deadlock/clock"
	"github.com/jazzpetri/deadlock/config"
	"github.com/jazzpetri/deadlock/context"
	"github.com/jazzpetri/deadlock/petri"
	"github.com/jazzpetri/deadlock/pnml"
)

// MainConfig holds the options shared by every command.
type MainConfig struct {
	ConfigFile string `cli:"name=config desc='YAML configuration file'"`
	Verbose    bool   `cli:"name=v desc='log progress at info level'"`
	Debug      bool   `cli:"name=debug desc='log every iteration and candidate'"`
	Color      bool   `cli:"name=color desc='color the report'"`
	NoColor    bool   `cli:"name=nocolor desc='never color the report'"`
	Stats      bool   `cli:"name=stats desc='print collected metrics after the run'"`

	MaxIterations int    `cli:"name=max-iter desc='reachability iteration cap'"`
	Backend       string `cli:"name=backend desc='integer program backend: auto, pb, sat'"`
	AllowDegraded bool   `cli:"name=allow-degraded desc='detect deadlocks even if the fixpoint did not converge'"`

	Main *cli.Command

	settings *config.Config
	logger   *zap.Logger
	metrics  *context.MemoryMetrics
}

type CheckConfig struct {
	*MainConfig
	JSON bool `cli:"name=json desc='print the witness as a JSON snapshot'"`
	YAML bool `cli:"name=yaml desc='print the witness as a YAML snapshot'"`
	Lint bool `cli:"name=lint desc='print structural warnings first'"`

	Check *cli.Command
}

type ReachConfig struct {
	*MainConfig
	List bool `cli:"name=list desc='list every reachable marking'"`

	Reach *cli.Command
}

type ExploreConfig struct {
	*MainConfig
	MaxStates int    `cli:"name=max-states desc='state limit of the explicit search'"`
	Path      bool   `cli:"name=path desc='print a firing sequence to each deadlock'"`
	Reach     string `cli:"name=reach desc='comma-separated places that must each be markable'"`
	Mutex     string `cli:"name=mutex desc='two comma-separated places never marked together'"`

	Explore *cli.Command
}

type CompareConfig struct {
	*MainConfig
	MaxStates int `cli:"name=max-states desc='state limit of the explicit search'"`

	Compare *cli.Command
}

type DotConfig struct {
	*MainConfig
	Witness bool `cli:"name=witness desc='highlight the deadlock witness'"`
	Mermaid bool `cli:"name=mermaid desc='emit a Mermaid diagram instead of DOT'"`

	Dot *cli.Command
}

// setup loads the configuration file, applies the command line overrides
// and builds the logger.
func (cfg *MainConfig) setup() error {
	settings := config.Default()
	if cfg.ConfigFile != "" {
		loaded, err := config.Load(cfg.ConfigFile)
		if err != nil {
			return err
		}
		settings = loaded
	}
	cfg.apply(settings)
	if err := settings.Validate(); err != nil {
		return fmt.Errorf("%w: %w", cli.ErrUsage, err)
	}

	logger, err := context.NewConsoleLogger(settings.LogLevel)
	if err != nil {
		return err
	}
	cfg.settings = settings
	cfg.logger = logger
	cfg.metrics = context.NewMemoryMetrics()
	return nil
}

// apply overrides file settings with flags that were given.
func (cfg *MainConfig) apply(settings *config.Config) {
	if cfg.MaxIterations > 0 {
		settings.MaxIterations = cfg.MaxIterations
	}
	if cfg.Backend != "" {
		settings.Backend = cfg.Backend
	}
	if cfg.AllowDegraded {
		settings.AllowDegraded = true
	}
	switch {
	case cfg.Debug:
		settings.LogLevel = "debug"
	case cfg.Verbose:
		settings.LogLevel = "info"
	}
	switch {
	case cfg.NoColor:
		settings.Color = config.ColorNever
	case cfg.Color:
		settings.Color = config.ColorAlways
	}
}

// analysisContext returns the context passed to the analysis phases.
func (cfg *MainConfig) analysisContext() *context.AnalysisContext {
	return context.NewAnalysisContextBuilder().
		WithContext(stdcontext.Background()).
		WithClock(clock.NewRealTimeClock()).
		WithLogger(context.NewZapLogger(cfg.logger)).
		WithMetrics(cfg.metrics).
		Build()
}

// colored decides whether output to w gets colors.
func (cfg *MainConfig) colored(w io.Writer) bool {
	switch cfg.settings.Color {
	case config.ColorAlways:
		return true
	case config.ColorNever:
		return false
	}
	f, ok := w.(*os.File)
	return ok && isatty.IsTerminal(f.Fd())
}

// loadNet reads the single net file argument.
func loadNet(args []string) (*petri.PetriNet, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("%w: expected one net file, got %d arguments", cli.ErrUsage, len(args))
	}
	return pnml.Load(args[0])
}

func (cfg *MainConfig) finish(cc *cli.Context) {
	if cfg.Stats {
		writeStats(cc.Out, cfg.metrics)
	}
	_ = cfg.logger.Sync()
}
