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

// Package config holds the analysis configuration shared by the CLI and the
// library entry points. Configuration files are YAML.
//
// Example file:
//
//	max_iterations: 500
//	backend: sat
//	allow_degraded: false
//	log_level: info
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
)

// ErrInvalidConfig is returned by Validate and Load for unusable settings.
var ErrInvalidConfig = errors.New("invalid configuration")

// Backends lists the accepted integer-program backend names.
var Backends = []string{"auto", "pb", "sat"}

// Config is the analysis configuration.
type Config struct {
	// MaxIterations caps the reachability fixpoint.
	MaxIterations int `yaml:"max_iterations"`

	// Backend selects the integer-program solver: auto, pb, or sat.
	Backend string `yaml:"backend"`

	// NodeSize and CacheSize size the BDD manager.
	NodeSize  int `yaml:"node_size"`
	CacheSize int `yaml:"cache_size"`

	// MaxStates bounds the explicit baseline explorer.
	MaxStates int `yaml:"max_states"`

	// AllowDegraded lets deadlock detection run against a reachable set whose
	// fixpoint did not converge. The result is then flagged as degraded.
	AllowDegraded bool `yaml:"allow_degraded"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level"`

	// Color is one of auto, always, never.
	Color string `yaml:"color"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		MaxIterations: DefaultMaxIterations,
		Backend:       DefaultBackend,
		NodeSize:      DefaultNodeSize,
		CacheSize:     DefaultCacheSize,
		MaxStates:     DefaultMaxStates,
		LogLevel:      DefaultLogLevel,
		Color:         ColorAuto,
	}
}

// Parse decodes YAML over the defaults and validates the result.
// Unknown keys are rejected.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if len(data) == 0 {
		return cfg, nil
	}
	if err := yaml.UnmarshalWithOptions(data, cfg, yaml.Strict()); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Load reads and parses a YAML configuration file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Marshal encodes the configuration as YAML.
func (c *Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}

// Validate checks every field.
func (c *Config) Validate() error {
	if c.MaxIterations <= 0 {
		return fmt.Errorf("%w: max_iterations must be positive, got %d", ErrInvalidConfig, c.MaxIterations)
	}
	if !contains(Backends, c.Backend) {
		return fmt.Errorf("%w: unknown backend %q", ErrInvalidConfig, c.Backend)
	}
	if c.NodeSize <= 0 || c.CacheSize <= 0 {
		return fmt.Errorf("%w: node_size and cache_size must be positive", ErrInvalidConfig)
	}
	if c.MaxStates <= 0 {
		return fmt.Errorf("%w: max_states must be positive, got %d", ErrInvalidConfig, c.MaxStates)
	}
	if !contains([]string{"debug", "info", "warn", "error"}, c.LogLevel) {
		return fmt.Errorf("%w: unknown log level %q", ErrInvalidConfig, c.LogLevel)
	}
	if !contains([]string{ColorAuto, ColorAlways, ColorNever}, c.Color) {
		return fmt.Errorf("%w: unknown color mode %q", ErrInvalidConfig, c.Color)
	}
	return nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
