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

package config

// DefaultMaxIterations is the default cap on reachability fixpoint iterations.
//
// The marking space of a 1-safe net is finite, so the fixpoint always
// converges; the cap only guards against a broken image computation. A net
// with n places converges in at most 2^n iterations, and in practice in
// about the length of its longest firing sequence. Hitting the cap produces
// a degraded result, never a silent partial one.
//
// Set MaxIterations in Config to override this default.
const DefaultMaxIterations = 1000

// DefaultBackend is the default integer-program backend name.
//
// "auto" tries the pseudo-boolean backend first and falls back to the
// clausal SAT backend if it cannot be created.
const DefaultBackend = "auto"

// DefaultNodeSize is the default initial node table size of the BDD manager.
const DefaultNodeSize = 10000

// DefaultCacheSize is the default operation cache size of the BDD manager.
const DefaultCacheSize = 5000

// DefaultMaxStates bounds the explicit baseline enumeration.
//
// The explicit explorer stores every marking, so it is only meant for small
// nets used to cross-check the symbolic engine.
const DefaultMaxStates = 100000

// DefaultLogLevel is the default log level of the CLI.
const DefaultLogLevel = "warn"

// Color modes accepted by Config.Color.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)
