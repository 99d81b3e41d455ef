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
	"fmt"

	"github.com/jazzpetri/deadlock/petri"
)

// LintIssue is a structural observation about a net.
type LintIssue struct {
	Type        string
	Severity    string
	Component   string
	ComponentID string
	Message     string
}

// LintResult holds the findings of Lint.
type LintResult struct {
	// DeadlockFree is set when the structure alone rules out deadlocks.
	DeadlockFree bool
	Issues       []LintIssue
	Warnings     []LintIssue
	Analysis     map[string]interface{}
}

// HasIssues returns true if there are any errors.
func (r *LintResult) HasIssues() bool {
	return len(r.Issues) > 0
}

// Lint inspects the topology of net without computing reachable markings:
//   - transitions without input place (the net cannot deadlock)
//   - places that start empty and are never filled
//   - marked places that are consumed but never refilled
//   - token sinks and transitions without output place
//   - disconnected components
//
// The net must be resolved.
func Lint(net *petri.PetriNet) *LintResult {
	result := &LintResult{
		Issues:   []LintIssue{},
		Warnings: []LintIssue{},
		Analysis: make(map[string]interface{}),
	}
	result.Analysis["place_count"] = len(net.Places)
	result.Analysis["transition_count"] = len(net.Transitions)
	result.Analysis["arc_count"] = len(net.Arcs)

	if !net.Resolved() {
		result.Issues = append(result.Issues, LintIssue{
			Type:        "unresolved_net",
			Severity:    "error",
			Component:   "net",
			ComponentID: net.ID,
			Message:     "Petri net is not resolved - call net.Resolve() before linting",
		})
		return result
	}

	lintTransitions(net, result)
	lintPlaces(net, result)
	lintComponents(net, result)
	return result
}

func lintTransitions(net *petri.PetriNet, result *LintResult) {
	for _, t := range net.Transitions {
		if t.IsSource() {
			result.DeadlockFree = true
			result.Warnings = append(result.Warnings, LintIssue{
				Type:        "source_transition",
				Severity:    "info",
				Component:   "transition",
				ComponentID: t.ID,
				Message:     fmt.Sprintf("Transition '%s' has no input place and is always enabled - the net cannot deadlock", t.Name),
			})
		}
		if len(t.Outputs()) == 0 {
			result.Warnings = append(result.Warnings, LintIssue{
				Type:        "sink_transition",
				Severity:    "warning",
				Component:   "transition",
				ComponentID: t.ID,
				Message:     fmt.Sprintf("Transition '%s' has no output place - firing it only removes tokens", t.Name),
			})
		}
		for _, in := range t.Inputs() {
			if in.Weight > 1 {
				result.Warnings = append(result.Warnings, LintIssue{
					Type:        "weighted_arc",
					Severity:    "warning",
					Component:   "transition",
					ComponentID: t.ID,
					Message:     fmt.Sprintf("Transition '%s' reads place '%s' with weight %d - a marked place enables it regardless of weight", t.Name, net.Places[in.Place].ID, in.Weight),
				})
			}
		}
	}
}

func lintPlaces(net *petri.PetriNet, result *LintResult) {
	produced := make([]bool, len(net.Places))
	consumed := make([]bool, len(net.Places))
	for _, t := range net.Transitions {
		for _, p := range t.Outputs() {
			produced[p] = true
		}
		for _, in := range t.Inputs() {
			consumed[in.Place] = true
		}
	}

	for i, p := range net.Places {
		switch {
		case !produced[i] && !p.Marked():
			result.Warnings = append(result.Warnings, LintIssue{
				Type:        "empty_place",
				Severity:    "warning",
				Component:   "place",
				ComponentID: p.ID,
				Message:     fmt.Sprintf("Place '%s' has no incoming arcs and no initial token - it is always empty", p.Name),
			})
		case !produced[i] && consumed[i]:
			result.Warnings = append(result.Warnings, LintIssue{
				Type:        "unreplenished_place",
				Severity:    "warning",
				Component:   "place",
				ComponentID: p.ID,
				Message:     fmt.Sprintf("Place '%s' has an initial token but no incoming arcs - once consumed it stays empty", p.Name),
			})
		}
		if produced[i] && !consumed[i] {
			result.Warnings = append(result.Warnings, LintIssue{
				Type:        "token_sink",
				Severity:    "warning",
				Component:   "place",
				ComponentID: p.ID,
				Message:     fmt.Sprintf("Place '%s' has no outgoing arcs - its token is never consumed (might be an end place)", p.Name),
			})
		}
	}
}

// lintComponents counts connected components with a union-find over
// places and transitions.
func lintComponents(net *petri.PetriNet, result *LintResult) {
	nPlaces := len(net.Places)
	parent := make([]int, nPlaces+len(net.Transitions))
	for i := range parent {
		parent[i] = i
	}
	var find func(int) int
	find = func(x int) int {
		if parent[x] != x {
			parent[x] = find(parent[x])
		}
		return parent[x]
	}
	union := func(a, b int) {
		parent[find(a)] = find(b)
	}

	for ti, t := range net.Transitions {
		node := nPlaces + ti
		for _, in := range t.Inputs() {
			union(in.Place, node)
		}
		for _, p := range t.Outputs() {
			union(p, node)
		}
	}

	components := 0
	for i := range parent {
		if find(i) == i {
			components++
		}
	}
	if components > 1 {
		result.Warnings = append(result.Warnings, LintIssue{
			Type:        "disconnected_components",
			Severity:    "warning",
			Component:   "net",
			ComponentID: net.ID,
			Message:     fmt.Sprintf("Net has %d disconnected components", components),
		})
	}
	result.Analysis["connected_components"] = components
}
