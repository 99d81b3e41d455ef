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
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/jazzpetri/deadlock/context"
	"github.com/jazzpetri/deadlock/deadlock"
	"github.com/jazzpetri/deadlock/petri"
)

// palette formats report fragments, colored or plain.
type palette struct {
	Label func(string, ...any) string
	Good  func(string, ...any) string
	Bad   func(string, ...any) string
	Warn  func(string, ...any) string
}

func newPalette(enabled bool) *palette {
	if !enabled {
		return &palette{Label: fmt.Sprintf, Good: fmt.Sprintf, Bad: fmt.Sprintf, Warn: fmt.Sprintf}
	}
	sprintf := func(attrs ...color.Attribute) func(string, ...any) string {
		c := color.New(attrs...)
		c.EnableColor()
		return c.SprintfFunc()
	}
	return &palette{
		Label: sprintf(color.Bold),
		Good:  sprintf(color.FgGreen, color.Bold),
		Bad:   sprintf(color.FgRed, color.Bold),
		Warn:  sprintf(color.FgYellow),
	}
}

func writeField(w io.Writer, p *palette, name string, format string, args ...any) {
	fmt.Fprintf(w, "%s %s\n", p.Label("%-12s", name+":"), fmt.Sprintf(format, args...))
}

// writeCheckReport prints the outcome of deadlock.Check.
func writeCheckReport(w io.Writer, p *palette, net *petri.PetriNet, r *deadlock.Report) {
	writeField(w, p, "net", "%s (%d places, %d transitions)", net.ID, len(net.Places), len(net.Transitions))
	if r.Skipped {
		writeField(w, p, "reachable", "not computed")
	} else {
		writeField(w, p, "reachable", "%s markings in %d iterations", r.Reachable.String(), r.Iterations)
		writeField(w, p, "bdd", "%d nodes, %d bytes", r.Nodes, r.Memory)
	}
	if !r.Converged {
		writeField(w, p, "warning", "%s", p.Warn("fixpoint stopped at the iteration cap, the reachable set is partial"))
	}

	res := r.Deadlock
	switch {
	case res.ShortCircuit:
		writeField(w, p, "deadlock", "%s", p.Good("none (a transition has no input place)"))
	case res.Found:
		writeField(w, p, "deadlock", "%s", p.Bad("reachable"))
		writeField(w, p, "witness", "%s", formatMarked(res.Marked))
	default:
		writeField(w, p, "deadlock", "%s", p.Good("none"))
	}
	if res.Degraded {
		writeField(w, p, "warning", "%s", p.Warn("result computed against a partial reachable set"))
	}
	writeField(w, p, "refinement", "%d candidates, %d cuts", res.Candidates, res.Refinements)
	writeField(w, p, "elapsed", "%s", res.Elapsed)
}

// writeLint prints structural warnings and issues.
func writeLint(w io.Writer, p *palette, l *deadlock.LintResult) {
	for _, issue := range l.Issues {
		fmt.Fprintf(w, "%s %s\n", p.Bad("%-8s", issue.Severity), issue.Message)
	}
	for _, warning := range l.Warnings {
		fmt.Fprintf(w, "%s %s\n", p.Warn("%-8s", warning.Severity), warning.Message)
	}
}

func formatMarked(ids []string) string {
	if len(ids) == 0 {
		return "{}"
	}
	return "{" + strings.Join(ids, ", ") + "}"
}

// writeStats prints every collected metric.
func writeStats(w io.Writer, m *context.MemoryMetrics) {
	names, values := m.Snapshot()
	for _, name := range names {
		fmt.Fprintf(w, "%-32s %g\n", name, values[name])
	}
}
