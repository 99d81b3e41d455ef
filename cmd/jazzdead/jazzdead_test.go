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
	"bytes"
	"errors"
	"math/big"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/scott-cotton/cli"

	"github.com/jazzpetri/deadlock/config"
	"github.com/jazzpetri/deadlock/context"
	"github.com/jazzpetri/deadlock/deadlock"
	"github.com/jazzpetri/deadlock/petri"
	"github.com/jazzpetri/deadlock/state"
	"github.com/jazzpetri/deadlock/verification"
)

func TestDiffMarkingKeys(t *testing.T) {
	tests := []struct {
		name     string
		from, to []string
		want     []string
	}{
		{"identical", []string{"01", "10"}, []string{"01", "10"}, nil},
		{"missing explicit", []string{"01", "10", "11"}, []string{"01", "11"}, []string{"- 10"}},
		{"extra explicit", []string{"01"}, []string{"00", "01"}, []string{"+ 00"}},
		{"disjoint", []string{"00"}, []string{"11"}, []string{"- 00", "+ 11"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, diffMarkingKeys(tt.from, tt.to)); diff != "" {
				t.Errorf("diffMarkingKeys() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestApplyOverrides(t *testing.T) {
	cfg := &MainConfig{MaxIterations: 7, Backend: "sat", AllowDegraded: true, Verbose: true, NoColor: true}
	settings := config.Default()
	cfg.apply(settings)

	want := config.Default()
	want.MaxIterations = 7
	want.Backend = "sat"
	want.AllowDegraded = true
	want.LogLevel = "info"
	want.Color = config.ColorNever
	if diff := cmp.Diff(want, settings); diff != "" {
		t.Errorf("apply() mismatch (-want +got):\n%s", diff)
	}

	untouched := config.Default()
	(&MainConfig{}).apply(untouched)
	if diff := cmp.Diff(config.Default(), untouched); diff != "" {
		t.Errorf("apply() without flags changed settings (-want +got):\n%s", diff)
	}
}

func TestColored(t *testing.T) {
	cfg := &MainConfig{settings: config.Default()}
	var buf bytes.Buffer
	if cfg.colored(&buf) {
		t.Error("auto color on a buffer should be off")
	}
	cfg.settings.Color = config.ColorAlways
	if !cfg.colored(&buf) {
		t.Error("color always should be on")
	}
}

func TestLoadNetArgs(t *testing.T) {
	if _, err := loadNet(nil); !errors.Is(err, cli.ErrUsage) {
		t.Errorf("loadNet(nil) error = %v, want cli.ErrUsage", err)
	}
	if _, err := loadNet([]string{"a.pnml", "b.pnml"}); !errors.Is(err, cli.ErrUsage) {
		t.Errorf("loadNet(two) error = %v, want cli.ErrUsage", err)
	}
}

func TestWriteCheckReport(t *testing.T) {
	net := petri.NewPetriNet("demo", "demo")
	_ = net.AddPlace(petri.NewPlace("P1", "P1", 1))
	_ = net.AddPlace(petri.NewPlace("P2", "P2", 0))

	report := &deadlock.Report{
		Reachable:  big.NewInt(2),
		Iterations: 2,
		Converged:  true,
		Memory:     400,
		Nodes:      3,
		Deadlock: &deadlock.Result{
			Found:       true,
			Witness:     state.Marking{0, 1},
			Marked:      []string{"P2"},
			Candidates:  1,
			Refinements: 0,
			Elapsed:     1500 * time.Microsecond,
		},
	}

	var buf bytes.Buffer
	writeCheckReport(&buf, newPalette(false), net, report)
	out := buf.String()
	for _, want := range []string{
		"demo (2 places, 0 transitions)",
		"2 markings in 2 iterations",
		"3 nodes, 400 bytes",
		"reachable",
		"{P2}",
		"1 candidates, 0 cuts",
		"1.5ms",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("report missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "warning") {
		t.Errorf("converged report should not warn:\n%s", out)
	}

	buf.Reset()
	report.Converged = false
	report.Deadlock = &deadlock.Result{ShortCircuit: true}
	writeCheckReport(&buf, newPalette(false), net, report)
	out = buf.String()
	if !strings.Contains(out, "no input place") || !strings.Contains(out, "partial") {
		t.Errorf("short-circuit report on a partial set:\n%s", out)
	}
	buf.Reset()
	skipped := &deadlock.Report{Converged: true, Skipped: true, Deadlock: &deadlock.Result{ShortCircuit: true}}
	writeCheckReport(&buf, newPalette(false), net, skipped)
	out = buf.String()
	if !strings.Contains(out, "not computed") || strings.Contains(out, "bdd") {
		t.Errorf("skipped report should omit reachable figures:\n%s", out)
	}
}

func TestWriteStats(t *testing.T) {
	m := context.NewMemoryMetrics()
	m.Add("b_total", 2)
	m.Set("a_bytes", 10)

	var buf bytes.Buffer
	writeStats(&buf, m)
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 || !strings.HasPrefix(lines[0], "a_bytes") || !strings.HasPrefix(lines[1], "b_total") {
		t.Errorf("writeStats() =\n%s", buf.String())
	}
}

func TestFormatHelpers(t *testing.T) {
	if got := formatMarked(nil); got != "{}" {
		t.Errorf("formatMarked(nil) = %q", got)
	}
	if got := formatMarked([]string{"a", "b"}); got != "{a, b}" {
		t.Errorf("formatMarked() = %q", got)
	}
	if got := formatPath(nil); got != "(initial marking)" {
		t.Errorf("formatPath(nil) = %q", got)
	}
	if got := formatPath([]string{"t1", "t2"}); got != "t1 -> t2" {
		t.Errorf("formatPath() = %q", got)
	}
}

func TestPropertySuite(t *testing.T) {
	props, err := propertySuite(" done, ,mid", "mid,done")
	if err != nil {
		t.Fatalf("propertySuite() error: %v", err)
	}
	var names []string
	for _, p := range props {
		names = append(names, p.Name)
	}
	want := []string{"deadlock_freedom", "reach done", "reach mid", "mutex mid/done"}
	if diff := cmp.Diff(want, names); diff != "" {
		t.Errorf("property names mismatch (-want +got):\n%s", diff)
	}

	if _, err := propertySuite("", "a,b,c"); !errors.Is(err, cli.ErrUsage) {
		t.Errorf("three mutex places error = %v, want cli.ErrUsage", err)
	}
	if props, err := propertySuite("", ""); err != nil || len(props) != 1 {
		t.Errorf("empty flags = %d properties, %v; want only deadlock freedom", len(props), err)
	}
}

func TestPropertySuiteEvaluate(t *testing.T) {
	// start -> go -> mid -> stop -> done, ending dead in done
	net := petri.NewPetriNet("chain", "chain")
	for _, p := range []struct {
		id     string
		tokens int
	}{{"start", 1}, {"mid", 0}, {"done", 0}} {
		if err := net.AddPlace(petri.NewPlace(p.id, p.id, p.tokens)); err != nil {
			t.Fatal(err)
		}
	}
	for _, id := range []string{"go", "stop"} {
		if err := net.AddTransition(petri.NewTransition(id, id)); err != nil {
			t.Fatal(err)
		}
	}
	for _, a := range [][2]string{{"start", "go"}, {"go", "mid"}, {"mid", "stop"}, {"stop", "done"}} {
		if err := net.AddArc(petri.NewArc("", a[0], a[1], 1)); err != nil {
			t.Fatal(err)
		}
	}

	props, err := propertySuite("done", "start,done")
	if err != nil {
		t.Fatalf("propertySuite() error: %v", err)
	}
	ex := verification.NewExplorer(net, 100)
	ss, err := ex.Explore()
	if err != nil {
		t.Fatalf("Explore() error: %v", err)
	}
	cert := ex.Evaluate(ss, props)
	if cert.DeadlockFree {
		t.Error("chain ends in a dead marking")
	}
	if !cert.Properties[1].Satisfied || !cert.Properties[2].Satisfied {
		t.Errorf("reach done and mutex start/done should hold: %+v", cert.Properties[1:])
	}
	if diff := cmp.Diff([]string{"go", "stop"}, cert.Properties[1].Witness); diff != "" {
		t.Errorf("reach witness mismatch (-want +got):\n%s", diff)
	}
}
