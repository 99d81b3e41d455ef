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

	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
	"github.com/scott-cotton/cli"
	"go.uber.org/multierr"

	"github.com/jazzpetri/deadlock/state"
	"github.com/jazzpetri/deadlock/symbolic"
	"github.com/jazzpetri/deadlock/verification"
)

func compare(cfg *CompareConfig, cc *cli.Context, args []string) (err error) {
	args, err = cfg.Compare.Parse(cc, args)
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
	symbolicSet, err := a.Result.Markings()
	if err != nil {
		return err
	}

	limit := cfg.MaxStates
	if limit <= 0 {
		limit = cfg.settings.MaxStates
	}
	ss, err := verification.NewExplorer(net, limit).Explore()
	if err != nil {
		return err
	}

	p := newPalette(cfg.colored(cc.Out))
	writeField(cc.Out, p, "symbolic", "%d markings (memory %d bytes)", len(symbolicSet), a.Result.Memory())
	writeField(cc.Out, p, "explicit", "%d markings", ss.Len())

	lines := diffMarkingKeys(sortedKeys(symbolicSet), sortedKeys(ss.Markings()))
	if len(lines) == 0 {
		writeField(cc.Out, p, "result", "%s", p.Good("identical"))
		return nil
	}
	writeField(cc.Out, p, "result", "%s", p.Bad("mismatch (- symbolic only, + explicit only)"))
	for _, line := range lines {
		if line[0] == '-' {
			fmt.Fprintln(cc.Out, p.Bad("%s", line))
		} else {
			fmt.Fprintln(cc.Out, p.Warn("%s", line))
		}
	}
	return cli.ExitCodeErr(exitError)
}

func sortedKeys(ms []state.Marking) []string {
	keys := make([]string, len(ms))
	for i, m := range ms {
		keys[i] = m.Key()
	}
	sort.Strings(keys)
	return keys
}

// diffMarkingKeys diffs two sorted key lists. Each key is mapped to one
// rune so the line diff runs on rune sequences. Keys only in from are
// prefixed "- ", keys only in to "+ ".
func diffMarkingKeys(from, to []string) []string {
	runes := map[string]rune{}
	keys := map[rune]string{}
	encode := func(list []string) []rune {
		out := make([]rune, len(list))
		for i, k := range list {
			r, ok := runes[k]
			if !ok {
				r = rune(len(keys) + 1)
				if r >= 0xD800 {
					// skip the surrogate range, it does not survive string conversion
					r += 0x800
				}
				runes[k] = r
				keys[r] = k
			}
			out[i] = r
		}
		return out
	}
	fromRunes, toRunes := encode(from), encode(to)

	var lines []string
	for _, d := range diffpatch.New().DiffMainRunes(fromRunes, toRunes, false) {
		var prefix string
		switch d.Type {
		case diffpatch.DiffDelete:
			prefix = "- "
		case diffpatch.DiffInsert:
			prefix = "+ "
		default:
			continue
		}
		for _, r := range d.Text {
			lines = append(lines, prefix+keys[r])
		}
	}
	return lines
}
