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

// Package pnml reads Petri nets from PNML (XML) and YAML descriptions.
//
// The readers are lenient the way common PNML tools are: places and
// transitions without id are skipped, arcs without source or target are
// skipped, and an initial marking that is not a number reads as 0. The
// resulting net is validated and resolved before it is returned.
package pnml

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/jazzpetri/deadlock/petri"
)

var (
	// ErrMissingPNML is returned when the document has no <pnml> root.
	ErrMissingPNML = errors.New("invalid PNML: missing <pnml>")

	// ErrMissingNet is returned when <pnml> has no <net>.
	ErrMissingNet = errors.New("invalid PNML: missing <net>")
)

type document struct {
	XMLName xml.Name  `xml:"pnml"`
	Nets    []netElem `xml:"net"`
}

type netElem struct {
	ID          string           `xml:"id,attr"`
	Name        label            `xml:"name"`
	Pages       []page           `xml:"page"`
	Places      []placeElem      `xml:"place"`
	Transitions []transitionElem `xml:"transition"`
	Arcs        []arcElem        `xml:"arc"`
}

type page struct {
	Places      []placeElem      `xml:"place"`
	Transitions []transitionElem `xml:"transition"`
	Arcs        []arcElem        `xml:"arc"`
}

type label struct {
	Text *string `xml:"text"`
}

type placeElem struct {
	ID             string `xml:"id,attr"`
	Name           label  `xml:"name"`
	InitialMarking label  `xml:"initialMarking"`
}

type transitionElem struct {
	ID   string `xml:"id,attr"`
	Name label  `xml:"name"`
}

type arcElem struct {
	ID          string `xml:"id,attr"`
	Source      string `xml:"source,attr"`
	Target      string `xml:"target,attr"`
	Inscription label  `xml:"inscription"`
}

func (l label) text() string {
	if l.Text == nil {
		return ""
	}
	return strings.TrimSpace(*l.Text)
}

// ParsePNML reads the first net of a PNML document. Elements are taken from
// the first <page> of the net, or from the net itself when it has none.
func ParsePNML(r io.Reader) (*petri.PetriNet, error) {
	var doc document
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		var ue xml.UnmarshalError
		if errors.As(err, &ue) {
			return nil, fmt.Errorf("%w: %v", ErrMissingPNML, err)
		}
		return nil, fmt.Errorf("parsing PNML: %w", err)
	}
	if len(doc.Nets) == 0 {
		return nil, ErrMissingNet
	}
	n := doc.Nets[0]

	root := page{Places: n.Places, Transitions: n.Transitions, Arcs: n.Arcs}
	if len(n.Pages) > 0 {
		root = n.Pages[0]
	}

	id := n.ID
	if id == "" {
		id = "net"
	}
	net := petri.NewPetriNet(id, nameOr(n.Name, id))

	for _, p := range root.Places {
		if p.ID == "" {
			continue
		}
		if err := net.AddPlace(petri.NewPlace(p.ID, nameOr(p.Name, p.ID), parseInt(p.InitialMarking.text(), 0))); err != nil {
			return nil, err
		}
	}
	for _, t := range root.Transitions {
		if t.ID == "" {
			continue
		}
		if err := net.AddTransition(petri.NewTransition(t.ID, nameOr(t.Name, t.ID))); err != nil {
			return nil, err
		}
	}
	for _, a := range root.Arcs {
		if a.Source == "" || a.Target == "" {
			continue
		}
		if err := net.AddArc(petri.NewArc(a.ID, a.Source, a.Target, parseInt(a.Inscription.text(), 1))); err != nil {
			return nil, err
		}
	}

	if err := net.Resolve(); err != nil {
		return nil, err
	}
	return net, nil
}

// parseInt reads a leading decimal integer and returns def when there is
// none. "1 token" reads as 1.
func parseInt(s string, def int) int {
	end := 0
	for end < len(s) && (s[end] >= '0' && s[end] <= '9' || end == 0 && (s[end] == '-' || s[end] == '+')) {
		end++
	}
	v, err := strconv.Atoi(s[:end])
	if err != nil {
		return def
	}
	return v
}

func nameOr(l label, def string) string {
	if s := l.text(); s != "" {
		return s
	}
	return def
}
