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

package pnml

import (
	"fmt"

	"github.com/goccy/go-yaml"

	"github.com/jazzpetri/deadlock/petri"
)

// Document is the YAML form of a net:
//
//	id: mutex
//	places:
//	  - {id: idle, tokens: 1}
//	  - {id: busy}
//	transitions:
//	  - {id: enter}
//	arcs:
//	  - {source: idle, target: enter}
//	  - {source: enter, target: busy}
type Document struct {
	ID          string          `yaml:"id"`
	Name        string          `yaml:"name,omitempty"`
	Places      []PlaceDoc      `yaml:"places"`
	Transitions []TransitionDoc `yaml:"transitions"`
	Arcs        []ArcDoc        `yaml:"arcs"`
}

// PlaceDoc describes a place.
type PlaceDoc struct {
	ID     string `yaml:"id"`
	Name   string `yaml:"name,omitempty"`
	Tokens int    `yaml:"tokens,omitempty"`
}

// TransitionDoc describes a transition.
type TransitionDoc struct {
	ID   string `yaml:"id"`
	Name string `yaml:"name,omitempty"`
}

// ArcDoc describes an arc. A missing weight is 1.
type ArcDoc struct {
	ID     string `yaml:"id,omitempty"`
	Source string `yaml:"source"`
	Target string `yaml:"target"`
	Weight int    `yaml:"weight,omitempty"`
}

// ParseYAML decodes a YAML net description. Unknown fields are rejected.
func ParseYAML(data []byte) (*petri.PetriNet, error) {
	var doc Document
	if err := yaml.UnmarshalWithOptions(data, &doc, yaml.Strict()); err != nil {
		return nil, fmt.Errorf("parsing YAML net: %w", err)
	}
	return doc.Build()
}

// Build creates the resolved net described by d, with the same leniency
// as ParsePNML.
func (d *Document) Build() (*petri.PetriNet, error) {
	id := d.ID
	if id == "" {
		id = "net"
	}
	name := d.Name
	if name == "" {
		name = id
	}
	net := petri.NewPetriNet(id, name)

	for _, p := range d.Places {
		if p.ID == "" {
			continue
		}
		if err := net.AddPlace(petri.NewPlace(p.ID, orDefault(p.Name, p.ID), p.Tokens)); err != nil {
			return nil, err
		}
	}
	for _, t := range d.Transitions {
		if t.ID == "" {
			continue
		}
		if err := net.AddTransition(petri.NewTransition(t.ID, orDefault(t.Name, t.ID))); err != nil {
			return nil, err
		}
	}
	for _, a := range d.Arcs {
		if a.Source == "" || a.Target == "" {
			continue
		}
		if err := net.AddArc(petri.NewArc(a.ID, a.Source, a.Target, a.Weight)); err != nil {
			return nil, err
		}
	}

	if err := net.Resolve(); err != nil {
		return nil, err
	}
	return net, nil
}

// FromNet returns the YAML document describing net.
func FromNet(net *petri.PetriNet) *Document {
	d := &Document{ID: net.ID, Name: net.Name}
	for _, p := range net.Places {
		d.Places = append(d.Places, PlaceDoc{ID: p.ID, Name: p.Name, Tokens: p.InitialMarking})
	}
	for _, t := range net.Transitions {
		d.Transitions = append(d.Transitions, TransitionDoc{ID: t.ID, Name: t.Name})
	}
	for _, a := range net.Arcs {
		d.Arcs = append(d.Arcs, ArcDoc{ID: a.ID, Source: a.SourceID, Target: a.TargetID, Weight: a.Weight})
	}
	return d
}

// Marshal encodes the document as YAML.
func (d *Document) Marshal() ([]byte, error) {
	return yaml.Marshal(d)
}

func orDefault(s, def string) string {
	if s != "" {
		return s
	}
	return def
}
