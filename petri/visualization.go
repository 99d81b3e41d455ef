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

package petri

import (
	"fmt"
	"strings"
)

// ToDOT generates a Graphviz DOT representation of the Petri net.
// If marking is non-nil, places holding a token in it are filled; this is
// how a deadlock witness is drawn. A nil marking draws the initial marking.
func (pn *PetriNet) ToDOT(marking []uint8) string {
	var sb strings.Builder

	if marking == nil {
		marking = pn.InitialTokens()
	}

	// Header
	sb.WriteString(fmt.Sprintf("digraph \"%s\" {\n", escapeLabel(pn.Name)))
	sb.WriteString("  rankdir=LR;\n")
	sb.WriteString("  node [fontname=\"Helvetica\"];\n")
	sb.WriteString("  edge [fontname=\"Helvetica\"];\n\n")

	// Places (circles)
	sb.WriteString("  // Places\n")
	for i, place := range pn.Places {
		label := escapeLabel(displayName(place.Name, place.ID))
		style := ""
		if i < len(marking) && marking[i] == 1 {
			label += "\\n●"
			style = " style=filled fillcolor=\"#f4d03f\""
		}
		sb.WriteString(fmt.Sprintf("  \"%s\" [label=\"%s\" shape=circle%s];\n",
			escapeLabel(place.ID), label, style))
	}
	sb.WriteString("\n")

	// Transitions (boxes)
	sb.WriteString("  // Transitions\n")
	for _, trans := range pn.Transitions {
		label := escapeLabel(displayName(trans.Name, trans.ID))
		sb.WriteString(fmt.Sprintf("  \"%s\" [label=\"%s\" shape=box];\n",
			escapeLabel(trans.ID), label))
	}
	sb.WriteString("\n")

	// Arcs (edges)
	sb.WriteString("  // Arcs\n")
	for _, arc := range pn.Arcs {
		weight := ""
		if arc.Weight > 1 {
			weight = fmt.Sprintf(" [label=\"%d\"]", arc.Weight)
		}
		sb.WriteString(fmt.Sprintf("  \"%s\" -> \"%s\"%s;\n",
			escapeLabel(arc.SourceID), escapeLabel(arc.TargetID), weight))
	}

	sb.WriteString("}\n")
	return sb.String()
}

// ToMermaid generates a Mermaid diagram representation of the Petri net.
func (pn *PetriNet) ToMermaid() string {
	var sb strings.Builder

	sb.WriteString("graph LR\n")

	for _, place := range pn.Places {
		label := displayName(place.Name, place.ID)
		if place.Marked() {
			label += " ●"
		}
		sb.WriteString(fmt.Sprintf("  %s((%s))\n",
			place.ID, escapeMermaidLabel(label)))
	}

	for _, trans := range pn.Transitions {
		sb.WriteString(fmt.Sprintf("  %s[%s]\n",
			trans.ID, escapeMermaidLabel(displayName(trans.Name, trans.ID))))
	}

	for _, arc := range pn.Arcs {
		if arc.Weight > 1 {
			sb.WriteString(fmt.Sprintf("  %s -->|%d| %s\n",
				arc.SourceID, arc.Weight, arc.TargetID))
		} else {
			sb.WriteString(fmt.Sprintf("  %s --> %s\n",
				arc.SourceID, arc.TargetID))
		}
	}

	return sb.String()
}

func displayName(name, id string) string {
	if name == "" {
		return id
	}
	return name
}

// escapeLabel escapes special characters for DOT format.
func escapeLabel(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "\"", "\\\"")
	s = strings.ReplaceAll(s, "\n", "\\n")
	return s
}

// escapeMermaidLabel escapes special characters for Mermaid format.
func escapeMermaidLabel(s string) string {
	s = strings.ReplaceAll(s, "\"", "&quot;")
	s = strings.ReplaceAll(s, "<", "&lt;")
	s = strings.ReplaceAll(s, ">", "&gt;")
	return s
}
