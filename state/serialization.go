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

package state

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/goccy/go-yaml"

	"github.com/jazzpetri/deadlock/petri"
)

// Snapshot is the serializable representation of a Marking.
// Places are keyed by ID so the snapshot stays readable and independent of
// place order; Marked lists the places holding a token in net order.
type Snapshot struct {
	NetID     string         `json:"net_id" yaml:"net_id"`
	Timestamp time.Time      `json:"timestamp" yaml:"timestamp"`
	Places    map[string]int `json:"places" yaml:"places"`
	Marked    []string       `json:"marked" yaml:"marked"`
}

// NewSnapshot builds a snapshot of marking m over the places of net.
// Returns an error if m does not cover exactly the places of the net.
func NewSnapshot(net *petri.PetriNet, m Marking, at time.Time) (*Snapshot, error) {
	if err := m.Validate(len(net.Places)); err != nil {
		return nil, err
	}
	ids := net.PlaceIDs()
	s := &Snapshot{
		NetID:     net.ID,
		Timestamp: at,
		Places:    make(map[string]int, len(ids)),
		Marked:    m.Marked(ids),
	}
	for i, id := range ids {
		s.Places[id] = int(m[i])
	}
	if s.Marked == nil {
		s.Marked = []string{}
	}
	return s, nil
}

// Marking converts the snapshot back into a marking in the place order of net.
// Every place of the net must appear in the snapshot and no unknown place may.
func (s *Snapshot) Marking(net *petri.PetriNet) (Marking, error) {
	if len(s.Places) != len(net.Places) {
		return nil, fmt.Errorf("%w: snapshot has %d places, net has %d",
			ErrLengthMismatch, len(s.Places), len(net.Places))
	}
	m := NewMarking(len(net.Places))
	for id, v := range s.Places {
		i, ok := net.PlaceIndex(id)
		if !ok {
			return nil, fmt.Errorf("%w: %s", petri.ErrUnknownPlace, id)
		}
		if v < 0 || v > 1 {
			return nil, fmt.Errorf("%w: place %s has %d", ErrNotSafe, id, v)
		}
		m[i] = uint8(v)
	}
	return m, nil
}

// Serialize converts the snapshot to indented JSON.
func (s *Snapshot) Serialize() ([]byte, error) {
	if s == nil {
		return nil, fmt.Errorf("cannot serialize nil snapshot")
	}
	return json.MarshalIndent(s, "", "  ")
}

// SerializeYAML converts the snapshot to YAML.
func (s *Snapshot) SerializeYAML() ([]byte, error) {
	if s == nil {
		return nil, fmt.Errorf("cannot serialize nil snapshot")
	}
	return yaml.Marshal(s)
}

// DeserializeSnapshot converts JSON back to a Snapshot.
func DeserializeSnapshot(data []byte) (*Snapshot, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("cannot deserialize empty data")
	}
	var s Snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to unmarshal JSON: %w", err)
	}
	return &s, nil
}

// DeserializeSnapshotYAML converts YAML back to a Snapshot.
func DeserializeSnapshotYAML(data []byte) (*Snapshot, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("cannot deserialize empty data")
	}
	var s Snapshot
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to unmarshal YAML: %w", err)
	}
	return &s, nil
}

// SaveSnapshotToFile serializes a snapshot to a JSON file.
// The file is created with 0644 permissions (readable by all, writable by owner).
func SaveSnapshotToFile(s *Snapshot, filepath string) error {
	data, err := s.Serialize()
	if err != nil {
		return fmt.Errorf("serialization failed: %w", err)
	}

	if err := os.WriteFile(filepath, data, 0644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	return nil
}

// LoadSnapshotFromFile deserializes a snapshot from a JSON file.
func LoadSnapshotFromFile(filepath string) (*Snapshot, error) {
	data, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	return DeserializeSnapshot(data)
}
