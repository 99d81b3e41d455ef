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
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/jazzpetri/deadlock/petri"
)

func snapshotNet(t *testing.T) *petri.PetriNet {
	t.Helper()
	net := petri.NewPetriNet("snap", "Snapshot Net")
	for _, id := range []string{"p1", "p2", "p3"} {
		if err := net.AddPlace(petri.NewPlace(id, id, 0)); err != nil {
			t.Fatalf("AddPlace(%s): %v", id, err)
		}
	}
	return net
}

func TestSnapshot_JSONRoundTrip(t *testing.T) {
	net := snapshotNet(t)
	at := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	snap, err := NewSnapshot(net, Marking{0, 1, 1}, at)
	if err != nil {
		t.Fatalf("NewSnapshot() error: %v", err)
	}
	if diff := cmp.Diff([]string{"p2", "p3"}, snap.Marked); diff != "" {
		t.Errorf("Marked mismatch (-want +got):\n%s", diff)
	}

	data, err := snap.Serialize()
	if err != nil {
		t.Fatalf("Serialize() error: %v", err)
	}
	back, err := DeserializeSnapshot(data)
	if err != nil {
		t.Fatalf("DeserializeSnapshot() error: %v", err)
	}
	if diff := cmp.Diff(snap, back); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}

	m, err := back.Marking(net)
	if err != nil {
		t.Fatalf("Marking() error: %v", err)
	}
	if !m.Equal(Marking{0, 1, 1}) {
		t.Errorf("Marking() = %v, want [0 1 1]", m)
	}
}

func TestSnapshot_YAML(t *testing.T) {
	net := snapshotNet(t)
	snap, err := NewSnapshot(net, Marking{1, 0, 0}, time.Time{})
	if err != nil {
		t.Fatalf("NewSnapshot() error: %v", err)
	}

	data, err := snap.SerializeYAML()
	if err != nil {
		t.Fatalf("SerializeYAML() error: %v", err)
	}
	back, err := DeserializeSnapshotYAML(data)
	if err != nil {
		t.Fatalf("DeserializeSnapshotYAML() error: %v", err)
	}
	if diff := cmp.Diff(snap.Places, back.Places); diff != "" {
		t.Errorf("places mismatch (-want +got):\n%s", diff)
	}
}

func TestSnapshot_Errors(t *testing.T) {
	net := snapshotNet(t)

	if _, err := NewSnapshot(net, Marking{1}, time.Time{}); !errors.Is(err, ErrLengthMismatch) {
		t.Errorf("NewSnapshot() short marking error = %v, want ErrLengthMismatch", err)
	}

	bad := &Snapshot{Places: map[string]int{"p1": 0, "p2": 0, "zz": 1}}
	if _, err := bad.Marking(net); !errors.Is(err, petri.ErrUnknownPlace) {
		t.Errorf("Marking() unknown place error = %v, want ErrUnknownPlace", err)
	}

	unsafe := &Snapshot{Places: map[string]int{"p1": 0, "p2": 3, "p3": 0}}
	if _, err := unsafe.Marking(net); !errors.Is(err, ErrNotSafe) {
		t.Errorf("Marking() unsafe error = %v, want ErrNotSafe", err)
	}

	if _, err := DeserializeSnapshot(nil); err == nil {
		t.Error("DeserializeSnapshot(nil) should fail")
	}
	var nilSnap *Snapshot
	if _, err := nilSnap.Serialize(); err == nil {
		t.Error("Serialize() on nil snapshot should fail")
	}
}

func TestSnapshot_File(t *testing.T) {
	net := snapshotNet(t)
	snap, err := NewSnapshot(net, Marking{0, 0, 1}, time.Time{})
	if err != nil {
		t.Fatalf("NewSnapshot() error: %v", err)
	}

	path := filepath.Join(t.TempDir(), "witness.json")
	if err := SaveSnapshotToFile(snap, path); err != nil {
		t.Fatalf("SaveSnapshotToFile() error: %v", err)
	}
	back, err := LoadSnapshotFromFile(path)
	if err != nil {
		t.Fatalf("LoadSnapshotFromFile() error: %v", err)
	}
	if diff := cmp.Diff(snap.Marked, back.Marked); diff != "" {
		t.Errorf("marked mismatch (-want +got):\n%s", diff)
	}

	if _, err := LoadSnapshotFromFile(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("LoadSnapshotFromFile() missing file should fail")
	}
}
