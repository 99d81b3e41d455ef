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
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jazzpetri/deadlock/petri"
)

// ErrUnknownFormat is returned by Load for an unsupported file extension.
var ErrUnknownFormat = errors.New("unknown net file format")

// Load reads a net file. The format follows the extension: .pnml and .xml
// are PNML, .yaml and .yml are YAML.
func Load(path string) (*petri.PetriNet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read net file: %w", err)
	}

	var net *petri.PetriNet
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".pnml", ".xml":
		net, err = ParsePNML(bytes.NewReader(data))
	case ".yaml", ".yml":
		net, err = ParseYAML(data)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, ext)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return net, nil
}
