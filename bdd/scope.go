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

package bdd

import (
	"go.uber.org/multierr"
)

// Scope collects handles and releases all of them on Close. It gives
// release-on-every-exit-path semantics to code that builds many
// intermediate formulas:
//
//	s := mgr.NewScope()
//	defer s.Close()
//	a := s.Track(mgr.Var(0))
//	b := s.Track(mgr.Not(a))
//	if err := s.Err(); err != nil {
//		return err
//	}
//
// Keep transfers a handle out of the scope so it survives Close.
type Scope struct {
	m       *Manager
	handles []*Handle
	err     error
}

// NewScope creates an empty scope bound to m.
func (m *Manager) NewScope() *Scope {
	return &Scope{m: m}
}

// Add records h in the scope and returns it. A nil handle is ignored.
func (s *Scope) Add(h *Handle) *Handle {
	if h != nil {
		s.handles = append(s.handles, h)
	}
	return h
}

// Track records the result of a manager operation. The first error is
// remembered and returned by Err.
func (s *Scope) Track(h *Handle, err error) *Handle {
	if err != nil {
		s.err = multierr.Append(s.err, err)
		return nil
	}
	return s.Add(h)
}

// Err returns the errors recorded by Track.
func (s *Scope) Err() error {
	return s.err
}

// Keep removes one occurrence of h from the scope so Close leaves it alive.
func (s *Scope) Keep(h *Handle) *Handle {
	for i := len(s.handles) - 1; i >= 0; i-- {
		if s.handles[i] == h {
			s.handles = append(s.handles[:i], s.handles[i+1:]...)
			break
		}
	}
	return h
}

// Len returns the number of handles owned by the scope.
func (s *Scope) Len() int {
	return len(s.handles)
}

// Close releases every owned handle and aggregates the release errors.
// Closing an empty scope is a no-op.
func (s *Scope) Close() (err error) {
	for _, h := range s.handles {
		h := h
		multierr.AppendInvoke(&err, multierr.Invoke(func() error {
			return s.m.Release(h)
		}))
	}
	s.handles = nil
	return err
}
