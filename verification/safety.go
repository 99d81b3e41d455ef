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

package verification

import "fmt"

// SafetyProperty is a named property checked against an explored state
// space. Properties are composed into suites with VerifyProperties.
type SafetyProperty struct {
	// Name is the unique identifier for this property
	Name string

	// Description is a human-readable explanation of what the property checks
	Description string

	// Check performs the verification
	Check func(e *Explorer, ss *StateSpace) VerificationResult
}

// NewDeadlockFreedomProperty checks that no reachable marking disables
// every transition.
//
// Example:
//
//	prop := NewDeadlockFreedomProperty("no_deadlocks")
func NewDeadlockFreedomProperty(name string) SafetyProperty {
	return SafetyProperty{
		Name:        name,
		Description: "net has no reachable dead marking",
		Check: func(e *Explorer, ss *StateSpace) VerificationResult {
			result := e.CheckDeadlockFreedom(ss)
			result.Property = name
			return result
		},
	}
}

// NewReachabilityProperty checks that some reachable marking marks placeID.
func NewReachabilityProperty(name, placeID string) SafetyProperty {
	return SafetyProperty{
		Name:        name,
		Description: fmt.Sprintf("place %s can be marked", placeID),
		Check: func(e *Explorer, ss *StateSpace) VerificationResult {
			result := e.CheckReachability(ss, placeID)
			result.Property = name
			return result
		},
	}
}

// NewMutualExclusionProperty checks that two places are never marked together.
//
// Example:
//
//	prop := NewMutualExclusionProperty("exclusive_branches", "branch_a", "branch_b")
func NewMutualExclusionProperty(name, placeA, placeB string) SafetyProperty {
	return SafetyProperty{
		Name:        name,
		Description: fmt.Sprintf("places %s and %s are mutually exclusive", placeA, placeB),
		Check: func(e *Explorer, ss *StateSpace) VerificationResult {
			result := e.CheckMutualExclusion(ss, placeA, placeB)
			result.Property = name
			return result
		},
	}
}

// VerifyProperties explores the state space once and evaluates every
// property on it.
//
// A state limit error does not prevent the properties from being checked
// on the explored portion; it is returned with the certificate.
func (e *Explorer) VerifyProperties(properties []SafetyProperty) (*Certificate, error) {
	ss, err := e.Explore()
	if ss == nil {
		return nil, err
	}
	return e.Evaluate(ss, properties), err
}

// Evaluate checks every property against an already explored state space.
// DeadlockFree is false if any property built by NewDeadlockFreedomProperty
// failed.
func (e *Explorer) Evaluate(ss *StateSpace, properties []SafetyProperty) *Certificate {
	cert := &Certificate{
		NetID:        e.net.ID,
		StateCount:   ss.Len(),
		EdgeCount:    ss.EdgeCount(),
		Complete:     ss.Complete,
		DeadlockFree: true,
	}

	for _, prop := range properties {
		result := prop.Check(e, ss)
		cert.Properties = append(cert.Properties, result)
		if !result.Satisfied && result.Kind == "deadlock_freedom" {
			cert.DeadlockFree = false
		}
	}
	return cert
}
