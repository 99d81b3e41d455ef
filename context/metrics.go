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

package context

import (
	"sort"
	"sync"
)

// MemoryMetrics is an in-memory MetricsCollector. The CLI prints it after a
// run and tests read it back.
type MemoryMetrics struct {
	mu           sync.Mutex
	counters     map[string]float64
	gauges       map[string]float64
	observations map[string][]float64
}

// NewMemoryMetrics creates an empty collector.
func NewMemoryMetrics() *MemoryMetrics {
	return &MemoryMetrics{
		counters:     make(map[string]float64),
		gauges:       make(map[string]float64),
		observations: make(map[string][]float64),
	}
}

func (m *MemoryMetrics) Inc(name string) {
	m.Add(name, 1)
}

func (m *MemoryMetrics) Add(name string, value float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counters[name] += value
}

func (m *MemoryMetrics) Observe(name string, value float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.observations[name] = append(m.observations[name], value)
}

func (m *MemoryMetrics) Set(name string, value float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.gauges[name] = value
}

// Counter returns the value of a counter, 0 if never touched.
func (m *MemoryMetrics) Counter(name string) float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.counters[name]
}

// Gauge returns the last value set for a gauge and whether it was set.
func (m *MemoryMetrics) Gauge(name string) (float64, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.gauges[name]
	return v, ok
}

// Observations returns a copy of the values recorded for a histogram.
func (m *MemoryMetrics) Observations(name string) []float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]float64(nil), m.observations[name]...)
}

// Snapshot returns counters and gauges merged into one map, sorted names
// included for stable printing.
func (m *MemoryMetrics) Snapshot() ([]string, map[string]float64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	values := make(map[string]float64, len(m.counters)+len(m.gauges))
	for k, v := range m.counters {
		values[k] = v
	}
	for k, v := range m.gauges {
		values[k] = v
	}
	names := make([]string, 0, len(values))
	for k := range values {
		names = append(names, k)
	}
	sort.Strings(names)
	return names, values
}

// RecordingTracer keeps every span it starts. Used by tests to check that
// the analysis phases are traced.
type RecordingTracer struct {
	mu    sync.Mutex
	spans []*RecordedSpan
}

// RecordedSpan is a span kept by RecordingTracer.
type RecordedSpan struct {
	Name       string
	Attributes map[string]interface{}
	Errors     []error
	Ended      bool
	mu         *sync.Mutex
}

// NewRecordingTracer creates an empty recording tracer.
func NewRecordingTracer() *RecordingTracer {
	return &RecordingTracer{}
}

// StartSpan records a new span.
func (r *RecordingTracer) StartSpan(name string) Span {
	r.mu.Lock()
	defer r.mu.Unlock()
	s := &RecordedSpan{
		Name:       name,
		Attributes: make(map[string]interface{}),
		mu:         &r.mu,
	}
	r.spans = append(r.spans, s)
	return s
}

// Spans returns the spans started so far, in start order.
func (r *RecordingTracer) Spans() []*RecordedSpan {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]*RecordedSpan(nil), r.spans...)
}

// Find returns the first span with the given name.
func (r *RecordingTracer) Find(name string) (*RecordedSpan, bool) {
	for _, s := range r.Spans() {
		if s.Name == name {
			return s, true
		}
	}
	return nil, false
}

func (s *RecordedSpan) End() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Ended = true
}

func (s *RecordedSpan) SetAttribute(key string, value interface{}) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Attributes[key] = value
}

func (s *RecordedSpan) RecordError(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Errors = append(s.Errors, err)
}
