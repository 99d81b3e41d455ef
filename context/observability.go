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

// Tracer provides distributed tracing capabilities.
// Implementations can integrate with any tracing backend.
type Tracer interface {
	// StartSpan creates a new trace span with the given name.
	// The span should be ended by calling End() when the operation completes.
	//
	// Example:
	//   span := tracer.StartSpan("reachability")
	//   defer span.End()
	StartSpan(name string) Span
}

// Span represents a unit of work in a trace.
type Span interface {
	// End marks the span as complete.
	End()

	// SetAttribute adds a key-value attribute to the span.
	SetAttribute(key string, value interface{})

	// RecordError records an error that occurred during the span.
	RecordError(err error)
}

// MetricsCollector records analysis metrics.
//
// Metric names use snake_case with a unit suffix where one applies, e.g.
// "reachability_iterations_total" or "deadlock_detect_seconds".
type MetricsCollector interface {
	// Inc increments a counter metric by 1.
	Inc(name string)

	// Add adds a value to a counter or gauge metric.
	Add(name string, value float64)

	// Observe records a value in a histogram metric.
	//
	// Example:
	//   metrics.Observe("deadlock_detect_seconds", elapsed.Seconds())
	Observe(name string, value float64)

	// Set sets a gauge metric to a specific value.
	//
	// Example:
	//   metrics.Set("bdd_memory_bytes", float64(mgr.MemoryInUse()))
	Set(name string, value float64)
}

// Logger provides structured logging.
type Logger interface {
	// Debug logs a debug-level message with optional fields.
	// Per-iteration and per-candidate events are logged at this level.
	//
	// Example:
	//   logger.Debug("fixpoint iteration", map[string]interface{}{
	//       "iteration": k,
	//   })
	Debug(msg string, fields map[string]interface{})

	// Info logs an info-level message with optional fields.
	Info(msg string, fields map[string]interface{})

	// Warn logs a warning-level message with optional fields.
	// Degraded results, such as an exhausted iteration cap, are logged here.
	Warn(msg string, fields map[string]interface{})

	// Error logs an error-level message with optional fields.
	Error(msg string, fields map[string]interface{})
}
