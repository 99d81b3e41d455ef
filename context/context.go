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

// Package context carries the ambient services of an analysis run: the
// standard context, a clock for elapsed-time measurement, and the logger,
// metrics collector and tracer. Every service defaults to a no-op so core
// code never checks for nil.
package context

import (
	"context"

	"github.com/jazzpetri/deadlock/clock"
)

// AnalysisContext is passed to the reachability and detection phases.
type AnalysisContext struct {
	// Context is the standard Go context. Cancellation is honored between
	// solver calls, never inside one.
	Context context.Context

	// Clock measures elapsed time.
	Clock clock.Clock

	Tracer  Tracer
	Metrics MetricsCollector
	Logger  Logger
}

// NewAnalysisContext creates an analysis context with no-op observability.
// A nil ctx becomes context.Background and a nil clock the real clock.
func NewAnalysisContext(ctx context.Context, clk clock.Clock) *AnalysisContext {
	if ctx == nil {
		ctx = context.Background()
	}
	if clk == nil {
		clk = clock.NewRealTimeClock()
	}
	ac := &AnalysisContext{
		Context: ctx,
		Clock:   clk,
	}
	ac.ensureObservability()
	return ac
}

// Background returns an analysis context over context.Background and the
// real clock.
func Background() *AnalysisContext {
	return NewAnalysisContext(context.Background(), nil)
}

func (a *AnalysisContext) ensureObservability() {
	if a.Logger == nil {
		a.Logger = &NoOpLogger{}
	}
	if a.Metrics == nil {
		a.Metrics = &NoOpMetrics{}
	}
	if a.Tracer == nil {
		a.Tracer = &NoOpTracer{}
	}
	if a.Clock == nil {
		a.Clock = clock.NewRealTimeClock()
	}
	if a.Context == nil {
		a.Context = context.Background()
	}
}

// GetLogger returns the logger, never nil.
func (a *AnalysisContext) GetLogger() Logger {
	if a == nil {
		return &NoOpLogger{}
	}
	a.ensureObservability()
	return a.Logger
}

// GetMetrics returns the metrics collector, never nil.
func (a *AnalysisContext) GetMetrics() MetricsCollector {
	if a == nil {
		return &NoOpMetrics{}
	}
	a.ensureObservability()
	return a.Metrics
}

// GetTracer returns the tracer, never nil.
func (a *AnalysisContext) GetTracer() Tracer {
	if a == nil {
		return &NoOpTracer{}
	}
	a.ensureObservability()
	return a.Tracer
}

// GetClock returns the clock, never nil.
func (a *AnalysisContext) GetClock() clock.Clock {
	if a == nil {
		return clock.NewRealTimeClock()
	}
	a.ensureObservability()
	return a.Clock
}

// GetContext returns the standard context, never nil.
func (a *AnalysisContext) GetContext() context.Context {
	if a == nil || a.Context == nil {
		return context.Background()
	}
	return a.Context
}

// Err reports the cancellation state of the underlying context.
func (a *AnalysisContext) Err() error {
	if a == nil || a.Context == nil {
		return nil
	}
	return a.Context.Err()
}

// WithLogger returns a copy using logger.
func (a *AnalysisContext) WithLogger(logger Logger) *AnalysisContext {
	c := *a
	c.Logger = logger
	c.ensureObservability()
	return &c
}

// WithMetrics returns a copy using metrics.
func (a *AnalysisContext) WithMetrics(metrics MetricsCollector) *AnalysisContext {
	c := *a
	c.Metrics = metrics
	c.ensureObservability()
	return &c
}

// WithTracer returns a copy using tracer.
func (a *AnalysisContext) WithTracer(tracer Tracer) *AnalysisContext {
	c := *a
	c.Tracer = tracer
	c.ensureObservability()
	return &c
}

// WithContext returns a copy using ctx.
func (a *AnalysisContext) WithContext(ctx context.Context) *AnalysisContext {
	c := *a
	c.Context = ctx
	c.ensureObservability()
	return &c
}

// Clone returns a builder initialized from this context.
func (a *AnalysisContext) Clone() *AnalysisContextBuilder {
	return &AnalysisContextBuilder{
		ctx:     a.Context,
		clock:   a.Clock,
		logger:  a.Logger,
		metrics: a.Metrics,
		tracer:  a.Tracer,
	}
}
