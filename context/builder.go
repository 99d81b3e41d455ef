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
	stdcontext "context"

	"github.com/jazzpetri/deadlock/clock"
)

// AnalysisContextBuilder provides a fluent API for constructing an
// AnalysisContext.
//
// Example:
//
//	actx := context.NewAnalysisContextBuilder().
//	    WithLogger(context.NewZapLogger(zl)).
//	    WithMetrics(context.NewMemoryMetrics()).
//	    Build()
type AnalysisContextBuilder struct {
	ctx     stdcontext.Context
	clock   clock.Clock
	logger  Logger
	metrics MetricsCollector
	tracer  Tracer
}

// NewAnalysisContextBuilder creates a builder with background context,
// real clock, and no-op observability.
func NewAnalysisContextBuilder() *AnalysisContextBuilder {
	return &AnalysisContextBuilder{
		ctx:     stdcontext.Background(),
		clock:   clock.NewRealTimeClock(),
		logger:  &NoOpLogger{},
		metrics: &NoOpMetrics{},
		tracer:  &NoOpTracer{},
	}
}

func (b *AnalysisContextBuilder) WithLogger(logger Logger) *AnalysisContextBuilder {
	b.logger = logger
	return b
}

func (b *AnalysisContextBuilder) WithMetrics(metrics MetricsCollector) *AnalysisContextBuilder {
	b.metrics = metrics
	return b
}

func (b *AnalysisContextBuilder) WithTracer(tracer Tracer) *AnalysisContextBuilder {
	b.tracer = tracer
	return b
}

func (b *AnalysisContextBuilder) WithContext(ctx stdcontext.Context) *AnalysisContextBuilder {
	b.ctx = ctx
	return b
}

func (b *AnalysisContextBuilder) WithClock(clk clock.Clock) *AnalysisContextBuilder {
	b.clock = clk
	return b
}

// Build constructs the AnalysisContext. Unset services fall back to no-ops.
func (b *AnalysisContextBuilder) Build() *AnalysisContext {
	ac := NewAnalysisContext(b.ctx, b.clock)

	if b.logger != nil {
		ac.Logger = b.logger
	}
	if b.metrics != nil {
		ac.Metrics = b.metrics
	}
	if b.tracer != nil {
		ac.Tracer = b.tracer
	}

	return ac
}

// WithAnalysisContext attaches an AnalysisContext to a standard context.
func WithAnalysisContext(ctx stdcontext.Context, ac *AnalysisContext) stdcontext.Context {
	return stdcontext.WithValue(ctx, analysisContextKey, ac)
}

// FromContext retrieves an AnalysisContext attached with WithAnalysisContext.
func FromContext(ctx stdcontext.Context) (*AnalysisContext, bool) {
	ac, ok := ctx.Value(analysisContextKey).(*AnalysisContext)
	return ac, ok
}

type contextKey int

const analysisContextKey contextKey = 0
