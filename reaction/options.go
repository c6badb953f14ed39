// SPDX-License-Identifier: MIT
package reaction

import (
	"io"
	"log/slog"
	"math"

	"github.com/katalvlaran/stoich/matrix"
)

const (
	// DefaultMaxDenominator bounds the continued-fraction search of the
	// rationalizer.
	DefaultMaxDenominator = 1000

	// DefaultTolerance is the relative tolerance used when matching ratios
	// to fractions, when deciding a coefficient is not positive, and when
	// checking conservation of the integer answer.
	DefaultTolerance = 1e-9

	// DefaultRankTolerance = 0 keeps the matrix package's derived cutoff
	// (σ_max · max(rows, cols) · machine epsilon).
	DefaultRankTolerance = 0.0
)

const (
	panicMaxDenominatorInvalid = "reaction: WithMaxDenominator: bound must be >= 1"
	panicToleranceInvalid      = "reaction: WithTolerance: tol must be finite and in (0, 1)"
	panicRankTolInvalid        = "reaction: WithRankTolerance: tol must be finite, non-negative"
)

// Option configures a balance request.
type Option func(*Options)

// Options is the resolved configuration. Fields are unexported; build it
// with NewOptions or pass ...Option to the entry points.
type Options struct {
	rankTol        float64
	maxDenominator int64
	tolerance      float64
	logger         *slog.Logger
}

// WithRankTolerance pins the absolute singular-value cutoff used to decide
// the rank of the conservation matrix. This is the one knob behind the
// float → integer decision; tests use it to probe near-singular systems.
func WithRankTolerance(tol float64) Option {
	if math.IsNaN(tol) || math.IsInf(tol, 0) || tol < 0 {
		panic(panicRankTolInvalid)
	}

	return func(o *Options) { o.rankTol = tol }
}

// WithMaxDenominator bounds the denominators tried by the rationalizer.
func WithMaxDenominator(bound int64) Option {
	if bound < 1 {
		panic(panicMaxDenominatorInvalid)
	}

	return func(o *Options) { o.maxDenominator = bound }
}

// WithTolerance sets the relative tolerance (see DefaultTolerance).
func WithTolerance(tol float64) Option {
	if math.IsNaN(tol) || tol <= 0 || tol >= 1 {
		panic(panicToleranceInvalid)
	}

	return func(o *Options) { o.tolerance = tol }
}

// WithLogger routes debug and warning records to l. A nil logger keeps the
// library silent.
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) {
		if l == nil {
			l = discardLogger()
		}
		o.logger = l
	}
}

// NewOptions resolves setters against the defaults; last writer wins.
func NewOptions(opts ...Option) Options { return gatherOptions(opts...) }

// MaxDenominator reports the effective rationalizer bound.
func (o Options) MaxDenominator() int64 { return o.maxDenominator }

// Tolerance reports the effective relative tolerance.
func (o Options) Tolerance() float64 { return o.tolerance }

// RankTolerance reports the configured singular-value cutoff (0 ⇒ derived).
func (o Options) RankTolerance() float64 { return o.rankTol }

// matrixOptions translates the request options for the SVD kernel.
func (o Options) matrixOptions() []matrix.Option {
	return []matrix.Option{matrix.WithRankTolerance(o.rankTol)}
}

func gatherOptions(user ...Option) Options {
	o := Options{
		rankTol:        DefaultRankTolerance,
		maxDenominator: DefaultMaxDenominator,
		tolerance:      DefaultTolerance,
		logger:         discardLogger(),
	}
	for _, set := range user {
		if set != nil {
			set(&o)
		}
	}

	return o
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
