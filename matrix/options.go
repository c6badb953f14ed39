// SPDX-License-Identifier: MIT

// Package matrix: functional configuration for the numeric kernels.
// This file defines:
//   - Option / Options (functional options with internal state),
//   - documented defaults (constants),
//   - WithX constructors with strong validation (panic on nonsensical values),
//   - gatherOptions helper (internal).
//
// Design goals:
//   - Deterministic behavior: no global state, no implicit randomness.
//   - No dead switches: each flag impacts behavior and is covered by tests.
//   - Safe by construction: panic only on invalid parameters (programmer error).
//
// Notes:
//   - The rank decision is isolated behind ONE knob (rankTol). When it is
//     left at zero the tolerance is derived from the data:
//     σ_max · max(rows, cols) · MachineEpsilon, the usual LAPACK/NumPy rule.
package matrix

import "math"

// ---------- Defaults (single source of truth) ----------

const (
	// MachineEpsilon is the float64 unit roundoff (2^-52).
	MachineEpsilon = 0x1p-52

	// DefaultEpsilon is the orthogonality threshold of the Jacobi sweeps:
	// a column pair (p,q) is rotated while |<a_p,a_q>| > eps·‖a_p‖·‖a_q‖.
	DefaultEpsilon = 1e-15

	// DefaultRankTolerance = 0 means "derive from σ_max and the shape".
	DefaultRankTolerance = 0.0

	// DefaultMaxSweeps caps the number of full Jacobi sweeps. One-sided
	// Jacobi converges quadratically; small conservation matrices settle in
	// well under 15 sweeps.
	DefaultMaxSweeps = 60

	// DefaultValidateNaNInf toggles strict finite-value validation on ingestion and Set.
	DefaultValidateNaNInf = true
)

// ---------- Internal panic messages (no magic strings) ----------

const (
	panicEpsilonInvalid   = "matrix: WithEpsilon: eps must be finite, non-negative"
	panicRankTolInvalid   = "matrix: WithRankTolerance: tol must be finite, non-negative"
	panicMaxSweepsInvalid = "matrix: WithMaxSweeps: sweeps must be > 0"
)

// Option mutates internal options. Safe to apply repeatedly (idempotent).
// Constructors MUST panic only on nonsensical values (programmer error).
type Option func(*Options)

// Options stores the effective configuration after applying Option setters.
// Fields are unexported; public entry points accept `...Option`.
type Options struct {
	eps            float64 // Jacobi orthogonality threshold; DefaultEpsilon
	rankTol        float64 // absolute singular-value cutoff; 0 ⇒ derived
	maxSweeps      int     // DefaultMaxSweeps
	validateNaNInf bool    // DefaultValidateNaNInf
}

// WithEpsilon sets the relative orthogonality threshold used by Jacobi sweeps.
// Panics when eps is NaN, ±Inf or negative.
func WithEpsilon(eps float64) Option {
	if isNonFinite(eps) || eps < 0 {
		panic(panicEpsilonInvalid)
	}

	return func(o *Options) { o.eps = eps }
}

// WithRankTolerance fixes the absolute cutoff below which a singular value
// counts as zero. Zero restores the derived default.
//
// AI-Hints:
//   - Tests probing near rank-deficient matrices should pin this value so the
//     rank decision does not move with σ_max.
func WithRankTolerance(tol float64) Option {
	if isNonFinite(tol) || tol < 0 {
		panic(panicRankTolInvalid)
	}

	return func(o *Options) { o.rankTol = tol }
}

// WithMaxSweeps caps the number of Jacobi sweeps before ErrDecompositionFailed.
func WithMaxSweeps(sweeps int) Option {
	if sweeps <= 0 {
		panic(panicMaxSweepsInvalid)
	}

	return func(o *Options) { o.maxSweeps = sweeps }
}

// WithValidateNaNInf enables strict finite-value validation (default).
func WithValidateNaNInf() Option {
	return func(o *Options) { o.validateNaNInf = true }
}

// WithNoValidateNaNInf disables NaN/Inf validation on ingestion.
// SVD still refuses non-finite input: a NaN poisons every rotation.
func WithNoValidateNaNInf() Option {
	return func(o *Options) { o.validateNaNInf = false }
}

// NewMatrixOptions resolves option setters against documented defaults.
// Last-writer-wins; pure function.
func NewMatrixOptions(opts ...Option) Options {
	return gatherOptions(opts...)
}

// Epsilon reports the effective Jacobi threshold.
func (o Options) Epsilon() float64 { return o.eps }

// RankTolerance reports the configured absolute cutoff (0 ⇒ derived).
func (o Options) RankTolerance() float64 { return o.rankTol }

// MaxSweeps reports the sweep cap.
func (o Options) MaxSweeps() int { return o.maxSweeps }

// defaultOptions returns the documented defaults.
func defaultOptions() Options {
	return Options{
		eps:            DefaultEpsilon,
		rankTol:        DefaultRankTolerance,
		maxSweeps:      DefaultMaxSweeps,
		validateNaNInf: DefaultValidateNaNInf,
	}
}

// gatherOptions applies user-provided Option setters on top of defaults.
// This is the canonical internal entry for kernels.
func gatherOptions(user ...Option) Options {
	o := defaultOptions()
	for _, set := range user {
		if set != nil {
			set(&o) // apply in order; last-writer-wins semantics
		}
	}

	return o
}

// isNonFinite reports NaN or ±Inf.
func isNonFinite(x float64) bool { return math.IsNaN(x) || math.IsInf(x, 0) }
