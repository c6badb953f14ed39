// SPDX-License-Identifier: MIT

// Package matrix provides the dense linear algebra used by the reaction
// balancer.
//
// The matrix package provides:
//
//   - Dense: a row-major float64 matrix with bounds-checked accessors and an
//     optional finite-value policy (NaN/±Inf rejected on Set).
//   - Kernels: Transpose, Mul, MatVec, Scale, FrobeniusNorm.
//   - SVD: a one-sided Jacobi (Hestenes) singular value decomposition that
//     works for wide matrices (rows < cols), the usual shape of a
//     conservation matrix with more species than elements.
//   - Rank and NullSpace built on SVD, with a single configurable rank
//     tolerance (see WithRankTolerance).
//
// All kernels are deterministic: fixed loop orders, no map iteration, no
// randomness. Nothing here retains state between calls.
package matrix
