// SPDX-License-Identifier: MIT
// Package matrix provides universal operations on any Matrix implementation:
// matrix multiplication, transpose, scalar scaling, matrix-vector product and
// the Frobenius norm. All functions perform strict fail-fast validation and
// return clear errors on dimension mismatches.
//
// Notes:
//   - Every kernel has a *Dense fast-path (flat slice loops) and an interface
//     fallback (At/Set with fixed i→j order). Both produce identical results.
//   - Kernels never mutate their inputs.

package matrix

import (
	"fmt"
	"math"
)

// NormZero is the additive identity for norm and accumulation operations.
const NormZero = 0.0

// ZeroSum is the initial value of dot-product accumulators.
const ZeroSum = 0.0

// Operation name constants for unified error wrapping and reducing magic strings.
const (
	opMul       = "Mul"
	opTranspose = "Transpose"
	opScale     = "Scale"
	opMatVec    = "MatVec"
	opNorm      = "FrobeniusNorm"
	opSVD       = "SVD"
	opRank      = "Rank"
	opNullSpace = "NullSpace"
	opResiduals = "Residuals"
)

// matrixErrorf wraps err with an operation tag, keeping err reachable via %w.
// Use only when err != nil to avoid creating a non-nil wrapper around a nil cause.
//
// AI-Hints:
//   - Always gate calls with `if err != nil { return nil, matrixErrorf(tag, err) }`.
//   - Keep `tag` to the canonical constants to simplify log/search pipelines.
func matrixErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// Mul computes the matrix product C = A × B.
//
// Both operands are materialized as *Dense (toDense), then multiplied with
// an i-k-j loop over flat slices that skips zero a[i,k].
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch (a.Cols != b.Rows).
//
// Complexity:
//   - Time O(r*n*c), Space O(r*n + n*c + r*c).
func Mul(a, b Matrix) (Matrix, error) {
	if err := ValidateMulCompatible(a, b); err != nil {
		return nil, matrixErrorf(opMul, err)
	}
	da, err := toDense(a)
	if err != nil {
		return nil, matrixErrorf(opMul, err)
	}
	db, err := toDense(b)
	if err != nil {
		return nil, matrixErrorf(opMul, err)
	}
	res, err := NewDense(da.r, db.c)
	if err != nil {
		return nil, matrixErrorf(opMul, err)
	}

	n, c := da.c, db.c
	for i := 0; i < da.r; i++ {
		out := res.data[i*c : (i+1)*c]
		for k, av := range da.data[i*n : (i+1)*n] {
			if av == 0 {
				continue
			}
			for j, bv := range db.data[k*c : (k+1)*c] {
				out[j] += av * bv
			}
		}
	}

	return res, nil
}

// Transpose returns mᵀ as a new *Dense.
// Complexity: Time O(r*c), Space O(r*c).
func Transpose(m Matrix) (Matrix, error) {
	d, err := toDense(m)
	if err != nil {
		return nil, matrixErrorf(opTranspose, err)
	}
	res, err := NewDense(d.c, d.r)
	if err != nil {
		return nil, matrixErrorf(opTranspose, err)
	}
	res.validateNaNInf = d.validateNaNInf
	for idx, v := range d.data {
		// data[i*c + j] → res.data[j*r + i]
		res.data[(idx%d.c)*d.r+idx/d.c] = v
	}

	return res, nil
}

// Scale returns a new matrix whose elements are alpha * m[i,j].
// alpha = 0 yields an explicit zero matrix with the same shape. A power of
// two alpha is exact unless entries leave the normal range; SVD relies on it.
// Complexity: Time O(r*c), Space O(r*c).
func Scale(m Matrix, alpha float64) (Matrix, error) {
	d, err := toDense(m)
	if err != nil {
		return nil, matrixErrorf(opScale, err)
	}
	for idx := range d.data {
		d.data[idx] *= alpha
	}

	return d, nil
}

// MatVec computes y = m * x for a column vector x.
//
// Contract: m non-nil; x non-nil; len(x) == m.Cols().
// Determinism: fixed i→j loop order.
// Complexity: Time O(r*c), Space O(r) for y.
//
// AI-Hints:
//   - The reaction package calls this with the coefficient vector to obtain
//     the per-element conservation residual.
func MatVec(m Matrix, x []float64) ([]float64, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opMatVec, err)
	}
	if err := ValidateVecLen(x, m.Cols()); err != nil {
		return nil, matrixErrorf(opMatVec, err)
	}
	rows, cols := m.Rows(), m.Cols()
	y := make([]float64, rows)

	// Fast-path: *Dense allows flat, row-major dot-products.
	if d, ok := m.(*Dense); ok {
		var i, j, base int
		var acc float64
		for i = 0; i < d.r; i++ {
			acc = ZeroSum
			base = i * d.c
			for j = 0; j < d.c; j++ {
				acc += d.data[base+j] * x[j]
			}
			y[i] = acc
		}

		return y, nil
	}

	var i, j int
	var mv float64
	var err error
	for i = 0; i < rows; i++ {
		y[i] = ZeroSum
		for j = 0; j < cols; j++ {
			if mv, err = m.At(i, j); err != nil {
				return nil, matrixErrorf(opMatVec, err)
			}
			y[i] += mv * x[j]
		}
	}

	return y, nil
}

// FrobeniusNorm returns sqrt(Σ m[i,j]²), accumulated with math.Hypot to avoid
// overflow on large entries.
// Complexity: O(r*c).
func FrobeniusNorm(m Matrix) (float64, error) {
	d, err := toDense(m)
	if err != nil {
		return 0, matrixErrorf(opNorm, err)
	}
	norm := NormZero
	for _, v := range d.data {
		norm = math.Hypot(norm, v)
	}

	return norm, nil
}

// toDense materializes any Matrix into a fresh *Dense copy.
// *Dense inputs are cloned (kernels must not mutate their inputs).
func toDense(m Matrix) (*Dense, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, err
	}
	if d, ok := m.(*Dense); ok {
		return d.Clone().(*Dense), nil
	}
	rows, cols := m.Rows(), m.Cols()
	out, err := NewDense(rows, cols)
	if err != nil {
		return nil, err
	}
	out.validateNaNInf = false // copy verbatim; callers decide on finiteness
	var i, j int
	var v float64
	for i = 0; i < rows; i++ {
		for j = 0; j < cols; j++ {
			if v, err = m.At(i, j); err != nil {
				return nil, err
			}
			out.data[i*cols+j] = v
		}
	}

	return out, nil
}
