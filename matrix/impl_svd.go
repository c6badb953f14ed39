// SPDX-License-Identifier: MIT
// Package matrix: singular value decomposition, rank and null space.
//
// Purpose:
//   - Provide a rank-revealing factorization for small dense systems without
//     external LAPACK bindings.
//   - Work for every shape, in particular wide matrices (rows < cols) whose
//     null space is never empty.
//
// Method (one-sided Jacobi / Hestenes):
//   - Equilibrate: W = A·2^-e with 2^(e-1) ≤ max|a_ij| < 2^e, so squared
//     column norms neither overflow nor underflow. Powers of two scale
//     exactly; σ and W are multiplied back by 2^e at the end.
//   - Keep W = A·V and V (orthogonal, starts as I). For every column pair
//     (p,q) with α=‖w_p‖², β=‖w_q‖², γ=<w_p,w_q> apply the plane rotation that
//     zeroes γ:  ζ=(β−α)/(2γ), t=sign(ζ)/(|ζ|+√(1+ζ²)), c=1/√(1+t²), s=c·t,
//     w_p' = c·w_p − s·w_q,  w_q' = s·w_p + c·w_q  (same for v_p, v_q).
//   - Stop when a full sweep performs no rotation. Then σ_j = ‖w_j‖ and the
//     columns of V are right singular vectors.
//
// Determinism:
//   - Cyclic (p<q) pair order, fixed k loops, stable sort of σ. No randomness.
//
// AI-Hints:
//   - Columns whose norm drops under MachineEpsilon·‖A‖_F are treated as
//     exact zeros and no longer rotated; they carry the null space.
//   - Prefer NullSpace/Rank over reading SVDResult directly: they apply the
//     rank tolerance policy from options.go in one place.

package matrix

import (
	"fmt"
	"math"
	"sort"
)

// SVDResult holds the factors of A = U·Σ·Vᵀ in the form produced by
// one-sided Jacobi: the scaled left factor W = U·Σ (rows×cols), the
// singular values σ (len = cols, descending) and V (cols×cols).
type SVDResult struct {
	values []float64 // σ_0 ≥ σ_1 ≥ … ≥ σ_{c-1} ≥ 0
	w      *Dense    // A·V, columns ordered like values
	v      *Dense    // right singular vectors as columns
	sweeps int       // sweeps performed until convergence
}

// Values returns a copy of the singular values in descending order.
func (s *SVDResult) Values() []float64 {
	out := make([]float64, len(s.values))
	copy(out, s.values)

	return out
}

// V returns a copy of the right singular vectors (columns).
func (s *SVDResult) V() *Dense { return s.v.Clone().(*Dense) }

// US returns a copy of U·Σ (= A·V).
func (s *SVDResult) US() *Dense { return s.w.Clone().(*Dense) }

// Sweeps reports how many Jacobi sweeps were needed.
func (s *SVDResult) Sweeps() int { return s.sweeps }

// Tolerance returns the cutoff used to decide σ ≈ 0 under the given options:
// the configured absolute rank tolerance, or σ_max·max(r,c)·MachineEpsilon.
func (s *SVDResult) Tolerance(opts ...Option) float64 {
	o := gatherOptions(opts...)
	if o.rankTol > 0 {
		return o.rankTol
	}
	sigmaMax := NormZero
	if len(s.values) > 0 {
		sigmaMax = s.values[0]
	}
	dim := s.w.r
	if s.w.c > dim {
		dim = s.w.c
	}

	return sigmaMax * float64(dim) * MachineEpsilon
}

// Rank counts singular values strictly above Tolerance(opts...).
func (s *SVDResult) Rank(opts ...Option) int {
	tol := s.Tolerance(opts...)
	rank := 0
	for _, sigma := range s.values {
		if sigma > tol {
			rank++
		}
	}

	return rank
}

// NullSpace returns the right singular vectors whose σ ≤ Tolerance(opts...),
// each of length Cols(A) and unit norm. An empty (non-nil) slice means the
// null space is trivial.
func (s *SVDResult) NullSpace(opts ...Option) [][]float64 {
	tol := s.Tolerance(opts...)
	basis := make([][]float64, 0, len(s.values))
	for j, sigma := range s.values {
		if sigma > tol {
			continue
		}
		col, _ := s.v.Col(j) // j is always in range
		basis = append(basis, col)
	}

	return basis
}

// SVD factorizes m with one-sided Jacobi rotations.
//
// Implementation:
//   - Stage 1: ValidateFinite(m); W = Scale(m, 2^-e); V = I.
//   - Stage 2: cyclic sweeps over (p,q) pairs until no pair needs rotation.
//   - Stage 3: σ_j = ‖w_j‖·2^e; stable sort descending; permute W and V columns.
//
// Errors:
//   - ErrNilMatrix, ErrNaNInf (non-finite input).
//   - ErrDecompositionFailed when maxSweeps is exhausted.
//
// Complexity:
//   - Time O(sweeps · c² · (r + c)), Space O(r*c + c²).
func SVD(m Matrix, opts ...Option) (*SVDResult, error) {
	o := gatherOptions(opts...)
	if err := ValidateFinite(m); err != nil {
		return nil, matrixErrorf(opSVD, err)
	}
	w, exp, err := equilibrate(m)
	if err != nil {
		return nil, matrixErrorf(opSVD, err)
	}
	r, c := w.r, w.c
	v, err := NewDense(c, c)
	if err != nil {
		return nil, matrixErrorf(opSVD, err)
	}
	var i int
	for i = 0; i < c; i++ {
		v.data[i*c+i] = 1.0
	}

	frob, err := FrobeniusNorm(w)
	if err != nil {
		return nil, matrixErrorf(opSVD, err)
	}
	tiny := MachineEpsilon * frob                      // numerically-zero column norm
	orth := math.Max(o.eps, float64(r)*MachineEpsilon) // roundoff floor of a length-r dot product

	var (
		sweep, p, q, k      int
		rotated, converged  bool
		alpha, beta, gamma  float64
		wp, wq, vp, vq      float64
		zeta, t, cs, sn, na float64
		nb                  float64
	)
	for sweep = 0; sweep < o.maxSweeps; sweep++ {
		rotated = false
		for p = 0; p < c-1; p++ {
			for q = p + 1; q < c; q++ {
				alpha, beta, gamma = ZeroSum, ZeroSum, ZeroSum
				for k = 0; k < r; k++ {
					wp = w.data[k*c+p]
					wq = w.data[k*c+q]
					alpha += wp * wp
					beta += wq * wq
					gamma += wp * wq
				}
				if gamma == 0 {
					continue
				}
				na, nb = math.Sqrt(alpha), math.Sqrt(beta)
				if na <= tiny || nb <= tiny {
					continue // zero column: nothing left to orthogonalize
				}
				if math.Abs(gamma) <= orth*na*nb {
					continue
				}
				rotated = true

				zeta = (beta - alpha) / (2 * gamma)
				t = math.Copysign(1, zeta) / (math.Abs(zeta) + math.Hypot(1, zeta))
				cs = 1 / math.Hypot(1, t)
				sn = cs * t

				for k = 0; k < r; k++ {
					wp = w.data[k*c+p]
					wq = w.data[k*c+q]
					w.data[k*c+p] = cs*wp - sn*wq
					w.data[k*c+q] = sn*wp + cs*wq
				}
				for k = 0; k < c; k++ {
					vp = v.data[k*c+p]
					vq = v.data[k*c+q]
					v.data[k*c+p] = cs*vp - sn*vq
					v.data[k*c+q] = sn*vp + cs*vq
				}
			}
		}
		if !rotated {
			converged = true
			break
		}
	}
	if !converged {
		return nil, matrixErrorf(opSVD, fmt.Errorf("%d sweeps: %w", o.maxSweeps, ErrDecompositionFailed))
	}

	// Undo the equilibration, then σ_j = ‖w_j‖ (Hypot accumulation, as in
	// FrobeniusNorm).
	if exp != 0 {
		for k = range w.data {
			w.data[k] = math.Ldexp(w.data[k], exp)
		}
	}
	sigma := make([]float64, c)
	for p = 0; p < c; p++ {
		na = NormZero
		for k = 0; k < r; k++ {
			na = math.Hypot(na, w.data[k*c+p])
		}
		sigma[p] = na
	}

	// Stable descending order; ties keep the input column order.
	perm := make([]int, c)
	for p = 0; p < c; p++ {
		perm[p] = p
	}
	sort.SliceStable(perm, func(a, b int) bool { return sigma[perm[a]] > sigma[perm[b]] })

	res := &SVDResult{values: make([]float64, c), sweeps: sweep + 1}
	if res.w, err = NewDense(r, c); err != nil {
		return nil, matrixErrorf(opSVD, err)
	}
	if res.v, err = NewDense(c, c); err != nil {
		return nil, matrixErrorf(opSVD, err)
	}
	for p = 0; p < c; p++ {
		q = perm[p]
		res.values[p] = sigma[q]
		for k = 0; k < r; k++ {
			res.w.data[k*c+p] = w.data[k*c+q]
		}
		for k = 0; k < c; k++ {
			res.v.data[k*c+p] = v.data[k*c+q]
		}
	}

	return res, nil
}

// equilibrate copies m scaled by a power of two so that its largest entry
// lies in [0.5, 1). It returns the exponent e to multiply back with. A zero
// matrix, or one whose largest entry is subnormal, is copied unscaled.
func equilibrate(m Matrix) (*Dense, int, error) {
	d, err := toDense(m)
	if err != nil {
		return nil, 0, err
	}
	amax := NormZero
	for _, v := range d.data {
		amax = math.Max(amax, math.Abs(v))
	}
	if amax < minNormal {
		return d, 0, nil
	}
	_, exp := math.Frexp(amax)
	if exp == 0 {
		return d, 0, nil
	}
	scaled, err := Scale(d, math.Ldexp(1, -exp))
	if err != nil {
		return nil, 0, err
	}

	return scaled.(*Dense), exp, nil
}

// minNormal is the smallest positive normal float64 (2^-1022).
const minNormal = 0x1p-1022

// Residuals measures how well the factorization reproduces m:
// recon = ‖m·V − U·Σ‖_F / ‖m‖_F and orth = ‖VᵀV − I‖_F. Both are a few
// MachineEpsilon for a converged decomposition of m. A zero m reports
// recon as the absolute error.
//
// Errors: ErrNilMatrix, ErrDimensionMismatch when m is not the factorized shape.
// Complexity: O(r·c² + c³).
func (s *SVDResult) Residuals(m Matrix) (recon, orth float64, err error) {
	if err = ValidateNotNil(m); err != nil {
		return 0, 0, matrixErrorf(opResiduals, err)
	}
	if m.Rows() != s.w.r || m.Cols() != s.w.c {
		return 0, 0, matrixErrorf(opResiduals, ErrDimensionMismatch)
	}

	av, err := Mul(m, s.v)
	if err != nil {
		return 0, 0, matrixErrorf(opResiduals, err)
	}
	if recon, err = frobeniusDiff(av.(*Dense), s.w); err != nil {
		return 0, 0, matrixErrorf(opResiduals, err)
	}
	norm, err := FrobeniusNorm(m)
	if err != nil {
		return 0, 0, matrixErrorf(opResiduals, err)
	}
	if norm > 0 {
		recon /= norm
	}

	vt, err := Transpose(s.v)
	if err != nil {
		return 0, 0, matrixErrorf(opResiduals, err)
	}
	vtv, err := Mul(vt, s.v)
	if err != nil {
		return 0, 0, matrixErrorf(opResiduals, err)
	}
	id, err := NewIdentity(s.v.c)
	if err != nil {
		return 0, 0, matrixErrorf(opResiduals, err)
	}
	if orth, err = frobeniusDiff(vtv.(*Dense), id); err != nil {
		return 0, 0, matrixErrorf(opResiduals, err)
	}

	return recon, orth, nil
}

// frobeniusDiff returns ‖a − b‖_F for equally shaped dense matrices.
func frobeniusDiff(a, b *Dense) (float64, error) {
	if err := ValidateSameShape(a, b); err != nil {
		return 0, err
	}
	norm := NormZero
	for idx := range a.data {
		norm = math.Hypot(norm, a.data[idx]-b.data[idx])
	}

	return norm, nil
}

// Rank returns the numerical rank of m under the configured tolerance.
// Complexity: one SVD.
func Rank(m Matrix, opts ...Option) (int, error) {
	s, err := SVD(m, opts...)
	if err != nil {
		return 0, matrixErrorf(opRank, err)
	}

	return s.Rank(opts...), nil
}

// NullSpace returns an orthonormal basis of {x : m·x = 0} as a list of
// vectors of length Cols(m). The list is empty when m has full column rank.
//
// AI-Hints:
//   - len(result) == Cols(m) − Rank(m) under the same options.
func NullSpace(m Matrix, opts ...Option) ([][]float64, error) {
	s, err := SVD(m, opts...)
	if err != nil {
		return nil, matrixErrorf(opNullSpace, err)
	}

	return s.NullSpace(opts...), nil
}
