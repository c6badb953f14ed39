// SPDX-License-Identifier: MIT

// Package matrix_test contains unit tests for universal Matrix (linear algebra) operations.
package matrix_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/stoich/matrix"
)

// TestMul_InterfaceInput: non-Dense operands give the same product.
func TestMul_InterfaceInput(t *testing.T) {
	t.Parallel()

	a := RandFilledDense(t, 4, 5, 1)
	b := RandFilledDense(t, 5, 3, 2)

	fast, err := matrix.Mul(a, b)
	require.NoError(t, err)
	slow, err := matrix.Mul(hide{a}, hide{b})
	require.NoError(t, err)

	for i := 0; i < 4; i++ {
		for j := 0; j < 3; j++ {
			require.InDelta(t, MustAt(t, fast, i, j), MustAt(t, slow, i, j), 1e-15)
		}
	}
}

func TestMul_Known(t *testing.T) {
	a := FromRows(t, [][]float64{{1, 2}, {3, 4}})
	b := FromRows(t, [][]float64{{5, 6}, {7, 8}})
	p, err := matrix.Mul(a, b)
	require.NoError(t, err)
	CompareExact(t, [][]float64{{19, 22}, {43, 50}}, p)
}

func TestMul_DimensionMismatch(t *testing.T) {
	_, err := matrix.Mul(MustDense(t, 2, 3), MustDense(t, 2, 3))
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)

	_, err = matrix.Mul(nil, MustDense(t, 2, 3))
	require.ErrorIs(t, err, matrix.ErrNilMatrix)
}

// TestMul_SparseRows: zero rows and zero columns of a conservation-like
// matrix still produce exact sums.
func TestMul_SparseRows(t *testing.T) {
	a := FromRows(t, [][]float64{{1, 0, -2}, {0, 0, 0}, {0, 2, -3}})
	p, err := matrix.Mul(a, FromRows(t, [][]float64{{4}, {3}, {2}}))
	require.NoError(t, err)
	CompareExact(t, [][]float64{{0}, {0}, {0}}, p)
}

func TestTranspose(t *testing.T) {
	m := FromRows(t, [][]float64{{1, 2, 3}, {4, 5, 6}})
	for _, in := range []matrix.Matrix{m, hide{m}} {
		tr, err := matrix.Transpose(in)
		require.NoError(t, err)
		CompareExact(t, [][]float64{{1, 4}, {2, 5}, {3, 6}}, tr)
	}

	col, err := matrix.Transpose(FromRows(t, [][]float64{{7}, {8}}))
	require.NoError(t, err)
	CompareExact(t, [][]float64{{7, 8}}, col)

	var nilDense *matrix.Dense
	_, err = matrix.Transpose(nilDense)
	require.ErrorIs(t, err, matrix.ErrNilMatrix)
}

func TestScale_DoesNotMutateInput(t *testing.T) {
	m := FromRows(t, [][]float64{{1, -2}})
	s, err := matrix.Scale(m, -3)
	require.NoError(t, err)
	CompareExact(t, [][]float64{{-3, 6}}, s)
	CompareExact(t, [][]float64{{1, -2}}, m)
}

// TestMatVec_ConservationRow mirrors the reaction use: Mg O → Mg + ½O2.
func TestMatVec_ConservationRow(t *testing.T) {
	m := FromRows(t, [][]float64{{1, -1, 0}, {1, 0, -2}})
	for _, in := range []matrix.Matrix{m, hide{m}} {
		y, err := matrix.MatVec(in, []float64{2, 2, 1})
		require.NoError(t, err)
		require.Equal(t, []float64{0, 0}, y)
	}

	_, err := matrix.MatVec(m, []float64{1, 2})
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)
	_, err = matrix.MatVec(m, nil)
	require.ErrorIs(t, err, matrix.ErrNilMatrix)
}

func TestFrobeniusNorm(t *testing.T) {
	n, err := matrix.FrobeniusNorm(FromRows(t, [][]float64{{3, 0}, {0, 4}}))
	require.NoError(t, err)
	require.InDelta(t, 5.0, n, 1e-15)

	big := FromRows(t, [][]float64{{1e200, 1e200}})
	n, err = matrix.FrobeniusNorm(big)
	require.NoError(t, err)
	require.False(t, math.IsInf(n, 0), "Hypot accumulation must not overflow")
}

func TestNewIdentity(t *testing.T) {
	I, err := matrix.NewIdentity(3)
	require.NoError(t, err)
	CompareExact(t, [][]float64{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}, I)

	_, err = matrix.NewIdentity(0)
	require.ErrorIs(t, err, matrix.ErrInvalidDimensions)
}
