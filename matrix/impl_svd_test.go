// SPDX-License-Identifier: MIT
package matrix_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/stoich/matrix"
)

func TestSVD_Diagonal(t *testing.T) {
	s, err := matrix.SVD(FromRows(t, [][]float64{{3, 0}, {0, 4}}))
	require.NoError(t, err)
	require.InDeltaSlice(t, []float64{4, 3}, s.Values(), 1e-14)
	require.Equal(t, 2, s.Rank())
	require.Empty(t, s.NullSpace())
}

// TestSVD_Reconstruction checks A = (UΣ)·Vᵀ and VᵀV = I for tall and wide shapes.
func TestSVD_Reconstruction(t *testing.T) {
	for _, shape := range []struct{ r, c int }{{5, 4}, {3, 6}, {4, 4}, {1, 3}} {
		a := RandFilledDense(t, shape.r, shape.c, int64(shape.r*10+shape.c))
		s, err := matrix.SVD(a)
		require.NoError(t, err)

		v := s.V()
		vt, err := matrix.Transpose(v)
		require.NoError(t, err)
		back, err := matrix.Mul(s.US(), vt)
		require.NoError(t, err)
		ok, err := matrix.AllClose(back, a, 0, 1e-13)
		require.NoError(t, err)
		require.True(t, ok, "A = (UΣ)·Vᵀ")

		vtv, err := matrix.Mul(vt, v)
		require.NoError(t, err)
		id, err := matrix.NewIdentity(shape.c)
		require.NoError(t, err)
		ok, err = matrix.AllClose(vtv, id, 0, 1e-13)
		require.NoError(t, err)
		require.True(t, ok, "VᵀV = I")

		vals := s.Values()
		for i := 1; i < len(vals); i++ {
			require.GreaterOrEqual(t, vals[i-1], vals[i], "descending order")
		}
	}
}

// TestSVD_MatchesGonum compares singular values against gonum's LAPACK port.
func TestSVD_MatchesGonum(t *testing.T) {
	for _, shape := range []struct{ r, c int }{{6, 4}, {4, 7}, {8, 9}} {
		a := RandFilledDense(t, shape.r, shape.c, 99)
		data := make([]float64, 0, shape.r*shape.c)
		for i := 0; i < shape.r; i++ {
			row, err := a.Row(i)
			require.NoError(t, err)
			data = append(data, row...)
		}

		var ref mat.SVD
		require.True(t, ref.Factorize(mat.NewDense(shape.r, shape.c, data), mat.SVDThin))
		want := ref.Values(nil)

		s, err := matrix.SVD(a)
		require.NoError(t, err)
		got := s.Values()
		require.Len(t, got, shape.c)
		for i := range want {
			require.InDelta(t, want[i], got[i], 1e-12)
		}
		for i := len(want); i < len(got); i++ {
			require.InDelta(t, 0, got[i], 1e-12, "wide matrix: trailing σ must vanish")
		}
	}
}

// TestNullSpace_MgO uses the conservation matrix of 2 MgO → 2 Mg + O2.
func TestNullSpace_MgO(t *testing.T) {
	m := FromRows(t, [][]float64{{1, -1, 0}, {1, 0, -2}})

	rank, err := matrix.Rank(m)
	require.NoError(t, err)
	require.Equal(t, 2, rank)

	basis, err := matrix.NullSpace(m)
	require.NoError(t, err)
	require.Len(t, basis, 1)
	v := basis[0]
	if v[0] < 0 {
		for i := range v {
			v[i] = -v[i]
		}
	}
	require.InDeltaSlice(t, []float64{2.0 / 3, 2.0 / 3, 1.0 / 3}, v, 1e-14)

	y, err := matrix.MatVec(m, v)
	require.NoError(t, err)
	require.Less(t, norm2(y), 1e-14)
}

func TestNullSpace_FullRank(t *testing.T) {
	basis, err := matrix.NullSpace(FromRows(t, [][]float64{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}, {1, 1, 0}}))
	require.NoError(t, err)
	require.NotNil(t, basis)
	require.Empty(t, basis)
}

func TestNullSpace_ZeroMatrix(t *testing.T) {
	basis, err := matrix.NullSpace(MustDense(t, 2, 3))
	require.NoError(t, err)
	require.Len(t, basis, 3)
}

// TestRank_Tolerance probes the single rank knob on a near-singular matrix.
func TestRank_Tolerance(t *testing.T) {
	m := FromRows(t, [][]float64{{1, 0}, {0, 1e-10}})

	rank, err := matrix.Rank(m)
	require.NoError(t, err)
	require.Equal(t, 2, rank, "1e-10 is far above σ_max·n·eps")

	rank, err = matrix.Rank(m, matrix.WithRankTolerance(1e-8))
	require.NoError(t, err)
	require.Equal(t, 1, rank)

	basis, err := matrix.NullSpace(m, matrix.WithRankTolerance(1e-8))
	require.NoError(t, err)
	require.Len(t, basis, 1)
	require.InDelta(t, 1.0, math.Abs(basis[0][1]), 1e-12)
}

func TestSVD_RejectsNonFinite(t *testing.T) {
	m, err := matrix.NewDenseFromRows([][]float64{{1, math.NaN()}}, matrix.WithNoValidateNaNInf())
	require.NoError(t, err)
	_, err = matrix.SVD(m)
	require.ErrorIs(t, err, matrix.ErrNaNInf)

	_, err = matrix.SVD(nil)
	require.ErrorIs(t, err, matrix.ErrNilMatrix)
}

func TestSVD_SweepCap(t *testing.T) {
	_, err := matrix.SVD(RandFilledDense(t, 6, 6, 7), matrix.WithMaxSweeps(1))
	require.ErrorIs(t, err, matrix.ErrDecompositionFailed)
}

// TestSVD_InterfaceInput forces the non-Dense copy path.
func TestSVD_InterfaceInput(t *testing.T) {
	m := FromRows(t, [][]float64{{1, -1, 0}, {1, 0, -2}})
	s, err := matrix.SVD(hide{m})
	require.NoError(t, err)
	require.Equal(t, 2, s.Rank())
	require.Greater(t, s.Sweeps(), 0)
}

// TestSVD_Residuals checks the self-test used by the reaction solver's debug log.
func TestSVD_Residuals(t *testing.T) {
	for _, m := range []*matrix.Dense{
		FromRows(t, [][]float64{{1, -1, 0}, {1, 0, -2}}),
		RandFilledDense(t, 5, 4, 3),
		RandFilledDense(t, 3, 7, 4),
		MustDense(t, 2, 2),
	} {
		s, err := matrix.SVD(m)
		require.NoError(t, err)
		recon, orth, err := s.Residuals(m)
		require.NoError(t, err)
		require.Less(t, recon, 1e-13)
		require.Less(t, orth, 1e-13)
	}

	s, err := matrix.SVD(MustDense(t, 2, 3))
	require.NoError(t, err)
	_, _, err = s.Residuals(MustDense(t, 3, 2))
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)
	_, _, err = s.Residuals(nil)
	require.ErrorIs(t, err, matrix.ErrNilMatrix)
}

// TestSVD_ExtremeMagnitudes: squared column norms of these entries overflow
// or underflow float64, the singular values themselves do not.
func TestSVD_ExtremeMagnitudes(t *testing.T) {
	cases := []struct {
		name  string
		rows  [][]float64
		sigma float64
		null  []float64
	}{
		{"huge", [][]float64{{1e300, -1e300}}, math.Sqrt2 * 1e300, []float64{1, 1}},
		{"tiny", [][]float64{{1e-300, -2e-300}}, math.Sqrt(5) * 1e-300, []float64{2, 1}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			m := FromRows(t, tc.rows)
			s, err := matrix.SVD(m)
			require.NoError(t, err)
			require.InEpsilon(t, tc.sigma, s.Values()[0], 1e-14)
			require.Equal(t, 1, s.Rank())

			basis := s.NullSpace()
			require.Len(t, basis, 1)
			v := basis[0]
			ratio := v[0] / v[1]
			require.InDelta(t, tc.null[0]/tc.null[1], ratio, 1e-14)

			recon, _, err := s.Residuals(m)
			require.NoError(t, err)
			require.Less(t, recon, 1e-14)
		})
	}
}
