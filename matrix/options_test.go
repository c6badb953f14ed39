// SPDX-License-Identifier: MIT
package matrix_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/stoich/matrix"
)

// TestDefaultOptions_Documented verifies that NewMatrixOptions() equals documented defaults.
func TestDefaultOptions_Documented(t *testing.T) {
	o := matrix.NewMatrixOptions()
	require.Equal(t, matrix.DefaultEpsilon, o.Epsilon())
	require.Equal(t, matrix.DefaultRankTolerance, o.RankTolerance())
	require.Equal(t, matrix.DefaultMaxSweeps, o.MaxSweeps())
}

// TestNewMatrixOptions_LastWriterWins ensures later setters override earlier ones.
func TestNewMatrixOptions_LastWriterWins(t *testing.T) {
	o := matrix.NewMatrixOptions(matrix.WithRankTolerance(1e-6), matrix.WithRankTolerance(1e-3), nil)
	require.Equal(t, 1e-3, o.RankTolerance())

	o = matrix.NewMatrixOptions(matrix.WithMaxSweeps(5), matrix.WithEpsilon(1e-12))
	require.Equal(t, 5, o.MaxSweeps())
	require.Equal(t, 1e-12, o.Epsilon())
}

// TestOptions_PanicOnNonsense covers the programmer-error guards.
func TestOptions_PanicOnNonsense(t *testing.T) {
	for name, fn := range map[string]func(){
		"eps negative":    func() { matrix.WithEpsilon(-1) },
		"eps NaN":         func() { matrix.WithEpsilon(math.NaN()) },
		"rankTol Inf":     func() { matrix.WithRankTolerance(math.Inf(1)) },
		"rankTol neg":     func() { matrix.WithRankTolerance(-1e-9) },
		"sweeps zero":     func() { matrix.WithMaxSweeps(0) },
		"sweeps negative": func() { matrix.WithMaxSweeps(-3) },
	} {
		t.Run(name, func(t *testing.T) {
			require.Panics(t, fn)
		})
	}
}
