// SPDX-License-Identifier: MIT
package reaction

import (
	"context"
	"fmt"
	"log/slog"
	"math"

	"github.com/katalvlaran/stoich/matrix"
)

// SolveCoefficients returns the real-valued balancing vector of sm: the
// single null-space direction of the conservation matrix, signed so the
// first known species is positive.
//
// Implementation:
//   - Stage 1: one-sided Jacobi SVD of sm.Mat (matrix.SVD). With a debug
//     logger the factorization residuals are logged as well.
//   - Stage 2: classify the null space by its dimension.
//   - Stage 3: sign-normalize and require every component to be positive.
//
// Errors:
//   - ErrInvalidInput for a nil matrix.
//   - ErrInfeasibleBalance when the null space is trivial, or when its
//     direction has a zero or negative component (no all-positive reaction).
//   - ErrUnderdeterminedSystem when the null space has dimension > 1; the
//     message lists the independent species groups when there are several.
//   - matrix errors from the decomposition, wrapped.
//
// Complexity: one SVD, O(sweeps · S² · (E + S)).
func SolveCoefficients(sm *StoichiometricMatrix, opts ...Option) ([]float64, error) {
	if sm == nil || sm.Mat == nil {
		return nil, reactionErrorf(opSolve, invalidf("nil stoichiometric matrix"))
	}
	o := gatherOptions(opts...)

	svd, err := matrix.SVD(sm.Mat, o.matrixOptions()...)
	if err != nil {
		return nil, reactionErrorf(opSolve, err)
	}
	basis := svd.NullSpace(o.matrixOptions()...)
	cols := sm.Species()
	o.logger.Debug("null space",
		"species", cols,
		"elements", len(sm.Elements),
		"rank", cols-len(basis),
		"nullity", len(basis),
		"sweeps", svd.Sweeps(),
		"tolerance", svd.Tolerance(o.matrixOptions()...),
	)
	if o.logger.Enabled(context.Background(), slog.LevelDebug) {
		if recon, orth, rerr := svd.Residuals(sm.Mat); rerr == nil {
			o.logger.Debug("factorization check", "reconstruction", recon, "orthogonality", orth)
		}
	}

	switch {
	case len(basis) == 0:
		return nil, reactionErrorf(opSolve,
			fmt.Errorf("%w: conservation matrix has full column rank %d", ErrInfeasibleBalance, cols))
	case len(basis) > 1:
		groups := sm.Groups()
		if len(groups) > 1 {
			return nil, reactionErrorf(opSolve,
				fmt.Errorf("%w: null space dimension %d, independent species groups %v",
					ErrUnderdeterminedSystem, len(basis), groups))
		}

		return nil, reactionErrorf(opSolve,
			fmt.Errorf("%w: null space dimension %d", ErrUnderdeterminedSystem, len(basis)))
	}

	v := basis[0]
	scale := 0.0
	for _, x := range v {
		scale = math.Max(scale, math.Abs(x))
	}
	pivot := firstKnown(sm.Known)
	if v[pivot] < 0 {
		for j := range v {
			v[j] = -v[j]
		}
	}
	for j, x := range v {
		if x <= o.tolerance*scale {
			o.logger.Debug("non-positive coefficient", "species", j, "value", x)

			return nil, reactionErrorf(opSolve,
				fmt.Errorf("%w: species %d has coefficient %.3g", ErrInfeasibleBalance, j, x/scale))
		}
	}

	return v, nil
}

func firstKnown(known []bool) int {
	for j, k := range known {
		if k {
			return j
		}
	}

	return 0
}
