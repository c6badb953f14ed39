// SPDX-License-Identifier: MIT
package reaction

import (
	"fmt"
	"strconv"
	"strings"
)

// Result is the outcome of a successful Balance.
type Result struct {
	// Coefficients holds one positive coefficient per species, in input
	// order. Integers when Integral is true.
	Coefficients []float64

	// Elements lists the conserved keys (matrix rows) in row order.
	Elements []string

	// Integral reports whether Coefficients are the minimal integer solution.
	// When false they are the real solution scaled so the smallest is 1.
	Integral bool

	// Residual is Mat·Coefficients per element; zero for integer solutions
	// with integer counts.
	Residual []float64
}

// RequireIntegral returns ErrNonIntegralResult when the rationalizer fell
// back to real coefficients.
func (r *Result) RequireIntegral() error {
	if r.Integral {
		return nil
	}

	return reactionErrorf(opRequireInts,
		fmt.Errorf("%w: %v", ErrNonIntegralResult, r.Coefficients))
}

// Balance finds the smallest positive coefficients that conserve every
// element and the charge across the known/unknown partition.
//
// Pipeline: BuildMatrix → SolveCoefficients → Rationalize, followed by a
// conservation check of the integer answer (a failing check downgrades the
// result to the real-valued solution).
//
// Errors: ErrInvalidInput, ErrInfeasibleBalance, ErrUnderdeterminedSystem,
// each wrapped with the failing stage.
//
//	res, _ := Balance([]Species{{"Hg": 1, "O": 1}, {"Hg": 1}, {"O": 2}},
//		[]bool{true, false, false})
//	// res.Coefficients == [2 2 1]
func Balance(species []Species, known []bool, opts ...Option) (*Result, error) {
	sm, err := BuildMatrix(species, known)
	if err != nil {
		return nil, reactionErrorf(opBalance, err)
	}

	return balanceMatrix(sm, opts...)
}

// BalanceStoichiometry balances a prebuilt conservation matrix and returns
// only the coefficients.
func BalanceStoichiometry(sm *StoichiometricMatrix, opts ...Option) ([]float64, error) {
	res, err := balanceMatrix(sm, opts...)
	if err != nil {
		return nil, err
	}

	return res.Coefficients, nil
}

func balanceMatrix(sm *StoichiometricMatrix, opts ...Option) (*Result, error) {
	o := gatherOptions(opts...)
	raw, err := SolveCoefficients(sm, opts...)
	if err != nil {
		return nil, reactionErrorf(opBalance, err)
	}

	coeffs, integral := Rationalize(raw, opts...)
	coeffs, integral = o.settle(sm, raw, coeffs, integral)

	residual, err := sm.Residual(coeffs)
	if err != nil {
		return nil, reactionErrorf(opBalance, err)
	}
	o.logger.Debug("balanced", "coefficients", coeffs, "integral", integral)

	return &Result{
		Coefficients: coeffs,
		Elements:     append([]string(nil), sm.Elements...),
		Integral:     integral,
		Residual:     residual,
	}, nil
}

// settle accepts the rationalized coefficients when they are integral and
// conserve every row; otherwise it returns the real solution scaled to its
// minimum. Exactly one warning is logged per downgrade, naming its cause.
func (o Options) settle(sm *StoichiometricMatrix, raw, coeffs []float64, integral bool) ([]float64, bool) {
	switch {
	case !integral:
		o.logger.Warn("no integral coefficients within denominator bound",
			"max_denominator", o.maxDenominator, "coefficients", coeffs)

		return coeffs, false
	case !sm.conserves(coeffs, o.tolerance):
		o.logger.Warn("integer coefficients do not conserve; keeping real solution",
			"coefficients", coeffs)

		return scaleToMin(raw), false
	}

	return coeffs, true
}

// scaleToMin divides v by its smallest component.
func scaleToMin(v []float64) []float64 {
	lo := v[0]
	for _, x := range v[1:] {
		if x < lo {
			lo = x
		}
	}
	out := make([]float64, len(v))
	for i, x := range v {
		out[i] = x / lo
	}

	return out
}

// FormatEquation renders species and coefficients as "2 Hg + O2 -> ...".
// Coefficients of 1 are omitted; known species go left of the arrow.
func FormatEquation(species []Species, known []bool, coeffs []float64) string {
	names := make([]string, len(species))
	for j, s := range species {
		names[j] = s.String()
	}

	return FormatNamed(names, known, coeffs)
}

// FormatNamed is FormatEquation with caller-chosen species names, e.g. the
// formulas as the user typed them.
func FormatNamed(names []string, known []bool, coeffs []float64) string {
	var left, right []string
	for j, term := range names {
		if j < len(coeffs) && coeffs[j] != 1 {
			term = strconv.FormatFloat(coeffs[j], 'g', 10, 64) + " " + term
		}
		if j < len(known) && known[j] {
			left = append(left, term)
		} else {
			right = append(right, term)
		}
	}

	return strings.Join(left, " + ") + " -> " + strings.Join(right, " + ")
}
