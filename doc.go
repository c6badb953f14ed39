// SPDX-License-Identifier: MIT

// Package stoich balances chemical equations: given the element composition
// of each species and which side of the arrow it sits on, it finds the
// smallest positive integer coefficients that conserve every element and
// the net charge.
//
// What is inside?
//
//	matrix/       dense matrices, one-sided Jacobi SVD, rank and null space
//	reaction/     conservation matrix, null-space solver, rationalizer,
//	              Balance pipeline, standard formation reactions
//	formula/      parser for formulas such as "K4[Fe(CN)6]", "SO4-2", "e-"
//	cmd/balance/  command-line front end
//
// Quick example:
//
//	species := []reaction.Species{
//		formula.MustParse("Fe"),
//		formula.MustParse("O2"),
//		formula.MustParse("Fe2O3"),
//	}
//	res, err := reaction.Balance(species, []bool{true, true, false})
//	// res.Coefficients == [4 3 2]: 4 Fe + 3 O2 -> 2 Fe2O3
//
// The pipeline:
//
//	species ──BuildMatrix──▶ A (elements × species, +known / −unknown)
//	        ──SVD──────────▶ null space of A (must be one-dimensional)
//	        ──Rationalize──▶ smallest positive integers
//
// Failures are reported with sentinel errors (reaction.ErrInvalidInput,
// reaction.ErrInfeasibleBalance, reaction.ErrUnderdeterminedSystem); an
// answer with no small-denominator integer form comes back real-valued with
// Result.Integral == false.
//
// The library is pure Go, has no global state and every call is safe for
// concurrent use.
package stoich
