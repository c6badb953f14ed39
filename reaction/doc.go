// SPDX-License-Identifier: MIT

// Package reaction balances chemical equations.
//
// A reaction is described by its species, each an element→count mapping
// (Species), and a parallel known/unknown partition: known species sit on
// the reactant side, unknown species on the product side. Balancing runs
// three stateless steps:
//
//	BuildMatrix        species + partition → conservation matrix
//	                   (rows = elements and charge, columns = species;
//	                   +count for known, −count for unknown)
//	SolveCoefficients  one-dimensional null space of the matrix via SVD
//	Rationalize        smallest positive integer representative
//
// Balance chains the three and verifies conservation of the answer.
//
//	res, err := reaction.Balance(
//		[]reaction.Species{{"Fe": 1}, {"O": 2}, {"Fe": 2, "O": 3}},
//		[]bool{true, true, false},
//	)
//	// res.Coefficients == []float64{4, 3, 2}
//
// Errors are package sentinels matched with errors.Is: ErrInvalidInput,
// ErrInfeasibleBalance, ErrUnderdeterminedSystem. Failure to find integer
// coefficients is soft: Result.Integral is false and the real-valued
// solution is returned; Result.RequireIntegral turns that into
// ErrNonIntegralResult for strict callers.
//
// Every function is pure and safe for concurrent use.
package reaction
