// SPDX-License-Identifier: MIT
package reaction

import (
	"errors"
	"fmt"
)

// Sentinel errors. Every message is prefixed with "reaction: ...".
var (
	// ErrInvalidInput marks malformed input: mismatched lengths, fewer than
	// two species, a one-sided partition, empty species or negative counts.
	ErrInvalidInput = errors.New("reaction: invalid input")

	// ErrInfeasibleBalance means no reaction with strictly positive
	// coefficients balances the species under the given partition.
	ErrInfeasibleBalance = errors.New("reaction: no balanced reaction exists")

	// ErrUnderdeterminedSystem means several independent reactions balance
	// the species; the caller has to add constraints.
	ErrUnderdeterminedSystem = errors.New("reaction: multiple independent reactions")

	// ErrNonIntegralResult is never returned by Balance itself; see
	// Result.RequireIntegral.
	ErrNonIntegralResult = errors.New("reaction: no integral coefficients within denominator bound")
)

// Operation tags for error wrapping.
const (
	opBuild       = "BuildMatrix"
	opSolve       = "SolveCoefficients"
	opBalance     = "Balance"
	opFormation   = "StandardFormationReaction"
	opRequireInts = "RequireIntegral"
)

// reactionErrorf wraps err with an operation tag; err must be non-nil.
func reactionErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// invalidf builds an ErrInvalidInput with a formatted reason.
func invalidf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}
