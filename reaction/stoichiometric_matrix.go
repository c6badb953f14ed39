// SPDX-License-Identifier: MIT
package reaction

import (
	"fmt"
	"math"

	"github.com/katalvlaran/stoich/matrix"
)

// StoichiometricMatrix is the conservation matrix of a reaction.
//
// Row i conserves Elements[i]; column j is species j. Known species
// contribute +count, unknown species −count, absent elements 0, so a
// coefficient vector x balances the reaction iff Mat·x = 0.
type StoichiometricMatrix struct {
	// Elements lists the row keys in first-seen order across species, each
	// species contributing its keys in Hill order (charge last).
	Elements []string

	// Known is the reactant/product partition, one flag per column.
	Known []bool

	// Mat is the len(Elements)×len(Known) conservation matrix.
	Mat *matrix.Dense
}

// BuildMatrix assembles the conservation matrix for species under the
// known/unknown partition.
//
// Errors (all wrap ErrInvalidInput):
//   - len(species) != len(known) or fewer than two species;
//   - every species on one side of the partition;
//   - an invalid species (empty, non-finite or negative counts).
//
// Complexity: O(E·S) time and space for E distinct keys and S species.
func BuildMatrix(species []Species, known []bool) (*StoichiometricMatrix, error) {
	if err := validatePartition(species, known); err != nil {
		return nil, reactionErrorf(opBuild, err)
	}

	index := make(map[string]int)
	elements := make([]string, 0, 2*len(species))
	for j, s := range species {
		if err := s.validate(); err != nil {
			return nil, reactionErrorf(opBuild, fmt.Errorf("species %d: %w", j, err))
		}
		for _, key := range HillOrder(s) {
			if _, seen := index[key]; !seen {
				index[key] = len(elements)
				elements = append(elements, key)
			}
		}
	}

	m, err := matrix.NewDense(len(elements), len(species))
	if err != nil {
		return nil, reactionErrorf(opBuild, err)
	}
	for j, s := range species {
		sign := 1.0
		if !known[j] {
			sign = -1.0
		}
		for key, count := range s {
			if count == 0 {
				continue
			}
			if err = m.Set(index[key], j, sign*count); err != nil {
				return nil, reactionErrorf(opBuild, err)
			}
		}
	}

	return &StoichiometricMatrix{
		Elements: elements,
		Known:    append([]bool(nil), known...),
		Mat:      m,
	}, nil
}

// Species returns the number of columns.
func (sm *StoichiometricMatrix) Species() int { return len(sm.Known) }

// Residual returns Mat·coeffs, one entry per element row.
func (sm *StoichiometricMatrix) Residual(coeffs []float64) ([]float64, error) {
	return matrix.MatVec(sm.Mat, coeffs)
}

// conserves reports whether every row of Mat·coeffs vanishes relative to the
// magnitude of the terms it sums.
func (sm *StoichiometricMatrix) conserves(coeffs []float64, tol float64) bool {
	residual, err := sm.Residual(coeffs)
	if err != nil {
		return false
	}
	scale := make([]float64, len(residual))
	sm.Mat.Do(func(i, j int, a float64) bool {
		scale[i] += math.Abs(a * coeffs[j])

		return true
	})
	for i, r := range residual {
		if math.Abs(r) > tol*scale[i] {
			return false
		}
	}

	return true
}

func validatePartition(species []Species, known []bool) error {
	if len(species) != len(known) {
		return invalidf("%d species but %d partition flags", len(species), len(known))
	}
	if len(species) < 2 {
		return invalidf("need at least two species, got %d", len(species))
	}
	var nKnown int
	for _, k := range known {
		if k {
			nKnown++
		}
	}
	if nKnown == 0 || nKnown == len(known) {
		return invalidf("partition must have species on both sides")
	}

	return nil
}
