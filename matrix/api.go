// SPDX-License-Identifier: MIT
// Package matrix: constructors with intention-revealing names.
//
// AI-Hints:
//   - SVDResult.Residuals compares VᵀV against NewIdentity(c).

package matrix

// NewIdentity returns I_n (n×n identity; ones on the diagonal, zeros elsewhere).
// Complexity: O(n^2) zeroing (constructor) + O(n) writes on the diagonal.
func NewIdentity(n int) (*Dense, error) {
	I, err := NewDense(n, n)
	if err != nil {
		return nil, err
	}
	for i := 0; i < n; i++ {
		I.data[i*n+i] = 1.0
	}

	return I, nil
}
