// SPDX-License-Identifier: MIT
package matrix_test

import (
	"math/rand"
	"testing"

	"github.com/katalvlaran/stoich/matrix"
)

// benchDense fills an r×c matrix with small integers, like atom counts.
func benchDense(b *testing.B, r, c int) *matrix.Dense {
	b.Helper()
	m, err := matrix.NewDense(r, c)
	if err != nil {
		b.Fatal(err)
	}
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			_ = m.Set(i, j, float64(rng.Intn(7)-3))
		}
	}

	return m
}

func BenchmarkSVD_8x9(b *testing.B) {
	m := benchDense(b, 8, 9)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := matrix.SVD(m); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkNullSpace_20x24(b *testing.B) {
	m := benchDense(b, 20, 24)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := matrix.NullSpace(m); err != nil {
			b.Fatal(err)
		}
	}
}
