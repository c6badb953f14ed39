// SPDX-License-Identifier: MIT
package reaction

import (
	"math"
	"math/big"
)

// maxExactFloat is 2^53: integers above it are not all representable.
const maxExactFloat = 1 << 53

// Rationalize maps a positive real vector onto the smallest positive integer
// vector pointing the same way.
//
// Implementation:
//   - Stage 1: divide by the minimum so the smallest component is 1.
//   - Stage 2: approximate each ratio by a continued fraction p/q with
//     q ≤ MaxDenominator, accepted once |r − p/q| ≤ Tolerance·max(1, r).
//   - Stage 3: multiply by the LCM of the denominators, divide by the GCD of
//     the numerators (math/big, so intermediates cannot overflow).
//
// When any ratio has no acceptable fraction, or v is empty or not strictly
// positive, Rationalize returns the min-scaled real vector and false.
//
//	Rationalize([]float64{0.5, 0.25, 0.75}) // [2 1 3], true
func Rationalize(v []float64, opts ...Option) ([]float64, bool) {
	o := gatherOptions(opts...)
	if len(v) == 0 {
		return nil, false
	}
	lo := math.Inf(1)
	for _, x := range v {
		if math.IsNaN(x) || math.IsInf(x, 0) || x <= 0 {
			return append([]float64(nil), v...), false
		}
		lo = math.Min(lo, x)
	}

	ratios := make([]float64, len(v))
	nums := make([]*big.Int, len(v))
	lcm := big.NewInt(1)
	dens := make([]*big.Int, len(v))
	for i, x := range v {
		ratios[i] = x / lo
	}
	for i, r := range ratios {
		p, q, ok := continuedFraction(r, o.maxDenominator, o.tolerance)
		if !ok {
			o.logger.Debug("ratio has no bounded fraction",
				"index", i, "ratio", r, "max_denominator", o.maxDenominator)

			return ratios, false
		}
		nums[i], dens[i] = big.NewInt(p), big.NewInt(q)
		lcm = lcmBig(lcm, dens[i])
	}

	gcd := new(big.Int)
	ints := make([]*big.Int, len(v))
	for i := range ints {
		ints[i] = new(big.Int).Quo(lcm, dens[i])
		ints[i].Mul(ints[i], nums[i])
		gcd.GCD(nil, nil, gcd, ints[i])
	}

	out := make([]float64, len(v))
	for i, n := range ints {
		n.Quo(n, gcd)
		if n.Cmp(big.NewInt(maxExactFloat)) > 0 {
			return ratios, false
		}
		out[i] = float64(n.Int64())
	}

	return out, true
}

// continuedFraction returns the first convergent p/q of x (x ≥ 1) with
// |x − p/q| ≤ tol·max(1, |x|), as long as q ≤ maxDen.
func continuedFraction(x float64, maxDen int64, tol float64) (p, q int64, ok bool) {
	if x >= maxExactFloat || x*float64(maxDen) >= 1<<62 {
		return 0, 0, false
	}
	limit := tol * math.Max(1, math.Abs(x))
	var h0, h1 int64 = 0, 1 // h_{k-2}, h_{k-1}
	var k0, k1 int64 = 1, 0 // k_{k-2}, k_{k-1}
	rem := x
	for iter := 0; iter < 64; iter++ {
		a := math.Floor(rem)
		if k1 > 0 && a > float64(maxDen) {
			return 0, 0, false
		}
		ai := int64(a)
		h, k := ai*h1+h0, ai*k1+k0
		if k > maxDen {
			return 0, 0, false
		}
		if math.Abs(x-float64(h)/float64(k)) <= limit {
			return h, k, true
		}
		frac := rem - a
		if frac == 0 {
			return 0, 0, false
		}
		rem = 1 / frac
		h0, h1 = h1, h
		k0, k1 = k1, k
	}

	return 0, 0, false
}

func lcmBig(a, b *big.Int) *big.Int {
	g := new(big.Int).GCD(nil, nil, a, b)
	out := new(big.Int).Quo(a, g)

	return out.Mul(out, b)
}
