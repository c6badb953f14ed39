// SPDX-License-Identifier: MIT
package reaction

import (
	"math"
	"sort"
	"strconv"
	"strings"
)

// ChargeKey is the reserved Species key holding the net charge. It takes part
// in conservation like any element and may be negative.
const ChargeKey = "p"

// Species maps element symbols to (possibly fractional) atom counts.
// The key ChargeKey carries the signed net charge.
type Species map[string]float64

// Clone returns an independent copy.
func (s Species) Clone() Species {
	out := make(Species, len(s))
	for k, v := range s {
		out[k] = v
	}

	return out
}

// Charge returns the net charge (0 when absent).
func (s Species) Charge() float64 { return s[ChargeKey] }

// String renders s in Hill order with the charge as a suffix, e.g.
// "C3H8", "Fe2O3", "O4S-2". Counts of 1 are omitted. A species carrying only
// charge is written as the electron, "e-".
func (s Species) String() string {
	var b strings.Builder
	keys := HillOrder(s)
	if len(keys) == 1 && keys[0] == ChargeKey {
		b.WriteByte('e')
	}
	for _, key := range keys {
		if key == ChargeKey {
			continue
		}
		b.WriteString(key)
		if n := s[key]; n != 1 {
			b.WriteString(strconv.FormatFloat(n, 'g', -1, 64))
		}
	}
	switch q := s.Charge(); {
	case q == 1:
		b.WriteByte('+')
	case q == -1:
		b.WriteByte('-')
	case q > 0:
		b.WriteByte('+')
		b.WriteString(strconv.FormatFloat(q, 'g', -1, 64))
	case q < 0:
		b.WriteString(strconv.FormatFloat(q, 'g', -1, 64))
	}

	return b.String()
}

// HillOrder lists the keys of s in Hill system order: with carbon present,
// C then H then the rest alphabetically; without carbon, all alphabetically.
// ChargeKey, if present, always comes last.
func HillOrder(s Species) []string {
	keys := make([]string, 0, len(s))
	_, hasCharge := s[ChargeKey]
	_, hasCarbon := s["C"]
	for k := range s {
		if k == ChargeKey {
			continue
		}
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		ri, rj := hillRank(keys[i], hasCarbon), hillRank(keys[j], hasCarbon)
		if ri != rj {
			return ri < rj
		}

		return keys[i] < keys[j]
	})
	if hasCharge {
		keys = append(keys, ChargeKey)
	}

	return keys
}

func hillRank(key string, hasCarbon bool) int {
	if !hasCarbon {
		return 2
	}
	switch key {
	case "C":
		return 0
	case "H":
		return 1
	default:
		return 2
	}
}

// validate checks a single species: non-empty, finite counts, non-negative
// atom counts, at least one non-zero entry.
func (s Species) validate() error {
	if len(s) == 0 {
		return invalidf("species has no elements")
	}
	nonZero := false
	for k, v := range s {
		if k == "" {
			return invalidf("empty element symbol")
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return invalidf("non-finite count %v for %q", v, k)
		}
		if v < 0 && k != ChargeKey {
			return invalidf("negative count %v for %q", v, k)
		}
		if v != 0 {
			nonZero = true
		}
	}
	if !nonZero {
		return invalidf("species has only zero counts")
	}

	return nil
}
