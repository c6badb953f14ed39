// SPDX-License-Identifier: MIT

// Package formula parses chemical formulas into reaction.Species.
//
// Supported notation:
//   - element symbols with optional counts: "H2O", "C6H12O6", "Fe0.95O"
//   - nested groups with multipliers: "Fe2(SO4)3", "K4[Fe(CN)6]"
//   - adducts joined by '*' or '·': "CuSO4*5H2O"
//   - a trailing charge: "Na+", "SO4-2", "Fe+3"
//   - the electron: "e-"
//
// The charge is stored under reaction.ChargeKey.
package formula

import (
	"errors"
	"fmt"
	"strings"

	"github.com/katalvlaran/stoich/reaction"
)

// ErrSyntax marks a string that is not a valid formula.
var ErrSyntax = errors.New("formula: syntax error")

// Parse converts s into a Species. Counts of repeated elements add up.
// Element symbols are read as an upper-case letter followed by up to two
// lower-case letters; they are not checked against the periodic table, so
// "Xyz2" parses as {"Xyz": 2}.
func Parse(s string) (reaction.Species, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, fmt.Errorf("%w: empty formula", ErrSyntax)
	}

	parsed, err := formulaParser.ParseString("", s)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrSyntax, s, err)
	}

	out := reaction.Species{}
	if parsed.Electron {
		if parsed.Charge == nil || parsed.Charge.Sign != "-" || parsed.Charge.Value != nil {
			return nil, fmt.Errorf("%w: %q: electron must be written e-", ErrSyntax, s)
		}
		out[reaction.ChargeKey] = -1

		return out, nil
	}

	for _, t := range parsed.Terms {
		if err = t.accumulate(out, 1); err != nil {
			return nil, fmt.Errorf("%w: %q: %v", ErrSyntax, s, err)
		}
	}
	for _, a := range parsed.Adducts {
		mult, err := count(a.Count)
		if err != nil {
			return nil, fmt.Errorf("%w: %q: %v", ErrSyntax, s, err)
		}
		for _, t := range a.Terms {
			if err = t.accumulate(out, mult); err != nil {
				return nil, fmt.Errorf("%w: %q: %v", ErrSyntax, s, err)
			}
		}
	}
	if c := parsed.Charge; c != nil {
		q, err := count(c.Value)
		if err != nil {
			return nil, fmt.Errorf("%w: %q: %v", ErrSyntax, s, err)
		}
		if c.Sign == "-" {
			q = -q
		}
		out[reaction.ChargeKey] = q
	}

	return out, nil
}

// MustParse is Parse for literals; it panics on error.
func MustParse(s string) reaction.Species {
	sp, err := Parse(s)
	if err != nil {
		panic(err)
	}

	return sp
}

// ParseAll parses every formula, reporting the first failure with its index.
func ParseAll(formulas []string) ([]reaction.Species, error) {
	out := make([]reaction.Species, len(formulas))
	for i, f := range formulas {
		sp, err := Parse(f)
		if err != nil {
			return nil, fmt.Errorf("formula %d: %w", i, err)
		}
		out[i] = sp
	}

	return out, nil
}

func (t *term) accumulate(into reaction.Species, mult float64) error {
	n, err := count(t.Count)
	if err != nil {
		return err
	}
	if t.Group == nil {
		into[t.Element] += n * mult

		return nil
	}
	for _, sub := range t.Group.Terms {
		if err = sub.accumulate(into, n*mult); err != nil {
			return err
		}
	}

	return nil
}

// count resolves an optional multiplier; absent means 1.
func count(n *float64) (float64, error) {
	if n == nil {
		return 1, nil
	}
	if *n == 0 {
		return 0, errors.New("zero count")
	}

	return *n, nil
}
