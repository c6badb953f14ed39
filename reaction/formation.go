// SPDX-License-Identifier: MIT
package reaction

import "fmt"

// diatomic lists the elements whose standard state is a diatomic molecule.
var diatomic = map[string]bool{
	"H":  true,
	"N":  true,
	"O":  true,
	"F":  true,
	"Cl": true,
	"Br": true,
	"I":  true,
}

// StandardFormationReaction balances the formation of a compound from its
// elements in their standard states: diatomic for H, N, O, F, Cl, Br and I,
// monatomic otherwise.
//
// It returns the product coefficient, the reactant coefficients and the
// reactant species, reactants in Hill order.
//
//	StandardFormationReaction(Species{"C": 3, "H": 8})
//	// 1, [3 4], [{C:1} {H:2}]   i.e. 3 C + 4 H2 -> C3H8
//
// Errors: ErrInvalidInput for an empty or charged compound, plus any
// error of Balance.
func StandardFormationReaction(compound Species, opts ...Option) (float64, []float64, []Species, error) {
	if err := compound.validate(); err != nil {
		return 0, nil, nil, reactionErrorf(opFormation, err)
	}
	if compound.Charge() != 0 {
		return 0, nil, nil, reactionErrorf(opFormation,
			invalidf("charged compound %s has no standard formation reaction", compound))
	}

	var reactants []Species
	for _, el := range HillOrder(compound) {
		if el == ChargeKey || compound[el] == 0 {
			continue
		}
		atoms := 1.0
		if diatomic[el] {
			atoms = 2
		}
		reactants = append(reactants, Species{el: atoms})
	}

	species := append(append([]Species(nil), reactants...), compound)
	known := make([]bool, len(species))
	for i := range reactants {
		known[i] = true
	}
	res, err := Balance(species, known, opts...)
	if err != nil {
		return 0, nil, nil, reactionErrorf(opFormation, fmt.Errorf("%s: %w", compound, err))
	}
	last := len(species) - 1

	return res.Coefficients[last], res.Coefficients[:last], reactants, nil
}
