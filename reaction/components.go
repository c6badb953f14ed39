// SPDX-License-Identifier: MIT
package reaction

import "sort"

// componentWalker holds the mutable state of a breadth-first walk over the
// species–element incidence graph.
type componentWalker struct {
	byElement [][]int // element row → species columns touching it
	bySpecies [][]int // species column → element rows it contains
	queue     []int
	visited   []bool
}

// IndependentGroups partitions species indices into groups that share no
// element, transitively. A reaction over more than one group can be
// balanced group by group, which is one source of a multi-dimensional null
// space. Indices within a group are ascending; groups are ordered by their
// smallest index. Invalid input yields nil.
//
//	IndependentGroups([]Species{{"H": 2}, {"Cl": 2}, {"H": 1}, {"Cl": 1}})
//	// [[0 2] [1 3]]
func IndependentGroups(species []Species) [][]int {
	if len(species) == 0 {
		return nil
	}
	known := make([]bool, len(species))
	known[0] = true
	if len(species) == 1 {
		return [][]int{{0}}
	}
	sm, err := BuildMatrix(species, known)
	if err != nil {
		return nil
	}

	return sm.Groups()
}

// Groups returns the independent species groups of the matrix; see
// IndependentGroups.
//
// Complexity: O(E·S) to collect incidences, O(E + S + nnz) for the walk.
func (sm *StoichiometricMatrix) Groups() [][]int {
	rows, cols := sm.Mat.Shape()
	w := &componentWalker{
		byElement: make([][]int, rows),
		bySpecies: make([][]int, cols),
		queue:     make([]int, 0, cols),
		visited:   make([]bool, cols),
	}
	sm.Mat.Do(func(i, j int, v float64) bool {
		if v != 0 {
			w.byElement[i] = append(w.byElement[i], j)
			w.bySpecies[j] = append(w.bySpecies[j], i)
		}

		return true
	})

	var groups [][]int
	for seed := 0; seed < cols; seed++ {
		if w.visited[seed] {
			continue
		}
		groups = append(groups, w.walk(seed))
	}

	return groups
}

// walk collects every species reachable from seed.
func (w *componentWalker) walk(seed int) []int {
	group := []int{}
	w.visited[seed] = true
	w.queue = append(w.queue[:0], seed)
	for len(w.queue) > 0 {
		j := w.queue[0]
		w.queue = w.queue[1:]
		group = append(group, j)
		for _, row := range w.bySpecies[j] {
			for _, nbr := range w.byElement[row] {
				if !w.visited[nbr] {
					w.visited[nbr] = true
					w.queue = append(w.queue, nbr)
				}
			}
		}
	}
	sort.Ints(group)

	return group
}
