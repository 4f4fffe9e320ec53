// Copyright (c) 2025 The Boxtree Authors
// SPDX-License-Identifier: MIT

package boxtree

import "github.com/Python-Repository-Hub/boxtree/internal/ragged"

// sepSiblingsFor implements spec.md §4.7 ("List 2") for box b: iterate
// the parent's colleagues, and for each one enumerate its 2^d children,
// emitting those that are not adjacent to b. The root has no parent
// distinct from itself and therefore an empty List 2.
//
// As documented in spec.md §9 (Open Questions) and resolved in
// SPEC_FULL.md §13, this faithfully mirrors the source: since a box is
// never its own colleague, true siblings of b reach this list only when
// they happen to be children of one of the parent's colleagues, never via
// an explicit pass over the parent's own children.
func sepSiblingsFor[ID Int, C Float](t *Tree[ID, C], colleagues ragged.List[ID], b ID, emit func(ID)) {
	parent := t.BoxParentIDs[b]
	if parent == b {
		return
	}

	level := t.BoxLevels[b]
	center := t.center(b)

	start, stop := colleagues.Starts[parent], colleagues.Starts[parent+1]
	for i := start; i < stop; i++ {
		parentColleague := colleagues.Lists[i]

		for mortonNr := range t.BoxChildIDs {
			sibBoxID := t.BoxChildIDs[mortonNr][parentColleague]
			if sibBoxID == 0 {
				continue
			}
			if !adjacentOrOverlapping(t, center, level, sibBoxID) {
				emit(sibBoxID)
			}
		}
	}
}

// buildSepSiblings runs sepSiblingsFor for every box.
func buildSepSiblings[ID Int, C Float](t *Tree[ID, C], colleagues ragged.List[ID]) ragged.List[ID] {
	return ragged.Build(t.NBoxes, func(b ID, emit func(ID)) {
		sepSiblingsFor(t, colleagues, b, emit)
	})
}
