// Copyright (c) 2025 The Boxtree Authors
// SPDX-License-Identifier: MIT

package boxtree

import (
	"github.com/Python-Repository-Hub/boxtree/internal/ragged"
	"github.com/Python-Repository-Hub/boxtree/internal/walk"
)

// neighborLeavesFor implements spec.md §4.6 ("List 1") for leaf number l:
// b = leaves[l]. Descend from the root, emitting every source-bearing box
// adjacent to b (including b itself) and descending into adjacent boxes
// that have children.
func neighborLeavesFor[ID Int, C Float](t *Tree[ID, C], s *walk.Stack[ID], leaves []ID, l ID, emit func(ID)) {
	b := leaves[l]
	level := t.BoxLevels[b]
	center := t.center(b)
	nChildren := t.nChildren()

	s.Reset(0)
	for s.Continue() {
		childBoxID := t.BoxChildIDs[s.MortonNr()][s.BoxID()]

		if childBoxID != 0 && adjacentOrOverlapping(t, center, level, childBoxID) {
			flags := t.BoxFlags[childBoxID]
			if flags&HasSources != 0 {
				emit(childBoxID)
			}
			if flags&HasChildren != 0 {
				if !s.Push(childBoxID) {
					panic(ErrTreeTooDeep)
				}
				continue
			}
		}

		s.Advance(nChildren)
	}
}

// buildNeighborLeaves runs neighborLeavesFor for every leaf.
func buildNeighborLeaves[ID Int, C Float](t *Tree[ID, C], leaves []ID, newStack func() *walk.Stack[ID]) ragged.List[ID] {
	stack := newStack()
	return ragged.Build(ID(len(leaves)), func(l ID, emit func(ID)) {
		neighborLeavesFor(t, stack, leaves, l, emit)
	})
}
