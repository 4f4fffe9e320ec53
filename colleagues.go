// Copyright (c) 2025 The Boxtree Authors
// SPDX-License-Identifier: MIT

package boxtree

import (
	"github.com/Python-Repository-Hub/boxtree/internal/ragged"
	"github.com/Python-Repository-Hub/boxtree/internal/walk"
)

// colleaguesFor implements spec.md §4.5 for a single box b: descend from
// the root via s, emitting same-level adjacent boxes (excluding b itself)
// as colleagues. The root (b == 0) always has an empty colleague list.
func colleaguesFor[ID Int, C Float](t *Tree[ID, C], s *walk.Stack[ID], b ID, emit func(ID)) {
	if b == 0 {
		return
	}

	level := t.BoxLevels[b]
	center := t.center(b)
	nChildren := t.nChildren()

	s.Reset(0)
	for s.Continue() {
		childBoxID := t.BoxChildIDs[s.MortonNr()][s.BoxID()]

		if childBoxID != 0 {
			if adjacentOrOverlapping(t, center, level, childBoxID) {
				if s.Level()+1 == int(level) && childBoxID != b {
					emit(childBoxID)
				} else {
					if !s.Push(childBoxID) {
						panic(ErrTreeTooDeep)
					}
					continue
				}
			}
		}

		s.Advance(nChildren)
	}
}

// buildColleagues runs colleaguesFor for every box, 0 <= b < nboxes, via
// the shared ragged list builder (spec.md §4.10).
func buildColleagues[ID Int, C Float](t *Tree[ID, C], newStack func() *walk.Stack[ID]) ragged.List[ID] {
	stack := newStack()
	return ragged.Build(t.NBoxes, func(b ID, emit func(ID)) {
		colleaguesFor(t, stack, b, emit)
	})
}
