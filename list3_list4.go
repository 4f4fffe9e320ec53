// Copyright (c) 2025 The Boxtree Authors
// SPDX-License-Identifier: MIT

package boxtree

import (
	"sort"

	"github.com/Python-Repository-Hub/boxtree/internal/ragged"
	"github.com/Python-Repository-Hub/boxtree/internal/walk"
)

// sepSmallerNonsiblingsFor implements spec.md §4.8 ("List 3") for leaf
// number l: b = leaves[l]. For each colleague q of b, walk the subtree
// rooted at q, maintaining the invariant that the box currently visited
// is adjacent to b; whenever a visited child is not adjacent to b (but
// its parent was, by the invariant), emit the pair (b, child).
func sepSmallerNonsiblingsFor[ID Int, C Float](
	t *Tree[ID, C], s *walk.Stack[ID], leaves []ID, colleagues ragged.List[ID], l ID,
	emit func(origin, target ID),
) {
	b := leaves[l]
	level := t.BoxLevels[b]
	center := t.center(b)
	nChildren := t.nChildren()

	start, stop := colleagues.Starts[b], colleagues.Starts[b+1]
	for i := start; i < stop; i++ {
		colleague := colleagues.Lists[i]

		s.Reset(colleague)
		for s.Continue() {
			childBoxID := t.BoxChildIDs[s.MortonNr()][s.BoxID()]

			if childBoxID != 0 {
				if adjacentOrOverlapping(t, center, level, childBoxID) {
					if t.BoxFlags[childBoxID]&HasChildren != 0 {
						if !s.Push(childBoxID) {
							panic(ErrTreeTooDeep)
						}
						continue
					}
					// Adjacent leaf: already covered by List 1.
				} else {
					emit(b, childBoxID)
				}
			}

			s.Advance(nChildren)
		}
	}
}

// buildSepSmallerNonsiblings runs sepSmallerNonsiblingsFor for every leaf,
// sharing the count pass between its two parallel outputs (spec.md §4.10).
func buildSepSmallerNonsiblings[ID Int, C Float](
	t *Tree[ID, C], leaves []ID, colleagues ragged.List[ID], newStack func() *walk.Stack[ID],
) (origins, targets ragged.List[ID]) {
	stack := newStack()
	return ragged.BuildPaired(ID(len(leaves)), func(l ID, emit func(origin, target ID)) {
		sepSmallerNonsiblingsFor(t, stack, leaves, colleagues, l, emit)
	})
}

// buildSepBiggerNonsiblings implements spec.md §4.9 ("List 4"): the
// transpose of List 3, computed by a key-value sort over
// (sep_smaller_nonsiblings keys, sep_smaller_nonsiblings_origins values)
// grouped by key into nboxes buckets. The source uses a GPU key-value
// sort (pyopencl.algorithm.KeyValueSorter); a single-threaded sort by key
// (sort.Slice, which is not stable) followed by a group-boundary scan is
// the sequential equivalent. The order of origins within one key's group
// is therefore not defined; callers do not rely on it.
func buildSepBiggerNonsiblings[ID Int](nboxes ID, keys, values []ID) ragged.List[ID] {
	n := len(keys)
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(i, j int) bool {
		return keys[order[i]] < keys[order[j]]
	})

	starts := make([]ID, nboxes+1)
	lists := make([]ID, n)

	for idx, pos := range order {
		lists[idx] = values[pos]
		starts[keys[pos]+1]++
	}
	for k := ID(1); k <= nboxes; k++ {
		starts[k] += starts[k-1]
	}

	return ragged.List[ID]{Starts: starts, Lists: lists}
}
