// Copyright (c) 2025 The Boxtree Authors
// SPDX-License-Identifier: MIT

// Package randtree generates small, well-formed synthetic octrees (or
// quadtrees/binary trees, depending on dimensionality) for tests and
// fuzzing. It plays the role of the teacher's random prefix generator
// (internal/tests/random in the reference BART implementation), which
// produces random but well-formed CIDR sets for property tests; here the
// randomness is over tree shape (which boxes get refined) rather than
// over prefixes, since tree construction itself is out of scope for the
// interaction-list builder (spec.md §1).
//
// Building a Tree is deliberately not part of the public boxtree API: the
// builder consumes a tree produced elsewhere (spec.md §1, "Construction
// of the spatial tree itself" is explicitly out of scope).
package randtree

import "math/rand/v2"

// Flags mirrors boxtree.Flags without importing the root package (which
// would create an import cycle from boxtree's own tests).
type Flags uint8

const (
	HasSources Flags = 1 << iota
	HasTargets
	HasChildren
)

// Tree is a minimal, dependency-free mirror of boxtree.Tree[int32, float64]
// used only within tests; boxtree_test.go adapts it into a real
// boxtree.Tree via toBoxtree (kept in the _test.go file to avoid an
// import cycle).
type Tree struct {
	Dimensions    int
	NLevels       int
	NBoxes        int32
	AlignedNBoxes int32
	RootExtent    float64
	BoxCenters    [][]float64
	BoxLevels     []uint8
	BoxParentIDs  []int32
	BoxChildIDs   [][]int32
	BoxFlags      []Flags
	LevelStarts   []int32
}

type box struct {
	parent int32
	level  uint8
	center [3]float64
}

// Gen builds a random tree with the given dimensionality (1, 2, or 3),
// refining boxes breadth-first until reaching approximately targetBoxes
// or maxLevels, whichever comes first. Every emitted box is either fully
// refined (all 2^d children present) or a leaf; every leaf is marked
// HasSources|HasTargets so List 1/3 have something to find.
func Gen(prng *rand.Rand, dimensions, targetBoxes, maxLevels int) *Tree {
	if dimensions < 1 {
		dimensions = 1
	}
	if dimensions > 3 {
		dimensions = 3
	}
	if targetBoxes < 1 {
		targetBoxes = 1
	}
	if maxLevels < 1 {
		maxLevels = 1
	}

	nChildren := 1 << dimensions
	const rootExtent = 1.0

	// Boxes are generated strictly level by level so that box ids stay
	// sorted by level (the invariant level_starts, and every stage that
	// descends the tree via box_child_ids, relies on): every box at
	// level L gets an id smaller than every box at level L+1.
	boxes := []box{{parent: 0, level: 0, center: [3]float64{0, 0, 0}}}
	childIDs := make([][]int32, nChildren)
	for m := range childIDs {
		childIDs[m] = []int32{0}
	}
	flags := []Flags{0}

	currentLevel := []int32{0}

	for level := 0; len(boxes) < targetBoxes && level < maxLevels && len(currentLevel) > 0; level++ {
		var nextLevel []int32

		for _, b := range currentLevel {
			refine := len(boxes) < targetBoxes && prng.Float64() < 0.7
			if !refine {
				flags[b] |= HasSources | HasTargets
				continue
			}

			flags[b] |= HasChildren
			childSize := rootExtent / float64(uint64(1)<<(boxes[b].level+1)) / 2

			for m := 0; m < nChildren; m++ {
				center := boxes[b].center
				for axis := 0; axis < dimensions; axis++ {
					if m&(1<<axis) != 0 {
						center[axis] += childSize
					} else {
						center[axis] -= childSize
					}
				}

				id := int32(len(boxes))
				boxes = append(boxes, box{parent: b, level: boxes[b].level + 1, center: center})
				flags = append(flags, 0)
				for mm := range childIDs {
					childIDs[mm] = append(childIDs[mm], 0)
				}
				childIDs[m][b] = id
				nextLevel = append(nextLevel, id)
			}
		}

		currentLevel = nextLevel
	}

	// Any box never refined (including everything on the final frontier)
	// is a leaf.
	for _, b := range currentLevel {
		flags[b] |= HasSources | HasTargets
	}
	// A never-refined root is a leaf too.
	if len(boxes) == 1 {
		flags[0] |= HasSources | HasTargets
	}

	nboxes := int32(len(boxes))

	nlevels := 0
	for _, bx := range boxes {
		if int(bx.level) > nlevels {
			nlevels = int(bx.level)
		}
	}
	nlevels++ // nlevels counts levels 0..max, so add one

	boxLevels := make([]uint8, nboxes)
	boxParentIDs := make([]int32, nboxes)
	boxCenters := make([][]float64, dimensions)
	for axis := range boxCenters {
		boxCenters[axis] = make([]float64, nboxes)
	}
	for i, bx := range boxes {
		boxLevels[i] = bx.level
		boxParentIDs[i] = bx.parent
		for axis := 0; axis < dimensions; axis++ {
			boxCenters[axis][i] = bx.center[axis]
		}
	}
	boxParentIDs[0] = 0

	levelStarts := make([]int32, nlevels+1)
	for i := int32(0); i < nboxes; i++ {
		levelStarts[boxLevels[i]+1] = i + 1
	}
	for l := 1; l <= nlevels; l++ {
		if levelStarts[l] < levelStarts[l-1] {
			levelStarts[l] = levelStarts[l-1]
		}
	}

	return &Tree{
		Dimensions:    dimensions,
		NLevels:       nlevels,
		NBoxes:        nboxes,
		AlignedNBoxes: nboxes,
		RootExtent:    rootExtent,
		BoxCenters:    boxCenters,
		BoxLevels:     boxLevels,
		BoxParentIDs:  boxParentIDs,
		BoxChildIDs:   childIDs,
		BoxFlags:      flags,
		LevelStarts:   levelStarts,
	}
}
