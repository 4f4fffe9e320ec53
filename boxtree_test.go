// Copyright (c) 2025 The Boxtree Authors
// SPDX-License-Identifier: MIT

package boxtree

import (
	"math/rand/v2"

	"github.com/Python-Repository-Hub/boxtree/internal/randtree"
)

// genRandTree is a thin wrapper so other _test.go files in this package
// don't each need their own internal/randtree import.
func genRandTree(prng *rand.Rand, dimensions, targetBoxes, maxLevels int) *randtree.Tree {
	return randtree.Gen(prng, dimensions, targetBoxes, maxLevels)
}

// toBoxtree adapts a randtree.Tree (a dependency-free mirror kept in
// internal/randtree to avoid an import cycle) into a real
// Tree[int32, float64] for use by this package's own tests.
func toBoxtree(rt *randtree.Tree) *Tree[int32, float64] {
	flags := make([]Flags, len(rt.BoxFlags))
	for i, f := range rt.BoxFlags {
		flags[i] = Flags(f)
	}

	return &Tree[int32, float64]{
		Dimensions:    rt.Dimensions,
		NLevels:       rt.NLevels,
		NBoxes:        rt.NBoxes,
		AlignedNBoxes: rt.AlignedNBoxes,
		RootExtent:    rt.RootExtent,
		BoxCenters:    rt.BoxCenters,
		BoxLevels:     rt.BoxLevels,
		BoxParentIDs:  rt.BoxParentIDs,
		BoxChildIDs:   rt.BoxChildIDs,
		BoxFlags:      flags,
		LevelStarts:   rt.LevelStarts,
	}
}

// fixedQuadtree builds a small, hand-checkable 2D tree:
//
//	box 0: root, refined into 4 children (1..4)
//	box 1: refined into 4 children (5..8), all leaves
//	boxes 2,3,4: leaves
//
// Centers assume a root extent of 1 centered at the origin.
func fixedQuadtree() *Tree[int32, float64] {
	c := func(x, y float64) [2]float64 { return [2]float64{x, y} }
	centers := []([2]float64){
		c(0, 0),          // 0: root
		c(-0.25, -0.25),  // 1
		c(0.25, -0.25),   // 2
		c(-0.25, 0.25),   // 3
		c(0.25, 0.25),    // 4
		c(-0.375, -0.375), // 5
		c(-0.125, -0.375), // 6
		c(-0.375, -0.125), // 7
		c(-0.125, -0.125), // 8
	}

	nboxes := int32(len(centers))
	boxCenters := make([][]float64, 2)
	boxCenters[0] = make([]float64, nboxes)
	boxCenters[1] = make([]float64, nboxes)
	for i, ctr := range centers {
		boxCenters[0][i] = ctr[0]
		boxCenters[1][i] = ctr[1]
	}

	boxLevels := []uint8{0, 1, 1, 1, 1, 2, 2, 2, 2}
	boxParentIDs := []int32{0, 0, 0, 0, 0, 1, 1, 1, 1}

	flags := make([]Flags, nboxes)
	flags[0] = HasChildren
	flags[1] = HasChildren
	for _, b := range []int32{2, 3, 4, 5, 6, 7, 8} {
		flags[b] = HasSources | HasTargets
	}

	childIDs := make([][]int32, 4)
	for m := range childIDs {
		childIDs[m] = make([]int32, nboxes)
	}
	// box 0's children, Morton order matching the center offsets above.
	childIDs[0][0] = 1
	childIDs[1][0] = 2
	childIDs[2][0] = 3
	childIDs[3][0] = 4
	// box 1's children.
	childIDs[0][1] = 5
	childIDs[1][1] = 6
	childIDs[2][1] = 7
	childIDs[3][1] = 8

	return &Tree[int32, float64]{
		Dimensions:    2,
		NLevels:       3,
		NBoxes:        nboxes,
		AlignedNBoxes: nboxes,
		RootExtent:    1.0,
		BoxCenters:    boxCenters,
		BoxLevels:     boxLevels,
		BoxParentIDs:  boxParentIDs,
		BoxChildIDs:   childIDs,
		BoxFlags:      flags,
		LevelStarts:   []int32{0, 1, 5, 9},
	}
}

// separatedQuadtree refines two diagonally opposite level-1 boxes into
// level-2 children, leaving the other two as leaves. Most of box 1's
// descendants (bottom-left corner) and box 4's descendants (top-right
// corner) are far enough apart that the adjacency slack does not bridge
// them (only the inner corners 8 and 9 touch), so this tree exercises
// List 2 with genuinely separated boxes, unlike the fully-adjacent
// fixedQuadtree. Its List 3 and List 4 are still empty.
//
//	box 0: root, children 1,2,3,4
//	box 1 (-.25,-.25): refined into 5,6,7,8
//	box 2 (.25,-.25): leaf
//	box 3 (-.25,.25): leaf
//	box 4 (.25,.25): refined into 9,10,11,12
func separatedQuadtree() *Tree[int32, float64] {
	c := func(x, y float64) [2]float64 { return [2]float64{x, y} }
	centers := []([2]float64){
		c(0, 0),           // 0: root
		c(-0.25, -0.25),   // 1
		c(0.25, -0.25),    // 2
		c(-0.25, 0.25),    // 3
		c(0.25, 0.25),     // 4
		c(-0.375, -0.375), // 5
		c(-0.125, -0.375), // 6
		c(-0.375, -0.125), // 7
		c(-0.125, -0.125), // 8
		c(0.125, 0.125),   // 9
		c(0.375, 0.125),   // 10
		c(0.125, 0.375),   // 11
		c(0.375, 0.375),   // 12
	}

	nboxes := int32(len(centers))
	boxCenters := make([][]float64, 2)
	boxCenters[0] = make([]float64, nboxes)
	boxCenters[1] = make([]float64, nboxes)
	for i, ctr := range centers {
		boxCenters[0][i] = ctr[0]
		boxCenters[1][i] = ctr[1]
	}

	boxLevels := []uint8{0, 1, 1, 1, 1, 2, 2, 2, 2, 2, 2, 2, 2}
	boxParentIDs := []int32{0, 0, 0, 0, 0, 1, 1, 1, 1, 4, 4, 4, 4}

	flags := make([]Flags, nboxes)
	flags[0] = HasChildren
	flags[1] = HasChildren
	flags[4] = HasChildren
	for _, b := range []int32{2, 3, 5, 6, 7, 8, 9, 10, 11, 12} {
		flags[b] = HasSources | HasTargets
	}

	childIDs := make([][]int32, 4)
	for m := range childIDs {
		childIDs[m] = make([]int32, nboxes)
	}
	childIDs[0][0] = 1
	childIDs[1][0] = 2
	childIDs[2][0] = 3
	childIDs[3][0] = 4

	childIDs[0][1] = 5
	childIDs[1][1] = 6
	childIDs[2][1] = 7
	childIDs[3][1] = 8

	childIDs[0][4] = 9
	childIDs[1][4] = 10
	childIDs[2][4] = 11
	childIDs[3][4] = 12

	return &Tree[int32, float64]{
		Dimensions:    2,
		NLevels:       3,
		NBoxes:        nboxes,
		AlignedNBoxes: nboxes,
		RootExtent:    1.0,
		BoxCenters:    boxCenters,
		BoxLevels:     boxLevels,
		BoxParentIDs:  boxParentIDs,
		BoxChildIDs:   childIDs,
		BoxFlags:      flags,
		LevelStarts:   []int32{0, 1, 5, 13},
	}
}
