// Copyright (c) 2025 The Boxtree Authors
// SPDX-License-Identifier: MIT

package boxtree

// adjacentOrOverlapping implements spec.md §4.1: two boxes are adjacent
// (or overlapping) if the Chebyshev distance between their centers is no
// more than half the sum of their sizes plus half the larger size. The
// extra half-size slack classifies a smaller box flush against a larger
// neighbor as adjacent despite floating-point round-off. The comparison
// is <= (touching boxes are adjacent); the predicate is symmetric.
func adjacentOrOverlapping[ID Int, C Float](t *Tree[ID, C], aCenter [3]C, aLevel uint8, b ID) bool {
	bCenter := t.center(b)
	bLevel := t.BoxLevels[b]

	aSize := t.levelSize(aLevel)
	bSize := t.levelSize(bLevel)

	sizeSum := 0.5 * (aSize + bSize)
	maxSize := aSize
	if bSize > aSize {
		maxSize = bSize
	}
	slack := sizeSum + 0.5*maxSize

	var maxDist C
	for axis := 0; axis < t.Dimensions; axis++ {
		d := aCenter[axis] - bCenter[axis]
		if d < 0 {
			d = -d
		}
		if d > maxDist {
			maxDist = d
		}
	}

	return maxDist <= slack
}
